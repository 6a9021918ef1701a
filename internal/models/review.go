package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SwapID     uint      `gorm:"not null;uniqueIndex:idx_reviews_swap_reviewer,priority:1" json:"swapId"`
	ReviewerID string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_reviews_swap_reviewer,priority:2" json:"reviewerId"`
	RevieweeID string    `gorm:"type:varchar(255);not null;index" json:"revieweeId"`
	Rating     int       `gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	IsPublic   bool      `gorm:"not null" json:"isPublic"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"createdAt"`

	// Relations
	Reviewer *User `gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE" json:"reviewer,omitempty"`
	Reviewee *User `gorm:"foreignKey:RevieweeID;constraint:OnDelete:CASCADE" json:"reviewee,omitempty"`
	Swap     *Swap `gorm:"foreignKey:SwapID;constraint:OnDelete:CASCADE" json:"-"`
}

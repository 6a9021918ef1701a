package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Availability - когда и где владелец готов проводить занятия
type Availability struct {
	Type     AvailabilityType     `json:"type,omitempty"`
	Times    []string             `json:"times,omitempty"`
	Location AvailabilityLocation `json:"location,omitempty"`
}

type VerificationBadges struct {
	Email         bool     `json:"email,omitempty"`
	Identity      bool     `json:"identity,omitempty"`
	Certification bool     `json:"certification,omitempty"`
	IssuedBy      []string `json:"issuedBy,omitempty"`
}

type Skill struct {
	ID                 uint                                   `gorm:"primaryKey" json:"id"`
	UserID             string                                 `gorm:"type:varchar(255);not null;index" json:"userId"`
	Name               string                                 `gorm:"type:varchar(255);not null" json:"name"`
	Category           SkillCategory                          `gorm:"type:varchar(50);not null;index" json:"category"`
	Description        string                                 `gorm:"type:text;not null" json:"description"`
	Level              SkillLevel                             `gorm:"type:varchar(50);not null" json:"level"`
	IsPublic           bool                                   `gorm:"not null;index" json:"isPublic"`
	Location           string                                 `gorm:"type:varchar(255)" json:"location"`
	Availability       datatypes.JSONType[Availability]       `gorm:"type:jsonb;not null;default:'{}'" json:"availability"`
	WantsToLearn       pq.StringArray                         `gorm:"type:text[];not null;default:'{}'" json:"wantsToLearn"`
	Priority           SkillPriority                          `gorm:"type:varchar(20);not null" json:"priority"`
	Certifications     string                                 `gorm:"type:text" json:"certifications"`
	MediaURLs          pq.StringArray                         `gorm:"column:media_urls;type:text[];not null;default:'{}'" json:"mediaUrls"`
	VerificationBadges datatypes.JSONType[VerificationBadges] `gorm:"type:jsonb;not null;default:'{}'" json:"verificationBadges"`
	CreatedAt          time.Time                              `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt          time.Time                              `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

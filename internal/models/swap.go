package models

import (
	"math"
	"time"

	"gorm.io/datatypes"
)

type Progress struct {
	CurrentSession int      `json:"currentSession"`
	TotalSessions  int      `json:"totalSessions"`
	Milestones     []string `json:"milestones,omitempty"`
}

// Percent - доля пройденных занятий в процентах, 0..100
func (p Progress) Percent() int {
	if p.TotalSessions <= 0 || p.CurrentSession <= 0 {
		return 0
	}
	if p.CurrentSession >= p.TotalSessions {
		return 100
	}
	return int(math.Round(float64(p.CurrentSession) / float64(p.TotalSessions) * 100))
}

type SessionDetails struct {
	Type     SessionType `json:"type,omitempty"`
	Platform string      `json:"platform,omitempty"`
	Location string      `json:"location,omitempty"`
}

type Swap struct {
	ID             uint                               `gorm:"primaryKey" json:"id"`
	RequesterID    string                             `gorm:"type:varchar(255);not null;index" json:"requesterId"`
	ProviderID     string                             `gorm:"type:varchar(255);not null;index" json:"providerId"`
	SkillID        uint                               `gorm:"not null;index" json:"skillId"`
	Status         SwapStatus                         `gorm:"type:varchar(20);not null;index" json:"status"`
	Progress       datatypes.JSONType[Progress]       `gorm:"type:jsonb;not null;default:'{}'" json:"progress"`
	SessionDetails datatypes.JSONType[SessionDetails] `gorm:"type:jsonb;not null;default:'{}'" json:"sessionDetails"`
	NextSessionAt  *time.Time                         `json:"nextSessionAt"`
	RequestMessage string                             `gorm:"type:text" json:"requestMessage"`
	CreatedAt      time.Time                          `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt      time.Time                          `gorm:"autoUpdateTime" json:"updatedAt"`

	// сбрасывается при переносе nextSessionAt
	ReminderSentAt *time.Time `json:"-"`

	// Relations (каждая подгружается отдельным Preload)
	Requester *User  `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE" json:"requester,omitempty"`
	Provider  *User  `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"provider,omitempty"`
	Skill     *Skill `gorm:"foreignKey:SkillID;constraint:OnDelete:RESTRICT" json:"skill,omitempty"`
}

// IsParticipant - является ли пользователь стороной обмена
func (s *Swap) IsParticipant(userID string) bool {
	return userID != "" && (s.RequesterID == userID || s.ProviderID == userID)
}

// Counterpart возвращает ID второй стороны обмена
func (s *Swap) Counterpart(userID string) string {
	if s.RequesterID == userID {
		return s.ProviderID
	}
	return s.RequesterID
}

package models

import "time"

// User - пользователь. ID приходит от внешнего провайдера идентификации (claim sub),
// строка создается/обновляется при каждой успешной аутентификации.
type User struct {
	ID              string    `gorm:"primaryKey;type:varchar(255)" json:"id"`
	Email           *string   `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	FirstName       string    `gorm:"type:varchar(255)" json:"firstName"`
	LastName        string    `gorm:"type:varchar(255)" json:"lastName"`
	ProfileImageURL string    `gorm:"type:varchar(1024)" json:"profileImageUrl"`
	Location        string    `gorm:"type:varchar(255)" json:"location"`
	Bio             string    `gorm:"type:text" json:"bio"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// DisplayName - имя для писем и уведомлений
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.Email != nil:
		return *u.Email
	}
	return "SkillSwap member"
}

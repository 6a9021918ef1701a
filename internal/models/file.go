package models

import "time"

// File - метаданные загруженного файла. Сами байты лежат в storage.Storage
// под именем Filename.
type File struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"type:varchar(255);not null;index" json:"userId"`
	Filename     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"filename"`
	OriginalName string    `gorm:"type:varchar(255);not null" json:"originalName"`
	MimeType     string    `gorm:"type:varchar(100);not null" json:"mimeType"`
	Size         int64     `gorm:"not null" json:"size"`
	URL          string    `gorm:"column:url;type:varchar(1024);not null" json:"url"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploadedAt"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

package models

import "time"

// Message - сообщение в переписке по обмену. Не редактируется и не удаляется.
type Message struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	SwapID      uint        `gorm:"not null;index:idx_messages_swap_created,priority:1" json:"swapId"`
	SenderID    string      `gorm:"type:varchar(255);not null" json:"senderId"`
	Content     string      `gorm:"type:text;not null" json:"content"`
	MessageType MessageType `gorm:"type:varchar(20);not null" json:"messageType"`
	FileURL     string      `gorm:"type:varchar(1024)" json:"fileUrl"`
	CreatedAt   time.Time   `gorm:"autoCreateTime;index:idx_messages_swap_created,priority:2" json:"createdAt"`

	Sender *User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender,omitempty"`
	Swap   *Swap `gorm:"foreignKey:SwapID;constraint:OnDelete:CASCADE" json:"-"`
}

package dto

type CreateMessageRequest struct {
	Content     string `json:"content" validate:"required,notblank,max=5000"`
	MessageType string `json:"messageType" validate:"omitempty,message-type"`
	FileURL     string `json:"fileUrl" validate:"max=1024"`
}

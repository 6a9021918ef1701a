package services

import (
	"errors"

	"skillswap/internal/models"
	"skillswap/internal/repositories"
	"skillswap/internal/services/dto"
	"skillswap/pkg/apperrors"

	"gorm.io/gorm"
)

type MessageService interface {
	ListMessages(db *gorm.DB, userID string, swapID uint) ([]models.Message, error)
	CreateMessage(db *gorm.DB, userID string, swapID uint, req *dto.CreateMessageRequest) (*models.Message, error)
}

type MessageServiceImpl struct {
	messageRepo repositories.MessageRepository
	swapRepo    repositories.SwapRepository
	events      EventPublisher
}

func NewMessageService(
	messageRepo repositories.MessageRepository,
	swapRepo repositories.SwapRepository,
	events EventPublisher,
) MessageService {
	return &MessageServiceImpl{
		messageRepo: messageRepo,
		swapRepo:    swapRepo,
		events:      publisherOrNop(events),
	}
}

func (s *MessageServiceImpl) ListMessages(db *gorm.DB, userID string, swapID uint) ([]models.Message, error) {
	if _, err := s.authorize(db, userID, swapID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindMessagesBySwap(db, swapID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return messages, nil
}

// CreateMessage - swapId берется из маршрута, senderId - из токена
func (s *MessageServiceImpl) CreateMessage(db *gorm.DB, userID string, swapID uint, req *dto.CreateMessageRequest) (*models.Message, error) {
	swap, err := s.authorize(db, userID, swapID)
	if err != nil {
		return nil, err
	}

	messageType := models.MessageType(req.MessageType)
	if messageType == "" {
		messageType = models.MessageTypeText
	}

	message := &models.Message{
		SwapID:      swapID,
		SenderID:    userID,
		Content:     req.Content,
		MessageType: messageType,
		FileURL:     req.FileURL,
	}
	if err := s.messageRepo.CreateMessage(db, message); err != nil {
		return nil, handleMessageError(err)
	}

	created, err := s.messageRepo.FindMessageByID(db, message.ID)
	if err != nil {
		return nil, handleMessageError(err)
	}

	s.events.Publish([]string{swap.RequesterID, swap.ProviderID}, EventMessageCreated, created)
	return created, nil
}

func (s *MessageServiceImpl) authorize(db *gorm.DB, userID string, swapID uint) (*models.Swap, error) {
	swap, err := s.swapRepo.FindSwapByID(db, swapID)
	if err != nil {
		if errors.Is(err, repositories.ErrSwapNotFound) {
			return nil, apperrors.ErrSwapAccessDenied
		}
		return nil, apperrors.InternalError(err)
	}
	if !swap.IsParticipant(userID) {
		return nil, apperrors.ErrSwapAccessDenied
	}
	return swap, nil
}

func handleMessageError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrMessageNotFound):
		return apperrors.NewNotFoundError("message", "Message not found")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.ErrSwapAccessDenied.WithError(err)
	default:
		return apperrors.InternalError(err)
	}
}

package repositories

import (
	"errors"

	"skillswap/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository interface {
	CreateMessage(db *gorm.DB, message *models.Message) error
	FindMessageByID(db *gorm.DB, id uint) (*models.Message, error)
	FindMessagesBySwap(db *gorm.DB, swapID uint) ([]models.Message, error)
}

type MessageRepositoryImpl struct{}

func NewMessageRepository() MessageRepository {
	return &MessageRepositoryImpl{}
}

func (r *MessageRepositoryImpl) CreateMessage(db *gorm.DB, message *models.Message) error {
	return db.Omit(clause.Associations).Create(message).Error
}

func (r *MessageRepositoryImpl) FindMessageByID(db *gorm.DB, id uint) (*models.Message, error) {
	var message models.Message
	if err := db.Preload("Sender").First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

// FindMessagesBySwap - переписка по обмену в хронологическом порядке
func (r *MessageRepositoryImpl) FindMessagesBySwap(db *gorm.DB, swapID uint) ([]models.Message, error) {
	messages := make([]models.Message, 0)
	err := db.Preload("Sender").
		Where("swap_id = ?", swapID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

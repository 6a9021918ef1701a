package repositories

import (
	"errors"

	"skillswap/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrFileNotFound = errors.New("file not found")

type FileRepository interface {
	CreateFile(db *gorm.DB, file *models.File) error
	FindFileByID(db *gorm.DB, id uint) (*models.File, error)
	DeleteFile(db *gorm.DB, id uint) error
}

type FileRepositoryImpl struct{}

func NewFileRepository() FileRepository {
	return &FileRepositoryImpl{}
}

func (r *FileRepositoryImpl) CreateFile(db *gorm.DB, file *models.File) error {
	return db.Omit(clause.Associations).Create(file).Error
}

func (r *FileRepositoryImpl) FindFileByID(db *gorm.DB, id uint) (*models.File, error) {
	var file models.File
	if err := db.First(&file, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *FileRepositoryImpl) DeleteFile(db *gorm.DB, id uint) error {
	result := db.Delete(&models.File{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFileNotFound
	}
	return nil
}

package repositories

import (
	"errors"

	"skillswap/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this swap")
)

type ReviewFilter struct {
	RevieweeID string
	SwapID     *uint
}

type ReviewRepository interface {
	CreateReview(db *gorm.DB, review *models.Review) error
	FindReviewByID(db *gorm.DB, id uint) (*models.Review, error)
	FindReviews(db *gorm.DB, filter ReviewFilter) ([]models.Review, error)
	FindReviewBySwapAndReviewer(db *gorm.DB, swapID uint, reviewerID string) (*models.Review, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

// CreateReview создает отзыв. Повторный отзыв того же автора на тот же обмен
// отсекается уникальным индексом.
func (r *ReviewRepositoryImpl) CreateReview(db *gorm.DB, review *models.Review) error {
	err := db.Omit(clause.Associations).Create(review).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrReviewAlreadyExists
	}
	return err
}

func (r *ReviewRepositoryImpl) FindReviewByID(db *gorm.DB, id uint) (*models.Review, error) {
	var review models.Review
	err := db.Preload("Reviewer").Preload("Reviewee").First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindReviews(db *gorm.DB, filter ReviewFilter) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	err := db.Model(&models.Review{}).
		Scopes(reviewFilterScope(filter)).
		Preload("Reviewer").
		Preload("Reviewee").
		Order("reviews.created_at DESC").
		Order("reviews.id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func reviewFilterScope(filter ReviewFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.RevieweeID != "" {
			db = db.Where("reviews.reviewee_id = ?", filter.RevieweeID)
		}
		if filter.SwapID != nil {
			db = db.Where("reviews.swap_id = ?", *filter.SwapID)
		}
		return db
	}
}

func (r *ReviewRepositoryImpl) FindReviewBySwapAndReviewer(db *gorm.DB, swapID uint, reviewerID string) (*models.Review, error) {
	var review models.Review
	err := db.Where("swap_id = ? AND reviewer_id = ?", swapID, reviewerID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

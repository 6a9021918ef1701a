package services

import (
	"errors"

	"skillswap/internal/models"
	"skillswap/internal/repositories"
	"skillswap/internal/services/dto"
	"skillswap/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	ListReviews(db *gorm.DB, query *dto.ListReviewsQuery) ([]models.Review, error)
	CreateReview(db *gorm.DB, userID string, req *dto.CreateReviewRequest) (*models.Review, error)
}

type ReviewServiceImpl struct {
	reviewRepo repositories.ReviewRepository
	swapRepo   repositories.SwapRepository
	events     EventPublisher
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	swapRepo repositories.SwapRepository,
	events EventPublisher,
) ReviewService {
	return &ReviewServiceImpl{
		reviewRepo: reviewRepo,
		swapRepo:   swapRepo,
		events:     publisherOrNop(events),
	}
}

func (s *ReviewServiceImpl) ListReviews(db *gorm.DB, query *dto.ListReviewsQuery) ([]models.Review, error) {
	reviews, err := s.reviewRepo.FindReviews(db, repositories.ReviewFilter{
		RevieweeID: query.UserID,
		SwapID:     query.SwapID,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return reviews, nil
}

// CreateReview - отзыв участника обмена о второй стороне, один на обмен от каждого автора
func (s *ReviewServiceImpl) CreateReview(db *gorm.DB, userID string, req *dto.CreateReviewRequest) (*models.Review, error) {
	swap, err := s.swapRepo.FindSwapByID(db, req.SwapID)
	if err != nil {
		return nil, handleSwapError(err)
	}
	if !swap.IsParticipant(userID) {
		return nil, apperrors.ErrReviewNotParticipant
	}
	if req.RevieweeID == userID || swap.Counterpart(userID) != req.RevieweeID {
		return nil, apperrors.ErrInvalidReviewee
	}

	_, err = s.reviewRepo.FindReviewBySwapAndReviewer(db, req.SwapID, userID)
	switch {
	case err == nil:
		return nil, apperrors.ErrReviewAlreadyExists
	case !errors.Is(err, repositories.ErrReviewNotFound):
		return nil, apperrors.InternalError(err)
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	review := &models.Review{
		SwapID:     req.SwapID,
		ReviewerID: userID,
		RevieweeID: req.RevieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		IsPublic:   isPublic,
	}
	if err := s.reviewRepo.CreateReview(db, review); err != nil {
		return nil, handleReviewError(err)
	}

	created, err := s.reviewRepo.FindReviewByID(db, review.ID)
	if err != nil {
		return nil, handleReviewError(err)
	}

	s.events.Publish([]string{created.RevieweeID}, EventReviewCreated, created)
	return created, nil
}

func handleReviewError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrReviewAlreadyExists), errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrReviewAlreadyExists.WithError(err)
	case errors.Is(err, repositories.ErrReviewNotFound):
		return apperrors.NewNotFoundError("review", "Review not found")
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return apperrors.NewBadRequestError("Rating must be between 1 and 5")
	default:
		return apperrors.InternalError(err)
	}
}

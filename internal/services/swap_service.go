package services

import (
	"errors"
	"fmt"

	"skillswap/internal/models"
	"skillswap/internal/repositories"
	"skillswap/internal/services/dto"
	"skillswap/pkg/apperrors"

	"gorm.io/gorm"
)

type SwapService interface {
	ListSwaps(db *gorm.DB, userID string, query *dto.ListSwapsQuery) ([]*dto.SwapResponse, error)
	GetSwapCounts(db *gorm.DB, userID string) (*dto.SwapCounts, error)
	GetSwap(db *gorm.DB, userID string, id uint) (*dto.SwapResponse, error)
	CreateSwap(db *gorm.DB, userID string, req *dto.CreateSwapRequest) (*dto.SwapResponse, error)
	UpdateSwap(db *gorm.DB, userID string, id uint, req *dto.UpdateSwapRequest) (*dto.SwapResponse, error)
}

type SwapServiceImpl struct {
	swapRepo      repositories.SwapRepository
	skillRepo     repositories.SkillRepository
	notifications NotificationService
	events        EventPublisher
}

func NewSwapService(
	swapRepo repositories.SwapRepository,
	skillRepo repositories.SkillRepository,
	notifications NotificationService,
	events EventPublisher,
) SwapService {
	return &SwapServiceImpl{
		swapRepo:      swapRepo,
		skillRepo:     skillRepo,
		notifications: notifications,
		events:        publisherOrNop(events),
	}
}

// ListSwaps - обмены, где пользователь requester или provider
func (s *SwapServiceImpl) ListSwaps(db *gorm.DB, userID string, query *dto.ListSwapsQuery) ([]*dto.SwapResponse, error) {
	swaps, err := s.swapRepo.FindSwaps(db, repositories.SwapFilter{
		UserID: userID,
		Status: query.Status,
		Search: query.Search,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewSwapResponses(swaps), nil
}

func (s *SwapServiceImpl) GetSwapCounts(db *gorm.DB, userID string) (*dto.SwapCounts, error) {
	byStatus, err := s.swapRepo.CountSwapsByStatus(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewSwapCounts(byStatus), nil
}

// GetSwap - 404 для несуществующего обмена, 403 если пользователь не участник
func (s *SwapServiceImpl) GetSwap(db *gorm.DB, userID string, id uint) (*dto.SwapResponse, error) {
	swap, err := s.swapRepo.FindSwapByID(db, id)
	if err != nil {
		return nil, handleSwapError(err)
	}
	if !swap.IsParticipant(userID) {
		return nil, apperrors.ErrSwapAccessDenied
	}
	return dto.NewSwapResponse(swap), nil
}

func (s *SwapServiceImpl) CreateSwap(db *gorm.DB, userID string, req *dto.CreateSwapRequest) (*dto.SwapResponse, error) {
	if req.ProviderID == userID {
		return nil, apperrors.ErrSwapWithSelf
	}

	skill, err := s.skillRepo.FindSkillByID(db, req.SkillID)
	if err != nil {
		return nil, handleSkillError(err)
	}
	if skill.UserID != req.ProviderID {
		return nil, apperrors.ErrSkillProviderMismatch
	}

	swap := req.ToModel(userID)
	if err := s.swapRepo.CreateSwap(db, swap); err != nil {
		return nil, handleSwapError(err)
	}

	created, err := s.swapRepo.FindSwapByID(db, swap.ID)
	if err != nil {
		return nil, handleSwapError(err)
	}

	resp := dto.NewSwapResponse(created)
	s.events.Publish([]string{created.RequesterID, created.ProviderID}, EventSwapCreated, resp)
	if s.notifications != nil {
		s.notifications.SwapRequested(created)
	}
	return resp, nil
}

// UpdateSwap - частичное обновление участником. Несуществующий обмен дает 403,
// недопустимый переход статуса - 409.
func (s *SwapServiceImpl) UpdateSwap(db *gorm.DB, userID string, id uint, req *dto.UpdateSwapRequest) (*dto.SwapResponse, error) {
	swap, err := s.participantSwap(db, userID, id)
	if err != nil {
		return nil, err
	}

	statusChanged := false
	if req.Status != nil {
		next := models.SwapStatus(*req.Status)
		if !swap.Status.CanTransitionTo(next) {
			return nil, apperrors.ErrInvalidStatus("swap",
				fmt.Sprintf("Cannot change swap status from %s to %s", swap.Status, next))
		}
		statusChanged = next != swap.Status
	}

	if err := s.swapRepo.UpdateSwap(db, id, req.ToUpdates()); err != nil {
		return nil, handleSwapError(err)
	}

	updated, err := s.swapRepo.FindSwapByID(db, id)
	if err != nil {
		return nil, handleSwapError(err)
	}

	resp := dto.NewSwapResponse(updated)
	s.events.Publish([]string{updated.RequesterID, updated.ProviderID}, EventSwapUpdated, resp)
	if statusChanged && s.notifications != nil {
		s.notifications.SwapStatusChanged(updated, userID)
	}
	return resp, nil
}

// participantSwap загружает обмен для изменения: отсутствие и чужой обмен неразличимы
func (s *SwapServiceImpl) participantSwap(db *gorm.DB, userID string, id uint) (*models.Swap, error) {
	swap, err := s.swapRepo.FindSwapByID(db, id)
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

func handleSwapError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrSwapNotFound):
		return apperrors.ErrSwapNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.NewBadRequestError("Referenced user or skill does not exist").WithError(err)
	default:
		return apperrors.InternalError(err)
	}
}

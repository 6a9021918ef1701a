package services

import (
	"skillswap/internal/repositories"
	"skillswap/pkg/apperrors"

	"gorm.io/gorm"
)

// DefaultTopMembers - размер списка лучших участников по умолчанию
const DefaultTopMembers = 10

type StatsService interface {
	GetUserStats(db *gorm.DB, userID string) (*repositories.UserStats, error)
	GetCommunityStats(db *gorm.DB) (*repositories.CommunityStats, error)
	GetTopMembers(db *gorm.DB, limit int) ([]repositories.TopMember, error)
}

type StatsServiceImpl struct {
	statsRepo repositories.StatsRepository
}

func NewStatsService(statsRepo repositories.StatsRepository) StatsService {
	return &StatsServiceImpl{statsRepo: statsRepo}
}

// GetUserStats не проверяет существование пользователя: для неизвестного id все нули
func (s *StatsServiceImpl) GetUserStats(db *gorm.DB, userID string) (*repositories.UserStats, error) {
	stats, err := s.statsRepo.GetUserStats(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

func (s *StatsServiceImpl) GetCommunityStats(db *gorm.DB) (*repositories.CommunityStats, error) {
	stats, err := s.statsRepo.GetCommunityStats(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

func (s *StatsServiceImpl) GetTopMembers(db *gorm.DB, limit int) ([]repositories.TopMember, error) {
	if limit <= 0 {
		limit = DefaultTopMembers
	}
	members, err := s.statsRepo.GetTopMembers(db, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return members, nil
}

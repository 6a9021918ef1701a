package repositories

import (
	"math"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// UserStats - сводка по пользователю для профиля и дашборда
type UserStats struct {
	TotalSwaps     int64   `json:"totalSwaps"`
	CompletedSwaps int64   `json:"completedSwaps"`
	AverageRating  float64 `json:"averageRating"`
	// TotalHours пока всегда 0: длительность занятий не хранится
	TotalHours int `json:"totalHours"`
}

type CommunityStats struct {
	TotalMembers int64 `json:"totalMembers"`
	ActiveSwaps  int64 `json:"activeSwaps"`
	SkillsShared int64 `json:"skillsShared"`
	SuccessRate  int   `json:"successRate"` // % завершенных среди закрытых обменов
}

type TopMember struct {
	ID              string  `json:"id"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	ProfileImageURL string  `json:"profileImageUrl"`
	Location        string  `json:"location"`
	SkillsShared    int64   `json:"skillsShared"`
	CompletedSwaps  int64   `json:"completedSwaps"`
	Rating          float64 `json:"rating"`
}

type StatsRepository interface {
	GetUserStats(db *gorm.DB, userID string) (*UserStats, error)
	GetCommunityStats(db *gorm.DB) (*CommunityStats, error)
	GetTopMembers(db *gorm.DB, limit int) ([]TopMember, error)
}

type StatsRepositoryImpl struct{}

func NewStatsRepository() StatsRepository {
	return &StatsRepositoryImpl{}
}

func (r *StatsRepositoryImpl) GetUserStats(db *gorm.DB, userID string) (*UserStats, error) {
	var counts struct {
		Total     int64
		Completed int64
	}
	err := db.Model(&models.Swap{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN swaps.status = ? THEN 1 ELSE 0 END), 0) AS completed", models.SwapStatusCompleted).
		Scopes(participantOf(userID)).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	var avg float64
	err = db.Model(&models.Review{}).
		Select("COALESCE(AVG(reviews.rating), 0)").
		Where("reviews.reviewee_id = ?", userID).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}

	return &UserStats{
		TotalSwaps:     counts.Total,
		CompletedSwaps: counts.Completed,
		AverageRating:  avg,
		TotalHours:     0,
	}, nil
}

func (r *StatsRepositoryImpl) GetCommunityStats(db *gorm.DB) (*CommunityStats, error) {
	stats := &CommunityStats{}

	if err := db.Model(&models.User{}).Count(&stats.TotalMembers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Skill{}).Where("is_public = ?", true).Count(&stats.SkillsShared).Error; err != nil {
		return nil, err
	}

	var swaps struct {
		Active    int64
		Completed int64
		Cancelled int64
	}
	err := db.Model(&models.Swap{}).
		Select(
			"COALESCE(SUM(CASE WHEN status IN (?, ?) THEN 1 ELSE 0 END), 0) AS active, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS cancelled",
			models.SwapStatusAccepted, models.SwapStatusInProgress,
			models.SwapStatusCompleted, models.SwapStatusCancelled,
		).
		Scan(&swaps).Error
	if err != nil {
		return nil, err
	}

	stats.ActiveSwaps = swaps.Active
	stats.SuccessRate = successRate(swaps.Completed, swaps.Cancelled)
	return stats, nil
}

// GetTopMembers - самые активные участники по числу завершенных обменов
func (r *StatsRepositoryImpl) GetTopMembers(db *gorm.DB, limit int) ([]TopMember, error) {
	limit, _ = normalizePage(limit, 0)

	members := make([]TopMember, 0, limit)
	err := db.Table("users AS u").
		Select(
			"u.id, u.first_name, u.last_name, u.profile_image_url, u.location, "+
				"(SELECT COUNT(*) FROM skills s WHERE s.user_id = u.id AND s.is_public) AS skills_shared, "+
				"(SELECT COUNT(*) FROM swaps w WHERE w.status = ? AND (w.requester_id = u.id OR w.provider_id = u.id)) AS completed_swaps, "+
				"(SELECT COALESCE(AVG(r.rating), 0) FROM reviews r WHERE r.reviewee_id = u.id) AS rating",
			models.SwapStatusCompleted,
		).
		Order("completed_swaps DESC").
		Order("rating DESC").
		Order("u.created_at ASC").
		Limit(limit).
		Scan(&members).Error
	if err != nil {
		return nil, err
	}

	return members, nil
}

func successRate(completed, cancelled int64) int {
	closed := completed + cancelled
	if closed == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(closed) * 100))
}

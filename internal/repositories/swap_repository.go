package repositories

import (
	"errors"
	"time"

	"skillswap/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSwapNotFound = errors.New("swap not found")

type SwapFilter struct {
	UserID string // участник: requester или provider
	Status string
	Search string // подстрока в названии навыка или имени второй стороны
}

type SwapRepository interface {
	CreateSwap(db *gorm.DB, swap *models.Swap) error
	FindSwapByID(db *gorm.DB, id uint) (*models.Swap, error)
	FindSwaps(db *gorm.DB, filter SwapFilter) ([]models.Swap, error)
	UpdateSwap(db *gorm.DB, id uint, updates map[string]interface{}) error
	CountSwapsByStatus(db *gorm.DB, userID string) (map[models.SwapStatus]int64, error)
	FindDueReminders(db *gorm.DB, from, to time.Time) ([]models.Swap, error)
	MarkReminderSent(db *gorm.DB, id uint, at time.Time) error
}

type SwapRepositoryImpl struct{}

func NewSwapRepository() SwapRepository {
	return &SwapRepositoryImpl{}
}

// withSwapRelations подгружает обе стороны и навык с владельцем.
// Каждая связь - отдельный запрос, поэтому requester и provider не путаются.
func withSwapRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Requester").Preload("Provider").Preload("Skill.User")
}

func (r *SwapRepositoryImpl) CreateSwap(db *gorm.DB, swap *models.Swap) error {
	return db.Omit(clause.Associations).Create(swap).Error
}

func (r *SwapRepositoryImpl) FindSwapByID(db *gorm.DB, id uint) (*models.Swap, error) {
	var swap models.Swap
	err := db.Scopes(withSwapRelations).First(&swap, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapNotFound
		}
		return nil, err
	}
	return &swap, nil
}

func (r *SwapRepositoryImpl) FindSwaps(db *gorm.DB, filter SwapFilter) ([]models.Swap, error) {
	swaps := make([]models.Swap, 0)
	err := db.Model(&models.Swap{}).
		Scopes(swapFilterScope(filter), withSwapRelations).
		Order("swaps.created_at DESC").
		Order("swaps.id DESC").
		Find(&swaps).Error
	if err != nil {
		return nil, err
	}
	return swaps, nil
}

func swapFilterScope(filter SwapFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.UserID != "" {
			db = db.Scopes(participantOf(filter.UserID))
		}
		if filter.Status != "" {
			db = db.Where("swaps.status = ?", filter.Status)
		}
		if filter.Search != "" {
			pattern := containsPattern(filter.Search)
			skillMatch := "EXISTS (SELECT 1 FROM skills s WHERE s.id = swaps.skill_id AND s.name ILIKE ?)"
			nameMatch := "(u.first_name ILIKE ? OR u.last_name ILIKE ? OR concat_ws(' ', u.first_name, u.last_name) ILIKE ?)"
			if filter.UserID != "" {
				db = db.Where(
					"("+skillMatch+" OR EXISTS (SELECT 1 FROM users u WHERE u.id = CASE WHEN swaps.requester_id = ? THEN swaps.provider_id ELSE swaps.requester_id END AND "+nameMatch+"))",
					pattern, filter.UserID, pattern, pattern, pattern,
				)
			} else {
				db = db.Where(
					"("+skillMatch+" OR EXISTS (SELECT 1 FROM users u WHERE u.id IN (swaps.requester_id, swaps.provider_id) AND "+nameMatch+"))",
					pattern, pattern, pattern, pattern,
				)
			}
		}
		return db
	}
}

func (r *SwapRepositoryImpl) UpdateSwap(db *gorm.DB, id uint, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["updated_at"] = time.Now()

	result := db.Model(&models.Swap{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSwapNotFound
	}
	return nil
}

type statusCount struct {
	Status models.SwapStatus
	Count  int64
}

// CountSwapsByStatus - количество обменов пользователя по статусам
func (r *SwapRepositoryImpl) CountSwapsByStatus(db *gorm.DB, userID string) (map[models.SwapStatus]int64, error) {
	var rows []statusCount
	err := db.Model(&models.Swap{}).
		Select("swaps.status AS status, COUNT(*) AS count").
		Scopes(participantOf(userID)).
		Group("swaps.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.SwapStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// FindDueReminders - активные обмены, у которых следующая сессия в (from, to]
// и напоминание еще не отправлено
func (r *SwapRepositoryImpl) FindDueReminders(db *gorm.DB, from, to time.Time) ([]models.Swap, error) {
	swaps := make([]models.Swap, 0)
	err := db.Model(&models.Swap{}).
		Scopes(dueReminderScope(from, to), withSwapRelations).
		Order("swaps.next_session_at ASC").
		Find(&swaps).Error
	if err != nil {
		return nil, err
	}
	return swaps, nil
}

func dueReminderScope(from, to time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("swaps.status IN ?", []models.SwapStatus{models.SwapStatusAccepted, models.SwapStatusInProgress}).
			Where("swaps.next_session_at > ? AND swaps.next_session_at <= ?", from, to).
			Where("swaps.reminder_sent_at IS NULL")
	}
}

// MarkReminderSent не трогает updated_at: это служебная отметка
func (r *SwapRepositoryImpl) MarkReminderSent(db *gorm.DB, id uint, at time.Time) error {
	result := db.Model(&models.Swap{}).
		Where("id = ? AND reminder_sent_at IS NULL", id).
		UpdateColumn("reminder_sent_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSwapNotFound
	}
	return nil
}

package repositories

import (
	"errors"
	"time"

	"skillswap/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSkillNotFound = errors.New("skill not found")
	ErrSkillInUse    = errors.New("skill is referenced by swaps")
)

// SkillFilter - фильтры каталога навыков. Пустые поля не участвуют в запросе.
type SkillFilter struct {
	Category string
	Search   string // подстрока в name или description, без учета регистра
	Location string // подстрока, без учета регистра
	UserID   string
	IsPublic *bool
	Limit    int
	Offset   int
}

type SkillRepository interface {
	CreateSkill(db *gorm.DB, skill *models.Skill) error
	FindSkillByID(db *gorm.DB, id uint) (*models.Skill, error)
	FindSkills(db *gorm.DB, filter SkillFilter) ([]models.Skill, int64, error)
	UpdateSkill(db *gorm.DB, id uint, updates map[string]interface{}) error
	DeleteSkill(db *gorm.DB, id uint) error
}

type SkillRepositoryImpl struct{}

func NewSkillRepository() SkillRepository {
	return &SkillRepositoryImpl{}
}

func (r *SkillRepositoryImpl) CreateSkill(db *gorm.DB, skill *models.Skill) error {
	return db.Omit(clause.Associations).Create(skill).Error
}

func (r *SkillRepositoryImpl) FindSkillByID(db *gorm.DB, id uint) (*models.Skill, error) {
	var skill models.Skill
	err := db.Preload("User").First(&skill, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	return &skill, nil
}

// FindSkills возвращает страницу навыков (новые первыми) и общее число совпадений
func (r *SkillRepositoryImpl) FindSkills(db *gorm.DB, filter SkillFilter) ([]models.Skill, int64, error) {
	var total int64
	if err := db.Model(&models.Skill{}).Scopes(skillFilterScope(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	skills := make([]models.Skill, 0)
	if total == 0 {
		return skills, 0, nil
	}

	err := db.Model(&models.Skill{}).
		Scopes(skillFilterScope(filter), paginate(filter.Limit, filter.Offset)).
		Preload("User").
		Order("skills.created_at DESC").
		Order("skills.id DESC").
		Find(&skills).Error
	if err != nil {
		return nil, 0, err
	}
	return skills, total, nil
}

func skillFilterScope(filter SkillFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Category != "" {
			db = db.Where("skills.category = ?", filter.Category)
		}
		if filter.Search != "" {
			pattern := containsPattern(filter.Search)
			db = db.Where("(skills.name ILIKE ? OR skills.description ILIKE ?)", pattern, pattern)
		}
		if filter.Location != "" {
			db = db.Where("skills.location ILIKE ?", containsPattern(filter.Location))
		}
		if filter.UserID != "" {
			db = db.Where("skills.user_id = ?", filter.UserID)
		}
		if filter.IsPublic != nil {
			db = db.Where("skills.is_public = ?", *filter.IsPublic)
		}
		return db
	}
}

// UpdateSkill применяет частичное обновление; updated_at обновляется всегда
func (r *SkillRepositoryImpl) UpdateSkill(db *gorm.DB, id uint, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["updated_at"] = time.Now()

	result := db.Model(&models.Skill{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *SkillRepositoryImpl) DeleteSkill(db *gorm.DB, id uint) error {
	result := db.Delete(&models.Skill{}, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return ErrSkillInUse
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

package services

import (
	"errors"

	"skillswap/internal/models"
	"skillswap/internal/repositories"
	"skillswap/internal/services/dto"
	"skillswap/pkg/apperrors"

	"gorm.io/gorm"
)

type SkillService interface {
	ListSkills(db *gorm.DB, query *dto.ListSkillsQuery) (*dto.SkillListResponse, error)
	GetSkill(db *gorm.DB, id uint) (*models.Skill, error)
	CreateSkill(db *gorm.DB, userID string, req *dto.CreateSkillRequest) (*models.Skill, error)
	UpdateSkill(db *gorm.DB, userID string, id uint, req *dto.UpdateSkillRequest) (*models.Skill, error)
	DeleteSkill(db *gorm.DB, userID string, id uint) error
}

type SkillServiceImpl struct {
	skillRepo repositories.SkillRepository
}

func NewSkillService(skillRepo repositories.SkillRepository) SkillService {
	return &SkillServiceImpl{skillRepo: skillRepo}
}

// ListSkills - каталог навыков с фильтрами и пагинацией
func (s *SkillServiceImpl) ListSkills(db *gorm.DB, query *dto.ListSkillsQuery) (*dto.SkillListResponse, error) {
	skills, total, err := s.skillRepo.FindSkills(db, repositories.SkillFilter{
		Category: query.Category,
		Search:   query.Search,
		Location: query.Location,
		UserID:   query.UserID,
		IsPublic: query.IsPublicFilter(),
		Limit:    query.Limit,
		Offset:   query.Offset,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.SkillListResponse{Skills: skills, Total: total}, nil
}

func (s *SkillServiceImpl) GetSkill(db *gorm.DB, id uint) (*models.Skill, error) {
	skill, err := s.skillRepo.FindSkillByID(db, id)
	if err != nil {
		return nil, handleSkillError(err)
	}
	return skill, nil
}

func (s *SkillServiceImpl) CreateSkill(db *gorm.DB, userID string, req *dto.CreateSkillRequest) (*models.Skill, error) {
	skill := req.ToModel(userID)
	if err := s.skillRepo.CreateSkill(db, skill); err != nil {
		return nil, handleSkillError(err)
	}

	created, err := s.skillRepo.FindSkillByID(db, skill.ID)
	if err != nil {
		return nil, handleSkillError(err)
	}
	return created, nil
}

// UpdateSkill - частичное обновление. Отсутствующий и чужой навык неразличимы (403).
func (s *SkillServiceImpl) UpdateSkill(db *gorm.DB, userID string, id uint, req *dto.UpdateSkillRequest) (*models.Skill, error) {
	if _, err := s.ownedSkill(db, userID, id); err != nil {
		return nil, err
	}

	if err := s.skillRepo.UpdateSkill(db, id, req.ToUpdates()); err != nil {
		return nil, handleSkillError(err)
	}

	updated, err := s.skillRepo.FindSkillByID(db, id)
	if err != nil {
		return nil, handleSkillError(err)
	}
	return updated, nil
}

func (s *SkillServiceImpl) DeleteSkill(db *gorm.DB, userID string, id uint) error {
	if _, err := s.ownedSkill(db, userID, id); err != nil {
		return err
	}

	if err := s.skillRepo.DeleteSkill(db, id); err != nil {
		return handleSkillError(err)
	}
	return nil
}

func (s *SkillServiceImpl) ownedSkill(db *gorm.DB, userID string, id uint) (*models.Skill, error) {
	skill, err := s.skillRepo.FindSkillByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSkillNotFound) {
			return nil, apperrors.ErrSkillAccessDenied
		}
		return nil, apperrors.InternalError(err)
	}
	if skill.UserID != userID {
		return nil, apperrors.ErrSkillAccessDenied
	}
	return skill, nil
}

func handleSkillError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrSkillNotFound):
		return apperrors.ErrSkillNotFound
	case errors.Is(err, repositories.ErrSkillInUse):
		return apperrors.ErrSkillInUse.WithError(err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.NewBadRequestError("Referenced user does not exist")
	default:
		return apperrors.InternalError(err)
	}
}

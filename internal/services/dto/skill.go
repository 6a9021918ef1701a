package dto

import (
	"skillswap/internal/models"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type AvailabilityInput struct {
	Type     string   `json:"type" validate:"omitempty,oneof=ongoing one-time"`
	Times    []string `json:"times" validate:"max=20,dive,max=100"`
	Location string   `json:"location" validate:"omitempty,oneof=online in-person both"`
}

func (a *AvailabilityInput) toModel() models.Availability {
	if a == nil {
		return models.Availability{}
	}
	return models.Availability{
		Type:     models.AvailabilityType(a.Type),
		Times:    a.Times,
		Location: models.AvailabilityLocation(a.Location),
	}
}

// CreateSkillRequest - тело POST /api/skills. userId берется из токена.
type CreateSkillRequest struct {
	Name           string             `json:"name" validate:"required,notblank,max=255"`
	Category       string             `json:"category" validate:"required,skill-category"`
	Description    string             `json:"description" validate:"required,notblank,max=5000"`
	Level          string             `json:"level" validate:"required,skill-level"`
	IsPublic       *bool              `json:"isPublic"`
	Location       string             `json:"location" validate:"max=255"`
	Availability   *AvailabilityInput `json:"availability" validate:"omitnil"`
	WantsToLearn   []string           `json:"wantsToLearn" validate:"max=20,dive,notblank,max=100"`
	Priority       string             `json:"priority" validate:"omitempty,skill-priority"`
	Certifications string             `json:"certifications" validate:"max=2000"`
	MediaURLs      []string           `json:"mediaUrls" validate:"max=10,dive,max=1024"`
}

// ToModel собирает Skill с умолчаниями: isPublic=true, priority=medium
func (r *CreateSkillRequest) ToModel(userID string) *models.Skill {
	isPublic := true
	if r.IsPublic != nil {
		isPublic = *r.IsPublic
	}
	priority := models.SkillPriority(r.Priority)
	if priority == "" {
		priority = models.SkillPriorityMedium
	}

	return &models.Skill{
		UserID:             userID,
		Name:               r.Name,
		Category:           models.SkillCategory(r.Category),
		Description:        r.Description,
		Level:              models.SkillLevel(r.Level),
		IsPublic:           isPublic,
		Location:           r.Location,
		Availability:       datatypes.NewJSONType(r.Availability.toModel()),
		WantsToLearn:       nonNil(r.WantsToLearn),
		Priority:           priority,
		Certifications:     r.Certifications,
		MediaURLs:          nonNil(r.MediaURLs),
		VerificationBadges: datatypes.NewJSONType(models.VerificationBadges{}),
	}
}

// UpdateSkillRequest - частичное обновление, меняются только переданные поля
type UpdateSkillRequest struct {
	Name           *string            `json:"name" validate:"omitnil,notblank,max=255"`
	Category       *string            `json:"category" validate:"omitnil,skill-category"`
	Description    *string            `json:"description" validate:"omitnil,notblank,max=5000"`
	Level          *string            `json:"level" validate:"omitnil,skill-level"`
	IsPublic       *bool              `json:"isPublic"`
	Location       *string            `json:"location" validate:"omitnil,max=255"`
	Availability   *AvailabilityInput `json:"availability" validate:"omitnil"`
	WantsToLearn   *[]string          `json:"wantsToLearn" validate:"omitnil,max=20,dive,notblank,max=100"`
	Priority       *string            `json:"priority" validate:"omitnil,skill-priority"`
	Certifications *string            `json:"certifications" validate:"omitnil,max=2000"`
	MediaURLs      *[]string          `json:"mediaUrls" validate:"omitnil,max=10,dive,max=1024"`
}

// ToUpdates - карта колонок для gorm Updates
func (r *UpdateSkillRequest) ToUpdates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Category != nil {
		updates["category"] = *r.Category
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.Level != nil {
		updates["level"] = *r.Level
	}
	if r.IsPublic != nil {
		updates["is_public"] = *r.IsPublic
	}
	if r.Location != nil {
		updates["location"] = *r.Location
	}
	if r.Availability != nil {
		updates["availability"] = datatypes.NewJSONType(r.Availability.toModel())
	}
	if r.WantsToLearn != nil {
		updates["wants_to_learn"] = nonNil(*r.WantsToLearn)
	}
	if r.Priority != nil {
		updates["priority"] = *r.Priority
	}
	if r.Certifications != nil {
		updates["certifications"] = *r.Certifications
	}
	if r.MediaURLs != nil {
		updates["media_urls"] = nonNil(*r.MediaURLs)
	}
	return updates
}

// ListSkillsQuery - фильтры GET /api/skills
type ListSkillsQuery struct {
	Category string `form:"category" validate:"max=50"`
	Search   string `form:"search" validate:"max=255"`
	Location string `form:"location" validate:"max=255"`
	UserID   string `form:"userId" validate:"max=255"`
	IsPublic string `form:"isPublic"`
	Limit    int    `form:"limit" validate:"min=0"`
	Offset   int    `form:"offset" validate:"min=0"`
}

// IsPublicFilter - "true"/"false" задают фильтр, любое другое значение его не задает
func (q *ListSkillsQuery) IsPublicFilter() *bool {
	var v bool
	switch q.IsPublic {
	case "true":
		v = true
	case "false":
		v = false
	default:
		return nil
	}
	return &v
}

type SkillListResponse struct {
	Skills []models.Skill `json:"skills"`
	Total  int64          `json:"total"`
}

func nonNil(s []string) pq.StringArray {
	if s == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(s)
}

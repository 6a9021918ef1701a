package validator

import (
	"fmt"
	"strings"

	"skillswap/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	tagSkillCategory = "skill-category"
	tagSkillLevel    = "skill-level"
	tagSkillPriority = "skill-priority"
	tagSwapStatus    = "swap-status"
	tagMessageType   = "message-type"
)

// registerCustomRules регистрирует правила для закрытых перечислений из models
func registerCustomRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		tagSkillCategory: enumRule(func(s string) bool { return models.SkillCategory(s).IsValid() }),
		tagSkillLevel:    enumRule(func(s string) bool { return models.SkillLevel(s).IsValid() }),
		tagSkillPriority: enumRule(func(s string) bool { return models.SkillPriority(s).IsValid() }),
		tagSwapStatus:    enumRule(func(s string) bool { return models.SwapStatus(s).IsValid() }),
		tagMessageType:   enumRule(func(s string) bool { return models.MessageType(s).IsValid() }),
		"notblank":       validateNotBlank,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("tag '%s': %w", tag, err)
		}
	}
	return nil
}

// enumRule не пропускает "": необязательные поля помечаются omitempty/omitnil
func enumRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return valid(fl.Field().String())
	}
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

package services

import (
	"testing"

	"skillswap/internal/models"
	"skillswap/pkg/apperrors"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// requireAppError проверяет HTTP-код и код ошибки, которые увидит клиент
func requireAppError(t *testing.T, err error, httpCode int, code apperrors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected *AppError, got %T: %v", err, err)
	require.Equal(t, httpCode, appErr.HTTPCode, appErr.Error())
	require.Equal(t, code, appErr.Code, appErr.Error())
}

func testSkill(id uint, owner string) *models.Skill {
	return &models.Skill{
		ID:          id,
		UserID:      owner,
		Name:        "Guitar",
		Category:    models.SkillCategoryCreative,
		Description: "Acoustic basics",
		Level:       models.SkillLevelIntermediate,
		IsPublic:    true,
		Priority:    models.SkillPriorityMedium,
	}
}

func testSwap(id uint, requester, provider string, status models.SwapStatus) *models.Swap {
	return &models.Swap{
		ID:          id,
		RequesterID: requester,
		ProviderID:  provider,
		SkillID:     1,
		Status:      status,
		Progress:    datatypes.NewJSONType(models.Progress{CurrentSession: 1, TotalSessions: 2}),
	}
}

func strPtr(s string) *string {
	return &s
}

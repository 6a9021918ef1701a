package helpers

import (
	"fmt"
	"testing"
	"time"

	"skillswap/internal/auth"
	"skillswap/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateUser создает пользователя с уникальными id и email
func CreateUser(t *testing.T, tx *gorm.DB, firstName string) *models.User {
	t.Helper()

	id := uuid.NewString()
	email := fmt.Sprintf("%s_%s@test.com", firstName, id[:8])
	user := &models.User{
		ID:        id,
		Email:     &email,
		FirstName: firstName,
		LastName:  "Tester",
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("Не удалось создать пользователя %s: %v", firstName, err)
	}
	return user
}

// TokenFor выпускает токен с теми же claims, что лежат в строке пользователя
func (ts *TestServer) TokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	identity := auth.Identity{
		UserID:          user.ID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		ProfileImageURL: user.ProfileImageURL,
	}
	if user.Email != nil {
		identity.Email = *user.Email
	}
	token, err := ts.Tokens.Issue(identity, time.Hour)
	if err != nil {
		t.Fatalf("Не удалось выпустить токен: %v", err)
	}
	return token
}

// CreateUserWithToken - пользователь и его токен
func (ts *TestServer) CreateUserWithToken(t *testing.T, tx *gorm.DB, firstName string) (string, *models.User) {
	t.Helper()
	user := CreateUser(t, tx, firstName)
	return ts.TokenFor(t, user), user
}

// CreateSkill - публичный навык пользователя
func CreateSkill(t *testing.T, tx *gorm.DB, userID, name string) *models.Skill {
	t.Helper()

	skill := &models.Skill{
		UserID:             userID,
		Name:               name,
		Category:           models.SkillCategoryTech,
		Description:        name + " lessons",
		Level:              models.SkillLevelIntermediate,
		IsPublic:           true,
		Availability:       datatypes.NewJSONType(models.Availability{}),
		WantsToLearn:       pq.StringArray{},
		Priority:           models.SkillPriorityMedium,
		MediaURLs:          pq.StringArray{},
		VerificationBadges: datatypes.NewJSONType(models.VerificationBadges{}),
	}
	if err := tx.Omit("User").Create(skill).Error; err != nil {
		t.Fatalf("Не удалось создать навык %s: %v", name, err)
	}
	return skill
}

// CreateSwap - обмен в статусе pending
func CreateSwap(t *testing.T, tx *gorm.DB, requesterID, providerID string, skillID uint) *models.Swap {
	t.Helper()

	swap := &models.Swap{
		RequesterID:    requesterID,
		ProviderID:     providerID,
		SkillID:        skillID,
		Status:         models.SwapStatusPending,
		Progress:       datatypes.NewJSONType(models.Progress{}),
		SessionDetails: datatypes.NewJSONType(models.SessionDetails{}),
	}
	if err := tx.Omit("Requester", "Provider", "Skill").Create(swap).Error; err != nil {
		t.Fatalf("Не удалось создать обмен: %v", err)
	}
	return swap
}

package repositories

import (
	"strings"
	"testing"
	"time"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunDB - postgres-диалект без подключения: запросы только собираются
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=skillswap dbname=skillswap sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func toSQL(db *gorm.DB, fn func(tx *gorm.DB) *gorm.DB) string {
	return db.ToSQL(fn)
}

func TestContainsPatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%go%", containsPattern("go"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\dir%`, containsPattern(`c:\dir`))
}

func TestNormalizePage(t *testing.T) {
	cases := []struct{ limit, offset, wantLimit, wantOffset int }{
		{0, 0, DefaultLimit, 0},
		{-5, -1, DefaultLimit, 0},
		{10, 30, 10, 30},
		{1000, 0, MaxLimit, 0},
	}
	for _, tc := range cases {
		l, o := normalizePage(tc.limit, tc.offset)
		assert.Equal(t, tc.wantLimit, l)
		assert.Equal(t, tc.wantOffset, o)
	}
}

func TestSkillFilterScopeBuildsAllConditions(t *testing.T) {
	db := newDryRunDB(t)
	public := true

	sql := toSQL(db, func(tx *gorm.DB) *gorm.DB {
		var out []models.Skill
		return tx.Model(&models.Skill{}).
			Scopes(skillFilterScope(SkillFilter{
				Category: "tech",
				Search:   "Go",
				Location: "berlin",
				UserID:   "u1",
				IsPublic: &public,
			}), paginate(5, 10)).
			Find(&out)
	})

	assert.Contains(t, sql, `skills.category = 'tech'`)
	assert.Contains(t, sql, `(skills.name ILIKE '%Go%' OR skills.description ILIKE '%Go%')`)
	assert.Contains(t, sql, `skills.location ILIKE '%berlin%'`)
	assert.Contains(t, sql, `skills.user_id = 'u1'`)
	assert.Contains(t, sql, `skills.is_public = true`)
	assert.Contains(t, sql, "LIMIT 5")
	assert.Contains(t, sql, "OFFSET 10")
}

func TestSkillFilterScopeEmptyFilterHasNoWhere(t *testing.T) {
	db := newDryRunDB(t)

	sql := toSQL(db, func(tx *gorm.DB) *gorm.DB {
		var out []models.Skill
		return tx.Model(&models.Skill{}).Scopes(skillFilterScope(SkillFilter{})).Find(&out)
	})

	assert.NotContains(t, strings.ToUpper(sql), "WHERE")
}

func TestSkillFilterScopeExplicitPrivate(t *testing.T) {
	db := newDryRunDB(t)
	private := false

	sql := toSQL(db, func(tx *gorm.DB) *gorm.DB {
		var out []models.Skill
		return tx.Model(&models.Skill{}).Scopes(skillFilterScope(SkillFilter{IsPublic: &private})).Find(&out)
	})

	assert.Contains(t, sql, "skills.is_public = false")
}

func TestSwapFilterScopeParticipantAndSearch(t *testing.T) {
	db := newDryRunDB(t)

	sql := toSQL(db, func(tx *gorm.DB) *gorm.DB {
		var out []models.Swap
		return tx.Model(&models.Swap{}).
			Scopes(swapFilterScope(SwapFilter{UserID: "u1", Status: "pending", Search: "guitar"})).
			Find(&out)
	})

	assert.Contains(t, sql, `(swaps.requester_id = 'u1' OR swaps.provider_id = 'u1')`)
	assert.Contains(t, sql, `swaps.status = 'pending'`)
	assert.Contains(t, sql, `s.name ILIKE '%guitar%'`)
	assert.Contains(t, sql, `CASE WHEN swaps.requester_id = 'u1' THEN swaps.provider_id ELSE swaps.requester_id END`)
}

func TestDueReminderScope(t *testing.T) {
	db := newDryRunDB(t)
	from := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	sql := toSQL(db, func(tx *gorm.DB) *gorm.DB {
		var out []models.Swap
		return tx.Model(&models.Swap{}).
			Scopes(dueReminderScope(from, from.Add(24*time.Hour))).
			Find(&out)
	})

	assert.Contains(t, sql, `'accepted','in-progress'`)
	assert.Contains(t, sql, `swaps.next_session_at > '2024-05-01 12:00:00`)
	assert.Contains(t, sql, `swaps.next_session_at <= '2024-05-02 12:00:00`)
	assert.Contains(t, sql, `swaps.reminder_sent_at IS NULL`)
}

func TestReviewFilterScope(t *testing.T) {
	db := newDryRunDB(t)
	swapID := uint(9)

	sql := toSQL(db, func(tx *gorm.DB) *gorm.DB {
		var out []models.Review
		return tx.Model(&models.Review{}).
			Scopes(reviewFilterScope(ReviewFilter{RevieweeID: "u2", SwapID: &swapID})).
			Find(&out)
	})

	assert.Contains(t, sql, `reviews.reviewee_id = 'u2'`)
	assert.Contains(t, sql, `reviews.swap_id = 9`)
}

func TestSuccessRate(t *testing.T) {
	assert.Equal(t, 0, successRate(0, 0))
	assert.Equal(t, 100, successRate(4, 0))
	assert.Equal(t, 75, successRate(3, 1))
	assert.Equal(t, 67, successRate(2, 1))
}

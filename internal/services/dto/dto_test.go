package dto

import (
	"testing"
	"time"

	"skillswap/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPublicFilter(t *testing.T) {
	assert.Nil(t, (&ListSkillsQuery{}).IsPublicFilter())
	assert.Nil(t, (&ListSkillsQuery{IsPublic: "yes"}).IsPublicFilter())

	v := (&ListSkillsQuery{IsPublic: "true"}).IsPublicFilter()
	require.NotNil(t, v)
	assert.True(t, *v)

	v = (&ListSkillsQuery{IsPublic: "false"}).IsPublicFilter()
	require.NotNil(t, v)
	assert.False(t, *v)
}

func TestUpdateSkillToUpdatesOnlySetFields(t *testing.T) {
	name := "Piano"
	public := false
	empty := []string(nil)

	updates := (&UpdateSkillRequest{Name: &name, IsPublic: &public, WantsToLearn: &empty}).ToUpdates()

	assert.Len(t, updates, 3)
	assert.Equal(t, "Piano", updates["name"])
	assert.Equal(t, false, updates["is_public"])
	assert.Equal(t, pq.StringArray{}, updates["wants_to_learn"])

	assert.Empty(t, (&UpdateSkillRequest{}).ToUpdates())
}

func TestUpdateSwapToUpdates(t *testing.T) {
	status := "completed"
	at := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	updates := (&UpdateSwapRequest{Status: &status, NextSessionAt: &at}).ToUpdates()
	assert.Equal(t, map[string]interface{}{
		"status":           "completed",
		"next_session_at":  at,
		"reminder_sent_at": nil,
	}, updates)
}

func TestCreateSwapRequestToModel(t *testing.T) {
	swap := (&CreateSwapRequest{
		ProviderID:     "alice",
		SkillID:        3,
		SessionDetails: &SessionDetailsInput{Type: "online", Platform: "Zoom"},
	}).ToModel("bob")

	assert.Equal(t, "bob", swap.RequesterID)
	assert.Equal(t, models.SwapStatusPending, swap.Status)
	assert.Equal(t, models.SessionOnline, swap.SessionDetails.Data().Type)
	assert.Equal(t, 0, swap.Progress.Data().Percent())
}

func TestNewSwapCounts(t *testing.T) {
	counts := NewSwapCounts(map[models.SwapStatus]int64{
		models.SwapStatusPending:    2,
		models.SwapStatusAccepted:   1,
		models.SwapStatusInProgress: 3,
		models.SwapStatusCompleted:  4,
		models.SwapStatusCancelled:  5,
	})

	assert.Equal(t, &SwapCounts{Active: 4, Pending: 2, Completed: 4, Cancelled: 5, Total: 15}, counts)
	assert.Equal(t, &SwapCounts{}, NewSwapCounts(nil))
}

func TestUpdateProfileToUpdates(t *testing.T) {
	bio := ""
	assert.Equal(t, map[string]interface{}{"bio": ""}, (&UpdateProfileRequest{Bio: &bio}).ToUpdates())
}

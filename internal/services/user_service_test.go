package services

import (
	"net/http"
	"testing"
	"time"

	"skillswap/internal/auth"
	"skillswap/internal/services/dto"
	"skillswap/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncUserSkipsUnchangedIdentity(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo).(*UserServiceImpl)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	identity := auth.Identity{UserID: "u1", Email: "u1@example.com", FirstName: "Ann"}
	require.NoError(t, svc.SyncUser(nil, identity))
	require.NoError(t, svc.SyncUser(nil, identity))
	assert.Equal(t, 1, repo.upserts)

	identity.LastName = "Lee"
	require.NoError(t, svc.SyncUser(nil, identity))
	assert.Equal(t, 2, repo.upserts)
	assert.Equal(t, "Lee", repo.users["u1"].LastName)

	now = now.Add(userSyncTTL + time.Second)
	require.NoError(t, svc.SyncUser(nil, identity))
	assert.Equal(t, 3, repo.upserts)
}

func TestSyncUserRetriesWithoutTakenEmail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.takenEmails["shared@example.com"] = true
	svc := NewUserService(repo)

	require.NoError(t, svc.SyncUser(nil, auth.Identity{UserID: "u2", Email: "shared@example.com"}))
	assert.Equal(t, 2, repo.upserts)
	require.Contains(t, repo.users, "u2")
	assert.Nil(t, repo.users["u2"].Email)
}

func TestUpdateProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	require.NoError(t, svc.SyncUser(nil, auth.Identity{UserID: "u1", FirstName: "Ann"}))

	user, err := svc.UpdateProfile(nil, "u1", &dto.UpdateProfileRequest{Location: strPtr("Berlin")})
	require.NoError(t, err)
	assert.Equal(t, "Berlin", user.Location)
	assert.Equal(t, "Ann", user.FirstName)

	_, err = svc.UpdateProfile(nil, "ghost", &dto.UpdateProfileRequest{Bio: strPtr("x")})
	requireAppError(t, err, http.StatusNotFound, apperrors.CodeNotFound)

	_, err = svc.GetUser(nil, "ghost")
	requireAppError(t, err, http.StatusNotFound, apperrors.CodeNotFound)
}

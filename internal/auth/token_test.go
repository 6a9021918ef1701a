package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewTokenManager("secret", "skillswap")

	token, err := m.Issue(Identity{
		UserID:    "user-1",
		Email:     "a@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}, time.Hour)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)

	id := claims.Identity()
	assert.Equal(t, "user-1", id.UserID)
	assert.Equal(t, "a@example.com", id.Email)
	assert.Equal(t, "Ada", id.FirstName)
	assert.Equal(t, "Lovelace", id.LastName)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("one", "").Issue(Identity{UserID: "u"}, time.Hour)
	require.NoError(t, err)

	_, err = NewTokenManager("two", "").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpired(t *testing.T) {
	m := NewTokenManager("secret", "")
	token, err := m.Issue(Identity{UserID: "u"}, -time.Minute)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseWrongIssuer(t *testing.T) {
	token, err := NewTokenManager("secret", "other").Issue(Identity{UserID: "u"}, time.Hour)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "skillswap").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsNoneAlgAndMissingSubject(t *testing.T) {
	m := NewTokenManager("secret", "")

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "u",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Parse(noSub)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("  ")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	tok, ok = BearerToken("bearer xyz")
	assert.True(t, ok)
	assert.Equal(t, "xyz", tok)

	_, ok = BearerToken("Basic abc")
	assert.False(t, ok)
	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
	_, ok = BearerToken("")
	assert.False(t, ok)
}

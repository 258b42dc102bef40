package helpers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/property-marketplace/internal/domain/entity"
	"github.com/oksasatya/property-marketplace/internal/domain/errs"
)

func testPrincipal() entity.UserClaims {
	return entity.UserClaims{
		ID:       uuid.New(),
		Email:    "ana@example.com",
		LastName: "Gomez",
		Role:     entity.RoleUser,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	p := testPrincipal()

	token, exp, err := m.GenerateAccessToken(p)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	parsed, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, p, parsed)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	p := testPrincipal()

	token, _, err := m.GenerateRefreshToken(p)
	require.NoError(t, err)

	parsed, err := m.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, p, parsed)

	// a refresh token must not verify as an access token
	_, err = m.ParseAccessToken(token)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindTokenInvalid))
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, 24*time.Hour)

	token, _, err := m.GenerateAccessToken(testPrincipal())
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindTokenInvalid))
}

func TestWrongSecretRejected(t *testing.T) {
	minter := NewJWTManager("one-secret", "refresh", time.Hour, time.Hour)
	verifier := NewJWTManager("another-secret", "refresh", time.Hour, time.Hour)

	token, _, err := minter.GenerateAccessToken(testPrincipal())
	require.NoError(t, err)

	_, err = verifier.ParseAccessToken(token)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindTokenInvalid))
}

func TestGarbageTokenRejected(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := m.ParseAccessToken(token)
		require.Error(t, err, "token %q", token)
		assert.True(t, errs.IsKind(err, errs.KindTokenInvalid))
	}
}

package token_adapter

import (
	"context"
	"testing"
	"time"

	"car-market-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser() *domain.User {
	return &domain.User{
		ID:    uuid.New(),
		Email: "buyer@example.com",
		Role:  "user",
	}
}

func TestNewTokenService_EmptyKey(t *testing.T) {
	_, err := NewTokenService("")
	assert.Error(t, err)
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := NewTokenService("test-signing-key")
	require.NoError(t, err)

	user := newTestUser()
	token, err := svc.GenerateToken(context.Background(), user, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Role, claims.Role)
}

func TestTokenService_WrongKey(t *testing.T) {
	issuer, err := NewTokenService("key-one")
	require.NoError(t, err)
	verifier, err := NewTokenService("key-two")
	require.NoError(t, err)

	token, err := issuer.GenerateToken(context.Background(), newTestUser(), time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc, err := NewTokenService("test-signing-key")
	require.NoError(t, err)

	// Отрицательный TTL дает уже истекший токен
	token, err := svc.GenerateToken(context.Background(), newTestUser(), -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenService_Garbage(t *testing.T) {
	svc, err := NewTokenService("test-signing-key")
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), "not-a-jwt-at-all")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

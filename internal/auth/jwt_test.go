package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTFlow(t *testing.T) {
	tokens := NewTokenManager(testSecret, clockwork.NewFakeClock())

	userID := uuid.New().String()
	token, err := tokens.GenerateToken(userID, "test@example.com", RoleAdmin)
	require.NoError(t, err)

	claims, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestValidateToken_Expired(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tokens := NewTokenManager(testSecret, clock)

	token, err := tokens.GenerateToken("u1", "a@example.com", RoleCustomer)
	require.NoError(t, err)

	clock.Advance(25 * time.Hour)
	_, err = tokens.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	clock := clockwork.NewFakeClock()
	token, err := NewTokenManager(testSecret, clock).GenerateToken("u1", "a@example.com", RoleCustomer)
	require.NoError(t, err)

	_, err = NewTokenManager("another-secret-entirely", clock).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenManager(testSecret, clock).ValidateToken("invalid_token_xyz")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateToken_RequiresUserAndSecret(t *testing.T) {
	_, err := NewTokenManager(testSecret, clockwork.NewFakeClock()).GenerateToken("", "a@example.com", RoleCustomer)
	assert.Error(t, err)

	_, err = NewTokenManager("", clockwork.NewFakeClock()).GenerateToken("u1", "a@example.com", RoleCustomer)
	assert.Error(t, err)
}

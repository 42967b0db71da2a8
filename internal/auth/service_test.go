package auth

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/apperrors"
)

const testSecret = "test-secret-key-for-testing-only"

func newTestService() (*Service, *InMemoryUserRepository) {
	repo := NewInMemoryUserRepository()
	tokens := NewTokenManager(testSecret, clockwork.NewFakeClock())
	return NewService(repo, tokens), repo
}

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	service, repo := newTestService()
	password := "Password@123"

	_, err := service.Register(context.Background(), "Test User", "test@example.com", password)
	require.NoError(t, err)

	user, err := repo.FindByEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, password, user.Password, "password was stored in plain text")
	assert.Equal(t, RoleCustomer, user.Role)
}

func TestRegister_Validation(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name, user, email, password string
	}{
		{"missing name", "", "a@example.com", "Password@123"},
		{"missing email", "A", "", "Password@123"},
		{"bad email", "A", "not-an-email", "Password@123"},
		{"short password", "A", "a@example.com", "123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(ctx, tt.user, tt.email, tt.password)
			assert.True(t, apperrors.IsType(err, apperrors.TypeValidation), "got %v", err)
		})
	}
}

func TestRegister_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, "A", "Test@Example.com", "Password@123")
	require.NoError(t, err)

	_, err = service.Register(ctx, "B", "test@example.com", "Password@123")
	assert.True(t, apperrors.IsType(err, apperrors.TypeConflict))
}

func TestLogin(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	registered, err := service.Register(ctx, "A", "a@example.com", "Password@123")
	require.NoError(t, err)

	session, err := service.Login(ctx, "a@example.com", "Password@123")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, session.User.ID)
	assert.NotEmpty(t, session.Token)

	_, err = service.Login(ctx, "a@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(ctx, "nobody@example.com", "Password@123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	session, err := service.Register(ctx, "A", "a@example.com", "Password@123")
	require.NoError(t, err)

	user, err := service.Profile(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", user.Email)

	_, err = service.Profile(ctx, "missing")
	assert.True(t, apperrors.IsType(err, apperrors.TypeNotFound))
}

func TestCountCustomers(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, "A", "a@example.com", "Password@123")
	require.NoError(t, err)
	_, err = service.Register(ctx, "B", "b@example.com", "Password@123")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, &User{Name: "Admin", Email: "admin@example.com", Role: RoleAdmin}))

	n, err := service.CountCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

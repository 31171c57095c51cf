package impl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "caloricatcher/internal/domain/errors"
	"caloricatcher/internal/infra/persistence/memory"
	"caloricatcher/internal/usecase"
)

// authServiceFixtures wires the auth service against the real in-memory
// stores, which are the production stores for this system.
type authServiceFixtures struct {
	service *authService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	t.Helper()

	service := NewAuthService(AuthServiceParams{
		UserRepo:    memory.NewUserRepository(),
		SessionRepo: memory.NewSessionRepository(),
		Hasher:      stubHasher{},
		Config:      newTestConfig(24),
		Logger:      newDiscardLogger(),
	}).(*authService)

	return authServiceFixtures{service: service}
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	output, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "Secret1"})

	require.NoError(t, err)
	assert.Equal(t, "alice", output.Username)
	assert.False(t, output.CreatedAt.IsZero())
}

func TestAuthService_Register_DuplicateAnyCasing(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "Secret1"})
	require.NoError(t, err)

	_, err = fx.service.Register(ctx, &usecase.RegisterInput{Username: "ALICE", Password: "Other99"})
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAuthService_Register_NoSessionCreated(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "Secret1"})
	require.NoError(t, err)

	// Registration must not log the user in
	_, err = fx.service.Authenticate(ctx, "any-token")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "Alice", Password: "Secret1"})
	require.NoError(t, err)

	// Login is case-insensitive on the username, canonical casing is returned
	output, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "Secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, output.Token)
	assert.Equal(t, "Alice", output.Username)

	identity, err := fx.service.Authenticate(ctx, output.Token)
	require.NoError(t, err)
	assert.Equal(t, "Alice", identity.Username)
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "Secret1"})
	require.NoError(t, err)

	// Wrong password and unknown username fail with the same error
	_, wrongPassword := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "nope"})
	_, unknownUser := fx.service.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "Secret1"})

	assert.ErrorIs(t, wrongPassword, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_TokensAreUniquePerLogin(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "Secret1"})
	require.NoError(t, err)

	first, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "Secret1"})
	require.NoError(t, err)
	second, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "Secret1"})
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)

	// Both sessions are live independently
	_, err = fx.service.Authenticate(ctx, first.Token)
	assert.NoError(t, err)
	_, err = fx.service.Authenticate(ctx, second.Token)
	assert.NoError(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "Secret1"})
	require.NoError(t, err)
	output, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "Secret1"})
	require.NoError(t, err)

	require.NoError(t, fx.service.Logout(ctx, output.Token))

	// The token is dead afterwards
	_, err = fx.service.Authenticate(ctx, output.Token)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	// A second logout finds no session
	err = fx.service.Logout(ctx, output.Token)
	assert.ErrorIs(t, err, domainerrors.ErrSessionNotFound)
}

func TestAuthService_Authenticate_LazyExpiry(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "Secret1"})
	require.NoError(t, err)
	output, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "Secret1"})
	require.NoError(t, err)

	// Fresh token validates
	_, err = fx.service.Authenticate(ctx, output.Token)
	require.NoError(t, err)

	// Advance the clock past the expiry window
	fx.service.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	_, err = fx.service.Authenticate(ctx, output.Token)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	// The expired session was deleted on access, so the sweep finds nothing
	removed, err := fx.service.SweepExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestAuthService_SweepExpiredSessions(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "Secret1"})
	require.NoError(t, err)

	stale, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "Secret1"})
	require.NoError(t, err)

	// Mint a fresh session 25 hours "later"; the first one is now stale
	fx.service.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	fresh, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "Secret1"})
	require.NoError(t, err)

	removed, err := fx.service.SweepExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = fx.service.Authenticate(ctx, stale.Token)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	_, err = fx.service.Authenticate(ctx, fresh.Token)
	assert.NoError(t, err)
}

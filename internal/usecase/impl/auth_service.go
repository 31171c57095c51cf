// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"caloricatcher/config"
	deliverycontext "caloricatcher/internal/delivery/context"
	"caloricatcher/internal/domain/entity"
	domainerrors "caloricatcher/internal/domain/errors"
	"caloricatcher/internal/domain/repository"
	"caloricatcher/internal/domain/service"
	"caloricatcher/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo      repository.UserRepository
	sessionRepo   repository.SessionRepository
	hasher        service.PasswordHasher
	sessionExpiry time.Duration
	logger        *slog.Logger

	// now is the clock used for session creation and expiry checks.
	// Swapped out in tests to simulate the passage of time.
	now func() time.Time
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	SessionRepo repository.SessionRepository
	Hasher      service.PasswordHasher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:      params.UserRepo,
		sessionRepo:   params.SessionRepo,
		hasher:        params.Hasher,
		sessionExpiry: params.Config.Auth.SessionExpiry(),
		logger:        params.Logger,
		now:           time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account. The password is hashed before the
// store is touched, so a failed insert leaves no half-written record.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Username:     input.Username,
		PasswordHash: hashedPassword,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			srv.log(ctx).Warn("Registration rejected, username taken", slog.String("username", input.Username))

			return nil, errors.Wrap(domainerrors.ErrUserAlreadyExists, "registration failed")
		}

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.String("username", newUser.Username))

	return &usecase.RegisterOutput{
		Username:  newUser.Username,
		CreatedAt: newUser.CreatedAt,
	}, nil
}

// Login verifies the credentials and mints an opaque session token.
// Unknown usernames and wrong passwords fail identically so responses
// cannot be used to probe which accounts exist.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("username", input.Username))

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("username", input.Username), slog.Any("error", domainerrors.ErrInvalidCredentials))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user during login")
	}

	// bcrypt comparison is CPU-bound and deliberately slow.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	session := &entity.Session{
		Token:     uuid.NewString(),
		Username:  user.Username,
		CreatedAt: srv.now(),
	}

	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to create session during login")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.String("username", user.Username))

	return &usecase.LoginOutput{
		Token:    session.Token,
		Username: user.Username,
	}, nil
}

// Logout destroys the session for the token.
func (srv *authService) Logout(ctx context.Context, token string) error {
	existed, err := srv.sessionRepo.Delete(ctx, token)
	if err != nil {
		return errors.Wrap(err, "failed to delete session during logout")
	}

	if !existed {
		return errors.Wrap(domainerrors.ErrSessionNotFound, "logout failed")
	}

	srv.log(ctx).Debug("Session destroyed")

	return nil
}

// Authenticate resolves a bearer token to an identity. An expired
// session is deleted on access; a request must never succeed against a
// stale-but-not-yet-swept session.
func (srv *authService) Authenticate(ctx context.Context, token string) (*usecase.Identity, error) {
	session, err := srv.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUnauthorized, "unknown session token")
		}

		return nil, errors.Wrap(err, "failed to find session")
	}

	if session.ExpiresAfter(srv.sessionExpiry, srv.now()) {
		if _, err := srv.sessionRepo.Delete(ctx, token); err != nil {
			srv.log(ctx).Error("Failed to delete expired session", slog.Any("error", err))
		}

		srv.log(ctx).Debug("Rejected expired session", slog.String("username", session.Username))

		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "session expired")
	}

	return &usecase.Identity{Username: session.Username}, nil
}

// SweepExpiredSessions removes every session past the validity window
// and returns the count removed.
func (srv *authService) SweepExpiredSessions(ctx context.Context) (int, error) {
	cutoff := srv.now().Add(-srv.sessionExpiry)

	removed, err := srv.sessionRepo.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "failed to sweep expired sessions")
	}

	if removed > 0 {
		srv.log(ctx).Info("Swept expired sessions", slog.Int("removed", removed))
	}

	return removed, nil
}

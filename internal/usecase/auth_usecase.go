// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Password string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's public fields.
// Registration never creates a session; an explicit login is required.
type RegisterOutput struct {
	Username  string
	CreatedAt time.Time
}

// LoginOutput returns the session token minted for the login.
type LoginOutput struct {
	Token    string
	Username string
}

// Identity is the authenticated caller's identity, as resolved from a
// session token. It is what protected handlers see of the session.
type Identity struct {
	Username string
}

// AuthUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer (handlers, middleware)
// and the background sweeper depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Logout destroys the session for the token. Fails with
	// ErrSessionNotFound when no live session existed.
	Logout(ctx context.Context, token string) error

	// Authenticate resolves a bearer token to an identity, lazily
	// deleting the session when its validity window has passed.
	Authenticate(ctx context.Context, token string) (*Identity, error)

	// SweepExpiredSessions removes every expired session and returns the
	// count. Housekeeping only; Authenticate enforces expiry on its own.
	SweepExpiredSessions(ctx context.Context) (int, error)
}

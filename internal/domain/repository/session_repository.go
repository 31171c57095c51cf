// Package repository defines the interfaces for the in-memory stores.
package repository

import (
	"context"
	"errors"
	"time"

	"caloricatcher/internal/domain/entity"
)

// ErrSessionNotFound is returned when no session exists for a token.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines the operations of the session store.
// A token maps to at most one session. Expiry policy is owned by the
// caller; the store only records creation time.
type SessionRepository interface {
	// Create persists a new session keyed by its token.
	Create(ctx context.Context, session *entity.Session) error

	// FindByToken retrieves the session for a token.
	FindByToken(ctx context.Context, token string) (*entity.Session, error)

	// Delete removes the session for a token and reports whether one
	// existed. Deleting an absent token is not an error at this layer.
	Delete(ctx context.Context, token string) (bool, error)

	// DeleteCreatedBefore removes every session created before the cutoff
	// and returns the number removed. Used by the periodic sweep.
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int, error)
}

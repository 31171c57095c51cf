// Package repository defines the interfaces for the in-memory stores.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"caloricatcher/internal/domain/entity"
)

// Domain-specific errors for user storage.
var (
	// ErrUserNotFound is returned when no account exists for a username.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when the normalized username is already taken.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository defines the standard operations of the credential store.
// Lookups are case-insensitive; the stored record keeps its original casing.
type UserRepository interface {
	// Create persists a new user. Fails with ErrUserAlreadyExists when the
	// username is taken under case-insensitive comparison.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername retrieves a single user by case-insensitive username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

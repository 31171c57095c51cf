// Package memory contains the concrete implementation of the stores as
// mutex-guarded in-memory maps. All state is process-local; a restart
// clears every account, session and ledger.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"caloricatcher/internal/domain/entity"
	"caloricatcher/internal/domain/repository"
)

// userRepository implements repository.UserRepository with a map keyed
// by the case-folded username. The stored entity keeps the casing given
// at registration.
type userRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		users: make(map[string]*entity.User),
	}
}

// Create persists a new user. The uniqueness check and the insert run
// under one write lock so two concurrent registrations of the same
// username cannot both succeed.
func (repo *userRepository) Create(_ context.Context, user *entity.User) error {
	key := normalizeUsername(user.Username)

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.users[key]; exists {
		return repository.ErrUserAlreadyExists
	}

	now := time.Now()
	stored := *user
	stored.CreatedAt = now
	stored.UpdatedAt = now
	repo.users[key] = &stored

	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = stored.UpdatedAt

	return nil
}

// FindByUsername retrieves a single user by case-insensitive username.
func (repo *userRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	user, ok := repo.users[normalizeUsername(username)]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	// Return a copy so callers cannot mutate the stored record.
	found := *user

	return &found, nil
}

// normalizeUsername case-folds a username for uniqueness checks and lookups.
func normalizeUsername(username string) string {
	return strings.ToLower(username)
}

package memory

import (
	"context"
	"sync"
	"time"

	"caloricatcher/internal/domain/entity"
	"caloricatcher/internal/domain/repository"
)

// sessionRepository implements repository.SessionRepository with a map
// keyed by token. Expiry policy lives in the auth usecase; the store
// only records and compares creation times.
type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository() repository.SessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*entity.Session),
	}
}

// Create persists a new session keyed by its token.
func (repo *sessionRepository) Create(_ context.Context, session *entity.Session) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored := *session
	repo.sessions[session.Token] = &stored

	return nil
}

// FindByToken retrieves the session for a token.
func (repo *sessionRepository) FindByToken(_ context.Context, token string) (*entity.Session, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	session, ok := repo.sessions[token]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}

	found := *session

	return &found, nil
}

// Delete removes the session for a token and reports whether one existed.
func (repo *sessionRepository) Delete(_ context.Context, token string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	_, existed := repo.sessions[token]
	delete(repo.sessions, token)

	return existed, nil
}

// DeleteCreatedBefore removes every session created before the cutoff
// and returns the number removed. Holding the write lock for the whole
// pass is fine: the map only holds live sessions, so the sweep is short.
func (repo *sessionRepository) DeleteCreatedBefore(_ context.Context, cutoff time.Time) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	removed := 0
	for token, session := range repo.sessions {
		if session.CreatedAt.Before(cutoff) {
			delete(repo.sessions, token)
			removed++
		}
	}

	return removed, nil
}

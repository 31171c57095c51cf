package memory

import (
	"context"
	"sync"

	"caloricatcher/internal/domain/entity"
	"caloricatcher/internal/domain/repository"
)

// mealRepository implements repository.MealRepository with a map of
// per-user ledgers keyed by the case-folded username.
type mealRepository struct {
	mu      sync.RWMutex
	ledgers map[string]*entity.MealLog
}

// NewMealRepository is the constructor for mealRepository.
func NewMealRepository() repository.MealRepository {
	return &mealRepository{
		ledgers: make(map[string]*entity.MealLog),
	}
}

// Append adds the entry and increments the running totals under one
// write lock, so concurrent appends for the same user never lose an
// update and the totals invariant holds at every instant.
func (repo *mealRepository) Append(_ context.Context, username string, entry *entity.MealEntry) (int, int, error) {
	key := normalizeUsername(username)

	repo.mu.Lock()
	defer repo.mu.Unlock()

	ledger, ok := repo.ledgers[key]
	if !ok {
		ledger = &entity.MealLog{Username: username}
		repo.ledgers[key] = ledger
	}

	stored := *entry
	ledger.Meals = append(ledger.Meals, &stored)
	ledger.TotalCalories += entry.Calories
	ledger.TotalSteps += entry.RecommendedSteps

	return ledger.TotalCalories, ledger.TotalSteps, nil
}

// FindByUsername returns a snapshot of the user's ledger in insertion
// order. Users that never logged a meal get an empty, zeroed ledger
// without one being created as a side effect.
func (repo *mealRepository) FindByUsername(_ context.Context, username string) (*entity.MealLog, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	ledger, ok := repo.ledgers[normalizeUsername(username)]
	if !ok {
		return &entity.MealLog{Username: username}, nil
	}

	snapshot := &entity.MealLog{
		Username:      ledger.Username,
		TotalCalories: ledger.TotalCalories,
		TotalSteps:    ledger.TotalSteps,
		Meals:         make([]*entity.MealEntry, len(ledger.Meals)),
	}
	copy(snapshot.Meals, ledger.Meals)

	return snapshot, nil
}

// Package repository defines the interfaces for the in-memory stores.
package repository

import (
	"context"

	"caloricatcher/internal/domain/entity"
)

// MealRepository defines the operations of the per-user meal ledger.
// The ledger is append-only: entries are never edited or removed.
type MealRepository interface {
	// Append adds the entry to the user's ledger and increments the
	// running totals in the same critical section, creating the ledger on
	// first use. Returns the totals after the append. Two concurrent
	// appends for the same user must not lose an update.
	Append(ctx context.Context, username string, entry *entity.MealEntry) (totalCalories, totalSteps int, err error)

	// FindByUsername returns a snapshot of the user's ledger in insertion
	// order. Users that never logged a meal get an empty, zeroed ledger.
	// The returned log is a copy; mutating it does not affect the store.
	FindByUsername(ctx context.Context, username string) (*entity.MealLog, error)
}

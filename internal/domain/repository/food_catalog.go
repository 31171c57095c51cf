// Package repository defines the interfaces for the in-memory stores.
package repository

import (
	"errors"

	"caloricatcher/internal/domain/entity"
)

// ErrFoodNotFound is returned when a food name is absent from the catalog.
var ErrFoodNotFound = errors.New("food not found")

// FoodCatalog is the read-only reference table of known foods. The
// catalog is fixed at startup; there are no mutation operations.
type FoodCatalog interface {
	// FindByName retrieves a food by case-insensitive name.
	FindByName(name string) (*entity.Food, error)

	// List returns all foods in their preload order.
	List() []*entity.Food
}

// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"caloricatcher/internal/domain/entity"
)

// FoodListOutput returns the full catalog in preload order.
type FoodListOutput struct {
	Foods []*entity.Food `json:"foods"`
	Count int            `json:"count"`
}

// FoodUsecase defines the interface for the read-only food catalog.
type FoodUsecase interface {
	ListFoods(ctx context.Context) (*FoodListOutput, error)
}

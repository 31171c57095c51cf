// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"

	"caloricatcher/internal/domain/repository"
	"caloricatcher/internal/usecase"
)

// foodService implements the FoodUsecase interface. The catalog is
// immutable, so this is a thin read-through.
type foodService struct {
	catalog repository.FoodCatalog
}

// NewFoodService is the constructor for foodService.
func NewFoodService(catalog repository.FoodCatalog) usecase.FoodUsecase {
	return &foodService{catalog: catalog}
}

// ListFoods returns the full catalog in preload order.
func (srv *foodService) ListFoods(_ context.Context) (*usecase.FoodListOutput, error) {
	foods := srv.catalog.List()

	return &usecase.FoodListOutput{
		Foods: foods,
		Count: len(foods),
	}, nil
}

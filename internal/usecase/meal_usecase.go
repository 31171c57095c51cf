// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"caloricatcher/internal/domain/entity"
)

// LogMealInput defines the data required to log a meal. Username comes
// from the authenticated identity, never from the request body.
type LogMealInput struct {
	Username string
	FoodName string
}

// MealSummary carries the running totals after an append.
type MealSummary struct {
	TotalCalories int `json:"totalCalories"`
	TotalSteps    int `json:"totalSteps"`
}

// LogMealOutput returns the created entry plus the updated totals.
type LogMealOutput struct {
	Meal    *entity.MealEntry `json:"meal"`
	Summary MealSummary       `json:"summary"`
}

// ProgressOutput is a snapshot of the user's ledger, meals most-recent-first.
type ProgressOutput struct {
	TotalCalories int                 `json:"totalCalories"`
	TotalSteps    int                 `json:"totalSteps"`
	MealCount     int                 `json:"mealCount"`
	Meals         []*entity.MealEntry `json:"meals"`
}

// MealUsecase defines the interface for meal-ledger operations.
type MealUsecase interface {
	LogMeal(ctx context.Context, input *LogMealInput) (*LogMealOutput, error)
	GetProgress(ctx context.Context, username string) (*ProgressOutput, error)
}

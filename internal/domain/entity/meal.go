package entity

import "time"

// MealEntry is a single logged meal. Entries are immutable once created.
type MealEntry struct {
	ID               string    `json:"id"`
	FoodName         string    `json:"foodName"`
	Calories         int       `json:"calories"`
	Image            string    `json:"image"`
	RecommendedSteps int       `json:"recommendedSteps"`
	Timestamp        time.Time `json:"timestamp"`
}

// MealLog is the per-user ledger: an append-only sequence of meal
// entries plus running totals maintained incrementally with every
// append. TotalCalories and TotalSteps always equal the sums over Meals.
type MealLog struct {
	Username      string
	TotalCalories int
	TotalSteps    int
	Meals         []*MealEntry // Insertion order.
}

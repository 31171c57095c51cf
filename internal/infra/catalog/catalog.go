// Package catalog provides the preloaded, read-only food reference table.
package catalog

import (
	"strings"

	"caloricatcher/internal/domain/entity"
	"caloricatcher/internal/domain/repository"
)

// foods is the fixed catalog. Calories are per typical serving.
var foods = []*entity.Food{
	{Name: "Apple", Calories: 95, Image: "https://images.unsplash.com/photo-1568702846914-96b305d2aaeb?w=400"},
	{Name: "Banana", Calories: 105, Image: "https://images.unsplash.com/photo-1571771894821-ce9b6c11b08e?w=400"},
	{Name: "Orange", Calories: 62, Image: "https://images.unsplash.com/photo-1580052614034-c55d20bfee3b?w=400"},
	{Name: "Chicken Breast", Calories: 165, Image: "https://images.unsplash.com/photo-1604503468506-a8da13d82791?w=400"},
	{Name: "Salmon", Calories: 206, Image: "https://images.unsplash.com/photo-1519708227418-c8fd9a32b7a2?w=400"},
	{Name: "Brown Rice", Calories: 216, Image: "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=400"},
	{Name: "Avocado", Calories: 234, Image: "https://images.unsplash.com/photo-1523049673857-eb18f1d7b578?w=400"},
	{Name: "Greek Yogurt", Calories: 100, Image: "https://images.unsplash.com/photo-1488477181946-6428a0291777?w=400"},
	{Name: "Almonds", Calories: 164, Image: "https://images.unsplash.com/photo-1508061253366-f7da158b6d46?w=400"},
	{Name: "Oatmeal", Calories: 154, Image: "https://images.unsplash.com/photo-1517673132405-a56a62b18caf?w=400"},
	{Name: "Broccoli", Calories: 55, Image: "https://images.unsplash.com/photo-1459411621453-7b03977f4bfc?w=400"},
	{Name: "Sweet Potato", Calories: 112, Image: "https://images.unsplash.com/photo-1557844352-761f2565b576?w=400"},
	{Name: "Eggs (2)", Calories: 140, Image: "https://images.unsplash.com/photo-1582722872445-44dc5f7e3c8f?w=400"},
	{Name: "Pasta", Calories: 220, Image: "https://images.unsplash.com/photo-1621996346565-e3dbc646d9a9?w=400"},
	{Name: "Pizza Slice", Calories: 285, Image: "https://images.unsplash.com/photo-1513104890138-7c749659a591?w=400"},
}

// foodCatalog indexes the fixed food table for O(1) case-insensitive
// lookup. Immutable after construction, so reads need no locking.
type foodCatalog struct {
	ordered []*entity.Food
	byName  map[string]*entity.Food
}

// New builds the catalog from the preloaded food table.
func New() repository.FoodCatalog {
	byName := make(map[string]*entity.Food, len(foods))
	for _, food := range foods {
		byName[strings.ToLower(food.Name)] = food
	}

	return &foodCatalog{
		ordered: foods,
		byName:  byName,
	}
}

// FindByName retrieves a food by case-insensitive name.
func (c *foodCatalog) FindByName(name string) (*entity.Food, error) {
	food, ok := c.byName[strings.ToLower(name)]
	if !ok {
		return nil, repository.ErrFoodNotFound
	}

	return food, nil
}

// List returns all foods in their preload order.
func (c *foodCatalog) List() []*entity.Food {
	return c.ordered
}

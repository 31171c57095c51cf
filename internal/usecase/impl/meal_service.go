// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	deliverycontext "caloricatcher/internal/delivery/context"
	"caloricatcher/internal/domain/entity"
	domainerrors "caloricatcher/internal/domain/errors"
	"caloricatcher/internal/domain/repository"
	"caloricatcher/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Step recommendations are drawn uniformly from [minSteps, maxSteps].
const (
	minSteps = 200
	maxSteps = 300
)

// mealService implements the MealUsecase interface.
type mealService struct {
	mealRepo repository.MealRepository
	catalog  repository.FoodCatalog
	logger   *slog.Logger

	now func() time.Time
}

// MealServiceParams holds dependencies for mealService, injected by Fx.
type MealServiceParams struct {
	fx.In

	MealRepo repository.MealRepository
	Catalog  repository.FoodCatalog
	Logger   *slog.Logger
}

// NewMealService is the constructor for mealService.
func NewMealService(params MealServiceParams) usecase.MealUsecase {
	return &mealService{
		mealRepo: params.MealRepo,
		catalog:  params.Catalog,
		logger:   params.Logger,
		now:      time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *mealService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// LogMeal resolves the food in the catalog, builds an immutable entry
// and appends it to the user's ledger. The catalog lookup happens before
// any ledger access, so an unknown food leaves the ledger untouched.
func (srv *mealService) LogMeal(ctx context.Context, input *usecase.LogMealInput) (*usecase.LogMealOutput, error) {
	food, err := srv.catalog.FindByName(input.FoodName)
	if err != nil {
		if errors.Is(err, repository.ErrFoodNotFound) {
			srv.log(ctx).Warn("Meal rejected, unknown food", slog.String("food", input.FoodName))

			return nil, domainerrors.ErrFoodNotFound.WrapMessage("log meal failed")
		}

		return nil, errors.Wrap(err, "failed to look up food")
	}

	entry := &entity.MealEntry{
		ID:               uuid.NewString(),
		FoodName:         food.Name,
		Calories:         food.Calories,
		Image:            food.Image,
		RecommendedSteps: recommendSteps(),
		Timestamp:        srv.now(),
	}

	totalCalories, totalSteps, err := srv.mealRepo.Append(ctx, input.Username, entry)
	if err != nil {
		return nil, errors.Wrap(err, "failed to append meal entry")
	}

	srv.log(ctx).Debug("Meal logged",
		slog.String("username", input.Username),
		slog.String("food", food.Name),
		slog.Int("calories", food.Calories),
		slog.Int("totalCalories", totalCalories),
	)

	return &usecase.LogMealOutput{
		Meal: entry,
		Summary: usecase.MealSummary{
			TotalCalories: totalCalories,
			TotalSteps:    totalSteps,
		},
	}, nil
}

// GetProgress returns the user's ledger snapshot, meals most-recent-first.
func (srv *mealService) GetProgress(ctx context.Context, username string) (*usecase.ProgressOutput, error) {
	ledger, err := srv.mealRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load meal ledger")
	}

	// The snapshot is already a copy; reversing it never touches the
	// stored insertion-ordered sequence.
	meals := ledger.Meals
	for i, j := 0, len(meals)-1; i < j; i, j = i+1, j-1 {
		meals[i], meals[j] = meals[j], meals[i]
	}

	return &usecase.ProgressOutput{
		TotalCalories: ledger.TotalCalories,
		TotalSteps:    ledger.TotalSteps,
		MealCount:     len(meals),
		Meals:         meals,
	}, nil
}

// recommendSteps draws a uniformly random step recommendation in
// [minSteps, maxSteps] inclusive.
func recommendSteps() int {
	return minSteps + rand.IntN(maxSteps-minSteps+1)
}

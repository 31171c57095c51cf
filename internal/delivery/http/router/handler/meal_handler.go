package handler

import (
	"log/slog"
	"net/http"

	"caloricatcher/internal/delivery/http/middleware"
	"caloricatcher/internal/delivery/http/response"
	"caloricatcher/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// logMealRequest is the wire shape of a meal-logging call. The username
// never comes from the body; it is taken from the authenticated session.
type logMealRequest struct {
	FoodName string `json:"foodName" validate:"required,max=100"`
}

// MealHandler holds dependencies for meal-ledger handlers.
type MealHandler struct {
	uc     usecase.MealUsecase
	logger *slog.Logger
}

// NewMealHandler is the constructor for MealHandler, injected by Fx.
func NewMealHandler(uc usecase.MealUsecase, logger *slog.Logger) *MealHandler {
	return &MealHandler{
		uc:     uc,
		logger: logger,
	}
}

// LogMeal appends a meal to the authenticated user's ledger.
func (h *MealHandler) LogMeal(c echo.Context) error {
	username, ok := c.Get(middleware.KeyUsername).(string)
	if !ok || username == "" {
		return response.Unauthorized(c, "UNAUTHORIZED", "No identity on request")
	}

	var req logMealRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid meal input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.LogMeal(c.Request().Context(), &usecase.LogMealInput{
		Username: username,
		FoodName: req.FoodName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Meal logged successfully")
}

// GetProgress returns the authenticated user's running totals and meal
// history, most recent first.
func (h *MealHandler) GetProgress(c echo.Context) error {
	username, ok := c.Get(middleware.KeyUsername).(string)
	if !ok || username == "" {
		return response.Unauthorized(c, "UNAUTHORIZED", "No identity on request")
	}

	output, err := h.uc.GetProgress(c.Request().Context(), username)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Progress retrieved successfully")
}

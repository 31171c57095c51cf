package handler

import (
	"net/http"

	"caloricatcher/internal/delivery/http/response"
	"caloricatcher/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// FoodHandler serves the read-only food catalog.
type FoodHandler struct {
	uc usecase.FoodUsecase
}

// NewFoodHandler is the constructor for FoodHandler, injected by Fx.
func NewFoodHandler(uc usecase.FoodUsecase) *FoodHandler {
	return &FoodHandler{uc: uc}
}

// ListFoods returns all preloaded foods with calories and image URLs.
func (h *FoodHandler) ListFoods(c echo.Context) error {
	output, err := h.uc.ListFoods(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Foods retrieved successfully")
}

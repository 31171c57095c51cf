// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"caloricatcher/internal/delivery/http/middleware"
	"caloricatcher/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	FoodHandler    *handler.FoodHandler
	MealHandler    *handler.MealHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	foodHandler    *handler.FoodHandler
	mealHandler    *handler.MealHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		foodHandler:    params.FoodHandler,
		mealHandler:    params.MealHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes; logout requires an authenticated session
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
	}

	// Food catalog is public and read-only
	e.GET("/foods", r.foodHandler.ListFoods)

	// Meal routes require authentication
	mealGroup := e.Group("/meals")
	mealGroup.Use(r.authMiddleware.Authenticate)
	{
		mealGroup.POST("/logMeal", r.mealHandler.LogMeal)
		mealGroup.GET("/progress", r.mealHandler.GetProgress)
	}
}

package handler_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caloricatcher/config"
	"caloricatcher/internal/delivery/http/middleware"
	"caloricatcher/internal/delivery/http/response"
	"caloricatcher/internal/delivery/http/router"
	"caloricatcher/internal/delivery/http/router/handler"
	"caloricatcher/internal/delivery/http/validator"
	"caloricatcher/internal/infra/auth"
	"caloricatcher/internal/infra/catalog"
	"caloricatcher/internal/infra/persistence/memory"
	"caloricatcher/internal/usecase/impl"
)

// newTestApp wires the full HTTP surface against the real in-memory
// stores, with a cheap bcrypt cost so registration stays fast.
func newTestApp(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{}
	cfg.Auth = config.AuthConfig{
		BcryptCost:         4,
		SessionExpiryHours: 24,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authUsecase := impl.NewAuthService(impl.AuthServiceParams{
		UserRepo:    memory.NewUserRepository(),
		SessionRepo: memory.NewSessionRepository(),
		Hasher:      auth.NewBcryptHasher(cfg),
		Config:      cfg,
		Logger:      logger,
	})
	mealUsecase := impl.NewMealService(impl.MealServiceParams{
		MealRepo: memory.NewMealRepository(),
		Catalog:  catalog.New(),
		Logger:   logger,
	})
	foodUsecase := impl.NewFoodService(catalog.New())

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	r := router.NewRouter(router.RouterParams{
		AuthHandler:    handler.NewAuthHandler(authUsecase, logger),
		FoodHandler:    handler.NewFoodHandler(foodUsecase),
		MealHandler:    handler.NewMealHandler(mealUsecase, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(authUsecase),
	})
	r.RegisterRoutes(e)

	return e
}

// doJSON performs a request with an optional JSON body and bearer token,
// returning the status code and the decoded response envelope.
func doJSON(t *testing.T, e *echo.Echo, method, path, body, token string) (int, response.Response) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return rec.Code, envelope
}

// dataField re-decodes the envelope's data payload into a string map.
func dataField(t *testing.T, envelope response.Response, key string) string {
	t.Helper()

	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var data map[string]any
	require.NoError(t, json.Unmarshal(raw, &data))

	value, _ := data[key].(string)

	return value
}

func register(t *testing.T, e *echo.Echo, username, password string) {
	t.Helper()

	code, envelope := doJSON(t, e, http.MethodPost, "/auth/register",
		`{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusCreated, code)
	require.True(t, envelope.Success)
}

func login(t *testing.T, e *echo.Echo, username, password string) string {
	t.Helper()

	code, envelope := doJSON(t, e, http.MethodPost, "/auth/login",
		`{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, code)
	token := dataField(t, envelope, "token")
	require.NotEmpty(t, token)

	return token
}

func TestHealthCheck(t *testing.T) {
	e := newTestApp(t)

	code, envelope := doJSON(t, e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, envelope.Success)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	e := newTestApp(t)
	register(t, e, "alice", "password123")

	code, envelope := doJSON(t, e, http.MethodPost, "/auth/register",
		`{"username":"ALICE","password":"otherpass"}`, "")
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "USERNAME_ALREADY_EXISTS", envelope.Error.Code)
}

func TestRegister_ValidationFailures(t *testing.T) {
	e := newTestApp(t)

	tests := []struct {
		name string
		body string
	}{
		{"short username", `{"username":"ab","password":"password123"}`},
		{"short password", `{"username":"alice","password":"12345"}`},
		{"missing fields", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, envelope := doJSON(t, e, http.MethodPost, "/auth/register", tt.body, "")
			assert.Equal(t, http.StatusUnprocessableEntity, code)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	e := newTestApp(t)
	register(t, e, "alice", "password123")

	for _, body := range []string{
		`{"username":"alice","password":"wrongpass"}`,
		`{"username":"nobody","password":"password123"}`,
	} {
		code, envelope := doJSON(t, e, http.MethodPost, "/auth/login", body, "")
		assert.Equal(t, http.StatusUnauthorized, code)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, "INVALID_CREDENTIALS", envelope.Error.Code)
	}
}

func TestListFoods_Public(t *testing.T) {
	e := newTestApp(t)

	code, envelope := doJSON(t, e, http.MethodGet, "/foods", "", "")
	assert.Equal(t, http.StatusOK, code)

	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var data struct {
		Foods []struct {
			Name     string `json:"name"`
			Calories int    `json:"calories"`
			Image    string `json:"image"`
		} `json:"foods"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(raw, &data))

	assert.Equal(t, 15, data.Count)
	require.Len(t, data.Foods, 15)
	assert.Equal(t, "Apple", data.Foods[0].Name)
	assert.Equal(t, 95, data.Foods[0].Calories)
	assert.NotEmpty(t, data.Foods[0].Image)
}

func TestMealRoutes_RequireAuthentication(t *testing.T) {
	e := newTestApp(t)

	// No Authorization header at all
	code, envelope := doJSON(t, e, http.MethodGet, "/meals/progress", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, envelope.Error)

	// A token the session store has never seen
	code, _ = doJSON(t, e, http.MethodPost, "/meals/logMeal",
		`{"foodName":"Apple"}`, "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuthenticate_AcceptsBearerAndRawToken(t *testing.T) {
	e := newTestApp(t)
	register(t, e, "alice", "password123")
	token := login(t, e, "alice", "password123")

	code, _ := doJSON(t, e, http.MethodGet, "/meals/progress", "", "Bearer "+token)
	assert.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, e, http.MethodGet, "/meals/progress", "", token)
	assert.Equal(t, http.StatusOK, code)
}

func TestLogMeal_UnknownFood(t *testing.T) {
	e := newTestApp(t)
	register(t, e, "alice", "password123")
	token := login(t, e, "alice", "password123")

	code, envelope := doJSON(t, e, http.MethodPost, "/meals/logMeal",
		`{"foodName":"Unicorn Dust"}`, "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "FOOD_NOT_FOUND", envelope.Error.Code)
}

func TestMealFlow_EndToEnd(t *testing.T) {
	e := newTestApp(t)
	register(t, e, "alice", "password123")
	token := login(t, e, "alice", "password123")

	// Log two meals and track the running summary from the responses
	var lastSummary struct {
		TotalCalories int `json:"totalCalories"`
		TotalSteps    int `json:"totalSteps"`
	}
	for _, food := range []string{"Apple", "Banana"} {
		code, envelope := doJSON(t, e, http.MethodPost, "/meals/logMeal",
			`{"foodName":"`+food+`"}`, "Bearer "+token)
		require.Equal(t, http.StatusOK, code)

		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		var data struct {
			Meal struct {
				ID               string `json:"id"`
				FoodName         string `json:"foodName"`
				Calories         int    `json:"calories"`
				RecommendedSteps int    `json:"recommendedSteps"`
			} `json:"meal"`
			Summary struct {
				TotalCalories int `json:"totalCalories"`
				TotalSteps    int `json:"totalSteps"`
			} `json:"summary"`
		}
		require.NoError(t, json.Unmarshal(raw, &data))

		assert.NotEmpty(t, data.Meal.ID)
		assert.Equal(t, food, data.Meal.FoodName)
		assert.GreaterOrEqual(t, data.Meal.RecommendedSteps, 200)
		assert.LessOrEqual(t, data.Meal.RecommendedSteps, 300)
		lastSummary = data.Summary
	}
	assert.Equal(t, 200, lastSummary.TotalCalories)

	// Progress shows both meals, most recent first
	code, envelope := doJSON(t, e, http.MethodGet, "/meals/progress", "", "Bearer "+token)
	require.Equal(t, http.StatusOK, code)

	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var progress struct {
		TotalCalories int `json:"totalCalories"`
		TotalSteps    int `json:"totalSteps"`
		MealCount     int `json:"mealCount"`
		Meals         []struct {
			FoodName string `json:"foodName"`
		} `json:"meals"`
	}
	require.NoError(t, json.Unmarshal(raw, &progress))

	assert.Equal(t, 200, progress.TotalCalories)
	assert.Equal(t, lastSummary.TotalSteps, progress.TotalSteps)
	assert.Equal(t, 2, progress.MealCount)
	require.Len(t, progress.Meals, 2)
	assert.Equal(t, "Banana", progress.Meals[0].FoodName)
	assert.Equal(t, "Apple", progress.Meals[1].FoodName)
}

func TestLogout_InvalidatesToken(t *testing.T) {
	e := newTestApp(t)
	register(t, e, "alice", "password123")
	token := login(t, e, "alice", "password123")

	code, envelope := doJSON(t, e, http.MethodPost, "/auth/logout", "", "Bearer "+token)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, envelope.Success)

	// The token is dead for protected routes
	code, _ = doJSON(t, e, http.MethodGet, "/meals/progress", "", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, code)

	// And the auth middleware rejects a second logout with it
	code, _ = doJSON(t, e, http.MethodPost, "/auth/logout", "", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestSessionsAreIndependentPerLogin(t *testing.T) {
	e := newTestApp(t)
	register(t, e, "alice", "password123")
	first := login(t, e, "alice", "password123")
	second := login(t, e, "alice", "password123")
	require.NotEqual(t, first, second)

	code, _ := doJSON(t, e, http.MethodPost, "/auth/logout", "", "Bearer "+first)
	require.Equal(t, http.StatusOK, code)

	// Logging out one session leaves the other usable
	code, _ = doJSON(t, e, http.MethodGet, "/meals/progress", "", "Bearer "+second)
	assert.Equal(t, http.StatusOK, code)
}

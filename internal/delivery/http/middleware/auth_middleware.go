package middleware

import (
	"strings"

	"caloricatcher/internal/delivery/http/response"
	"caloricatcher/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	KeyUsername = "username"
	KeyToken    = "token"
)

// AuthMiddleware protects routes behind session-token authentication.
type AuthMiddleware struct {
	authUsecase usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUsecase usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{authUsecase: authUsecase}
}

// Authenticate validates the bearer token against the session store and
// attaches the resolved identity to the request context. The token is
// accepted either as "Bearer <token>" or as a raw header value.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header missing")
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		identity, err := m.authUsecase.Authenticate(c.Request().Context(), token)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
		}

		// Set identity on the context for handlers to use
		c.Set(KeyUsername, identity.Username)
		c.Set(KeyToken, token)

		return next(c)
	}
}

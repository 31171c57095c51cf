package middleware

import (
	"log/slog"
	"net/http"

	"caloricatcher/internal/delivery/http/response"
	domainerrors "caloricatcher/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Tagged domain errors carry their own status and business code
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())

		return
	}

	// Struct-tag validation failures from the request validator
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		base := domainerrors.ErrValidationFailed
		_ = response.Error(c, base.HTTPCode(), base.ErrorCode(), base.Message(), validationErrs.Error())

		return
	}

	// Echo's own HTTPError (404 route, method not allowed, body limit)
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, "")

		return
	}

	// Anything else is an internal fault. Log it with the stack, answer
	// with a generic envelope that leaks nothing.
	m.logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	base := domainerrors.ErrInternalError
	_ = response.Error(c, base.HTTPCode(), base.ErrorCode(), base.Message(), "")
}

package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"shiptrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ErrUnauthorized is returned when a protected route is called without a valid bearer token.
var ErrUnauthorized = errors.New("missing or invalid bearer token")

// NewHTTPErrorHandler maps errors returned by handlers to a status code and an
// Error body. Unexpected errors are logged and reported as 500 without details.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, message := statusFor(err)
		if code == http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, Error{Code: code, Message: message})
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}

func statusFor(err error) (int, string) {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errs.IsBadRequest(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict, "resource already exists"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return http.StatusConflict, "resource is still referenced"
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

package http

import (
	"net/http"
	"strings"

	"shiptrack/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const userIDKey = "shiptrack.userID"

// TokenValidator resolves a bearer token to the caller's user id.
type TokenValidator interface {
	Validate(token string) (kernel.ID, error)
}

// BearerAuth authenticates every request not skipped by skipper and attaches the
// caller's id to the echo context. Identity lives on the request, never in shared state.
func BearerAuth(tokens TokenValidator, skipper middleware.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return ErrUnauthorized
			}

			userID, err := tokens.Validate(strings.TrimSpace(token))
			if err != nil {
				return ErrUnauthorized
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// CurrentUserID returns the caller attached by BearerAuth.
func CurrentUserID(c echo.Context) (kernel.ID, error) {
	userID, ok := c.Get(userIDKey).(kernel.ID)
	if !ok {
		return 0, ErrUnauthorized
	}
	return userID, nil
}

// publicRoute reports whether the matched route may be called anonymously.
func publicRoute(c echo.Context) bool {
	path := c.Path()
	switch {
	case path == "/api/v1/users" && (c.Request().Method == http.MethodGet || c.Request().Method == http.MethodPost):
		return true
	case strings.HasPrefix(path, "/api/"):
		return false
	default:
		return true
	}
}

package http

import (
	"context"
	"fmt"
	"net/http"

	"shiptrack/internal/adapters/out/auth"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// UserGetter loads a user by id.
type UserGetter interface {
	Get(ctx context.Context, id kernel.ID) (*user.User, error)
}

// TokenIssuer signs tokens for a user.
type TokenIssuer interface {
	Issue(userID kernel.ID, email string) (auth.Token, error)
}

// DevHandler serves development-only helpers. It is mounted only when
// impersonation is enabled in the configuration.
type DevHandler struct {
	users  UserGetter
	tokens TokenIssuer
}

func NewDevHandler(users UserGetter, tokens TokenIssuer) *DevHandler {
	return &DevHandler{users: users, tokens: tokens}
}

// Impersonate handles GET /dev/impersonate/{userId}: it issues a bearer token for
// an existing user without any credentials.
func (h *DevHandler) Impersonate(ctx echo.Context) error {
	var userID int64
	err := runtime.BindStyledParameterWithOptions("simple", "userId", ctx.Param("userId"), &userID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter userId: %s", err))
	}

	id, err := kernel.NewID(userID)
	if err != nil {
		return err
	}

	u, err := h.users.Get(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	token, err := h.tokens.Issue(u.ID(), u.Email())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, ImpersonationToken{
		Token:  token.Value,
		Email:  u.Email(),
		UserID: u.ID().Int64(),
		Exp:    token.ExpiresAt.Unix(),
	})
}

package http

import (
	"net/http"
	"strings"

	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// AuthMiddleware verifies the bearer access token and stores the resulting
// actor on the request context. Routes behind it can rely on actorFromContext
// never failing.
func AuthMiddleware(signer ports.TokenSigner) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return ctx.JSON(http.StatusUnauthorized, ErrorBody{
					Type:    "unauthorized",
					Message: "missing bearer token",
				})
			}

			claims, err := signer.ParseAccess(token)
			if err != nil {
				return respondError(ctx, err)
			}

			actor, err := user.NewActor(claims.UserID, claims.Role)
			if err != nil {
				return respondError(ctx, err)
			}

			ctx.Set(actorContextKey, actor)
			return next(ctx)
		}
	}
}

func actorFromContext(ctx echo.Context) (user.Actor, bool) {
	actor, ok := ctx.Get(actorContextKey).(user.Actor)
	return actor, ok
}

package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "task-board.com/task-board/internal/errors"
	"task-board.com/task-board/internal/services"
)

const claimsKey = "auth.claims"

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*services.Claims, error)
}

// Authenticate requires a valid "Authorization: Bearer <token>" header and
// stores the verified claims on the context.
func Authenticate(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			parts := strings.Fields(c.Request().Header.Get(echo.HeaderAuthorization))
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return apperrors.ErrUnauthenticated
			}

			claims, err := verifier.Verify(c.Request().Context(), parts[1])
			if err != nil {
				return err
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

func Claims(c echo.Context) *services.Claims {
	claims, _ := c.Get(claimsKey).(*services.Claims)
	return claims
}

func UserID(c echo.Context) string {
	if claims := Claims(c); claims != nil {
		return claims.Subject
	}
	return ""
}

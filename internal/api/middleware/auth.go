package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/devhire/jobboard/internal/core/domain"
)

// SessionContextKey is where the restored session lives in the echo
// context.
const SessionContextKey = "session"

// SessionRestorer restores a persisted session from a bearer token,
// re-validating it against the account store.
type SessionRestorer interface {
	Initialize(ctx context.Context, token string) (*domain.Session, error)
}

// Auth restores the caller's session from the Authorization header and
// injects it into the request context. A token whose session cannot be
// re-validated is rejected; the restorer has already cleared the stale
// persisted copy by then.
func Auth(auth SessionRestorer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			session, err := auth.Initialize(c.Request().Context(), parts[1])
			if err != nil || session == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			c.Set(SessionContextKey, session)
			c.Set("role", string(session.Role))

			return next(c)
		}
	}
}

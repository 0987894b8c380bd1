package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devhire/jobboard/internal/api/middleware"
	"github.com/devhire/jobboard/internal/core/domain"
)

// ctxSession extracts the session injected by the Auth middleware and
// fast-fails before any service call. A handler reached without a
// session indicates a misconfigured route, which is a programming error
// in the consumer; it surfaces as a loud 401 rather than a nil deref
// deeper down.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session, _ := c.Get(middleware.SessionContextKey).(*domain.Session)
	if session == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication session")
	}
	return session, nil
}

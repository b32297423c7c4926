package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edutrack/exam-prediction/internal/api/middleware"
	"github.com/edutrack/exam-prediction/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the session middleware.
// Its presence proves the middleware ran; a handler reached without it is
// a wiring bug and is rejected rather than served anonymously.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return identity, nil
}

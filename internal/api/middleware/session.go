package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edutrack/exam-prediction/internal/api/metrics"
	"github.com/edutrack/exam-prediction/internal/core/domain"
	"github.com/edutrack/exam-prediction/internal/core/service"
)

// IdentityKey is the echo context key under which the authenticated
// identity is stored for downstream handlers.
const IdentityKey = "identity"

// SessionHeader is the preferred way to pass the session identifier. The
// session_id query/form parameter is accepted as well, matching the
// original client.
const SessionHeader = "X-Session-Id"

// Session resolves the request's session identifier against the registry
// and injects the identity into context. Requests without a valid session
// are rejected with 401.
func Session(sessions *service.SessionRegistry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := sessions.RequireSession(SessionID(c))
			if err != nil {
				metrics.AuthDenialsTotal.WithLabelValues("unauthorized").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
			}
			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// RequireRole enforces an exact role match. A missing or invalid session
// yields 401; a valid session with a different role yields 403, so callers
// can tell "log in" apart from "insufficient privilege".
func RequireRole(sessions *service.SessionRegistry, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := sessions.RequireRole(SessionID(c), role)
			switch {
			case errors.Is(err, domain.ErrUnauthorized):
				metrics.AuthDenialsTotal.WithLabelValues("unauthorized").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
			case errors.Is(err, domain.ErrForbidden):
				metrics.AuthDenialsTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			case err != nil:
				return err
			}
			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// SessionID extracts the opaque session identifier from the request:
// header first, then the session_id query or form parameter.
func SessionID(c echo.Context) string {
	if sid := c.Request().Header.Get(SessionHeader); sid != "" {
		return sid
	}
	if sid := c.QueryParam("session_id"); sid != "" {
		return sid
	}
	return c.FormValue("session_id")
}

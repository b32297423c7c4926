package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edutrack/exam-prediction/internal/api/metrics"
	"github.com/edutrack/exam-prediction/internal/core/domain"
	"github.com/edutrack/exam-prediction/internal/core/ports"
	"github.com/edutrack/exam-prediction/internal/core/service"
)

type AuthHandler struct {
	accounts ports.AccountService
	auth     ports.AuthService
	sessions *service.SessionRegistry
}

func NewAuthHandler(accounts ports.AccountService, auth ports.AuthService, sessions *service.SessionRegistry) *AuthHandler {
	return &AuthHandler{accounts: accounts, auth: auth, sessions: sessions}
}

// registerRequest deliberately carries no role field: public registrations
// always produce plain user accounts. Privileged roles come only from the
// bootstrap path.
type registerRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
	Email    string `json:"email"    form:"email"    validate:"required,email"`
}

type registerResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type loginResponse struct {
	SessionID string          `json:"session_id"`
	Role      string          `json:"role"`
	User      domain.Identity `json:"user"`
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.accounts.Register(c.Request().Context(), req.Username, req.Password, req.Email, ""); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registerResult(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusCreated, registerResponse{Message: "registration successful"})
}

func registerResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateUsername):
		return "duplicate_username"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, domain.ErrDuplicateAccount):
		return "duplicate"
	default:
		return "error"
	}
}

// Profile returns the identity bound to the request's session.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  map[string]string
// @Router       /api/me [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identity)
}

// Login authenticates credentials and mints a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, err := h.auth.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("denied").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	sid := h.sessions.Create(identity)
	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	metrics.ActiveSessions.Set(float64(h.sessions.Len()))

	return c.JSON(http.StatusOK, loginResponse{SessionID: sid, Role: identity.Role, User: identity})
}

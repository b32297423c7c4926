package api

import (
	"database/sql"
	"path/filepath"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edutrack/exam-prediction/internal/api/handler"
	"github.com/edutrack/exam-prediction/internal/api/middleware"
	"github.com/edutrack/exam-prediction/internal/core/domain"
	"github.com/edutrack/exam-prediction/internal/core/ports"
	"github.com/edutrack/exam-prediction/internal/core/service"
)

// Deps bundles everything the router needs. Repositories and services are
// constructed by the caller so that schema setup failures surface before
// the server starts listening.
type Deps struct {
	Accounts  ports.AccountService
	Auth      ports.AuthService
	Students  ports.StudentService
	Sessions  *service.SessionRegistry
	DB        *sql.DB
	StaticDir string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Accounts, d.Auth, d.Sessions)
	studentHandler := handler.NewStudentHandler(d.Students)
	gradeHandler := handler.NewGradeHandler(d.Students)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.DB)

	requireSession := middleware.Session(d.Sessions)
	requireAdmin := middleware.RequireRole(d.Sessions, domain.RoleAdmin)

	// --- Static frontend ---
	e.Static("/static", d.StaticDir)
	e.File("/", filepath.Join(d.StaticDir, "index.html"))
	e.File("/login", filepath.Join(d.StaticDir, "login.html"))
	e.File("/register", filepath.Join(d.StaticDir, "register.html"))

	// --- Auth routes ---
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/login", authHandler.Login)

	// --- Authenticated routes ---
	authed := e.Group("/api", requireSession)
	authed.GET("/me", authHandler.Profile)
	authed.GET("/students", studentHandler.List)
	authed.GET("/students/:id/grades", gradeHandler.ListByStudent)
	authed.GET("/grades", gradeHandler.List)
	authed.GET("/predict", studentHandler.Predict)

	// --- Admin routes ---
	admin := e.Group("/api/admin", requireAdmin)
	admin.POST("/students", studentHandler.Create)
	admin.PUT("/students/:id", studentHandler.Update)
	admin.DELETE("/students/:id", studentHandler.Delete)
	admin.POST("/grades", gradeHandler.Create)
	admin.PUT("/grades/:id", gradeHandler.Update)
	admin.DELETE("/grades/:id", gradeHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

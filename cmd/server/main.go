package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/edutrack/exam-prediction/internal/api"
	"github.com/edutrack/exam-prediction/internal/core/service"
	"github.com/edutrack/exam-prediction/internal/infrastructure/config"
	"github.com/edutrack/exam-prediction/internal/infrastructure/db/postgres"
	"github.com/edutrack/exam-prediction/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, postgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		Name:     cfg.DB.Name,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		SSLMode:  cfg.DB.SSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()
	log.Info().Str("host", cfg.DB.Host).Str("db", cfg.DB.Name).Msg("connected to postgres")

	accountRepo, err := postgres.NewAccountRepository(db)
	if err != nil {
		log.Fatal().Err(err).Msg("account repository setup failed")
	}
	studentRepo, err := postgres.NewStudentRepository(db)
	if err != nil {
		log.Fatal().Err(err).Msg("student repository setup failed")
	}

	accounts := service.NewAccountService(accountRepo, log)
	auth := service.NewAuthService(accountRepo, log)
	students := service.NewStudentService(studentRepo, log)
	sessions := service.NewSessionRegistry()

	// The well-known admin account is created or repaired on every start.
	if err := accounts.EnsureBootstrapAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("bootstrap admin setup failed")
	}

	e := api.NewRouter(api.Deps{
		Accounts:  accounts,
		Auth:      auth,
		Students:  students,
		Sessions:  sessions,
		DB:        db,
		StaticDir: cfg.StaticDir,
		Log:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

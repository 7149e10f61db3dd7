package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/intermernet/battery-registry/internal/api"
	"github.com/intermernet/battery-registry/internal/auth"
	"github.com/intermernet/battery-registry/internal/config"
	"github.com/intermernet/battery-registry/internal/database"
)

// main is the entry point for the battery registry server.
func main() {
	log := logrus.New()

	// --- 1. Load Configuration ---
	// A .env file is convenient during development; in production the
	// variables come from the real environment.
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using environment variables from the system")
	}

	cfg, err := config.New()
	if err != nil {
		log.WithError(err).Fatal("failed to load application configuration")
	}
	if err := configureLogger(log, cfg); err != nil {
		log.WithError(err).Fatal("invalid logging configuration")
	}

	// --- 2. Ensure Required Directories Exist ---
	if err := os.MkdirAll(cfg.DataPath, 0o755); err != nil {
		log.WithError(err).WithField("path", cfg.DataPath).Fatal("failed to create data directory")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- 3. Initialize Database Service and Schema ---
	dbService, err := database.NewService(ctx, cfg.DbFile, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database service")
	}
	defer dbService.Close()

	if err := dbService.InitSchema(ctx); err != nil {
		log.WithError(err).Fatal("failed to initialize database schema")
	}
	log.WithField("file", cfg.DbFile).Info("database schema verified")

	// --- 4. Build the Auth Gate ---
	users, err := auth.LoadDirectory(cfg.UsersFile)
	if err != nil {
		log.WithError(err).Fatal("failed to load user directory")
	}

	var tokens auth.TokenIssuer = auth.UsernameTokens{}
	if cfg.AuthTokenMode == config.TokenModeJWT {
		tokens = auth.NewJWTTokens(cfg.JwtSecret)
	}
	log.WithField("users", users.Len()).WithField("token_mode", cfg.AuthTokenMode).Info("auth gate ready")

	// --- 5. Set Up API Server and Routes ---
	serverAPI := api.NewServer(api.Deps{
		Config: cfg,
		DB:     dbService,
		Gate:   auth.NewGate(users, tokens),
		Logger: log,
	})

	router := chi.NewRouter()
	serverAPI.RegisterRoutes(router)

	// --- 6. Start the HTTP Server ---
	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		log.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}()

	log.WithField("addr", cfg.ServerAddr).Info("battery registry server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("failed to start server")
	}
	log.Info("server stopped")
}

// configureLogger applies the configured level and format.
func configureLogger(log *logrus.Logger, cfg *config.Config) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

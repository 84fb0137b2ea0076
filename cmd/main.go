package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"noteboard-backend/internal/api"
	"noteboard-backend/internal/api/routes"
	"noteboard-backend/internal/config"
	"noteboard-backend/internal/libraries"
	"noteboard-backend/internal/logger"
	"noteboard-backend/internal/metrics"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg, err := config.FromEnv()
	log := logger.NewLogger("noteboard", cfg.LogLevel)
	if envErr != nil {
		log.Warn(".env file not found")
	}
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	// Connect to database
	db, err := config.ConnectDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := config.MigrateAllModels(db, cfg.Migrate, log); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	m := metrics.NewMetrics()
	if sqlDB, err := db.DB(); err == nil {
		if err := m.RegisterDB(sqlDB, "noteboard"); err != nil {
			log.WithError(err).Warn("Failed to register database metrics")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := libraries.NewHub(log)
	go hub.Run(ctx)

	// Create and configure Fiber app
	app := api.NewServer(log, m)

	// Register routes
	if err := routes.Register(app, routes.Deps{DB: db, Log: log, Metrics: m, Hub: hub}); err != nil {
		log.WithError(err).Fatal("Failed to register routes")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- api.StartServer(app, cfg.Port, log)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.WithError(err).Error("Server stopped")
		}
	case <-ctx.Done():
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Error("Server shutdown failed")
		}
	}

	if err := config.CloseDB(db); err != nil {
		log.WithError(err).Error("Failed to close database")
	}
}

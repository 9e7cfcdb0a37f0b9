package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"jurnal/internal/config"
	"jurnal/internal/database"
	"jurnal/internal/server"
	"jurnal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "json", "jurnal")
		boot.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat, "jurnal")

	app, cleanup, err := setupApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise application")
	}
	defer cleanup()

	go func() {
		log.Info().Str("addr", cfg.AppPort).Str("env", cfg.Env).Msg("Starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Error during Fiber shutdown")
	}

	log.Info().Msg("Server gracefully stopped")
}

// setupApp connects to the database, applies migrations and builds the HTTP
// app. The returned cleanup closes the database.
func setupApp(cfg *config.Config, log zerolog.Logger) (*fiber.App, func(), error) {
	db, err := database.OpenFromConfig(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	cleanup := func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}

	if err := database.Migrate(db, cfg.MigrationMode, log); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}

	return server.New(cfg, db, log), cleanup, nil
}

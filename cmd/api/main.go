package main

//go:generate go run github.com/swaggo/swag/cmd/swag@latest init -g main.go -o ../../docs --parseDependency

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/NicoloTrevisan/WeatherMap/docs" // Import generated docs
	"github.com/NicoloTrevisan/WeatherMap/internal/config"
)

// @title WeatherMap API
// @version 1.0
// @description Weather forecasts, tailwind scores and ride analysis for cycling routes.
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	app, err := NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server", "addr", cfg.GetServerAddr())
	runErr := app.Run(ctx, cfg.GetServerAddr())
	if err := app.Close(); err != nil {
		logger.Error("failed to close app", "error", err)
	}
	if runErr != nil {
		logger.Error("server failed", "error", runErr)
		os.Exit(1)
	}
	logger.Info("server exited")
}

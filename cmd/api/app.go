package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NicoloTrevisan/WeatherMap/internal/activity"
	"github.com/NicoloTrevisan/WeatherMap/internal/cache"
	"github.com/NicoloTrevisan/WeatherMap/internal/config"
	"github.com/NicoloTrevisan/WeatherMap/internal/elevation"
	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
	"github.com/NicoloTrevisan/WeatherMap/internal/location"
	"github.com/NicoloTrevisan/WeatherMap/internal/planning"
	"github.com/NicoloTrevisan/WeatherMap/internal/preferences"
	"github.com/NicoloTrevisan/WeatherMap/internal/providers/openmeteo"
	"github.com/NicoloTrevisan/WeatherMap/internal/roundtrip"
	"github.com/NicoloTrevisan/WeatherMap/internal/routing"
	"github.com/NicoloTrevisan/WeatherMap/internal/tailwind"
	"github.com/NicoloTrevisan/WeatherMap/internal/weather"
)

type RoutePlanner interface {
	Plan(ctx context.Context, req planning.Request) (*planning.Plan, error)
}

type TailwindScorer interface {
	Score(ctx context.Context, route geo.Route, start time.Time, avgSpeedKmh float64, policy tailwind.Policy) (float64, error)
}

type RoundTripRanker interface {
	Rank(ctx context.Context, req roundtrip.Request) ([]roundtrip.Candidate, error)
}

type ActivityAnalyzer interface {
	Analyze(ctx context.Context, route geo.Route) (*activity.Analysis, error)
}

type PreferenceStore interface {
	Get(ctx context.Context) (preferences.Preferences, error)
	Set(ctx context.Context, key preferences.Key, value float64) (preferences.Preferences, error)
}

// services are the business dependencies of the HTTP handlers
type services struct {
	locations   location.Service
	router      routing.Service
	planner     RoutePlanner
	scorer      TailwindScorer
	roundTrips  RoundTripRanker
	analyzer    ActivityAnalyzer
	preferences PreferenceStore
}

// App encapsulates application dependencies
type App struct {
	router  *gin.Engine
	logger  *slog.Logger
	cfg     *config.Config
	policy  tailwind.Policy
	svc     services
	closers []io.Closer
}

// NewApp creates a new application with its dependencies wired from configuration
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	weatherSvc, err := weather.NewWeatherService(cfg, logger)
	if err != nil {
		return nil, err
	}

	var closers []io.Closer
	source := weatherSvc
	if cfg.Cache.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.Cache)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := redisCache.Ping(ctx)
		cancel()
		if err != nil {
			logger.Warn("weather cache unavailable, continuing without it", "addr", cfg.Cache.RedisAddr, "error", err)
			_ = redisCache.Close()
		} else {
			closers = append(closers, redisCache)
			source = weather.NewCachedSource(weatherSvc, redisCache, cfg.Cache.ForecastTTL, cfg.Cache.HistoricalTTL, logger)
		}
	}

	var enricher planning.ElevationEnricher
	if cfg.Elevation.Enabled {
		client := openmeteo.NewElevationClient(cfg.Providers.OpenMeteo.ElevationURL, cfg.HTTP.Timeout, logger)
		enricher = elevation.NewEnricher(client, cfg.Elevation.MaxSamples, logger)
	}

	store, err := preferences.Open(cfg.Preferences.Path, preferences.Defaults(cfg), logger)
	if err != nil {
		for _, c := range closers {
			_ = c.Close()
		}
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}
	closers = append(closers, store)

	scorer := tailwind.NewScorer(source, logger)
	router := routing.NewRoutingService(cfg, logger)

	app := newApp(cfg, logger, services{
		locations:   location.NewLocationService(cfg, logger),
		router:      router,
		planner:     planning.NewPlanner(source, scorer, enricher, cfg, logger),
		scorer:      scorer,
		roundTrips:  roundtrip.NewGenerator(router, scorer, cfg, logger),
		analyzer:    activity.NewAnalyzer(source, scorer, cfg, logger),
		preferences: store,
	})
	app.closers = closers
	return app, nil
}

func newApp(cfg *config.Config, logger *slog.Logger, svc services) *App {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(logger))

	app := &App{
		router: router,
		logger: logger,
		cfg:    cfg,
		policy: tailwind.Planned(cfg.Tailwind),
		svc:    svc,
	}
	app.registerRoutes()
	return app
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (app *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: app.router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down server", "timeout", app.cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close releases the cache and preferences connections
func (app *App) Close() error {
	var errs []error
	for _, c := range app.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

package weather

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
)

// Cache stores normalized series under opaque keys.
type Cache interface {
	Get(ctx context.Context, key string) (Series, bool, error)
	Set(ctx context.Context, key string, series Series, ttl time.Duration) error
}

// CachedSource decorates a Service with a Cache. Cache failures are logged
// and the upstream service is used instead.
type CachedSource struct {
	next          Service
	cache         Cache
	forecastTTL   time.Duration
	historicalTTL time.Duration
	now           func() time.Time
	logger        *slog.Logger
}

func NewCachedSource(next Service, cache Cache, forecastTTL, historicalTTL time.Duration, logger *slog.Logger) *CachedSource {
	return &CachedSource{
		next:          next,
		cache:         cache,
		forecastTTL:   forecastTTL,
		historicalTTL: historicalTTL,
		now:           time.Now,
		logger:        logger.With("component", "weather-cache"),
	}
}

// Forecast is keyed by location and the hour the forecast was fetched in,
// since upstream forecasts are reissued over time regardless of reference.
func (c *CachedSource) Forecast(ctx context.Context, point geo.Point, reference time.Time) (Series, error) {
	key := fmt.Sprintf("weather:forecast:%s:%s", coordinateKey(point), c.now().UTC().Truncate(time.Hour).Format(time.RFC3339))
	return c.cached(ctx, key, c.forecastTTL, func() (Series, error) {
		return c.next.Forecast(ctx, point, reference)
	})
}

func (c *CachedSource) Historical(ctx context.Context, point geo.Point, from, to time.Time) (Series, error) {
	key := fmt.Sprintf("weather:historical:%s:%s:%s",
		coordinateKey(point),
		from.UTC().Truncate(time.Hour).Format(time.RFC3339),
		to.UTC().Truncate(time.Hour).Format(time.RFC3339),
	)
	return c.cached(ctx, key, c.historicalTTL, func() (Series, error) {
		return c.next.Historical(ctx, point, from, to)
	})
}

func (c *CachedSource) cached(ctx context.Context, key string, ttl time.Duration, fetch func() (Series, error)) (Series, error) {
	series, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed", "key", key, "error", err)
	} else if ok {
		c.logger.Debug("cache hit", "key", key)
		return series, nil
	}

	series, err = fetch()
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, series, ttl); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
	return series, nil
}

// coordinateKey rounds to 3 decimals, roughly 100 m.
func coordinateKey(p geo.Point) string {
	return fmt.Sprintf("%.3f,%.3f", p.Lat, p.Lng)
}

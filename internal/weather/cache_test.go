package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
)

type memoryCache struct {
	entries map[string]Series
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]Series{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(ctx context.Context, key string) (Series, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	s, ok := m.entries[key]
	return s, ok, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, series Series, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[key] = series
	m.ttls[key] = ttl
	return nil
}

type countingService struct {
	forecastCalls   int
	historicalCalls int
	err             error
}

func (c *countingService) Forecast(ctx context.Context, point geo.Point, reference time.Time) (Series, error) {
	c.forecastCalls++
	return Series{{Time: reference}}, c.err
}

func (c *countingService) Historical(ctx context.Context, point geo.Point, from, to time.Time) (Series, error) {
	c.historicalCalls++
	return Series{{Time: from}}, c.err
}

func TestCachedSource_Forecast(t *testing.T) {
	next := &countingService{}
	cache := newMemoryCache()
	src := NewCachedSource(next, cache, 30*time.Minute, 24*time.Hour, testLogger())
	src.now = func() time.Time { return time.Date(2024, 6, 1, 10, 15, 0, 0, time.UTC) }

	ref := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	ctx := context.Background()

	if _, err := src.Forecast(ctx, geo.NewPoint(51.84261, 5.85279), ref); err != nil {
		t.Fatal(err)
	}
	// Same location after rounding to 3 decimals.
	if _, err := src.Forecast(ctx, geo.NewPoint(51.84251, 5.85301), ref); err != nil {
		t.Fatal(err)
	}
	if next.forecastCalls != 1 {
		t.Errorf("forecastCalls = %d, want 1", next.forecastCalls)
	}

	key := "weather:forecast:51.843,5.853:2024-06-01T10:00:00Z"
	if cache.ttls[key] != 30*time.Minute {
		t.Errorf("ttl for %s = %v, want 30m (keys: %v)", key, cache.ttls[key], cache.ttls)
	}
}

func TestCachedSource_Historical(t *testing.T) {
	next := &countingService{}
	cache := newMemoryCache()
	src := NewCachedSource(next, cache, 30*time.Minute, 24*time.Hour, testLogger())

	from := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := src.Historical(ctx, geo.NewPoint(51.8, 5.8), from, to); err != nil {
			t.Fatal(err)
		}
	}
	if next.historicalCalls != 1 {
		t.Errorf("historicalCalls = %d, want 1", next.historicalCalls)
	}

	if _, err := src.Historical(ctx, geo.NewPoint(51.8, 5.8), from, to.Add(2*time.Hour)); err != nil {
		t.Fatal(err)
	}
	if next.historicalCalls != 2 {
		t.Errorf("historicalCalls = %d, want 2 for a different range", next.historicalCalls)
	}
}

func TestCachedSource_CacheFailuresFallThrough(t *testing.T) {
	next := &countingService{}
	cache := newMemoryCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	src := NewCachedSource(next, cache, time.Minute, time.Minute, testLogger())

	series, err := src.Forecast(context.Background(), geo.NewPoint(1, 1), time.Now())
	if err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}
	if len(series) != 1 || next.forecastCalls != 1 {
		t.Errorf("expected upstream result, got %d samples after %d calls", len(series), next.forecastCalls)
	}
}

func TestCachedSource_UpstreamErrorNotCached(t *testing.T) {
	next := &countingService{err: errors.New("status 500")}
	cache := newMemoryCache()
	src := NewCachedSource(next, cache, time.Minute, time.Minute, testLogger())

	if _, err := src.Historical(context.Background(), geo.NewPoint(1, 1), time.Now(), time.Now()); err == nil {
		t.Fatal("expected error")
	}
	if len(cache.entries) != 0 {
		t.Errorf("cache has %d entries, want 0", len(cache.entries))
	}
}

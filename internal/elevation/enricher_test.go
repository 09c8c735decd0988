package elevation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
)

// slopeProvider reports an elevation of 1000 m per degree of longitude.
type slopeProvider struct {
	calls  int
	points int
	err    error
}

func (p *slopeProvider) GetElevations(ctx context.Context, latitudes, longitudes []float64) ([]float64, error) {
	p.calls++
	p.points += len(latitudes)
	if p.err != nil {
		return nil, p.err
	}
	out := make([]float64, len(longitudes))
	for i, lng := range longitudes {
		out[i] = lng * 1000
	}
	return out, nil
}

func equatorRoute(n int) geo.Route {
	points := make([]geo.Point, n)
	for i := range points {
		points[i] = geo.NewPoint(0, float64(i)*0.01)
	}
	return geo.RouteFromPoints(points...)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnricher_Enrich(t *testing.T) {
	provider := &slopeProvider{}
	enricher := NewEnricher(provider, 50, discard())

	route := equatorRoute(200)
	enriched := enricher.Enrich(context.Background(), route)

	require.Len(t, enriched, 200)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, 50, provider.points)
	for i, p := range enriched {
		require.NotNil(t, p.Elevation, "point %d", i)
		// Linear terrain and linear spacing make interpolation exact.
		assert.InDelta(t, p.Lng*1000, *p.Elevation, 1e-6, "point %d", i)
	}
	assert.False(t, route.HasElevation(), "input route must not be modified")
}

func TestEnricher_ShortRouteSamplesEveryPoint(t *testing.T) {
	provider := &slopeProvider{}
	enricher := NewEnricher(provider, 50, discard())

	enriched := enricher.Enrich(context.Background(), equatorRoute(7))
	assert.Equal(t, 7, provider.points)
	assert.InDelta(t, 60, *enriched[6].Elevation, 1e-9)
}

func TestEnricher_KeepsExistingElevation(t *testing.T) {
	provider := &slopeProvider{}
	enricher := NewEnricher(provider, 50, discard())

	route := equatorRoute(3)
	ele := 12.0
	route[1].Elevation = &ele

	got := enricher.Enrich(context.Background(), route)
	assert.Zero(t, provider.calls)
	assert.Nil(t, got[0].Elevation)
}

func TestEnricher_FailureLeavesRouteUnchanged(t *testing.T) {
	provider := &slopeProvider{err: errors.New("status 503")}
	enricher := NewEnricher(provider, 50, discard())

	route := equatorRoute(10)
	got := enricher.Enrich(context.Background(), route)
	assert.False(t, got.HasElevation())
}

func TestSampleIndices(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, sampleIndices(3, 50))

	got := sampleIndices(1000, 50)
	assert.Len(t, got, 50)
	assert.Equal(t, 0, got[0])
	assert.Equal(t, 999, got[len(got)-1])
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i], got[i-1])
	}
}

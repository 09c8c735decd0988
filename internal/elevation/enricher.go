// Package elevation fills in terrain elevation for routes drawn without it.
package elevation

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
	"github.com/NicoloTrevisan/WeatherMap/internal/providers/openmeteo"
)

type Provider interface {
	GetElevations(ctx context.Context, latitudes, longitudes []float64) ([]float64, error)
}

// Enricher looks up the elevation of a few evenly spaced route points and
// interpolates the rest by distance along the route.
type Enricher struct {
	provider   Provider
	maxSamples int
	logger     *slog.Logger
}

func NewEnricher(provider Provider, maxSamples int, logger *slog.Logger) *Enricher {
	if maxSamples < 2 {
		maxSamples = 2
	}
	return &Enricher{
		provider:   provider,
		maxSamples: maxSamples,
		logger:     logger.With("component", "elevation-enricher"),
	}
}

// Enrich returns a copy of route with elevation on every point. Routes that
// already carry elevation are returned as is, and so is the route when the
// lookup fails.
func (e *Enricher) Enrich(ctx context.Context, route geo.Route) geo.Route {
	if len(route) == 0 || route.HasElevation() {
		return route
	}

	indices := sampleIndices(len(route), e.maxSamples)
	elevations, err := e.lookup(ctx, route, indices)
	if err != nil {
		e.logger.Warn("elevation lookup failed, keeping route without elevation",
			"points", len(route),
			"error", err,
		)
		return route
	}

	cumulative := route.CumulativeDistances()
	enriched := make(geo.Route, len(route))
	copy(enriched, route)

	k := 0
	for i := range enriched {
		for k < len(indices)-1 && indices[k+1] <= i {
			k++
		}
		ele := elevations[k]
		if indices[k] != i && k < len(indices)-1 {
			lo, hi := indices[k], indices[k+1]
			span := cumulative[hi] - cumulative[lo]
			if span > 0 {
				t := (cumulative[i] - cumulative[lo]) / span
				ele = elevations[k] + t*(elevations[k+1]-elevations[k])
			}
		}
		enriched[i].Elevation = &ele
	}

	e.logger.Debug("enriched route with elevation", "points", len(route), "samples", len(indices))
	return enriched
}

func (e *Enricher) lookup(ctx context.Context, route geo.Route, indices []int) ([]float64, error) {
	elevations := make([]float64, 0, len(indices))
	for startIdx := 0; startIdx < len(indices); startIdx += openmeteo.MaxElevationBatch {
		batch := indices[startIdx:min(startIdx+openmeteo.MaxElevationBatch, len(indices))]
		lats := make([]float64, len(batch))
		lngs := make([]float64, len(batch))
		for j, idx := range batch {
			lats[j] = route[idx].Lat
			lngs[j] = route[idx].Lng
		}

		got, err := e.provider.GetElevations(ctx, lats, lngs)
		if err != nil {
			return nil, err
		}
		if len(got) != len(batch) {
			return nil, fmt.Errorf("got %d elevations for %d points", len(got), len(batch))
		}
		for _, v := range got {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("elevation service returned %v", v)
			}
		}
		elevations = append(elevations, got...)
	}
	return elevations, nil
}

// sampleIndices picks at most limit evenly spaced indices of n points, always
// including the first and the last.
func sampleIndices(n, limit int) []int {
	if n <= limit {
		indices := make([]int, n)
		for i := range indices {
			indices[i] = i
		}
		return indices
	}

	step := float64(n-1) / float64(limit-1)
	indices := make([]int, 0, limit)
	for i := 0; i < limit; i++ {
		idx := int(math.Round(float64(i) * step))
		if len(indices) > 0 && indices[len(indices)-1] == idx {
			continue
		}
		indices = append(indices, idx)
	}
	indices[len(indices)-1] = n - 1
	return indices
}

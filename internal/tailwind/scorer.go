// Package tailwind scores how much a route is helped or hindered by the wind.
package tailwind

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/NicoloTrevisan/WeatherMap/internal/dispatch"
	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
	"github.com/NicoloTrevisan/WeatherMap/internal/sampling"
	"github.com/NicoloTrevisan/WeatherMap/internal/weather"
)

// errNoMatch marks a sample without usable weather; it is dropped from the score.
var errNoMatch = errors.New("no usable weather for sample")

// Scorer computes tailwind scores. It is safe for concurrent use.
type Scorer struct {
	source weather.Service
	logger *slog.Logger
}

func NewScorer(source weather.Service, logger *slog.Logger) *Scorer {
	return &Scorer{
		source: source,
		logger: logger.With("component", "tailwind-scorer"),
	}
}

// Score returns the mean signed wind component in km/h along the route.
// The sign follows the meteorological "from" direction: wind coming from the
// direction of travel counts positive.
//
// Invalid input and routes without any usable sample score 0. Only failures
// of the sampler itself and context cancellation are returned as errors.
func (s *Scorer) Score(ctx context.Context, route geo.Route, start time.Time, avgSpeedKmh float64, policy Policy) (float64, error) {
	logger := s.logger.With("score_id", uuid.NewString(), "policy", policy.Name)

	switch {
	case len(route) < 2:
		logger.Warn("route too short to score", "points", len(route))
		return 0, nil
	case math.IsNaN(avgSpeedKmh) || math.IsInf(avgSpeedKmh, 0) || avgSpeedKmh <= 0:
		logger.Warn("invalid average speed", "avg_speed_kmh", avgSpeedKmh)
		return 0, nil
	case start.IsZero():
		logger.Warn("missing start time")
		return 0, nil
	}

	if route.TotalDistance() == 0 {
		logger.Debug("route has zero length")
		return 0, nil
	}

	samples, err := policy.Sampler.Sample(route)
	if err != nil {
		logger.Error("failed to sample route", "error", err)
		return 0, fmt.Errorf("failed to sample route: %w", err)
	}
	if len(samples) == 0 {
		logger.Warn("sampler returned no samples")
		return 0, nil
	}

	results := dispatch.Staggered(ctx, len(samples), policy.Stagger, func(ctx context.Context, i int) (float64, error) {
		return s.component(ctx, samples[i], start, avgSpeedKmh, policy.Source)
	})

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	for i, r := range results {
		if r.Err != nil {
			logger.Warn("dropping sample",
				"sample", i,
				"latitude", samples[i].Point.Lat,
				"longitude", samples[i].Point.Lng,
				"error", r.Err,
			)
		}
	}

	components, failed := dispatch.Values(results)
	if len(components) == 0 {
		logger.Warn("no valid samples", "samples", len(samples))
		return 0, nil
	}

	total := 0.0
	for _, c := range components {
		total += c
	}
	score := total / float64(len(components))

	logger.Debug("scored route",
		"score_kmh", score,
		"valid_samples", len(components),
		"dropped_samples", failed,
	)
	return score, nil
}

func (s *Scorer) component(ctx context.Context, sample sampling.Sample, start time.Time, avgSpeedKmh float64, kind weather.Kind) (float64, error) {
	target := ArrivalTime(sample, start, avgSpeedKmh)

	bearing, err := geo.Bearing(sample.Point.Point, sample.LookAhead)
	if err != nil {
		return 0, err
	}

	var series weather.Series
	switch kind {
	case weather.Historical:
		series, err = s.source.Historical(ctx, sample.Point.Point, target, target)
	default:
		series, err = s.source.Forecast(ctx, sample.Point.Point, target)
	}
	if err != nil {
		return 0, err
	}

	match, ok := weather.Closest(series, target)
	if !ok {
		return 0, fmt.Errorf("%w: nothing within %s of %s", errNoMatch, weather.MaxClockSkew, target.Format(time.RFC3339))
	}
	if match.Wind == nil {
		return 0, fmt.Errorf("%w: wind missing at %s", errNoMatch, match.Time.Format(time.RFC3339))
	}

	return Component(match.Wind.Speed.Kph, match.Wind.Direction.Degrees, bearing), nil
}

// Component projects a wind of windKmh blowing from windFromDegrees onto the
// direction of travel.
func Component(windKmh, windFromDegrees, bearing float64) float64 {
	diff := geo.AngularDifference(windFromDegrees, bearing)
	return windKmh * math.Cos(diff*math.Pi/180)
}

// ArrivalTime is the recorded time of the sample, or the time it is reached
// riding at avgSpeedKmh from start.
func ArrivalTime(sample sampling.Sample, start time.Time, avgSpeedKmh float64) time.Time {
	if sample.Point.HasTime() {
		return *sample.Point.Time
	}
	hours := sample.DistanceAlong / 1000 / avgSpeedKmh
	return start.Add(time.Duration(hours * float64(time.Hour)))
}

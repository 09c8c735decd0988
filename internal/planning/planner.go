package planning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/NicoloTrevisan/WeatherMap/internal/config"
	"github.com/NicoloTrevisan/WeatherMap/internal/dispatch"
	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
	"github.com/NicoloTrevisan/WeatherMap/internal/sampling"
	"github.com/NicoloTrevisan/WeatherMap/internal/tailwind"
	"github.com/NicoloTrevisan/WeatherMap/internal/weather"
)

// ErrInvalidRequest is returned for requests that cannot be planned.
var ErrInvalidRequest = errors.New("invalid plan request")

type TailwindScorer interface {
	Score(ctx context.Context, route geo.Route, start time.Time, avgSpeedKmh float64, policy tailwind.Policy) (float64, error)
}

type ElevationEnricher interface {
	Enrich(ctx context.Context, route geo.Route) geo.Route
}

type Planner struct {
	source   weather.Service
	scorer   TailwindScorer
	enricher ElevationEnricher
	planning config.PlanningConfig
	policy   tailwind.Policy
	logger   *slog.Logger
}

// NewPlanner creates a Planner. enricher may be nil to skip elevation lookups.
func NewPlanner(source weather.Service, scorer TailwindScorer, enricher ElevationEnricher, cfg *config.Config, logger *slog.Logger) *Planner {
	return &Planner{
		source:   source,
		scorer:   scorer,
		enricher: enricher,
		planning: cfg.Planning,
		policy:   tailwind.Planned(cfg.Tailwind),
		logger:   logger.With("component", "planner"),
	}
}

func (p *Planner) Plan(ctx context.Context, req Request) (*Plan, error) {
	speed := req.AvgSpeedKmh
	if speed == 0 {
		speed = p.planning.AvgSpeedKmh
	}
	points := req.WeatherPoints
	if points == 0 {
		points = p.planning.WeatherPoints
	}

	switch {
	case math.IsNaN(speed) || speed <= 0:
		return nil, fmt.Errorf("%w: average speed must be positive, got %v", ErrInvalidRequest, speed)
	case points < 0:
		return nil, fmt.Errorf("%w: weather points must not be negative, got %d", ErrInvalidRequest, points)
	case req.Start.IsZero():
		return nil, fmt.Errorf("%w: start time is required", ErrInvalidRequest)
	}
	if err := sampling.Validate(req.Route); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	route := req.Route
	if p.enricher != nil && !route.HasElevation() {
		route = p.enricher.Enrich(ctx, route)
	}

	total := route.TotalDistance()
	duration := time.Duration(total / 1000 / speed * float64(time.Hour))

	plan := &Plan{
		Route:                    route,
		DistanceKm:               total / 1000,
		AvgSpeedKmh:              speed,
		Start:                    req.Start,
		EstimatedEnd:             req.Start.Add(duration),
		EstimatedDurationMinutes: duration.Minutes(),
		Elevation:                route.ElevationStats(),
		Markers:                  []Marker{},
	}

	if total > 0 {
		plan.Markers, plan.FailedWeatherPoints = p.markers(ctx, route, total, req.Start, speed, points)
	}

	score, err := p.scorer.Score(ctx, route, req.Start, speed, p.policy)
	if err != nil {
		p.logger.Error("failed to compute tailwind score", "error", err)
	} else {
		plan.TailwindKmh = &score
	}

	p.logger.Info("planned route",
		"distance_km", plan.DistanceKm,
		"markers", len(plan.Markers),
		"failed_weather_points", plan.FailedWeatherPoints,
	)
	return plan, nil
}

func (p *Planner) markers(ctx context.Context, route geo.Route, total float64, start time.Time, speed float64, n int) ([]Marker, int) {
	fractions := sampling.EvenFractions(n)

	markers := make([]Marker, len(fractions))
	for i, frac := range fractions {
		dist := total * frac
		point, _ := sampling.PointAt(route, dist)
		markers[i] = Marker{
			Point:            point.Point,
			DistanceKm:       dist / 1000,
			EstimatedArrival: start.Add(time.Duration(dist / 1000 / speed * float64(time.Hour))),
		}
	}

	results := dispatch.Staggered(ctx, len(markers), p.planning.Stagger, func(ctx context.Context, i int) (Marker, error) {
		return p.withForecast(ctx, markers[i])
	})

	failed := 0
	for i, r := range results {
		if r.Err != nil {
			failed++
			markers[i].Status = StatusUnavailable
			markers[i].Message = "forecast unavailable: " + r.Err.Error()
			p.logger.Warn("forecast unavailable for marker",
				"distance_km", markers[i].DistanceKm,
				"latitude", markers[i].Point.Lat,
				"longitude", markers[i].Point.Lng,
				"error", r.Err,
			)
			continue
		}
		markers[i] = r.Value
	}
	return markers, failed
}

func (p *Planner) withForecast(ctx context.Context, marker Marker) (Marker, error) {
	series, err := p.source.Forecast(ctx, marker.Point, marker.EstimatedArrival)
	if err != nil {
		return marker, err
	}

	sample, ok := weather.Closest(series, marker.EstimatedArrival)
	if !ok {
		marker.Status = StatusTimeMismatch
		marker.Message = "no forecast close enough to the estimated arrival"
		return marker, nil
	}

	marker.Status = StatusOK
	marker.Forecast = &sample
	marker.PrecipitationType = precipitationType(sample)
	return marker, nil
}

package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/NicoloTrevisan/WeatherMap/internal/config"
	"github.com/NicoloTrevisan/WeatherMap/internal/dispatch"
	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
	"github.com/NicoloTrevisan/WeatherMap/internal/sampling"
	"github.com/NicoloTrevisan/WeatherMap/internal/tailwind"
	"github.com/NicoloTrevisan/WeatherMap/internal/weather"
)

// ErrInvalidActivity is returned for recordings that cannot be analyzed.
var ErrInvalidActivity = errors.New("invalid activity")

type TailwindScorer interface {
	Score(ctx context.Context, route geo.Route, start time.Time, avgSpeedKmh float64, policy tailwind.Policy) (float64, error)
}

// WeatherMarker is the observed weather at a recorded point.
type WeatherMarker struct {
	Point      geo.Point      `json:"point"`
	Time       time.Time      `json:"time"`
	DistanceKm float64        `json:"distanceKm"`
	Weather    weather.Sample `json:"weather"`
}

type Analysis struct {
	Metrics             Metrics         `json:"metrics"`
	TailwindKmh         *float64        `json:"tailwindKmh,omitempty"`
	Weather             []WeatherMarker `json:"weather"`
	FailedWeatherPoints int             `json:"failedWeatherPoints"`
}

type Analyzer struct {
	source       weather.Service
	scorer       TailwindScorer
	cfg          config.ActivityConfig
	defaultSpeed float64
	logger       *slog.Logger
}

func NewAnalyzer(source weather.Service, scorer TailwindScorer, cfg *config.Config, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		source:       source,
		scorer:       scorer,
		cfg:          cfg.Activity,
		defaultSpeed: cfg.Planning.AvgSpeedKmh,
		logger:       logger.With("component", "activity-analyzer"),
	}
}

// Analyze computes the metrics of a recording. When the recording carries
// timestamps it also scores the wind along it and looks up the weather at a
// few recorded points.
func (a *Analyzer) Analyze(ctx context.Context, route geo.Route) (*Analysis, error) {
	if err := sampling.Validate(route); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidActivity, err)
	}

	analysis := &Analysis{
		Metrics: ComputeMetrics(route),
		Weather: []WeatherMarker{},
	}

	if !analysis.Metrics.HasTimestamps {
		a.logger.Info("activity has no timestamps, skipping weather analysis", "points", len(route))
		return analysis, nil
	}

	start, end := *analysis.Metrics.StartTime, *analysis.Metrics.EndTime

	speed := a.defaultSpeed
	if analysis.Metrics.AvgSpeedKmh != nil {
		speed = *analysis.Metrics.AvgSpeedKmh
	}
	score, err := a.scorer.Score(ctx, route, start, speed, tailwind.Recorded(a.cfg))
	if err != nil {
		a.logger.Error("failed to compute tailwind score", "error", err)
	} else {
		analysis.TailwindKmh = &score
	}

	analysis.Weather, analysis.FailedWeatherPoints, err = a.weatherMarkers(ctx, route, start, end)
	if err != nil {
		a.logger.Error("failed to sample activity for weather", "error", err)
	}

	a.logger.Info("analyzed activity",
		"distance_km", analysis.Metrics.DistanceKm,
		"weather_markers", len(analysis.Weather),
		"failed_weather_points", analysis.FailedWeatherPoints,
	)
	return analysis, nil
}

func (a *Analyzer) weatherMarkers(ctx context.Context, route geo.Route, start, end time.Time) ([]WeatherMarker, int, error) {
	samples, err := sampling.IndexStride{MaxSamples: a.cfg.WeatherSamples}.Sample(route)
	if err != nil {
		return []WeatherMarker{}, 0, err
	}

	results := dispatch.Staggered(ctx, len(samples), a.cfg.Stagger, func(ctx context.Context, i int) (*WeatherMarker, error) {
		s := samples[i]
		series, err := a.source.Historical(ctx, s.Point.Point, start, end)
		if err != nil {
			return nil, err
		}
		match, ok := weather.Closest(series, *s.Point.Time)
		if !ok {
			a.logger.Warn("no historical weather close to recorded time",
				"latitude", s.Point.Lat,
				"longitude", s.Point.Lng,
				"time", *s.Point.Time,
			)
			return nil, nil
		}
		return &WeatherMarker{
			Point:   s.Point.Point,
			Time:    *s.Point.Time,
			Weather: match,
		}, nil
	})

	locate := newLocator(route, a.cfg.ProximityDegrees)

	markers := make([]WeatherMarker, 0, len(samples))
	failed := 0
	for i, r := range results {
		switch {
		case r.Err != nil:
			failed++
			a.logger.Warn("historical weather unavailable",
				"sample", i,
				"latitude", samples[i].Point.Lat,
				"longitude", samples[i].Point.Lng,
				"error", r.Err,
			)
		case r.Value != nil:
			m := *r.Value
			m.DistanceKm = locate.distanceKm(m.Point, i, len(samples))
			markers = append(markers, m)
		}
	}
	return markers, failed, nil
}

package planning

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicoloTrevisan/WeatherMap/internal/config"
	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
	"github.com/NicoloTrevisan/WeatherMap/internal/tailwind"
	"github.com/NicoloTrevisan/WeatherMap/internal/types"
	"github.com/NicoloTrevisan/WeatherMap/internal/weather"
)

type mockSource struct {
	forecast func(point geo.Point, reference time.Time) (weather.Series, error)
}

func (m *mockSource) Forecast(ctx context.Context, point geo.Point, reference time.Time) (weather.Series, error) {
	return m.forecast(point, reference)
}

func (m *mockSource) Historical(ctx context.Context, point geo.Point, from, to time.Time) (weather.Series, error) {
	return nil, errors.New("not used")
}

type mockScorer struct {
	score  float64
	err    error
	policy tailwind.Policy
}

func (m *mockScorer) Score(ctx context.Context, route geo.Route, start time.Time, avgSpeedKmh float64, policy tailwind.Policy) (float64, error) {
	m.policy = policy
	return m.score, m.err
}

type mockEnricher struct {
	calls atomic.Int32
}

func (m *mockEnricher) Enrich(ctx context.Context, route geo.Route) geo.Route {
	m.calls.Add(1)
	out := make(geo.Route, len(route))
	copy(out, route)
	for i := range out {
		ele := float64(i * 10)
		out[i].Elevation = &ele
	}
	return out
}

func testConfig() *config.Config {
	return &config.Config{
		Planning: config.PlanningConfig{AvgSpeedKmh: 22, WeatherPoints: 10},
		Tailwind: config.TailwindConfig{Fractions: []float64{0.25, 0.5, 0.75}, LookAheadMeters: 500, Stagger: 0},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rainyForecast(point geo.Point, reference time.Time) (weather.Series, error) {
	speed, dir, temp := 5.0, 200.0, 14.0
	t := types.NewTemperatureFromCelsius(temp)
	return weather.Series{{
		Time:          reference.Truncate(3 * time.Hour),
		Wind:          types.NewWind(&speed, &dir),
		Temperature:   &t,
		Precipitation: types.NewPrecipitationFromMm(1.2),
		Conditions:    types.NewWeatherFromSummary("Rain", "moderate rain"),
	}}, nil
}

// Roughly 55.6 km due east along the equator.
var route = geo.RouteFromPoints(geo.NewPoint(0, 0), geo.NewPoint(0, 0.25), geo.NewPoint(0, 0.5))

var start = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func TestPlanner_Plan(t *testing.T) {
	scorer := &mockScorer{score: 4.5}
	enricher := &mockEnricher{}
	planner := NewPlanner(&mockSource{forecast: rainyForecast}, scorer, enricher, testConfig(), discardLogger())

	plan, err := planner.Plan(context.Background(), Request{Route: route, Start: start, AvgSpeedKmh: 25, WeatherPoints: 5})
	require.NoError(t, err)

	assert.InDelta(t, 55.6, plan.DistanceKm, 0.1)
	assert.InDelta(t, plan.DistanceKm/25*60, plan.EstimatedDurationMinutes, 0.01)
	assert.WithinDuration(t, start.Add(time.Duration(plan.EstimatedDurationMinutes*float64(time.Minute))), plan.EstimatedEnd, time.Second)

	require.Len(t, plan.Markers, 5)
	assert.Equal(t, 0.0, plan.Markers[0].DistanceKm)
	assert.InDelta(t, plan.DistanceKm, plan.Markers[4].DistanceKm, 1e-9)
	assert.InDelta(t, plan.DistanceKm/2, plan.Markers[2].DistanceKm, 1e-9)
	assert.InDelta(t, 0.25, plan.Markers[2].Point.Lng, 1e-9)
	for _, m := range plan.Markers {
		assert.Equal(t, StatusOK, m.Status)
		require.NotNil(t, m.Forecast)
		assert.Equal(t, "rain", m.PrecipitationType)
	}
	assert.Zero(t, plan.FailedWeatherPoints)

	require.NotNil(t, plan.TailwindKmh)
	assert.Equal(t, 4.5, *plan.TailwindKmh)
	assert.Equal(t, "planned", scorer.policy.Name)
	assert.Equal(t, weather.Forecast, scorer.policy.Source)

	assert.Equal(t, int32(1), enricher.calls.Load())
	assert.True(t, plan.Elevation.HasElevation)
	assert.Equal(t, 20.0, plan.Elevation.Ascent)
}

func TestPlanner_Plan_Defaults(t *testing.T) {
	planner := NewPlanner(&mockSource{forecast: rainyForecast}, &mockScorer{}, nil, testConfig(), discardLogger())

	plan, err := planner.Plan(context.Background(), Request{Route: route, Start: start})
	require.NoError(t, err)
	assert.Equal(t, 22.0, plan.AvgSpeedKmh)
	assert.Len(t, plan.Markers, 10)
	assert.False(t, plan.Elevation.HasElevation)
}

func TestPlanner_Plan_SingleWeatherPoint(t *testing.T) {
	planner := NewPlanner(&mockSource{forecast: rainyForecast}, &mockScorer{}, nil, testConfig(), discardLogger())

	plan, err := planner.Plan(context.Background(), Request{Route: route, Start: start, WeatherPoints: 1})
	require.NoError(t, err)
	require.Len(t, plan.Markers, 2)
	assert.InDelta(t, plan.DistanceKm/2, plan.Markers[1].DistanceKm, 1e-9)
}

func TestPlanner_Plan_MarkerStatuses(t *testing.T) {
	source := &mockSource{forecast: func(point geo.Point, reference time.Time) (weather.Series, error) {
		switch {
		case point.Lng < 0.1:
			return nil, errors.New("fetch returned status 429")
		case point.Lng > 0.4:
			return weather.Series{{Time: reference.Add(-5 * time.Hour)}}, nil
		default:
			return rainyForecast(point, reference)
		}
	}}
	planner := NewPlanner(source, &mockScorer{}, nil, testConfig(), discardLogger())

	plan, err := planner.Plan(context.Background(), Request{Route: route, Start: start, WeatherPoints: 3})
	require.NoError(t, err)
	require.Len(t, plan.Markers, 3)

	assert.Equal(t, StatusUnavailable, plan.Markers[0].Status)
	assert.Contains(t, plan.Markers[0].Message, "429")
	assert.Equal(t, StatusOK, plan.Markers[1].Status)
	assert.Equal(t, StatusTimeMismatch, plan.Markers[2].Status)
	assert.Nil(t, plan.Markers[2].Forecast)
	assert.Equal(t, 1, plan.FailedWeatherPoints)
}

func TestPlanner_Plan_ScoringFailure(t *testing.T) {
	planner := NewPlanner(&mockSource{forecast: rainyForecast}, &mockScorer{err: errors.New("invalid route")}, nil, testConfig(), discardLogger())

	plan, err := planner.Plan(context.Background(), Request{Route: route, Start: start})
	require.NoError(t, err)
	assert.Nil(t, plan.TailwindKmh)
}

func TestPlanner_Plan_InvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{name: "single point", req: Request{Route: route[:1], Start: start}},
		{name: "negative speed", req: Request{Route: route, Start: start, AvgSpeedKmh: -1}},
		{name: "NaN speed", req: Request{Route: route, Start: start, AvgSpeedKmh: math.NaN()}},
		{name: "negative weather points", req: Request{Route: route, Start: start, WeatherPoints: -2}},
		{name: "missing start", req: Request{Route: route}},
		{name: "invalid coordinate", req: Request{Route: geo.RouteFromPoints(geo.NewPoint(0, 0), geo.NewPoint(95, 0)), Start: start}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planner := NewPlanner(&mockSource{forecast: rainyForecast}, &mockScorer{}, nil, testConfig(), discardLogger())
			_, err := planner.Plan(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestPlan_GeoJSON(t *testing.T) {
	planner := NewPlanner(&mockSource{forecast: rainyForecast}, &mockScorer{score: -3}, nil, testConfig(), discardLogger())
	plan, err := planner.Plan(context.Background(), Request{Route: route, Start: start, WeatherPoints: 2})
	require.NoError(t, err)

	fc := plan.GeoJSON()
	require.Len(t, fc.Features, 3)

	line, ok := fc.Features[0].Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Len(t, line, 3)
	assert.Equal(t, -3.0, fc.Features[0].Properties["tailwindKmh"])

	marker := fc.Features[2]
	pt, ok := marker.Geometry.(orb.Point)
	require.True(t, ok)
	assert.InDelta(t, 0.5, pt.Lon(), 1e-9)
	assert.Equal(t, "ok", marker.Properties["status"])
	assert.Equal(t, "SSW", marker.Properties["windCardinal"])
	assert.Equal(t, "rain", marker.Properties["precipitationType"])

	_, err = fc.MarshalJSON()
	assert.NoError(t, err)
}

func TestPrecipitationType(t *testing.T) {
	tests := []struct {
		name   string
		sample weather.Sample
		want   string
	}{
		{name: "dry", sample: weather.Sample{Conditions: types.NewWeatherFromSummary("Rain", "light rain")}, want: ""},
		{name: "rain", sample: weather.Sample{Precipitation: types.NewPrecipitationFromMm(0.3), Conditions: types.NewWeatherFromSummary("Rain", "light rain")}, want: "rain"},
		{name: "snow by summary", sample: weather.Sample{Precipitation: types.NewPrecipitationFromMm(0.3), Conditions: types.NewWeatherFromSummary("Snow", "light snow")}, want: "snow"},
		{name: "snow by code", sample: weather.Sample{Precipitation: types.NewPrecipitationFromMm(0.3), Conditions: types.NewWeather(73)}, want: "snow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, precipitationType(tt.sample))
		})
	}
}

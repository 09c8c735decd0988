// Package planning builds the weather overview of a route that is yet to be ridden.
package planning

import (
	"strings"
	"time"

	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
	"github.com/NicoloTrevisan/WeatherMap/internal/types"
	"github.com/NicoloTrevisan/WeatherMap/internal/weather"
)

type MarkerStatus string

const (
	StatusOK           MarkerStatus = "ok"
	StatusTimeMismatch MarkerStatus = "time_mismatch"
	StatusUnavailable  MarkerStatus = "unavailable"
)

// Request describes a planned ride. Zero AvgSpeedKmh and WeatherPoints fall
// back to the configured defaults.
type Request struct {
	Route         geo.Route
	Start         time.Time
	AvgSpeedKmh   float64
	WeatherPoints int
}

// Marker is the forecast at one point along the route.
type Marker struct {
	Point             geo.Point       `json:"point"`
	DistanceKm        float64         `json:"distanceKm"`
	EstimatedArrival  time.Time       `json:"estimatedArrival"`
	Status            MarkerStatus    `json:"status"`
	Message           string          `json:"message,omitempty"`
	Forecast          *weather.Sample `json:"forecast,omitempty"`
	PrecipitationType string          `json:"precipitationType,omitempty"`
}

type Plan struct {
	Route                    geo.Route          `json:"route"`
	DistanceKm               float64            `json:"distanceKm"`
	AvgSpeedKmh              float64            `json:"avgSpeedKmh"`
	Start                    time.Time          `json:"start"`
	EstimatedEnd             time.Time          `json:"estimatedEnd"`
	EstimatedDurationMinutes float64            `json:"estimatedDurationMinutes"`
	Elevation                geo.ElevationStats `json:"elevation"`
	Markers                  []Marker           `json:"markers"`
	FailedWeatherPoints      int                `json:"failedWeatherPoints"`
	TailwindKmh              *float64           `json:"tailwindKmh"`
}

// precipitationType names the kind of precipitation of a sample, or "" when dry.
func precipitationType(s weather.Sample) string {
	if s.Precipitation.Mm <= 0 {
		return ""
	}
	if strings.Contains(strings.ToLower(s.Conditions.Main), "snow") || isSnowCode(s.Conditions.Code) {
		return "snow"
	}
	return "rain"
}

func isSnowCode(code int) bool {
	switch types.WeatherCode(code) {
	case types.SnowFallSlight, types.SnowFallModerate, types.SnowFallHeavy, types.SnowGrains,
		types.SnowShowersSlight, types.SnowShowersHeavy:
		return true
	}
	return false
}

// Package activity analyzes recorded rides.
package activity

import (
	"time"

	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
)

const (
	// maxSegmentGap separates riding from stops: longer gaps do not count as moving time.
	maxSegmentGap = 5 * time.Minute
	// maxPlausibleSpeedKmh filters GPS glitches out of the speed figures.
	maxPlausibleSpeedKmh = 100
)

type Metrics struct {
	DistanceKm        float64            `json:"distanceKm"`
	Elevation         geo.ElevationStats `json:"elevation"`
	HighestPoint      *geo.TimedPoint    `json:"highestPoint,omitempty"`
	MovingTimeSeconds float64            `json:"movingTimeSeconds"`
	MaxSpeedKmh       float64            `json:"maxSpeedKmh"`
	FastestPoint      *geo.TimedPoint    `json:"fastestPoint,omitempty"`
	AvgSpeedKmh       *float64           `json:"avgSpeedKmh,omitempty"`
	HasTimestamps     bool               `json:"hasTimestamps"`
	StartTime         *time.Time         `json:"startTime,omitempty"`
	EndTime           *time.Time         `json:"endTime,omitempty"`
}

// ComputeMetrics summarizes a recorded route. Speeds are computed per
// segment between consecutive timestamped points less than five minutes apart.
// AvgSpeedKmh is the mean of those segment speeds.
func ComputeMetrics(route geo.Route) Metrics {
	m := Metrics{
		DistanceKm:    route.TotalDistance() / 1000,
		Elevation:     route.ElevationStats(),
		HasTimestamps: route.HasTimestamps(),
	}

	if m.Elevation.HighestIndex >= 0 {
		highest := route[m.Elevation.HighestIndex]
		m.HighestPoint = &highest
	}

	var speedSum float64
	var speedCount int
	for i := 1; i < len(route); i++ {
		prev, curr := route[i-1], route[i]
		if !prev.HasTime() || !curr.HasTime() {
			continue
		}

		gap := curr.Time.Sub(*prev.Time)
		if gap <= 0 || gap >= maxSegmentGap {
			continue
		}
		m.MovingTimeSeconds += gap.Seconds()

		speed := geo.Distance(prev.Point, curr.Point) / 1000 / gap.Hours()
		if speed <= 0 || speed >= maxPlausibleSpeedKmh {
			continue
		}
		speedSum += speed
		speedCount++
		if speed > m.MaxSpeedKmh {
			m.MaxSpeedKmh = speed
			fastest := curr
			m.FastestPoint = &fastest
		}
	}

	if speedCount > 0 {
		avg := speedSum / float64(speedCount)
		m.AvgSpeedKmh = &avg
	}

	for i := range route {
		if route[i].HasTime() {
			m.StartTime = route[i].Time
			break
		}
	}
	for i := len(route) - 1; i >= 0; i-- {
		if route[i].HasTime() {
			m.EndTime = route[i].Time
			break
		}
	}

	return m
}

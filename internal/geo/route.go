package geo

import (
	"math"
	"time"

	"github.com/paulmach/orb"
)

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewPoint creates a Point from latitude and longitude
func NewPoint(lat, lng float64) Point {
	return Point{Lat: lat, Lng: lng}
}

// Valid reports whether the point is a finite coordinate inside the WGS84 ranges.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Orb converts the point to an orb.Point, which is ordered longitude first.
func (p Point) Orb() orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

// TimedPoint is a route vertex with optional elevation and timestamp.
type TimedPoint struct {
	Point
	Elevation *float64   `json:"elevation,omitempty"`
	Time      *time.Time `json:"time,omitempty"`
}

// HasTime reports whether the point carries a usable timestamp.
func (p TimedPoint) HasTime() bool {
	return p.Time != nil && !p.Time.IsZero()
}

// HasElevation reports whether the point carries a finite elevation.
func (p TimedPoint) HasElevation() bool {
	return p.Elevation != nil && !math.IsNaN(*p.Elevation)
}

// Route is an ordered polyline of timed points.
type Route []TimedPoint

// RouteFromPoints builds a route without elevation or timestamps.
func RouteFromPoints(points ...Point) Route {
	route := make(Route, len(points))
	for i, p := range points {
		route[i] = TimedPoint{Point: p}
	}
	return route
}

// TotalDistance returns the sum of consecutive great-circle distances in meters.
func (r Route) TotalDistance() float64 {
	total := 0.0
	for i := 1; i < len(r); i++ {
		total += Distance(r[i-1].Point, r[i].Point)
	}
	return total
}

// CumulativeDistances returns, for every vertex, the distance travelled from the first vertex.
func (r Route) CumulativeDistances() []float64 {
	cumulative := make([]float64, len(r))
	for i := 1; i < len(r); i++ {
		cumulative[i] = cumulative[i-1] + Distance(r[i-1].Point, r[i].Point)
	}
	return cumulative
}

// HasTimestamps reports whether any vertex carries a timestamp.
func (r Route) HasTimestamps() bool {
	for _, p := range r {
		if p.HasTime() {
			return true
		}
	}
	return false
}

// HasElevation reports whether any vertex carries an elevation.
func (r Route) HasElevation() bool {
	for _, p := range r {
		if p.HasElevation() {
			return true
		}
	}
	return false
}

// LineString converts the route to an orb.LineString for GeoJSON output.
func (r Route) LineString() orb.LineString {
	ls := make(orb.LineString, len(r))
	for i, p := range r {
		ls[i] = p.Orb()
	}
	return ls
}

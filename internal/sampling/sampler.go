// Package sampling reduces full-resolution routes to a handful of representative
// points for weather lookups.
package sampling

import (
	"errors"
	"fmt"
	"sort"

	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
)

// ErrInvalidRoute is returned when a route cannot be sampled at all.
var ErrInvalidRoute = errors.New("invalid route")

// Sample is a representative route point together with the point used to derive
// the direction of travel at that location.
type Sample struct {
	Point         geo.TimedPoint
	LookAhead     geo.Point
	Index         int     // index of the route vertex at or before the sample
	DistanceAlong float64 // meters from the start of the route
}

// Sampler selects samples from a route.
type Sampler interface {
	Sample(route geo.Route) ([]Sample, error)
}

// Validate checks that every vertex of the route is a usable coordinate.
func Validate(route geo.Route) error {
	if len(route) < 2 {
		return fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidRoute, len(route))
	}
	for i, p := range route {
		if !p.Valid() {
			return fmt.Errorf("%w: point %d has invalid coordinates (%f, %f)", ErrInvalidRoute, i, p.Lat, p.Lng)
		}
	}
	return nil
}

// DistanceFractions samples a route at fixed fractions of its total length.
type DistanceFractions struct {
	Fractions       []float64
	LookAheadMeters float64
}

// Sample implements Sampler.
func (s DistanceFractions) Sample(route geo.Route) ([]Sample, error) {
	if err := Validate(route); err != nil {
		return nil, err
	}

	cumulative := route.CumulativeDistances()
	total := cumulative[len(cumulative)-1]

	samples := make([]Sample, 0, len(s.Fractions))
	for _, frac := range s.Fractions {
		target := total * frac
		point, index := pointAt(route, cumulative, target)
		ahead, _ := pointAt(route, cumulative, min(target+s.LookAheadMeters, total))
		samples = append(samples, Sample{
			Point:         point,
			LookAhead:     ahead.Point,
			Index:         index,
			DistanceAlong: clamp(target, 0, total),
		})
	}
	return samples, nil
}

// IndexStride samples every n-th recorded point, keeping only timestamped ones.
type IndexStride struct {
	MaxSamples      int
	LookAheadPoints int
}

// Sample implements Sampler. The number of samples returned varies with the
// route length and the presence of timestamps and may be zero.
func (s IndexStride) Sample(route geo.Route) ([]Sample, error) {
	if s.MaxSamples <= 0 {
		return nil, fmt.Errorf("max samples must be positive, got %d", s.MaxSamples)
	}
	if err := Validate(route); err != nil {
		return nil, err
	}

	interval := 1
	if len(route) > s.MaxSamples {
		interval = len(route) / s.MaxSamples
	}

	cumulative := route.CumulativeDistances()
	last := len(route) - 1

	samples := make([]Sample, 0, s.MaxSamples)
	for i := 0; i < len(route); i += interval {
		if !route[i].HasTime() {
			continue
		}
		ahead := min(i+s.LookAheadPoints, last)
		samples = append(samples, Sample{
			Point:         route[i],
			LookAhead:     route[ahead].Point,
			Index:         i,
			DistanceAlong: cumulative[i],
		})
	}
	return samples, nil
}

// EvenFractions returns n evenly spaced fractions of a route including both
// endpoints. A single marker is placed at the start and halfway.
func EvenFractions(n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{0, 0.5}
	}

	fractions := make([]float64, n)
	for i := 0; i < n-1; i++ {
		fractions[i] = float64(i) / float64(n-1)
	}
	fractions[n-1] = 1
	return fractions
}

// PointAt returns the point located distance meters along the route, interpolating
// linearly between the two bracketing vertices.
func PointAt(route geo.Route, distance float64) (geo.TimedPoint, error) {
	if err := Validate(route); err != nil {
		return geo.TimedPoint{}, err
	}
	point, _ := pointAt(route, route.CumulativeDistances(), distance)
	return point, nil
}

func pointAt(route geo.Route, cumulative []float64, target float64) (geo.TimedPoint, int) {
	last := len(route) - 1
	if target <= 0 {
		return route[0], 0
	}
	if target >= cumulative[last] {
		return route[last], last
	}

	// First vertex at or beyond the target; it is at least 1 because target > 0.
	i := sort.SearchFloat64s(cumulative, target)
	a, b := route[i-1], route[i]
	segment := cumulative[i] - cumulative[i-1]
	if segment == 0 {
		return b, i
	}

	t := (target - cumulative[i-1]) / segment
	p := geo.TimedPoint{
		Point: geo.Point{
			Lat: a.Lat + t*(b.Lat-a.Lat),
			Lng: a.Lng + t*(b.Lng-a.Lng),
		},
	}
	if a.HasElevation() && b.HasElevation() {
		ele := *a.Elevation + t*(*b.Elevation-*a.Elevation)
		p.Elevation = &ele
	}
	return p, i - 1
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

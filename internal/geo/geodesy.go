package geo

import (
	"errors"
	"math"
)

const (
	// EarthRadiusMeters is the mean Earth radius used by every distance computation.
	EarthRadiusMeters = 6371000

	// coincidentMeters is the separation below which two points have no usable bearing.
	coincidentMeters = 0.001
)

// ErrCoincidentPoints is returned by Bearing when both points are the same location.
var ErrCoincidentPoints = errors.New("bearing undefined for coincident points")

// Distance returns the haversine great-circle distance between a and b in meters.
func Distance(a, b Point) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Bearing returns the initial compass bearing in [0,360) of the great-circle path
// from one point toward another.
func Bearing(from, to Point) (float64, error) {
	if Distance(from, to) < coincidentMeters {
		return 0, ErrCoincidentPoints
	}

	lat1 := toRad(from.Lat)
	lat2 := toRad(to.Lat)
	dLng := toRad(to.Lng - from.Lng)

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)

	return NormalizeDegrees(toDeg(math.Atan2(y, x))), nil
}

// AngularDifference wraps a-b into the minimal signed angle in (-180,180].
func AngularDifference(a, b float64) float64 {
	diff := math.Mod(a-b, 360)
	if diff <= -180 {
		diff += 360
	} else if diff > 180 {
		diff -= 360
	}
	return diff
}

// NormalizeDegrees maps any angle into [0,360).
func NormalizeDegrees(deg float64) float64 {
	n := math.Mod(deg, 360)
	if n < 0 {
		n += 360
	}
	// math.Mod of a tiny negative value plus 360 can round up to exactly 360.
	if n >= 360 {
		n = 0
	}
	return n
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

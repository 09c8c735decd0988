package geo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePoints = []Point{
	{Lat: 52.0, Lng: 5.0},
	{Lat: 52.0, Lng: 6.0},
	{Lat: 51.8426, Lng: 5.8528},
	{Lat: -33.8688, Lng: 151.2093},
	{Lat: 89.9, Lng: -179.9},
	{Lat: -89.9, Lng: 179.9},
	{Lat: 0, Lng: 0},
}

func TestDistance_ZeroForSamePoint(t *testing.T) {
	for _, p := range samplePoints {
		assert.Equal(t, 0.0, Distance(p, p), "distance of %v to itself", p)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	for _, a := range samplePoints {
		for _, b := range samplePoints {
			assert.Equal(t, Distance(a, b), Distance(b, a), "distance %v <-> %v", a, b)
		}
	}
}

func TestDistance_KnownValue(t *testing.T) {
	// One degree of longitude at 52N is roughly 68.5 km.
	d := Distance(Point{Lat: 52, Lng: 5}, Point{Lat: 52, Lng: 6})
	assert.InDelta(t, 68_458, d, 5)

	// One degree of latitude is roughly 111.2 km.
	d = Distance(Point{Lat: 0, Lng: 0}, Point{Lat: 1, Lng: 0})
	assert.InDelta(t, 111_195, d, 10)
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name string
		from Point
		to   Point
		want float64
	}{
		{name: "north", from: Point{0, 0}, to: Point{1, 0}, want: 0},
		{name: "east", from: Point{0, 0}, to: Point{0, 1}, want: 90},
		{name: "south", from: Point{1, 0}, to: Point{0, 0}, want: 180},
		{name: "west", from: Point{0, 1}, to: Point{0, 0}, want: 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Bearing(tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestBearing_InRange(t *testing.T) {
	for _, a := range samplePoints {
		for _, b := range samplePoints {
			if a == b {
				continue
			}
			got, err := Bearing(a, b)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 360.0)
		}
	}
}

func TestBearing_CoincidentPoints(t *testing.T) {
	p := Point{Lat: 52.1, Lng: 5.2}
	_, err := Bearing(p, p)
	assert.True(t, errors.Is(err, ErrCoincidentPoints))
}

func TestAngularDifference(t *testing.T) {
	tests := []struct {
		a, b float64
		want float64
	}{
		{a: 270, b: 90, want: 180},
		{a: 90, b: 270, want: 180},
		{a: 10, b: 350, want: 20},
		{a: 350, b: 10, want: -20},
		{a: 0, b: 180, want: 180},
		{a: 45, b: 45, want: 0},
		{a: 720, b: 0, want: 0},
		{a: -190, b: 0, want: 170},
	}

	for _, tt := range tests {
		got := AngularDifference(tt.a, tt.b)
		assert.InDelta(t, tt.want, got, 1e-9, "AngularDifference(%v, %v)", tt.a, tt.b)
	}
}

func TestAngularDifference_Properties(t *testing.T) {
	for x := -720.0; x <= 720; x += 7.5 {
		assert.Equal(t, 0.0, AngularDifference(x, x))
		for y := -360.0; y <= 360; y += 15 {
			d := AngularDifference(x, y)
			assert.Greater(t, d, -180.0)
			assert.LessOrEqual(t, d, 180.0)
		}
	}
}

func TestNormalizeDegrees(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeDegrees(360))
	assert.Equal(t, 270.0, NormalizeDegrees(-90))
	assert.Equal(t, 10.0, NormalizeDegrees(730))
	assert.Equal(t, 0.0, NormalizeDegrees(0))
}

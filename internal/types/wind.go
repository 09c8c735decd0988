package types

import "math"

const MetersPerSecondToKph = 3.6

type Wind struct {
	Speed     WindSpeed     `json:"speed"`
	Direction WindDirection `json:"direction"`
}

type WindSpeed struct {
	MetersPerSecond float64 `json:"metersPerSecond"`
	Kph             float64 `json:"kph"`
}

// WindDirection is the meteorological direction the wind blows from.
type WindDirection struct {
	Degrees  float64 `json:"degrees"`
	Cardinal string  `json:"cardinal"`
}

var cardinals = [16]string{
	"N", "NNE", "NE", "ENE",
	"E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW",
	"W", "WNW", "NW", "NNW",
}

func NewWindSpeedFromMetersPerSecond(speed float64) WindSpeed {
	return WindSpeed{
		MetersPerSecond: speed,
		Kph:             speed * MetersPerSecondToKph,
	}
}

// NewWindDirection normalizes degrees into [0,360) and resolves the 16-point compass name.
func NewWindDirection(degrees float64) WindDirection {
	normalized := math.Mod(degrees, 360)
	if normalized < 0 {
		normalized += 360
	}
	if normalized >= 360 {
		normalized = 0
	}

	index := int(normalized/22.5+.5) % 16 // .5 for rounding

	return WindDirection{
		Degrees:  normalized,
		Cardinal: cardinals[index],
	}
}

// NewWind returns nil when either component is missing or not a finite number.
func NewWind(speedMetersPerSecond, directionDegrees *float64) *Wind {
	if !finite(speedMetersPerSecond) || !finite(directionDegrees) {
		return nil
	}
	return &Wind{
		Speed:     NewWindSpeedFromMetersPerSecond(*speedMetersPerSecond),
		Direction: NewWindDirection(*directionDegrees),
	}
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

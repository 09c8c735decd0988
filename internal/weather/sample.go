// Package weather normalizes upstream forecast and historical observations
// into time-indexed samples and matches them against route times.
package weather

import (
	"time"

	"github.com/NicoloTrevisan/WeatherMap/internal/types"
)

// Kind selects the upstream data set a lookup is served from.
type Kind int

const (
	Forecast Kind = iota
	Historical
)

func (k Kind) String() string {
	switch k {
	case Forecast:
		return "forecast"
	case Historical:
		return "historical"
	default:
		return "unknown"
	}
}

// Sample is one normalized weather observation or forecast step.
type Sample struct {
	Time          time.Time           `json:"time"`
	Wind          *types.Wind         `json:"wind,omitempty"`
	Temperature   *types.Temperature  `json:"temperature,omitempty"`
	Precipitation types.Precipitation `json:"precipitation"`
	Humidity      *float64            `json:"humidity,omitempty"`
	Conditions    types.Weather       `json:"conditions"`
}

// Series is a list of samples in upstream order.
type Series []Sample

package tailwind

import (
	"time"

	"github.com/NicoloTrevisan/WeatherMap/internal/config"
	"github.com/NicoloTrevisan/WeatherMap/internal/sampling"
	"github.com/NicoloTrevisan/WeatherMap/internal/weather"
)

// Policy describes where a route is sampled, which weather data set is used
// and how far apart upstream requests are started.
type Policy struct {
	Name    string
	Sampler sampling.Sampler
	Source  weather.Kind
	Stagger time.Duration
}

// Planned scores a route that has not been ridden yet against the forecast.
func Planned(cfg config.TailwindConfig) Policy {
	return Policy{
		Name: "planned",
		Sampler: sampling.DistanceFractions{
			Fractions:       cfg.Fractions,
			LookAheadMeters: cfg.LookAheadMeters,
		},
		Source:  weather.Forecast,
		Stagger: cfg.Stagger,
	}
}

// Recorded scores a ridden activity against historical observations at the
// recorded timestamps.
func Recorded(cfg config.ActivityConfig) Policy {
	return Policy{
		Name: "recorded",
		Sampler: sampling.IndexStride{
			MaxSamples:      cfg.TailwindSamples,
			LookAheadPoints: cfg.LookAheadPoints,
		},
		Source:  weather.Historical,
		Stagger: cfg.Stagger,
	}
}

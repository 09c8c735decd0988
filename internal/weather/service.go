package weather

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NicoloTrevisan/WeatherMap/internal/config"
	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
	"github.com/NicoloTrevisan/WeatherMap/internal/providers/openmeteo"
	"github.com/NicoloTrevisan/WeatherMap/internal/providers/openweather"
	"github.com/NicoloTrevisan/WeatherMap/internal/timezone"
	"github.com/NicoloTrevisan/WeatherMap/internal/types"
)

type ForecastProvider interface {
	// GetForecast fetches the rolling 3-hourly forecast for the given latitude and longitude
	GetForecast(ctx context.Context, latitude, longitude float64) (*openweather.ForecastAPIResponse, error)
}

type HistoricalProvider interface {
	// GetArchive fetches hourly observations for an inclusive range of local dates
	GetArchive(ctx context.Context, latitude, longitude float64, startDate, endDate string) (*openmeteo.ArchiveAPIResponse, error)
}

type Service interface {
	// Forecast returns the forecast series covering the location. reference is
	// the time the caller intends to match against.
	Forecast(ctx context.Context, point geo.Point, reference time.Time) (Series, error)
	// Historical returns hourly observations covering [from, to] at the location.
	Historical(ctx context.Context, point geo.Point, from, to time.Time) (Series, error)
}

type weatherService struct {
	forecastProvider   ForecastProvider
	historicalProvider HistoricalProvider
	timezoneService    timezone.Service
	logger             *slog.Logger
}

func NewWeatherService(cfg *config.Config, logger *slog.Logger) (Service, error) {
	tzSvc, err := timezone.NewService()
	if err != nil {
		return nil, fmt.Errorf("failed to create timezone service: %w", err)
	}
	timeout := cfg.HTTP.Timeout
	return NewWeatherServiceWithProvider(
		openweather.NewClient(cfg.Providers.OpenWeather.BaseURL, cfg.Providers.OpenWeather.APIKey, timeout, logger),
		openmeteo.NewArchiveClient(cfg.Providers.OpenMeteo.ArchiveURL, timeout, logger),
		tzSvc,
		logger,
	), nil
}

func NewWeatherServiceWithProvider(
	forecastProvider ForecastProvider,
	historicalProvider HistoricalProvider,
	timezoneService timezone.Service,
	logger *slog.Logger,
) Service {
	return &weatherService{
		forecastProvider:   forecastProvider,
		historicalProvider: historicalProvider,
		timezoneService:    timezoneService,
		logger:             logger.With("component", "weather-service"),
	}
}

func (s *weatherService) Forecast(ctx context.Context, point geo.Point, reference time.Time) (Series, error) {
	apiResponse, err := s.forecastProvider.GetForecast(ctx, point.Lat, point.Lng)
	if err != nil {
		s.logger.Error("failed to get forecast from provider",
			"latitude", point.Lat,
			"longitude", point.Lng,
			"error", err,
		)
		return nil, fmt.Errorf("failed to get forecast: %w", err)
	}

	series := mapForecastAPIResponseToSeries(apiResponse)

	if len(series) > 0 && reference.After(series[len(series)-1].Time.Add(MaxClockSkew)) {
		s.logger.Warn("requested time is beyond the forecast horizon",
			"latitude", point.Lat,
			"longitude", point.Lng,
			"reference", reference,
			"last_forecast", series[len(series)-1].Time,
		)
	}

	return series, nil
}

func (s *weatherService) Historical(ctx context.Context, point geo.Point, from, to time.Time) (Series, error) {
	if to.Before(from) {
		from, to = to, from
	}

	startDate, endDate := s.localDateRange(point, from, to)

	apiResponse, err := s.historicalProvider.GetArchive(ctx, point.Lat, point.Lng, startDate, endDate)
	if err != nil {
		s.logger.Error("failed to get historical weather from provider",
			"latitude", point.Lat,
			"longitude", point.Lng,
			"start_date", startDate,
			"end_date", endDate,
			"error", err,
		)
		return nil, fmt.Errorf("failed to get historical weather: %w", err)
	}

	return mapArchiveAPIResponseToSeries(apiResponse, s.logger), nil
}

// localDateRange returns the calendar dates of from and to at the location.
// Without a timezone it falls back to UTC padded by a day on each side.
func (s *weatherService) localDateRange(point geo.Point, from, to time.Time) (string, string) {
	loc, err := s.timezoneService.GetLocation(point.Lat, point.Lng)
	if err != nil {
		s.logger.Warn("failed to determine timezone, using padded UTC dates",
			"latitude", point.Lat,
			"longitude", point.Lng,
			"error", err,
		)
		return from.UTC().AddDate(0, 0, -1).Format(openmeteo.DateLayout),
			to.UTC().AddDate(0, 0, 1).Format(openmeteo.DateLayout)
	}

	return from.In(loc).Format(openmeteo.DateLayout), to.In(loc).Format(openmeteo.DateLayout)
}

func mapForecastAPIResponseToSeries(apiResponse *openweather.ForecastAPIResponse) Series {
	series := make(Series, 0, len(apiResponse.List))
	for _, entry := range apiResponse.List {
		sample := Sample{
			Time:     time.Unix(entry.Dt, 0).UTC(),
			Wind:     types.NewWind(entry.Wind.Speed, entry.Wind.Deg),
			Humidity: entry.Main.Humidity,
		}

		if entry.Main.Temp != nil {
			temp := types.NewTemperatureFromCelsius(*entry.Main.Temp)
			sample.Temperature = &temp
		}

		precipMm := 0.0
		if entry.Rain != nil {
			precipMm += entry.Rain.ThreeHours
		}
		if entry.Snow != nil {
			precipMm += entry.Snow.ThreeHours
		}
		sample.Precipitation = types.NewPrecipitationFromMm(precipMm)

		if len(entry.Weather) > 0 {
			sample.Conditions = types.NewWeatherFromSummary(entry.Weather[0].Main, entry.Weather[0].Description)
		} else {
			sample.Conditions = types.NewWeather(types.UnknownWeatherCode)
		}

		series = append(series, sample)
	}
	return series
}

func mapArchiveAPIResponseToSeries(apiResponse *openmeteo.ArchiveAPIResponse, logger *slog.Logger) Series {
	location := responseLocation(apiResponse)
	hourly := apiResponse.Hourly

	series := make(Series, 0, len(hourly.Time))
	for i, ts := range hourly.Time {
		parsed, err := time.ParseInLocation(openmeteo.HourLayout, ts, location)
		if err != nil {
			logger.Warn("skipping unparseable hourly time", "time", ts, "error", err)
			continue
		}

		sample := Sample{
			Time:     parsed.UTC(),
			Wind:     types.NewWind(floatAt(hourly.WindSpeed10m, i), floatAt(hourly.WindDirection10m, i)),
			Humidity: floatAt(hourly.RelativeHumidity2m, i),
		}

		if temp := floatAt(hourly.Temperature2m, i); temp != nil {
			t := types.NewTemperatureFromCelsius(*temp)
			sample.Temperature = &t
		}

		if precip := floatAt(hourly.Precipitation, i); precip != nil {
			sample.Precipitation = types.NewPrecipitationFromMm(*precip)
		}

		if i < len(hourly.WeatherCode) && hourly.WeatherCode[i] != nil {
			sample.Conditions = types.NewWeather(*hourly.WeatherCode[i])
		} else {
			sample.Conditions = types.NewWeather(types.UnknownWeatherCode)
		}

		series = append(series, sample)
	}
	return series
}

// responseLocation returns the zone the archive reported its local times in.
func responseLocation(apiResponse *openmeteo.ArchiveAPIResponse) *time.Location {
	if apiResponse.Timezone != "" {
		if loc, err := time.LoadLocation(apiResponse.Timezone); err == nil {
			return loc
		}
	}
	return time.FixedZone(apiResponse.TimezoneAbbreviation, apiResponse.UtcOffsetSeconds)
}

func floatAt(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

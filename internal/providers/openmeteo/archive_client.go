package openmeteo

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/NicoloTrevisan/WeatherMap/internal/providers"
)

// API Docs: https://open-meteo.com/en/docs/historical-weather-api
// Sample request: https://archive-api.open-meteo.com/v1/archive?latitude=51.84&longitude=5.85&start_date=2024-06-01&end_date=2024-06-01&hourly=temperature_2m,wind_speed_10m,wind_direction_10m&wind_speed_unit=ms&timezone=auto
const (
	baseArchiveURL = "https://archive-api.open-meteo.com/v1/archive"

	// DateLayout is the format of start_date and end_date.
	DateLayout = "2006-01-02"
	// HourLayout is the format of hourly.time entries (local to the response timezone).
	HourLayout = "2006-01-02T15:04"
)

type ArchiveClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewArchiveClient(baseURL string, timeout time.Duration, logger *slog.Logger) *ArchiveClient {
	if baseURL == "" {
		baseURL = baseArchiveURL
	}
	return &ArchiveClient{
		httpClient: providers.NewHTTPClient(timeout),
		baseURL:    baseURL,
		logger:     logger.With("component", "openmeteo-archive-client"),
	}
}

// GetArchive fetches hourly observations for the inclusive local date range.
// Dates are formatted with DateLayout and interpreted by the API in the
// timezone of the coordinate.
func (c *ArchiveClient) GetArchive(ctx context.Context, latitude, longitude float64, startDate, endDate string) (*ArchiveAPIResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	hourlyVars := []string{
		"temperature_2m",
		"relative_humidity_2m",
		"wind_speed_10m",
		"wind_direction_10m",
		"precipitation",
		"weather_code",
	}

	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', 6, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', 6, 64))
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)
	q.Set("hourly", strings.Join(hourlyVars, ","))
	q.Set("wind_speed_unit", "ms")
	q.Set("timezone", "auto")
	u.RawQuery = q.Encode()

	c.logger.Debug("fetching OpenMeteo archive",
		"latitude", latitude,
		"longitude", longitude,
		"start_date", startDate,
		"end_date", endDate,
	)

	var apiResp ArchiveAPIResponse
	if err := providers.GetJSON(ctx, c.httpClient, u, &apiResp, c.logger); err != nil {
		return nil, err
	}

	return &apiResp, nil
}

package openweather

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/NicoloTrevisan/WeatherMap/internal/providers"
)

// API Docs: https://openweathermap.org/forecast5
// Sample request: https://api.openweathermap.org/data/2.5/forecast?lat=51.84&lon=5.85&units=metric&appid=KEY
const (
	baseForecastURL = "https://api.openweathermap.org/data/2.5/forecast"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = baseForecastURL
	}
	return &Client{
		httpClient: providers.NewHTTPClient(timeout),
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger.With("component", "openweather-client"),
	}
}

// GetForecast fetches the rolling 3-hourly forecast for the given coordinate.
func (c *Client) GetForecast(ctx context.Context, latitude, longitude float64) (*ForecastAPIResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("lat", strconv.FormatFloat(latitude, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(longitude, 'f', 6, 64))
	q.Set("units", "metric")
	q.Set("appid", c.apiKey)
	u.RawQuery = q.Encode()

	c.logger.Debug("fetching OpenWeather forecast",
		"latitude", latitude,
		"longitude", longitude,
	)

	var apiResp ForecastAPIResponse
	if err := providers.GetJSON(ctx, c.httpClient, u, &apiResp, c.logger); err != nil {
		return nil, err
	}

	c.logger.Debug("successfully fetched OpenWeather forecast",
		"latitude", latitude,
		"longitude", longitude,
		"entries", len(apiResp.List),
	)

	return &apiResp, nil
}

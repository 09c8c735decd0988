package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/NicoloTrevisan/WeatherMap/internal/providers"
)

// API Docs: https://open-meteo.com/en/docs/elevation-api
// Sample request: https://api.open-meteo.com/v1/elevation?latitude=52.52,48.85&longitude=13.41,2.35
const (
	baseElevationURL = "https://api.open-meteo.com/v1/elevation"

	// MaxElevationBatch is the number of coordinates the API accepts per request.
	MaxElevationBatch = 100
)

var ErrBatchTooLarge = errors.New("too many coordinates for one elevation request")

type ElevationClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewElevationClient(baseURL string, timeout time.Duration, logger *slog.Logger) *ElevationClient {
	if baseURL == "" {
		baseURL = baseElevationURL
	}
	return &ElevationClient{
		httpClient: providers.NewHTTPClient(timeout),
		baseURL:    baseURL,
		logger:     logger.With("component", "openmeteo-elevation-client"),
	}
}

// GetElevations looks up the terrain elevation in meters of each coordinate
// pair. latitudes and longitudes must have the same length.
func (c *ElevationClient) GetElevations(ctx context.Context, latitudes, longitudes []float64) ([]float64, error) {
	if len(latitudes) != len(longitudes) {
		return nil, fmt.Errorf("got %d latitudes and %d longitudes", len(latitudes), len(longitudes))
	}
	if len(latitudes) == 0 {
		return nil, nil
	}
	if len(latitudes) > MaxElevationBatch {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(latitudes), MaxElevationBatch)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("latitude", joinCoordinates(latitudes))
	q.Set("longitude", joinCoordinates(longitudes))
	u.RawQuery = q.Encode()

	c.logger.Debug("fetching OpenMeteo elevations", "count", len(latitudes))

	var apiResp ElevationAPIResponse
	if err := providers.GetJSON(ctx, c.httpClient, u, &apiResp, c.logger); err != nil {
		return nil, err
	}

	if len(apiResp.Elevation) != len(latitudes) {
		return nil, fmt.Errorf("elevation response has %d values for %d coordinates", len(apiResp.Elevation), len(latitudes))
	}

	return apiResp.Elevation, nil
}

func joinCoordinates(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	return strings.Join(parts, ",")
}

package openstreetmap

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

// API Docs: https://nominatim.org/release-docs/develop/api/Search/
// Sample request: https://nominatim.openstreetmap.org/search?q=Nijmegen&format=json&limit=5
// Sample request: https://nominatim.openstreetmap.org/reverse?lat=51.84&lon=5.85&format=json
const (
	baseNominatimURL = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "WeatherMap/1.0"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a Nominatim client. Nominatim requires an identifying
// User-Agent on every request.
func NewClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = baseNominatimURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		httpClient: providers.WithUserAgent(providers.NewHTTPClient(timeout), userAgent),
		baseURL:    baseURL,
		logger:     logger.With("component", "nominatim-client"),
	}
}

// Search returns up to limit places matching a free-form query, best match first.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]PlaceAPIResponse, error) {
	u, err := url.Parse(strings.TrimSuffix(c.baseURL, "/") + "/search")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("addressdetails", "1")
	q.Set("accept-language", "en")
	u.RawQuery = q.Encode()

	c.logger.Debug("searching Nominatim", "query", query, "limit", limit)

	var apiResp []PlaceAPIResponse
	if err := providers.GetJSON(ctx, c.httpClient, u, &apiResp, c.logger); err != nil {
		return nil, err
	}
	return apiResp, nil
}

// Reverse looks up the place at a coordinate.
func (c *Client) Reverse(ctx context.Context, latitude, longitude float64) (*ReverseAPIResponse, error) {
	u, err := url.Parse(strings.TrimSuffix(c.baseURL, "/") + "/reverse")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("lat", strconv.FormatFloat(latitude, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(longitude, 'f', 6, 64))
	q.Set("format", "json")
	q.Set("accept-language", "en")
	u.RawQuery = q.Encode()

	c.logger.Debug("reverse geocoding", "latitude", latitude, "longitude", longitude)

	var apiResp ReverseAPIResponse
	if err := providers.GetJSON(ctx, c.httpClient, u, &apiResp, c.logger); err != nil {
		return nil, err
	}
	return &apiResp, nil
}

package graphhopper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/twpayne/go-polyline"

	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
	"github.com/NicoloTrevisan/WeatherMap/internal/providers"
)

// API Docs: https://docs.graphhopper.com/#tag/Routing-API
// Sample request: https://graphhopper.com/api/1/route?point=51.84,5.85&point=51.98,5.91&vehicle=bike&elevation=true&points_encoded=true&key=KEY
const (
	baseRouteURL = "https://graphhopper.com/api/1/route"

	// elevationScale undoes the extra factor GraphHopper applies to the third
	// polyline dimension: elevation is encoded as meters*100, coordinates as degrees*1e5.
	elevationScale = 1e5 / 100
)

var polylineCodec = polyline.Codec{Dim: 3, Scale: 1e5}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = baseRouteURL
	}
	return &Client{
		httpClient: providers.NewHTTPClient(timeout),
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger.With("component", "graphhopper-client"),
	}
}

// Route requests a bike route through the waypoints in order.
func (c *Client) Route(ctx context.Context, waypoints []geo.Point) (*RouteAPIResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := c.baseQuery(u)
	for _, wp := range waypoints {
		q.Add("point", formatPoint(wp))
	}
	u.RawQuery = q.Encode()

	c.logger.Debug("requesting GraphHopper route", "waypoints", len(waypoints))

	var apiResp RouteAPIResponse
	if err := providers.GetJSON(ctx, c.httpClient, u, &apiResp, c.logger); err != nil {
		return nil, err
	}
	return &apiResp, nil
}

// RoundTrip requests a loop of roughly distanceMeters starting and ending at
// center. The seed selects one of the many possible loops.
func (c *Client) RoundTrip(ctx context.Context, center geo.Point, distanceMeters float64, seed int) (*RouteAPIResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := c.baseQuery(u)
	q.Set("point", formatPoint(center))
	q.Set("algorithm", "round_trip")
	q.Set("round_trip.distance", strconv.FormatFloat(distanceMeters, 'f', 0, 64))
	q.Set("round_trip.seed", strconv.Itoa(seed))
	u.RawQuery = q.Encode()

	c.logger.Debug("requesting GraphHopper round trip",
		"latitude", center.Lat,
		"longitude", center.Lng,
		"distance_meters", distanceMeters,
		"seed", seed,
	)

	var apiResp RouteAPIResponse
	if err := providers.GetJSON(ctx, c.httpClient, u, &apiResp, c.logger); err != nil {
		return nil, err
	}
	return &apiResp, nil
}

func (c *Client) baseQuery(u *url.URL) url.Values {
	q := u.Query()
	q.Set("vehicle", "bike")
	q.Set("elevation", "true")
	q.Set("points_encoded", "true")
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	return q
}

func formatPoint(p geo.Point) string {
	return strconv.FormatFloat(p.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(p.Lng, 'f', 6, 64)
}

// DecodePoints turns an encoded GraphHopper path into a route with elevation.
func DecodePoints(encoded string) (geo.Route, error) {
	coords, rest, err := polylineCodec.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("failed to decode polyline: %d trailing bytes", len(rest))
	}

	route := make(geo.Route, len(coords))
	for i, c := range coords {
		ele := c[2] * elevationScale
		route[i] = geo.TimedPoint{
			Point:     geo.NewPoint(c[0], c[1]),
			Elevation: &ele,
		}
	}
	return route, nil
}

// Package routing turns waypoints into rideable bike routes.
package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/NicoloTrevisan/WeatherMap/internal/config"
	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
	"github.com/NicoloTrevisan/WeatherMap/internal/providers/graphhopper"
)

var (
	// ErrNoRoute is returned when the router answers without a usable path.
	ErrNoRoute = errors.New("no route found")
	// ErrTooFewWaypoints is returned when fewer than two waypoints are given.
	ErrTooFewWaypoints = errors.New("at least two waypoints are required")
)

type RouteProvider interface {
	Route(ctx context.Context, waypoints []geo.Point) (*graphhopper.RouteAPIResponse, error)
	RoundTrip(ctx context.Context, center geo.Point, distanceMeters float64, seed int) (*graphhopper.RouteAPIResponse, error)
}

type Service interface {
	// Route returns a bike route through the waypoints in order.
	Route(ctx context.Context, waypoints []geo.Point) (geo.Route, error)
	// RoundTrip returns a loop of roughly lengthMeters starting and ending at center.
	RoundTrip(ctx context.Context, center geo.Point, lengthMeters float64, seed int) (geo.Route, error)
}

type routingService struct {
	provider RouteProvider
	logger   *slog.Logger
}

func NewRoutingService(cfg *config.Config, logger *slog.Logger) Service {
	client := graphhopper.NewClient(cfg.Providers.GraphHopper.BaseURL, cfg.Providers.GraphHopper.APIKey, cfg.HTTP.Timeout, logger)
	return NewRoutingServiceWithProvider(client, logger)
}

func NewRoutingServiceWithProvider(provider RouteProvider, logger *slog.Logger) Service {
	return &routingService{
		provider: provider,
		logger:   logger.With("component", "routing-service"),
	}
}

func (s *routingService) Route(ctx context.Context, waypoints []geo.Point) (geo.Route, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewWaypoints, len(waypoints))
	}
	for i, wp := range waypoints {
		if !wp.Valid() {
			return nil, fmt.Errorf("waypoint %d has invalid coordinates (%f, %f)", i, wp.Lat, wp.Lng)
		}
	}

	resp, err := s.provider.Route(ctx, waypoints)
	if err != nil {
		s.logger.Error("failed to get route from provider", "waypoints", len(waypoints), "error", err)
		return nil, fmt.Errorf("failed to get route: %w", err)
	}

	return s.firstPath(resp)
}

func (s *routingService) RoundTrip(ctx context.Context, center geo.Point, lengthMeters float64, seed int) (geo.Route, error) {
	if !center.Valid() {
		return nil, fmt.Errorf("center has invalid coordinates (%f, %f)", center.Lat, center.Lng)
	}
	if lengthMeters <= 0 {
		return nil, fmt.Errorf("round trip length must be positive, got %v", lengthMeters)
	}

	resp, err := s.provider.RoundTrip(ctx, center, lengthMeters, seed)
	if err != nil {
		s.logger.Error("failed to get round trip from provider",
			"latitude", center.Lat,
			"longitude", center.Lng,
			"seed", seed,
			"error", err,
		)
		return nil, fmt.Errorf("failed to get round trip: %w", err)
	}

	return s.firstPath(resp)
}

func (s *routingService) firstPath(resp *graphhopper.RouteAPIResponse) (geo.Route, error) {
	if resp == nil || len(resp.Paths) == 0 {
		return nil, ErrNoRoute
	}

	route, err := graphhopper.DecodePoints(resp.Paths[0].Points)
	if err != nil {
		return nil, err
	}
	if len(route) < 2 {
		return nil, fmt.Errorf("%w: path has %d points", ErrNoRoute, len(route))
	}

	s.logger.Debug("decoded route",
		"points", len(route),
		"distance_meters", resp.Paths[0].Distance,
	)
	return route, nil
}

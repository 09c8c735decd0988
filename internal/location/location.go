// Package location turns place names into coordinates and back.
package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/NicoloTrevisan/WeatherMap/internal/config"
	"github.com/NicoloTrevisan/WeatherMap/internal/dispatch"
	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
	"github.com/NicoloTrevisan/WeatherMap/internal/providers/openstreetmap"
)

var (
	// ErrPlaceNotFound is returned when a query or coordinate matches no place.
	ErrPlaceNotFound = errors.New("place not found")
	ErrEmptyQuery    = errors.New("place query is empty")
)

const maxSearchResults = 10

// Place is a named location.
type Place struct {
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Point       geo.Point `json:"point"`
	Locality    string    `json:"locality,omitempty"`
	State       string    `json:"state,omitempty"`
	Country     string    `json:"country,omitempty"`
	CountryCode string    `json:"countryCode,omitempty"`
}

// GeocodeProvider defines the interface for place search providers
type GeocodeProvider interface {
	Search(ctx context.Context, query string, limit int) ([]openstreetmap.PlaceAPIResponse, error)
	Reverse(ctx context.Context, latitude, longitude float64) (*openstreetmap.ReverseAPIResponse, error)
}

type Service interface {
	// Search returns up to limit places matching query, best match first.
	Search(ctx context.Context, query string, limit int) ([]Place, error)
	// Resolve returns the coordinates of the best match for each query, in order.
	Resolve(ctx context.Context, queries []string) ([]geo.Point, error)
	// Reverse returns the place at a coordinate.
	Reverse(ctx context.Context, point geo.Point) (*Place, error)
}

type locationService struct {
	provider GeocodeProvider
	stagger  time.Duration
	logger   *slog.Logger
}

// NewLocationService creates a location service backed by Nominatim
func NewLocationService(cfg *config.Config, logger *slog.Logger) Service {
	nominatim := cfg.Providers.Nominatim
	client := openstreetmap.NewClient(nominatim.BaseURL, nominatim.UserAgent, cfg.HTTP.Timeout, logger)
	return NewLocationServiceWithProvider(client, nominatim.Stagger, logger)
}

// NewLocationServiceWithProvider creates a location service with a custom provider.
// Resolve spaces its lookups stagger apart.
func NewLocationServiceWithProvider(provider GeocodeProvider, stagger time.Duration, logger *slog.Logger) Service {
	return &locationService{
		provider: provider,
		stagger:  stagger,
		logger:   logger.With("component", "location-service"),
	}
}

func (s *locationService) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	limit = max(1, min(limit, maxSearchResults))

	resp, err := s.provider.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search %q: %w", query, err)
	}

	places := make([]Place, 0, len(resp))
	for _, r := range resp {
		place, err := translatePlace(r)
		if err != nil {
			s.logger.Warn("skipping place with unusable coordinates", "place_id", r.PlaceID, "error", err)
			continue
		}
		places = append(places, place)
	}
	return places, nil
}

func (s *locationService) Resolve(ctx context.Context, queries []string) ([]geo.Point, error) {
	results := dispatch.Staggered(ctx, len(queries), s.stagger, func(ctx context.Context, i int) (geo.Point, error) {
		places, err := s.Search(ctx, queries[i], 1)
		if err != nil {
			return geo.Point{}, err
		}
		if len(places) == 0 {
			return geo.Point{}, fmt.Errorf("%w: %q", ErrPlaceNotFound, queries[i])
		}
		return places[0].Point, nil
	})

	points := make([]geo.Point, len(results))
	var errs []error
	for i, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			continue
		}
		points[i] = r.Value
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return points, nil
}

func (s *locationService) Reverse(ctx context.Context, point geo.Point) (*Place, error) {
	resp, err := s.provider.Reverse(ctx, point.Lat, point.Lng)
	if err != nil {
		return nil, fmt.Errorf("failed to reverse geocode: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w at (%f, %f): %s", ErrPlaceNotFound, point.Lat, point.Lng, resp.Error)
	}

	place, err := translatePlace(resp.PlaceAPIResponse)
	if err != nil {
		return nil, err
	}
	return &place, nil
}

// translatePlace converts a Nominatim place to the domain Place type
func translatePlace(resp openstreetmap.PlaceAPIResponse) (Place, error) {
	lat, err := strconv.ParseFloat(resp.Lat, 64)
	if err != nil {
		return Place{}, fmt.Errorf("invalid latitude %q: %w", resp.Lat, err)
	}
	lng, err := strconv.ParseFloat(resp.Lon, 64)
	if err != nil {
		return Place{}, fmt.Errorf("invalid longitude %q: %w", resp.Lon, err)
	}

	name := resp.DisplayName
	if resp.Name != "" {
		name = resp.Name
	}

	locality := resp.Address.City
	if locality == "" {
		locality = resp.Address.Town
	}
	if locality == "" {
		locality = resp.Address.Village
	}

	return Place{
		Name:        name,
		DisplayName: resp.DisplayName,
		Point:       geo.NewPoint(lat, lng),
		Locality:    locality,
		State:       resp.Address.State,
		Country:     resp.Address.Country,
		CountryCode: resp.Address.CountryCode,
	}, nil
}

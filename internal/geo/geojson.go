package geo

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrInvalidGeoJSON is returned when a GeoJSON document does not describe a line.
var ErrInvalidGeoJSON = errors.New("invalid geojson route")

// RouteFromGeoJSON reads a route from a LineString or MultiLineString given as a
// bare geometry, a Feature or the first line feature of a FeatureCollection.
// The parts of a MultiLineString are joined in order.
func RouteFromGeoJSON(data []byte) (Route, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGeoJSON, err)
	}

	var geometry orb.Geometry
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidGeoJSON, err)
		}
		for _, f := range fc.Features {
			if isLine(f.Geometry) {
				geometry = f.Geometry
				break
			}
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidGeoJSON, err)
		}
		geometry = f.Geometry
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidGeoJSON, err)
		}
		geometry = g.Geometry()
	}

	var route Route
	switch g := geometry.(type) {
	case orb.LineString:
		route = appendLine(route, g)
	case orb.MultiLineString:
		for _, ls := range g {
			route = appendLine(route, ls)
		}
	default:
		return nil, fmt.Errorf("%w: no line geometry", ErrInvalidGeoJSON)
	}
	if len(route) < 2 {
		return nil, fmt.Errorf("%w: line has %d points", ErrInvalidGeoJSON, len(route))
	}
	return route, nil
}

func isLine(g orb.Geometry) bool {
	switch g.(type) {
	case orb.LineString, orb.MultiLineString:
		return true
	}
	return false
}

func appendLine(route Route, ls orb.LineString) Route {
	for _, p := range ls {
		route = append(route, TimedPoint{Point: NewPoint(p.Lat(), p.Lon())})
	}
	return route
}

package planning

import (
	"time"

	"github.com/paulmach/orb/geojson"
)

// GeoJSON returns the route as a LineString feature followed by one Point
// feature per weather marker.
func (p *Plan) GeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	line := geojson.NewFeature(p.Route.LineString())
	line.Properties["kind"] = "route"
	line.Properties["distanceKm"] = p.DistanceKm
	line.Properties["start"] = p.Start.Format(time.RFC3339)
	line.Properties["estimatedEnd"] = p.EstimatedEnd.Format(time.RFC3339)
	if p.Elevation.HasElevation {
		line.Properties["ascentMeters"] = p.Elevation.Ascent
		line.Properties["descentMeters"] = p.Elevation.Descent
	}
	if p.TailwindKmh != nil {
		line.Properties["tailwindKmh"] = *p.TailwindKmh
	}
	fc.Append(line)

	for _, m := range p.Markers {
		f := geojson.NewFeature(m.Point.Orb())
		f.Properties["kind"] = "weather"
		f.Properties["distanceKm"] = m.DistanceKm
		f.Properties["estimatedArrival"] = m.EstimatedArrival.Format(time.RFC3339)
		f.Properties["status"] = string(m.Status)
		if m.Message != "" {
			f.Properties["message"] = m.Message
		}
		if s := m.Forecast; s != nil {
			f.Properties["forecastTime"] = s.Time.Format(time.RFC3339)
			f.Properties["description"] = s.Conditions.Description
			f.Properties["precipitationMm"] = s.Precipitation.Mm
			if m.PrecipitationType != "" {
				f.Properties["precipitationType"] = m.PrecipitationType
			}
			if s.Temperature != nil {
				f.Properties["temperatureC"] = s.Temperature.Celsius
			}
			if s.Wind != nil {
				f.Properties["windKmh"] = s.Wind.Speed.Kph
				f.Properties["windDegrees"] = s.Wind.Direction.Degrees
				f.Properties["windCardinal"] = s.Wind.Direction.Cardinal
			}
		}
		fc.Append(f)
	}

	return fc
}

package activity

import "github.com/NicoloTrevisan/WeatherMap/internal/geo"

// locator estimates how far along a recording a point lies. On routes that
// cross themselves the first pass through a location wins, so the figure is
// approximate.
type locator struct {
	route      geo.Route
	index      *geo.VertexIndex
	cumulative []float64
	tolerance  float64
}

func newLocator(route geo.Route, toleranceDegrees float64) *locator {
	return &locator{
		route:      route,
		index:      geo.NewVertexIndex(route),
		cumulative: route.CumulativeDistances(),
		tolerance:  toleranceDegrees,
	}
}

// distanceKm returns the distance from the start to the first recorded vertex
// near p. Without one it spreads sample i of n evenly over the straight line
// from start to finish.
func (l *locator) distanceKm(p geo.Point, i, n int) float64 {
	if idx, ok := l.index.FirstWithin(p, l.tolerance); ok {
		return l.cumulative[idx] / 1000
	}
	if n < 2 || len(l.route) < 2 {
		return 0
	}
	straight := geo.Distance(l.route[0].Point, l.route[len(l.route)-1].Point)
	return float64(i) / float64(n-1) * straight / 1000
}

package geo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoute_TotalDistance(t *testing.T) {
	r := RouteFromPoints(Point{52, 5}, Point{52, 5.5}, Point{52, 6})
	assert.InDelta(t, Distance(Point{52, 5}, Point{52, 6}), r.TotalDistance(), 1)

	same := RouteFromPoints(Point{52, 5}, Point{52, 5}, Point{52, 5})
	assert.Equal(t, 0.0, same.TotalDistance())
}

func TestRoute_CumulativeDistances(t *testing.T) {
	r := RouteFromPoints(Point{0, 0}, Point{0, 1}, Point{0, 1}, Point{0, 2})
	cum := r.CumulativeDistances()
	assert.Len(t, cum, 4)
	assert.Equal(t, 0.0, cum[0])
	assert.Equal(t, cum[1], cum[2])
	assert.InDelta(t, r.TotalDistance(), cum[3], 1e-6)
}

func TestRoute_Flags(t *testing.T) {
	r := RouteFromPoints(Point{0, 0}, Point{0, 1})
	assert.False(t, r.HasTimestamps())
	assert.False(t, r.HasElevation())

	now := time.Now()
	ele := 12.5
	r[1].Time = &now
	r[0].Elevation = &ele
	assert.True(t, r.HasTimestamps())
	assert.True(t, r.HasElevation())
}

func TestPoint_Valid(t *testing.T) {
	assert.True(t, Point{Lat: 90, Lng: -180}.Valid())
	assert.False(t, Point{Lat: 91, Lng: 0}.Valid())
	assert.False(t, Point{Lat: 0, Lng: 181}.Valid())
}

func TestRoute_LineString(t *testing.T) {
	r := RouteFromPoints(Point{Lat: 52, Lng: 5}, Point{Lat: 53, Lng: 6})
	ls := r.LineString()
	assert.Equal(t, 5.0, ls[0].Lon())
	assert.Equal(t, 52.0, ls[0].Lat())
}

func TestVertexIndex_FirstWithin(t *testing.T) {
	// Out-and-back route: the return leg passes the outbound vertices again.
	r := RouteFromPoints(
		Point{52.0000, 5.0000},
		Point{52.0100, 5.0000},
		Point{52.0200, 5.0000},
		Point{52.0100, 5.0002},
		Point{52.0000, 5.0002},
	)
	idx := NewVertexIndex(r)
	assert.Equal(t, 5, idx.Len())

	i, ok := idx.FirstWithin(Point{52.0100, 5.0002}, 0.001)
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	i, ok = idx.FirstWithin(Point{52.0200, 5.0000}, 0.001)
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = idx.FirstWithin(Point{53, 6}, 0.001)
	assert.False(t, ok)
}

package geo

import (
	"math"

	"github.com/tidwall/rtree"
)

// VertexIndex is a spatial index over the vertices of a route.
type VertexIndex struct {
	tree rtree.RTreeG[int]
	size int
}

// NewVertexIndex indexes every vertex of the route by its position in the route.
func NewVertexIndex(r Route) *VertexIndex {
	idx := &VertexIndex{size: len(r)}
	for i, p := range r {
		pt := [2]float64{p.Lng, p.Lat}
		idx.tree.Insert(pt, pt, i)
	}
	return idx
}

// FirstWithin returns the lowest route index whose vertex lies strictly within
// tolerance degrees of p on both axes.
func (v *VertexIndex) FirstWithin(p Point, toleranceDegrees float64) (int, bool) {
	found := -1
	lo := [2]float64{p.Lng - toleranceDegrees, p.Lat - toleranceDegrees}
	hi := [2]float64{p.Lng + toleranceDegrees, p.Lat + toleranceDegrees}
	v.tree.Search(lo, hi, func(min, _ [2]float64, i int) bool {
		if math.Abs(min[0]-p.Lng) >= toleranceDegrees || math.Abs(min[1]-p.Lat) >= toleranceDegrees {
			return true
		}
		if found < 0 || i < found {
			found = i
		}
		return true
	})
	return found, found >= 0
}

// Len returns the number of indexed vertices.
func (v *VertexIndex) Len() int {
	return v.size
}

package geo

import "math"

// ElevationStats summarizes the climbing along a route in meters.
type ElevationStats struct {
	HasElevation bool    `json:"hasElevation"`
	Ascent       float64 `json:"ascentMeters"`
	Descent      float64 `json:"descentMeters"`
	Min          float64 `json:"minMeters"`
	Max          float64 `json:"maxMeters"`
	HighestIndex int     `json:"-"`
}

// ElevationStats accumulates elevation changes over consecutive vertices that
// both carry an elevation. All values are zero when no such pair exists.
func (r Route) ElevationStats() ElevationStats {
	stats := ElevationStats{
		Min:          math.Inf(1),
		Max:          math.Inf(-1),
		HighestIndex: -1,
	}

	for i := 1; i < len(r); i++ {
		prev, curr := r[i-1], r[i]
		if !prev.HasElevation() || !curr.HasElevation() {
			continue
		}
		stats.HasElevation = true

		diff := *curr.Elevation - *prev.Elevation
		if diff > 0 {
			stats.Ascent += diff
		} else {
			stats.Descent -= diff
		}

		if *prev.Elevation > stats.Max {
			stats.Max = *prev.Elevation
			stats.HighestIndex = i - 1
		}
		if *curr.Elevation > stats.Max {
			stats.Max = *curr.Elevation
			stats.HighestIndex = i
		}
		stats.Min = math.Min(stats.Min, math.Min(*prev.Elevation, *curr.Elevation))
	}

	if !stats.HasElevation {
		return ElevationStats{HighestIndex: -1}
	}
	return stats
}

package weather

import "time"

// MaxClockSkew is the largest distance between a sample and the requested
// time for the sample to still count as a match. The bound is exclusive.
const MaxClockSkew = 3*time.Hour + 30*time.Minute

// Closest returns the sample nearest in time to target. On ties the earlier
// entry in the series wins. It reports false for an empty series or when the
// nearest sample is MaxClockSkew or more away.
func Closest(series Series, target time.Time) (Sample, bool) {
	best := -1
	var bestDiff time.Duration
	for i, s := range series {
		diff := absDuration(s.Time.Sub(target))
		if best < 0 || diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}

	if best < 0 || bestDiff >= MaxClockSkew {
		return Sample{}, false
	}
	return series[best], true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// Package stats provides the descriptive statistics behind distviz:
// percentiles, interquartile-range outlier fences, histogram binning, and
// kernel density estimation for violin silhouettes.
//
// All functions treat their inputs as read-only and are deterministic for
// identical inputs.
package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Well-known percentile thresholds.
const (
	PercentileQ1     = 0.25
	PercentileMedian = 0.5
	PercentileQ3     = 0.75
)

// Percentile returns the p-th percentile of values using linear
// interpolation between the two closest ranks (the same convention as
// numpy's default percentile). p must be in [0, 1]. The input slice is not
// modified; a copy is sorted internally. Returns 0 for an empty slice.
func Percentile(values []float64, p float64) float64 {
	count := len(values)
	if count == 0 {
		return 0
	}

	sorted := make([]float64, count)
	copy(sorted, values)
	slices.Sort(sorted)

	return percentileSorted(sorted, p)
}

// percentileSorted computes the percentile over an already sorted slice.
func percentileSorted(sorted []float64, p float64) float64 {
	count := len(sorted)

	idx := p * float64(count-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))

	if lower == upper || upper >= count {
		return sorted[lower]
	}

	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// Quartiles returns the first quartile, median, and third quartile of
// values. A single sort is shared between the three percentiles.
func Quartiles(values []float64) (q1, median, q3 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	slices.Sort(sorted)

	q1 = percentileSorted(sorted, PercentileQ1)
	median = percentileSorted(sorted, PercentileMedian)
	q3 = percentileSorted(sorted, PercentileQ3)
	return q1, median, q3
}

// Median returns the 50th percentile of values.
func Median(values []float64) float64 {
	return Percentile(values, PercentileMedian)
}

// StdDev returns the sample standard deviation of values.
func StdDev(values []float64) float64 {
	return stat.StdDev(values, nil)
}

// IsUsable reports whether v can participate in statistics.
// NaN and infinite values are excluded from percentile and fence
// computations.
func IsUsable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

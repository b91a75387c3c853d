package stats

import (
	"gonum.org/v1/gonum/floats"
)

// Bin is one histogram bucket. Density is the count normalized so the
// histogram integrates to one: count / (n * width).
type Bin struct {
	Min     float64
	Max     float64
	Count   int
	Density float64
}

// Histogram buckets values into bins equal-width bins spanning the data
// range. Returns nil for empty input or a non-positive bin count.
func Histogram(values []float64, bins int) []Bin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}
	return HistogramIn(values, bins, floats.Min(values), floats.Max(values))
}

// HistogramIn buckets values into bins equal-width bins spanning
// [min, max]. Values outside the range are dropped, matching a range
// restriction on a density histogram. A degenerate range (min >= max) is
// widened by one unit on each side so a constant sample still produces a
// drawable histogram.
func HistogramIn(values []float64, bins int, min, max float64) []Bin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}

	if min >= max {
		min, max = min-1, max+1
	}

	width := (max - min) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Min = min + float64(i)*width
		out[i].Max = out[i].Min + width
	}

	n := 0
	for _, v := range values {
		if !IsUsable(v) || v < min || v > max {
			continue
		}
		idx := int((v - min) / width)
		if idx == bins { // v == max lands in the last bin
			idx = bins - 1
		}
		out[idx].Count++
		n++
	}

	if n == 0 {
		return out
	}
	for i := range out {
		out[i].Density = float64(out[i].Count) / (float64(n) * width)
	}
	return out
}

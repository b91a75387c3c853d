package stats

import (
	"math"
	"testing"
)

func TestHistogram(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	bins := Histogram(values, 5)

	if len(bins) != 5 {
		t.Fatalf("len(bins) = %d, want 5", len(bins))
	}

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != len(values) {
		t.Errorf("total count = %d, want %d", total, len(values))
	}

	// Bins tile the range without gaps.
	for i := 1; i < len(bins); i++ {
		if !almostEqual(bins[i].Min, bins[i-1].Max) {
			t.Errorf("bin %d starts at %v, previous ends at %v", i, bins[i].Min, bins[i-1].Max)
		}
	}

	// Density integrates to one.
	integral := 0.0
	for _, b := range bins {
		integral += b.Density * (b.Max - b.Min)
	}
	if !almostEqual(integral, 1) {
		t.Errorf("density integral = %v, want 1", integral)
	}
}

func TestHistogramMaxValueInLastBin(t *testing.T) {
	bins := Histogram([]float64{0, 10}, 4)
	if bins[len(bins)-1].Count != 1 {
		t.Errorf("max value not in last bin: %+v", bins)
	}
}

func TestHistogramIn(t *testing.T) {
	values := []float64{-5, 0, 1, 2, 3, 50}
	bins := HistogramIn(values, 4, 0, 4)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	// -5 and 50 fall outside the range restriction.
	if total != 4 {
		t.Errorf("total count = %d, want 4", total)
	}
}

func TestHistogramDegenerate(t *testing.T) {
	if bins := Histogram(nil, 10); bins != nil {
		t.Errorf("Histogram(nil) = %v, want nil", bins)
	}
	if bins := Histogram([]float64{1, 2}, 0); bins != nil {
		t.Errorf("Histogram with 0 bins = %v, want nil", bins)
	}

	// Constant sample still produces drawable bins.
	bins := Histogram([]float64{3, 3, 3}, 4)
	if len(bins) != 4 {
		t.Fatalf("len(bins) = %d, want 4", len(bins))
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != 3 {
		t.Errorf("total count = %d, want 3", total)
	}
}

func TestHistogramSkipsUnusable(t *testing.T) {
	bins := HistogramIn([]float64{1, math.NaN(), 2}, 2, 0, 4)
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != 2 {
		t.Errorf("total count = %d, want 2", total)
	}
}

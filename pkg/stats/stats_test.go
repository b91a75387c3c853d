package stats

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{"median odd", []float64{3, 1, 2}, 0.5, 2},
		{"median even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"q1 interpolated", []float64{1, 2, 3, 4, 5, 100}, 0.25, 2.25},
		{"q3 interpolated", []float64{1, 2, 3, 4, 5, 100}, 0.75, 4.75},
		{"p0 is min", []float64{5, 1, 9}, 0, 1},
		{"p1 is max", []float64{5, 1, 9}, 1, 9},
		{"single element", []float64{7}, 0.25, 7},
		{"empty", nil, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.values, tt.p)
			if !almostEqual(got, tt.want) {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.values, tt.p, got, tt.want)
			}
		})
	}
}

func TestPercentileDoesNotMutateInput(t *testing.T) {
	values := []float64{9, 1, 5}
	Percentile(values, 0.5)
	if values[0] != 9 || values[1] != 1 || values[2] != 5 {
		t.Errorf("input mutated: %v", values)
	}
}

func TestQuartiles(t *testing.T) {
	q1, med, q3 := Quartiles([]float64{1, 2, 3, 4, 5, 100})
	if !almostEqual(q1, 2.25) {
		t.Errorf("q1 = %v, want 2.25", q1)
	}
	if !almostEqual(med, 3.5) {
		t.Errorf("median = %v, want 3.5", med)
	}
	if !almostEqual(q3, 4.75) {
		t.Errorf("q3 = %v, want 4.75", q3)
	}
}

func TestMedian(t *testing.T) {
	if got := Median([]float64{4, 2, 8}); !almostEqual(got, 4) {
		t.Errorf("Median = %v, want 4", got)
	}
}

func TestIsUsable(t *testing.T) {
	tests := []struct {
		v    float64
		want bool
	}{
		{1.5, true},
		{0, true},
		{math.NaN(), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
	}

	for _, tt := range tests {
		if got := IsUsable(tt.v); got != tt.want {
			t.Errorf("IsUsable(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

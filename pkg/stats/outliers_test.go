package stats

import (
	"math"
	"testing"

	"github.com/distviz/distviz/pkg/errors"
)

func identity(v float64) float64 { return v }

func TestOutliers(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []int
	}{
		{"single high outlier", []float64{1, 2, 3, 4, 5, 100}, []int{5}},
		{"no outliers", []float64{1, 2, 3, 4, 5}, nil},
		{"all identical", []float64{7, 7, 7, 7}, nil},
		{"single element", []float64{42}, nil},
		{"low and high", []float64{-100, 1, 2, 3, 4, 5, 100}, []int{0, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Outliers(tt.values, identity)
			if err != nil {
				t.Fatalf("Outliers() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Outliers() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Outliers()[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestOutliersIndexInvariants(t *testing.T) {
	values := []float64{50, 1, 2, 3, 2, 1, 3, 2, -80, 2}
	got, err := Outliers(values, identity)
	if err != nil {
		t.Fatalf("Outliers() error = %v", err)
	}

	seen := map[int]bool{}
	prev := -1
	for _, idx := range got {
		if idx < 0 || idx >= len(values) {
			t.Errorf("index %d out of range [0, %d)", idx, len(values))
		}
		if idx <= prev {
			t.Errorf("indices not strictly ascending: %v", got)
		}
		if seen[idx] {
			t.Errorf("duplicate index %d", idx)
		}
		seen[idx] = true
		prev = idx
	}
}

func TestOutliersEmptyInput(t *testing.T) {
	_, err := Outliers(nil, identity)
	if !errors.Is(err, errors.ErrCodeEmptyInput) {
		t.Errorf("Outliers(nil) error = %v, want EMPTY_INPUT", err)
	}
}

func TestOutliersNilKey(t *testing.T) {
	_, err := Outliers([]float64{1, 2, 3}, nil)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Outliers with nil key error = %v, want INVALID_INPUT", err)
	}
}

func TestOutliersKeyFunction(t *testing.T) {
	type sample struct {
		Label string
		Value float64
	}
	data := []sample{
		{"a", 1}, {"b", 2}, {"c", 3}, {"d", 4}, {"e", 5}, {"f", 100},
	}

	got, err := Outliers(data, func(s sample) float64 { return s.Value })
	if err != nil {
		t.Fatalf("Outliers() error = %v", err)
	}
	if len(got) != 1 || got[0] != 5 {
		t.Errorf("Outliers() = %v, want [5]", got)
	}
}

func TestOutliersAllUnusable(t *testing.T) {
	values := []float64{math.NaN(), math.Inf(1)}
	got, err := Outliers(values, identity)
	if err != nil {
		t.Fatalf("Outliers() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Outliers() = %v, want empty", got)
	}
}

func TestFences(t *testing.T) {
	lower, upper := Fences([]float64{1, 2, 3, 4, 5, 100})
	if !almostEqual(lower, -1.5) {
		t.Errorf("lower fence = %v, want -1.5", lower)
	}
	if !almostEqual(upper, 8.5) {
		t.Errorf("upper fence = %v, want 8.5", upper)
	}
}

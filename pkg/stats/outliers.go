package stats

import (
	"github.com/distviz/distviz/pkg/errors"
)

// FenceMultiplier is the Tukey fence factor applied to the interquartile
// range when classifying outliers.
const FenceMultiplier = 1.5

// Fences returns the lower and upper Tukey fences for values:
// Q1 - 1.5*IQR and Q3 + 1.5*IQR. Values strictly outside the fences are
// outliers.
func Fences(values []float64) (lower, upper float64) {
	q1, _, q3 := Quartiles(values)
	eps := FenceMultiplier * (q3 - q1)
	return q1 - eps, q3 + eps
}

// Outliers returns the indices of elements of data whose derived value
// falls strictly outside the interquartile-range fences. key maps each
// element to the scalar the fences are computed over.
//
// Indices are 0-based into data and returned in ascending order. Elements
// whose derived value is NaN or infinite do not participate: they are never
// outliers and are excluded from the fence computation. When no element
// yields a usable value the result is empty with a nil error.
//
// Calling Outliers with empty data is an error (EMPTY_INPUT); a degenerate
// distribution (all values equal, or a single element) is not, and simply
// yields no outliers.
func Outliers[T any](data []T, key func(T) float64) ([]int, error) {
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "no data to scan for outliers")
	}
	if key == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "outlier key function is required")
	}

	values := make([]float64, len(data))
	usable := make([]float64, 0, len(data))
	for i, d := range data {
		values[i] = key(d)
		if IsUsable(values[i]) {
			usable = append(usable, values[i])
		}
	}

	if len(usable) == 0 {
		return []int{}, nil
	}

	lower, upper := Fences(usable)

	var outliers []int
	for i, v := range values {
		if !IsUsable(v) {
			continue
		}
		if v < lower || v > upper {
			outliers = append(outliers, i)
		}
	}

	return outliers, nil
}

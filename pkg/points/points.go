// Package points defines the 2-D point set distviz analyzes and the
// import/export routines around it.
//
// A point set is stored as two parallel sequences (abscissa and ordinate)
// of equal length. The canonical on-disk formats are a two-column CSV file
// and a JSON document; both round-trip: import → export → re-import
// produces identical results.
package points

import (
	"github.com/distviz/distviz/pkg/errors"
)

// Set is an ordered sequence of 2-D points held as two parallel columns.
// X is the abscissa, Y the ordinate. A valid Set has len(X) == len(Y);
// use Validate to check sets built by hand.
type Set struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// FromPairs builds a Set from (x, y) tuples.
func FromPairs(pairs [][2]float64) Set {
	s := Set{
		X: make([]float64, len(pairs)),
		Y: make([]float64, len(pairs)),
	}
	for i, p := range pairs {
		s.X[i] = p[0]
		s.Y[i] = p[1]
	}
	return s
}

// Len returns the number of points.
func (s Set) Len() int {
	return len(s.X)
}

// Validate checks the parallel-column invariant.
// Returns a SHAPE_MISMATCH error when the abscissa and ordinate sequences
// have different lengths.
func (s Set) Validate() error {
	if len(s.X) != len(s.Y) {
		return errors.New(errors.ErrCodeShapeMismatch,
			"abscissa and ordinate must have the same size (got %d and %d)", len(s.X), len(s.Y))
	}
	return nil
}

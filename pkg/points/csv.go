package points

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/distviz/distviz/pkg/errors"
)

// ReadCSV parses a two-column point set from r.
//
// Every record must have exactly two columns; any other width is an
// INVALID_DIMENSION error naming the offending row. Cells must parse as
// floating point numbers (INVALID_POINTS otherwise). A leading record
// with no numeric cell is tolerated and treated as a header; a first row
// that is only partly numeric is an error, not a header.
func ReadCSV(r io.Reader) (Set, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // column count is validated per record below
	cr.TrimLeadingSpace = true

	var s Set
	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Set{}, errors.Wrap(errors.ErrCodeInvalidPoints, err, "read row %d", row+1)
		}
		row++

		if len(rec) != 2 {
			return Set{}, errors.New(errors.ErrCodeInvalidDimension,
				"row %d has %d columns, point data must be two-dimensional (x, y)", row, len(rec))
		}

		x, errX := strconv.ParseFloat(rec[0], 64)
		y, errY := strconv.ParseFloat(rec[1], 64)
		if errX != nil || errY != nil {
			// A header has no numeric cells; a half-numeric first row is
			// bad data, not a header.
			if row == 1 && errX != nil && errY != nil {
				continue
			}
			return Set{}, errors.New(errors.ErrCodeInvalidPoints,
				"row %d is not numeric: %q, %q", row, rec[0], rec[1])
		}

		s.X = append(s.X, x)
		s.Y = append(s.Y, y)
	}

	return s, nil
}

// ImportCSV reads a point set from a CSV file at path.
// This is a convenience wrapper around [ReadCSV] for file-based input.
func ImportCSV(path string) (Set, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Set{}, errors.New(errors.ErrCodeFileNotFound, "no such file: %s", path)
	}
	if err != nil {
		return Set{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	s, err := ReadCSV(f)
	if err != nil {
		return Set{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteCSV writes the point set to w as two-column CSV with an "x,y"
// header.
func WriteCSV(s Set, w io.Writer) error {
	if err := s.Validate(); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range s.X {
		rec := []string{
			strconv.FormatFloat(s.X[i], 'g', -1, 64),
			strconv.FormatFloat(s.Y[i], 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

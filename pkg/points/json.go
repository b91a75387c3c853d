package points

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/distviz/distviz/pkg/errors"
)

// WriteJSON encodes the point set as JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(s Set, w io.Writer) error {
	if err := s.Validate(); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a point set from r and validates its shape.
func ReadJSON(r io.Reader) (Set, error) {
	var s Set
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Set{}, errors.Wrap(errors.ErrCodeInvalidPoints, err, "decode point set")
	}
	if err := s.Validate(); err != nil {
		return Set{}, err
	}
	return s, nil
}

// ExportJSON writes a point set to a JSON file at path.
func ExportJSON(s Set, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(s, f)
}

// ImportJSON reads a point set from a JSON file at path.
func ImportJSON(path string) (Set, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Set{}, errors.New(errors.ErrCodeFileNotFound, "no such file: %s", path)
	}
	if err != nil {
		return Set{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	s, err := ReadJSON(f)
	if err != nil {
		return Set{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

package pipeline

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/distviz/distviz/pkg/cache"
	"github.com/distviz/distviz/pkg/errors"
	"github.com/distviz/distviz/pkg/observability"
	"github.com/distviz/distviz/pkg/points"
)

// LoadPoints reads point data from the input file, dispatching on the
// file extension (.csv or .json).
func (r *Runner) LoadPoints(ctx context.Context, opts Options) (points.Set, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return points.Set{}, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Input)

	var set points.Set
	var err error
	switch strings.ToLower(filepath.Ext(opts.Input)) {
	case ".csv":
		set, err = points.ImportCSV(opts.Input)
	case ".json":
		set, err = points.ImportJSON(opts.Input)
	default:
		err = errors.New(errors.ErrCodeInvalidFormat,
			"unsupported input format %q (must be .csv or .json)", filepath.Ext(opts.Input))
	}

	observability.Pipeline().OnLoadComplete(ctx, opts.Input, set.Len(), time.Since(start), err)
	if err != nil {
		return points.Set{}, err
	}

	opts.Logger.Debug("loaded points", "input", opts.Input, "count", set.Len())
	return set, nil
}

// DataHash computes the content hash that identifies a point set in cache
// keys and API responses.
func DataHash(set points.Set) string {
	data, _ := json.Marshal(set)
	return cache.Hash(data)
}

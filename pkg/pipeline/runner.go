package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/distviz/distviz/pkg/cache"
	"github.com/distviz/distviz/pkg/dist"
	"github.com/distviz/distviz/pkg/observability"
	"github.com/distviz/distviz/pkg/points"
	"github.com/distviz/distviz/pkg/stats"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	set, err := r.LoadPoints(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Points = set
	result.DataHash = DataHash(set)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.PointCount = set.Len()

	r.Logger.Info("loaded points",
		"input", opts.Input,
		"count", set.Len(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, set, result.DataHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered figures",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders artifacts with caching and reports whether
// every format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, set points.Set, dataHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cfg, err := opts.Config()
	if err != nil {
		return nil, false, err
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Try to get all formats from cache (unless refresh requested).
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		allCached := true
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(dataHash, opts.ArtifactKeyOpts(format, cfg))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil
		}
	}

	// Render all formats.
	rendered, err := renderFormats(set, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format.
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(dataHash, opts.ArtifactKeyOpts(format, cfg))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, set points.Set, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, set, DataHash(set), opts)
	return artifacts, err
}

// Outliers detects outliers on one axis of the point set, caching the
// report by data hash.
func (r *Runner) Outliers(ctx context.Context, set points.Set, axis dist.Axis, refresh bool) (*OutlierReport, error) {
	if err := dist.ValidateAxis(axis); err != nil {
		return nil, err
	}

	dataHash := DataHash(set)
	key := r.Keyer.OutlierKey(dataHash, string(axis))

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var report OutlierReport
			if err := json.Unmarshal(data, &report); err == nil {
				observability.Cache().OnCacheHit(ctx, "outliers")
				return &report, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "outliers")
	}

	values := dist.AxisValues(set, axis)
	indices, err := stats.Outliers(values, func(v float64) float64 { return v })
	if err != nil {
		return nil, err
	}

	usable := make([]float64, 0, len(values))
	for _, v := range values {
		if stats.IsUsable(v) {
			usable = append(usable, v)
		}
	}

	if indices == nil {
		indices = []int{}
	}
	report := &OutlierReport{
		Axis:    string(axis),
		Indices: indices,
	}
	if len(usable) > 0 {
		report.Lower, report.Upper = stats.Fences(usable)
	}
	for _, i := range indices {
		report.Values = append(report.Values, values[i])
	}

	if data, err := json.Marshal(report); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLOutliers); err == nil {
			observability.Cache().OnCacheSet(ctx, "outliers", len(data))
		}
	}

	return report, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// Package pipeline provides the core visualization pipeline.
//
// This package implements the complete load → render pipeline that can be
// used by CLI and API components. By centralizing this logic, both entry
// points share validation, caching, and defaults.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Load: Read 2-D point data from a CSV or JSON file
//  2. Render: Generate distribution figures in various formats
//     (PNG, SVG, PDF, HTML)
//
// Outlier detection runs as a separate operation on loaded points and
// shares the same cache.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:    "points.csv",
//	    Diagrams: []string{"violin", "hist"},
//	    Axes:     []string{"X", "Y"},
//	    Formats:  []string{"png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/distviz/distviz/pkg/cache"
	"github.com/distviz/distviz/pkg/dist"
	"github.com/distviz/distviz/pkg/errors"
	"github.com/distviz/distviz/pkg/points"
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatHTML = "html"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatHTML: true,
}

// Default selections applied when options leave them empty.
var (
	DefaultDiagrams = []string{string(dist.DiagramViolin), string(dist.DiagramHist), string(dist.DiagramBoxplot)}
	DefaultAxes     = []string{string(dist.AxisX), string(dist.AxisY)}
	DefaultFormats  = []string{FormatPNG}
)

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Input   string `json:"input"`
	Refresh bool   `json:"refresh,omitempty"`

	// Figure options
	Diagrams []string `json:"diagrams,omitempty"`
	Axes     []string `json:"axes,omitempty"`
	Formats  []string `json:"formats,omitempty"`

	// Style overrides; zero values keep the defaults.
	PlotColor   string      `json:"plot_color,omitempty"`
	BlockWidth  int         `json:"block_width,omitempty"`
	BlockHeight int         `json:"block_height,omitempty"`
	HistBins    int         `json:"hist_bins,omitempty"`
	HistRange   *dist.Range `json:"hist_range,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`

	// Resolved selections, populated during validation.
	diagrams []dist.DiagramType
	axes     []dist.Axis
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Points is the loaded point data.
	Points points.Set

	// DataHash is the content hash of the point data.
	DataHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PointCount int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// OutlierReport is the cacheable result of outlier detection on one axis.
type OutlierReport struct {
	Axis    string    `json:"axis"`
	Indices []int     `json:"indices"`
	Lower   float64   `json:"lower"`
	Upper   float64   `json:"upper"`
	Values  []float64 `json:"values"`
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: png, svg, pdf, html)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading point data.
func (o *Options) ValidateForLoad() error {
	if err := errors.ValidateInputPath(o.Input); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Diagrams) == 0 {
		o.Diagrams = DefaultDiagrams
	}
	if len(o.Axes) == 0 {
		o.Axes = DefaultAxes
	}
	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	diagrams := make([]dist.DiagramType, 0, len(o.Diagrams))
	for _, s := range o.Diagrams {
		d, err := dist.ParseDiagramType(s)
		if err != nil {
			return err
		}
		diagrams = append(diagrams, d)
	}
	axes := make([]dist.Axis, 0, len(o.Axes))
	for _, s := range o.Axes {
		a, err := dist.ParseAxis(s)
		if err != nil {
			return err
		}
		axes = append(axes, a)
	}
	o.diagrams = diagrams
	o.axes = axes

	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := o.Config(); err != nil {
		return err
	}
	return nil
}

// DiagramTypes returns the resolved diagram selection. ValidateForRender
// must have succeeded first.
func (o *Options) DiagramTypes() []dist.DiagramType { return o.diagrams }

// AxisSelection returns the resolved axis selection. ValidateForRender
// must have succeeded first.
func (o *Options) AxisSelection() []dist.Axis { return o.axes }

// Config builds the figure configuration with the option overrides
// applied on top of the defaults.
func (o *Options) Config() (dist.Config, error) {
	cfg := dist.Default()
	if o.PlotColor != "" {
		if err := cfg.SetPlotColor(o.PlotColor); err != nil {
			return dist.Config{}, err
		}
	}
	if o.BlockWidth != 0 {
		if err := cfg.SetBlockWidth(o.BlockWidth); err != nil {
			return dist.Config{}, err
		}
	}
	if o.BlockHeight != 0 {
		if err := cfg.SetBlockHeight(o.BlockHeight); err != nil {
			return dist.Config{}, err
		}
	}
	if o.HistBins != 0 {
		if err := cfg.SetHistBins(o.HistBins); err != nil {
			return dist.Config{}, err
		}
	}
	if o.HistRange != nil {
		if err := cfg.SetHistRange(o.HistRange.Min, o.HistRange.Max); err != nil {
			return dist.Config{}, err
		}
	}
	return cfg, nil
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string, cfg dist.Config) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Diagrams: o.Diagrams,
		Axes:     o.Axes,
		Format:   format,
		Config:   cfg,
	}
}

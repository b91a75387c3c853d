package dist

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/distviz/distviz/pkg/errors"
)

// Render defaults.
const (
	DefaultBlockWidth  = 6
	DefaultBlockHeight = 4
	DefaultPlotColor   = "forestgreen"
	DefaultDarkerColor = "green"
	DefaultHistBins    = 30
)

// BoxFillColor is the fixed fill of boxplot boxes.
const BoxFillColor = "#83B783"

// Range restricts a histogram to [Min, Max].
type Range struct {
	Min float64 `json:"min" toml:"min"`
	Max float64 `json:"max" toml:"max"`
}

// Config holds the presentation parameters read at render time.
//
// Config is a plain value: the zero-config Default() carries the fixed
// defaults, and callers override fields through the Set* methods, which
// validate their input and leave the config untouched on error. Each
// Visualizer holds its own copy, so concurrent visualizations with
// different settings cannot interfere.
type Config struct {
	// BlockWidth and BlockHeight are the grid cell dimensions in inches.
	BlockWidth  int `json:"block_width" toml:"block_width"`
	BlockHeight int `json:"block_height" toml:"block_height"`

	// PlotColor fills violin bodies and histogram bars and colors boxplot
	// medians. DarkerColor draws violin outlines and summary lines; it is
	// fixed and has no setter.
	PlotColor   string `json:"plot_color" toml:"plot_color"`
	DarkerColor string `json:"-" toml:"-"`

	// HistBins is the histogram bucket count. HistRange, when non-nil,
	// restricts histograms to a value range; nil means unbounded.
	HistBins  int    `json:"hist_bins" toml:"hist_bins"`
	HistRange *Range `json:"hist_range,omitempty" toml:"hist_range"`
}

// Default returns the fixed default configuration.
func Default() Config {
	return Config{
		BlockWidth:  DefaultBlockWidth,
		BlockHeight: DefaultBlockHeight,
		PlotColor:   DefaultPlotColor,
		DarkerColor: DefaultDarkerColor,
		HistBins:    DefaultHistBins,
	}
}

// SetBlockWidth overrides the grid cell width in inches.
func (c *Config) SetBlockWidth(width int) error {
	if width <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"block width must be a positive integer (got %d)", width)
	}
	c.BlockWidth = width
	return nil
}

// SetBlockHeight overrides the grid cell height in inches.
func (c *Config) SetBlockHeight(height int) error {
	if height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"block height must be a positive integer (got %d)", height)
	}
	c.BlockHeight = height
	return nil
}

// SetPlotColor overrides the primary plot color. The value must be a
// supported color name or a #RGB/#RRGGBB hex string.
func (c *Config) SetPlotColor(name string) error {
	if _, err := ParseColor(name); err != nil {
		return errors.New(errors.ErrCodeInvalidConfig,
			"plot color must be a color name or hex string (got %q)", name)
	}
	c.PlotColor = name
	return nil
}

// SetHistBins overrides the histogram bucket count.
func (c *Config) SetHistBins(bins int) error {
	if bins <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"histogram bin count must be a positive integer (got %d)", bins)
	}
	c.HistBins = bins
	return nil
}

// SetHistRange restricts histograms to [min, max]. Use ClearHistRange to
// return to unbounded histograms.
func (c *Config) SetHistRange(min, max float64) error {
	if min >= max {
		return errors.New(errors.ErrCodeInvalidConfig,
			"histogram range must satisfy min < max (got %v, %v)", min, max)
	}
	c.HistRange = &Range{Min: min, Max: max}
	return nil
}

// ClearHistRange removes the histogram range restriction.
func (c *Config) ClearHistRange() {
	c.HistRange = nil
}

// Validate checks every field of a config assembled without the setters
// (e.g. decoded from a TOML file).
func (c Config) Validate() error {
	check := Config{}
	if err := check.SetBlockWidth(c.BlockWidth); err != nil {
		return err
	}
	if err := check.SetBlockHeight(c.BlockHeight); err != nil {
		return err
	}
	if err := check.SetPlotColor(c.PlotColor); err != nil {
		return err
	}
	if err := check.SetHistBins(c.HistBins); err != nil {
		return err
	}
	if c.HistRange != nil {
		if err := check.SetHistRange(c.HistRange.Min, c.HistRange.Max); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Colors
// =============================================================================

// namedColors is the palette accepted by name.
var namedColors = map[string]color.RGBA{
	"black":       {0x00, 0x00, 0x00, 0xFF},
	"white":       {0xFF, 0xFF, 0xFF, 0xFF},
	"red":         {0xD6, 0x27, 0x28, 0xFF},
	"blue":        {0x1F, 0x77, 0xB4, 0xFF},
	"orange":      {0xFF, 0x7F, 0x0E, 0xFF},
	"purple":      {0x94, 0x67, 0xBD, 0xFF},
	"gray":        {0x7F, 0x7F, 0x7F, 0xFF},
	"teal":        {0x17, 0xBE, 0xCF, 0xFF},
	"green":       {0x00, 0x80, 0x00, 0xFF},
	"darkgreen":   {0x00, 0x64, 0x00, 0xFF},
	"forestgreen": {0x22, 0x8B, 0x22, 0xFF},
	"seagreen":    {0x2E, 0x8B, 0x57, 0xFF},
}

// ParseColor resolves a color name or #RGB/#RRGGBB hex string.
func ParseColor(s string) (color.RGBA, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}

	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = fmt.Sprintf("%c%c%c%c%c%c", hex[0], hex[0], hex[1], hex[1], hex[2], hex[2])
		}
		if len(hex) == 6 {
			v, err := strconv.ParseUint(hex, 16, 32)
			if err == nil {
				return color.RGBA{
					R: uint8(v >> 16),
					G: uint8(v >> 8),
					B: uint8(v),
					A: 0xFF,
				}, nil
			}
		}
	}

	return color.RGBA{}, errors.New(errors.ErrCodeInvalidConfig, "unknown color %q", s)
}

// MustColor is ParseColor for trusted, compile-time constant inputs.
// It panics on failure and exists for the renderers' fixed palette.
func MustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with its alpha channel replaced.
func WithAlpha(c color.RGBA, alpha uint8) color.RGBA {
	c.A = alpha
	return c
}

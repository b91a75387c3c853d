// Package gplot renders distribution grids to static images with
// gonum.org/v1/plot.
//
// One plot is built per grid cell (row = diagram type, column = axis) and
// the cells are tiled onto a single canvas. Supported output formats are
// png, svg, and pdf; the whole figure is assembled in memory, so a failing
// cell produces an error and no output.
package gplot

import (
	"bytes"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/distviz/distviz/pkg/dist"
	"github.com/distviz/distviz/pkg/errors"
	"github.com/distviz/distviz/pkg/points"
	"github.com/distviz/distviz/pkg/stats"
)

// Output formats supported by this backend.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatPDF = "pdf"
)

// ValidFormats is the set of formats this backend encodes.
var ValidFormats = map[string]bool{
	FormatPNG: true,
	FormatSVG: true,
	FormatPDF: true,
}

// cellPad is the padding between grid cells.
const cellPad = vg.Millimeter * 4

// Renderer is the static dist.Renderer backend. Format selects the output
// encoding (png, svg, or pdf).
type Renderer struct {
	Format string
}

// New creates a static renderer for the given output format.
func New(format string) *Renderer {
	return &Renderer{Format: format}
}

// Render builds the cell grid and encodes it in the renderer's format.
func (r *Renderer) Render(set points.Set, diagrams []dist.DiagramType, axes []dist.Axis, cfg dist.Config) ([]byte, error) {
	if !ValidFormats[r.Format] {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"static renderer supports png, svg, pdf (got %q)", r.Format)
	}

	plots, err := buildGrid(set, diagrams, axes, cfg)
	if err != nil {
		return nil, err
	}

	width := vg.Length(len(axes)*cfg.BlockWidth) * vg.Inch
	height := vg.Length(len(diagrams)*cfg.BlockHeight) * vg.Inch
	tiles := draw.Tiles{
		Rows: len(diagrams),
		Cols: len(axes),
		PadX: cellPad,
		PadY: cellPad,
	}

	var buf bytes.Buffer
	switch r.Format {
	case FormatPNG:
		c := vgimg.New(width, height)
		drawGrid(plots, tiles, draw.New(c))
		png := vgimg.PngCanvas{Canvas: c}
		if _, err := png.WriteTo(&buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
		}
	case FormatSVG:
		c := vgsvg.New(width, height)
		drawGrid(plots, tiles, draw.New(c))
		if _, err := c.WriteTo(&buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode svg")
		}
	case FormatPDF:
		c := vgpdf.New(width, height)
		drawGrid(plots, tiles, draw.New(c))
		if _, err := c.WriteTo(&buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode pdf")
		}
	}

	return buf.Bytes(), nil
}

// buildGrid assembles the full matrix of cell plots before anything is
// drawn, so an invalid cell aborts the figure as a whole.
func buildGrid(set points.Set, diagrams []dist.DiagramType, axes []dist.Axis, cfg dist.Config) ([][]*plot.Plot, error) {
	plotClr, err := dist.ParseColor(cfg.PlotColor)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "plot color")
	}
	darkClr, err := dist.ParseColor(cfg.DarkerColor)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "darker color")
	}

	plots := make([][]*plot.Plot, len(diagrams))
	for i, diagram := range diagrams {
		plots[i] = make([]*plot.Plot, len(axes))
		for j, axis := range axes {
			values := usable(dist.AxisValues(set, axis))
			cell, err := buildCell(values, diagram, cfg, plotClr, darkClr)
			if err != nil {
				return nil, err
			}
			if i == 0 {
				cell.Title.Text = string(axis)
			}
			plots[i][j] = cell
		}
	}
	return plots, nil
}

// buildCell draws one distribution diagram into a fresh plot.
func buildCell(values []float64, diagram dist.DiagramType, cfg dist.Config, plotClr, darkClr color.RGBA) (*plot.Plot, error) {
	p := plot.New()

	switch diagram {
	case dist.DiagramViolin:
		addViolin(p, values, plotClr, darkClr)
	case dist.DiagramHist:
		addHist(p, values, cfg, plotClr)
	case dist.DiagramBoxplot:
		if err := addBoxplot(p, values, plotClr); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidDiagramType,
			"invalid diagram type %q", string(diagram))
	}

	return p, nil
}

func drawGrid(plots [][]*plot.Plot, tiles draw.Tiles, dc draw.Canvas) {
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			if plots[i][j] != nil {
				plots[i][j].Draw(canvases[i][j])
			}
		}
	}
}

// usable filters out NaN and infinite values, which the plotters cannot
// place on an axis.
func usable(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if stats.IsUsable(v) {
			out = append(out, v)
		}
	}
	return out
}

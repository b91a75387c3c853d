package gplot

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/distviz/distviz/pkg/dist"
	"github.com/distviz/distviz/pkg/stats"
)

// histBars renders density bars over precomputed bins, values along the
// horizontal axis.
type histBars struct {
	bins []stats.Bin
	fill color.Color
	line draw.LineStyle
}

var (
	_ plot.Plotter    = (*histBars)(nil)
	_ plot.DataRanger = (*histBars)(nil)
)

// addHist attaches a density histogram for values to p, honoring the
// configured bin count and optional value range. Cells without values
// stay empty.
func addHist(p *plot.Plot, values []float64, cfg dist.Config, clr color.RGBA) {
	var bins []stats.Bin
	if r := cfg.HistRange; r != nil {
		bins = stats.HistogramIn(values, cfg.HistBins, r.Min, r.Max)
	} else {
		bins = stats.Histogram(values, cfg.HistBins)
	}
	if len(bins) == 0 {
		return
	}

	p.Add(&histBars{
		bins: bins,
		fill: dist.WithAlpha(clr, 0x80),
		line: draw.LineStyle{
			Color: clr,
			Width: vg.Points(0.5),
		},
	})
	p.Y.Label.Text = "density"
}

// Plot implements plot.Plotter.
func (h *histBars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, b := range h.bins {
		if b.Count == 0 {
			continue
		}
		pts := []vg.Point{
			{X: trX(b.Min), Y: trY(0)},
			{X: trX(b.Min), Y: trY(b.Density)},
			{X: trX(b.Max), Y: trY(b.Density)},
			{X: trX(b.Max), Y: trY(0)},
		}
		c.FillPolygon(h.fill, pts)
		c.StrokeLines(h.line, append(pts, pts[0]))
	}
}

// DataRange implements plot.DataRanger.
func (h *histBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin = h.bins[0].Min
	xmax = h.bins[len(h.bins)-1].Max
	ymax = 0
	for _, b := range h.bins {
		if b.Density > ymax {
			ymax = b.Density
		}
	}
	return xmin, xmax, 0, ymax
}

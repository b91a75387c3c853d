package gplot

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/distviz/distviz/pkg/stats"
)

// Violin geometry in data units. The silhouette is mirrored about the row
// center line, so the perpendicular axis spans [-violinSpan, violinSpan]
// and the density curve is scaled to at most violinHalf on each side.
const (
	violinSpan = 0.5
	violinHalf = 0.4
	violinTick = 0.2
)

// violin renders a kernel density silhouette with a center bar and ticks
// at the minimum, median, and maximum, values along the horizontal axis.
type violin struct {
	curve            []stats.DensityPoint
	min, median, max float64
	peak             float64

	fill color.Color
	line draw.LineStyle
}

var (
	_ plot.Plotter    = (*violin)(nil)
	_ plot.DataRanger = (*violin)(nil)
)

// addViolin attaches a violin plotter for values to p. Cells without
// enough values for a density estimate stay empty.
func addViolin(p *plot.Plot, values []float64, fill, line color.RGBA) {
	curve := stats.KDE(values, stats.DefaultKDEPoints)
	if len(curve) == 0 {
		return
	}

	peak := 0.0
	for _, dp := range curve {
		if dp.Density > peak {
			peak = dp.Density
		}
	}
	if peak <= 0 {
		return
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	p.Add(&violin{
		curve:  curve,
		min:    lo,
		median: stats.Median(values),
		max:    hi,
		peak:   peak,
		fill:   fill,
		line: draw.LineStyle{
			Color: line,
			Width: vg.Points(1),
		},
	})
	hideValueTicks(&p.Y)
}

// Plot implements plot.Plotter.
func (v *violin) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	// Closed silhouette: upper half left to right, lower half back.
	pts := make([]vg.Point, 0, 2*len(v.curve)+1)
	for _, dp := range v.curve {
		pts = append(pts, vg.Point{
			X: trX(dp.X),
			Y: trY(dp.Density / v.peak * violinHalf),
		})
	}
	for i := len(v.curve) - 1; i >= 0; i-- {
		dp := v.curve[i]
		pts = append(pts, vg.Point{
			X: trX(dp.X),
			Y: trY(-dp.Density / v.peak * violinHalf),
		})
	}
	pts = append(pts, pts[0])

	c.FillPolygon(v.fill, pts)
	c.StrokeLines(v.line, pts)

	// Center bar from min to max, with perpendicular ticks at the
	// extremes and the median.
	c.StrokeLine2(v.line, trX(v.min), trY(0), trX(v.max), trY(0))
	for _, x := range []float64{v.min, v.median, v.max} {
		c.StrokeLine2(v.line, trX(x), trY(-violinTick), trX(x), trY(violinTick))
	}
}

// DataRange implements plot.DataRanger.
func (v *violin) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = v.curve[0].X, v.curve[len(v.curve)-1].X
	return xmin, xmax, -violinSpan, violinSpan
}

// hideValueTicks blanks an axis whose coordinate carries no data meaning.
func hideValueTicks(a *plot.Axis) {
	a.Tick.Marker = plot.ConstantTicks(nil)
}

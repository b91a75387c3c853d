package gplot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/distviz/distviz/pkg/dist"
	"github.com/distviz/distviz/pkg/errors"
)

const boxWidth = vg.Centimeter * 2

// tickStep is the fixed spacing of value-axis labels under box plots.
const tickStep = 0.5

// addBoxplot attaches a horizontal box-and-whisker plot for values to p.
// Cells without values stay empty.
func addBoxplot(p *plot.Plot, values []float64, medianClr color.RGBA) error {
	if len(values) == 0 {
		return nil
	}

	box, err := plotter.NewBoxPlot(boxWidth, 0, plotter.Values(values))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "box plot")
	}
	box.Horizontal = true
	box.FillColor = dist.MustColor(dist.BoxFillColor)
	box.MedianStyle.Color = medianClr

	p.Add(box)
	p.X.Tick.Marker = halfUnitTicks(values)
	hideValueTicks(&p.Y)
	return nil
}

// halfUnitTicks labels the value axis at fixed half-unit increments
// spanning the data.
func halfUnitTicks(values []float64) plot.ConstantTicks {
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var ticks []plot.Tick
	for t := math.Floor(lo/tickStep) * tickStep; t <= hi+tickStep/2; t += tickStep {
		ticks = append(ticks, plot.Tick{
			Value: t,
			Label: fmt.Sprintf("%.1f", t),
		})
	}
	return plot.ConstantTicks(ticks)
}

// Package echarts renders distribution grids as interactive HTML pages
// with go-echarts.
//
// Each grid cell becomes one chart on a flex-layout page: violins are
// smoothed area charts over the density estimate, histograms are bar
// charts over the density bins, and box plots use the native boxplot
// series. The page is assembled in memory, so a failing cell produces an
// error and no output.
package echarts

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/distviz/distviz/pkg/dist"
	"github.com/distviz/distviz/pkg/errors"
	"github.com/distviz/distviz/pkg/points"
	"github.com/distviz/distviz/pkg/stats"
)

// Format is the output format this backend encodes.
const Format = "html"

// pixelsPerInch converts the configured cell size to chart dimensions.
const pixelsPerInch = 96

// Renderer is the interactive dist.Renderer backend.
type Renderer struct {
	// PageTitle is the HTML document title. Empty uses the go-echarts
	// default.
	PageTitle string
}

// New creates an interactive HTML renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render builds one chart per grid cell and encodes the page as HTML.
func (r *Renderer) Render(set points.Set, diagrams []dist.DiagramType, axes []dist.Axis, cfg dist.Config) ([]byte, error) {
	plotClr, err := dist.ParseColor(cfg.PlotColor)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "plot color")
	}

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	if r.PageTitle != "" {
		page.PageTitle = r.PageTitle
	}

	for _, diagram := range diagrams {
		for _, axis := range axes {
			values := usable(dist.AxisValues(set, axis))
			chart, err := buildChart(values, diagram, axis, cfg, plotClr)
			if err != nil {
				return nil, err
			}
			page.AddCharts(chart)
		}
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode html")
	}
	return buf.Bytes(), nil
}

func buildChart(values []float64, diagram dist.DiagramType, axis dist.Axis, cfg dist.Config, clr color.RGBA) (components.Charter, error) {
	switch diagram {
	case dist.DiagramViolin:
		return violinChart(values, axis, cfg, clr), nil
	case dist.DiagramHist:
		return histChart(values, axis, cfg, clr), nil
	case dist.DiagramBoxplot:
		return boxChart(values, axis, cfg), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidDiagramType,
			"invalid diagram type %q", string(diagram))
	}
}

// violinChart draws the density estimate as a smoothed area chart.
func violinChart(values []float64, axis dist.Axis, cfg dist.Config, clr color.RGBA) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(cellOptions(dist.DiagramViolin, axis, cfg)...)

	curve := stats.KDE(values, stats.DefaultKDEPoints)
	labels := make([]string, len(curve))
	items := make([]opts.LineData, len(curve))
	for i, dp := range curve {
		labels[i] = fmt.Sprintf("%.3f", dp.X)
		items[i] = opts.LineData{Value: dp.Density}
	}

	line.SetXAxis(labels).
		AddSeries("density", items,
			charts.WithLineStyleOpts(opts.LineStyle{Color: hexColor(clr)}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: hexColor(clr), Opacity: 0.5})).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: true}))

	return line
}

// histChart draws the density histogram as a bar chart over bin centers.
func histChart(values []float64, axis dist.Axis, cfg dist.Config, clr color.RGBA) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(cellOptions(dist.DiagramHist, axis, cfg)...)

	var bins []stats.Bin
	if r := cfg.HistRange; r != nil {
		bins = stats.HistogramIn(values, cfg.HistBins, r.Min, r.Max)
	} else {
		bins = stats.Histogram(values, cfg.HistBins)
	}

	labels := make([]string, len(bins))
	items := make([]opts.BarData, len(bins))
	for i, b := range bins {
		labels[i] = fmt.Sprintf("%.3f", (b.Min+b.Max)/2)
		items[i] = opts.BarData{Value: b.Density}
	}

	bar.SetXAxis(labels).
		AddSeries("density", items,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(clr), Opacity: 0.5}))

	return bar
}

// boxChart draws a single five-number box for the values.
func boxChart(values []float64, axis dist.Axis, cfg dist.Config) *charts.BoxPlot {
	box := charts.NewBoxPlot()
	box.SetGlobalOptions(cellOptions(dist.DiagramBoxplot, axis, cfg)...)

	items := []opts.BoxPlotData{}
	if len(values) > 0 {
		lo, hi := values[0], values[0]
		for _, v := range values {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		q1, median, q3 := stats.Quartiles(values)
		items = append(items, opts.BoxPlotData{
			Value: []float64{lo, q1, median, q3, hi},
		})
	}

	box.SetXAxis([]string{string(axis)}).
		AddSeries("boxplot", items,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: dist.BoxFillColor}))

	return box
}

func cellOptions(diagram dist.DiagramType, axis dist.Axis, cfg dist.Config) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  fmt.Sprintf("%dpx", cfg.BlockWidth*pixelsPerInch),
			Height: fmt.Sprintf("%dpx", cfg.BlockHeight*pixelsPerInch),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    string(diagram),
			Subtitle: fmt.Sprintf("axis: %s", axis),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	}
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func usable(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if stats.IsUsable(v) {
			out = append(out, v)
		}
	}
	return out
}

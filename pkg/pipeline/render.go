package pipeline

import (
	"github.com/distviz/distviz/pkg/dist"
	"github.com/distviz/distviz/pkg/points"
	"github.com/distviz/distviz/pkg/render/echarts"
	"github.com/distviz/distviz/pkg/render/gplot"
)

// backend returns the renderer responsible for a validated format.
func backend(format string) dist.Renderer {
	if format == FormatHTML {
		return echarts.New()
	}
	return gplot.New(format)
}

// renderFormats renders the figure once per requested format. Options
// must be validated.
func renderFormats(set points.Set, opts Options) (map[string][]byte, error) {
	cfg, err := opts.Config()
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		viz := dist.New(backend(format))
		viz.Config = cfg
		data, err := viz.Render(set, opts.DiagramTypes(), opts.AxisSelection())
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

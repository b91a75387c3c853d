package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/distviz/distviz/pkg/dist"
	"github.com/distviz/distviz/pkg/errors"
	"github.com/distviz/distviz/pkg/observability"
	"github.com/distviz/distviz/pkg/pipeline"
)

// plotCommand creates the plot command for rendering distribution figures.
func (c *CLI) plotCommand() *cobra.Command {
	var (
		diagramsStr string
		axesStr     string
		formatsStr  string
		rangeStr    string
		output      string
		noCache     bool
		interactive bool
		open        bool
	)
	opts := pipeline.Options{
		PlotColor:   c.Config.Figure.Color,
		BlockWidth:  c.Config.Figure.Width,
		BlockHeight: c.Config.Figure.Height,
		HistBins:    c.Config.Figure.Bins,
	}

	cmd := &cobra.Command{
		Use:   "plot [points.csv|points.json]",
		Short: "Render distribution figures from 2-D point data",
		Long: `Render distribution figures from 2-D point data.

The plot command reads points from a CSV (two columns) or JSON file and
draws a grid of distribution diagrams: one row per diagram type (violin,
hist, boxplot) and one column per axis (X, Y).

Figures are cached locally, so repeating a plot with the same data and
options is instant. Use --refresh to force re-rendering.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Diagrams = parseList(diagramsStr)
			opts.Axes = parseList(axesStr)
			opts.Formats = parseList(formatsStr)

			if interactive {
				diagrams, axes, err := pickSelections(opts.Diagrams, opts.Axes)
				if err != nil {
					return err
				}
				opts.Diagrams = diagrams
				opts.Axes = axes
			}

			if rangeStr != "" {
				r, err := parseRange(rangeStr)
				if err != nil {
					return err
				}
				opts.HistRange = r
			}

			return c.runPlot(withLogger(cmd.Context(), c.Logger), opts, output, noCache, open)
		},
	}

	cmd.Flags().StringVarP(&diagramsStr, "diagrams", "d", "", "diagram type(s): violin, hist, boxplot (comma-separated, default all)")
	cmd.Flags().StringVarP(&axesStr, "axes", "a", "", "axis selection: X, Y (comma-separated, default both)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg, pdf, html (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&opts.PlotColor, "color", opts.PlotColor, "plot color (name or #RRGGBB)")
	cmd.Flags().IntVar(&opts.BlockWidth, "width", opts.BlockWidth, "grid cell width in inches")
	cmd.Flags().IntVar(&opts.BlockHeight, "height", opts.BlockHeight, "grid cell height in inches")
	cmd.Flags().IntVar(&opts.HistBins, "bins", opts.HistBins, "histogram bin count")
	cmd.Flags().StringVar(&rangeStr, "range", "", "histogram value range as min:max")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick diagrams and axes interactively")
	cmd.Flags().BoolVar(&open, "open", false, "open the first rendered figure with the system viewer")

	return cmd
}

// runPlot executes the pipeline and writes the artifacts.
func (c *CLI) runPlot(ctx context.Context, opts pipeline.Options, output string, noCache, open bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)

	spin := startSpinner(ctx, fmt.Sprintf("Plotting %s...", opts.Input))
	observability.SetPipelineHooks(&spinnerPhases{spin: spin})
	defer observability.Reset()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spin.fail("Plot failed")
		return err
	}
	spin.stop()

	paths, err := writeArtifacts(result.Artifacts, opts.Input, output)
	if err != nil {
		return err
	}
	printStats(result.Stats.PointCount, 0, result.CacheInfo.RenderHit)

	if open && len(paths) > 0 {
		if err := openPath(paths[0]); err != nil {
			printWarning("Could not open %s: %v", paths[0], err)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, the input's extension is stripped. A known format
// extension on output is stripped as well so multi-format runs can append
// their own.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes one file per rendered format and prints the paths.
// The written paths are returned in format order.
func writeArtifacts(artifacts map[string][]byte, input, output string) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for format := range artifacts {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	single := len(formats) == 1

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		var path string
		if single && output != "" {
			path = output
		} else {
			path = basePath(output, input) + "." + format
		}

		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
		paths = append(paths, path)
	}

	printSuccess("Rendered %d figure(s)", len(paths))
	return paths, nil
}

// openPath opens a file with the platform's default viewer.
func openPath(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}

// parseRange parses a min:max histogram range flag.
func parseRange(s string) (*dist.Range, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"invalid range %q (expected min:max)", s)
	}
	min, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "invalid range minimum %q", parts[0])
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "invalid range maximum %q", parts[1])
	}
	return &dist.Range{Min: min, Max: max}, nil
}

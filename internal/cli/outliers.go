package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/distviz/distviz/pkg/dist"
	"github.com/distviz/distviz/pkg/pipeline"
)

// outliersCommand creates the outliers command for interquartile-range
// outlier detection.
func (c *CLI) outliersCommand() *cobra.Command {
	var (
		axesStr string
		asJSON  bool
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "outliers [points.csv|points.json]",
		Short: "Report interquartile-range outliers per axis",
		Long: `Report interquartile-range outliers per axis.

A value is an outlier when it falls strictly outside the Tukey fences
Q1 - 1.5*IQR and Q3 + 1.5*IQR computed over its axis. Reported indices
are 0-based positions in the input point list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			axes, err := parseAxes(axesStr)
			if err != nil {
				return err
			}
			return c.runOutliers(withLogger(cmd.Context(), c.Logger), args[0], axes, asJSON, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&axesStr, "axes", "a", "", "axis selection: X, Y (comma-separated, default both)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print reports as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	return cmd
}

func parseAxes(s string) ([]dist.Axis, error) {
	names := parseList(s)
	if len(names) == 0 {
		names = pipeline.DefaultAxes
	}
	axes := make([]dist.Axis, 0, len(names))
	for _, name := range names {
		a, err := dist.ParseAxis(name)
		if err != nil {
			return nil, err
		}
		axes = append(axes, a)
	}
	return axes, nil
}

// runOutliers loads the points and prints a report per requested axis.
func (c *CLI) runOutliers(ctx context.Context, input string, axes []dist.Axis, asJSON, noCache, refresh bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	set, err := runner.LoadPoints(ctx, pipeline.Options{Input: input, Logger: logger})
	if err != nil {
		return err
	}

	track := newProgress(logger)
	reports := make([]*pipeline.OutlierReport, 0, len(axes))
	for _, axis := range axes {
		report, err := runner.Outliers(ctx, set, axis, refresh)
		if err != nil {
			return err
		}
		reports = append(reports, report)
	}
	track.done(fmt.Sprintf("Scanned %d axis/axes", len(axes)))

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, report := range reports {
		printReport(report, set.Len())
	}
	return nil
}

func printReport(report *pipeline.OutlierReport, total int) {
	if len(report.Indices) == 0 {
		printInfo("Axis %s: no outliers in %d points", report.Axis, total)
		return
	}

	printWarning("Axis %s: %d outlier(s) of %d points", report.Axis, len(report.Indices), total)
	printDetail("fences: [%.4g, %.4g]", report.Lower, report.Upper)

	pairs := make([]string, len(report.Indices))
	for i, idx := range report.Indices {
		pairs[i] = fmt.Sprintf("#%d=%g", idx, report.Values[i])
	}
	printDetail("values: %s", strings.Join(pairs, ", "))
}

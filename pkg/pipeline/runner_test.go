package pipeline

import (
	"context"
	"math"
	"testing"

	"github.com/distviz/distviz/pkg/cache"
	"github.com/distviz/distviz/pkg/dist"
	"github.com/distviz/distviz/pkg/errors"
	"github.com/distviz/distviz/pkg/points"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestExecute(t *testing.T) {
	r := newTestRunner(t)
	opts := Options{
		Input:   writePointsCSV(t),
		Formats: []string{FormatSVG},
	}

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Stats.PointCount != 10 {
		t.Errorf("expected 10 points, got %d", result.Stats.PointCount)
	}
	if result.DataHash == "" {
		t.Error("expected a data hash")
	}
	if len(result.Artifacts[FormatSVG]) == 0 {
		t.Error("expected svg artifact")
	}
	if result.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}
}

func TestExecuteRenderCacheHit(t *testing.T) {
	r := newTestRunner(t)
	opts := Options{
		Input:   writePointsCSV(t),
		Formats: []string{FormatSVG},
	}
	ctx := context.Background()

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the cache")
	}
	if string(second.Artifacts[FormatSVG]) != string(first.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from rendered artifact")
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh run should not hit the cache")
	}
}

func TestExecuteMissingInput(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Execute(context.Background(), Options{Input: "absent.csv"})
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestLoadPointsUnsupportedExtension(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.LoadPoints(context.Background(), Options{Input: "points.xlsx"})
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("expected INVALID_FORMAT, got %v", err)
	}
}

func TestOutliers(t *testing.T) {
	r := newTestRunner(t)
	set := points.Set{
		X: []float64{1, 2, 3, 4, 5, 100},
		Y: []float64{1, 1, 1, 1, 1, 1},
	}

	report, err := r.Outliers(context.Background(), set, dist.AxisX, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Indices) != 1 || report.Indices[0] != 5 {
		t.Errorf("expected indices [5], got %v", report.Indices)
	}
	if len(report.Values) != 1 || report.Values[0] != 100 {
		t.Errorf("expected values [100], got %v", report.Values)
	}
	if report.Lower != -1.5 || report.Upper != 8.5 {
		t.Errorf("expected fences (-1.5, 8.5), got (%v, %v)", report.Lower, report.Upper)
	}
}

func TestOutliersCached(t *testing.T) {
	r := newTestRunner(t)
	set := points.Set{
		X: []float64{1, 2, 3, 4, 5, 100},
		Y: []float64{1, 1, 1, 1, 1, 1},
	}
	ctx := context.Background()

	first, err := r.Outliers(ctx, set, dist.AxisX, false)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Outliers(ctx, set, dist.AxisX, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(second.Indices) != len(first.Indices) {
		t.Errorf("cached report differs: %v vs %v", second.Indices, first.Indices)
	}
}

func TestOutliersInvalidAxis(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Outliers(context.Background(), points.Set{X: []float64{1}, Y: []float64{1}}, dist.Axis("Z"), false)
	if errors.GetCode(err) != errors.ErrCodeInvalidAxis {
		t.Errorf("expected INVALID_AXIS, got %v", err)
	}
}

func TestOutliersEmptyAxis(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Outliers(context.Background(), points.Set{}, dist.AxisX, false)
	if errors.GetCode(err) != errors.ErrCodeEmptyInput {
		t.Errorf("expected EMPTY_INPUT, got %v", err)
	}
}

func TestOutliersUnusableValuesExcluded(t *testing.T) {
	r := newTestRunner(t)
	set := points.Set{
		X: []float64{1, 2, math.NaN(), 4, 5, 100},
		Y: []float64{1, 1, 1, 1, 1, 1},
	}

	report, err := r.Outliers(context.Background(), set, dist.AxisX, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, i := range report.Indices {
		if i == 2 {
			t.Error("NaN value reported as outlier")
		}
	}
}

func TestDataHashStable(t *testing.T) {
	set := points.Set{X: []float64{1, 2}, Y: []float64{3, 4}}
	if DataHash(set) != DataHash(set) {
		t.Error("data hash is not deterministic")
	}
	other := points.Set{X: []float64{1, 2}, Y: []float64{3, 5}}
	if DataHash(set) == DataHash(other) {
		t.Error("different sets share a data hash")
	}
}

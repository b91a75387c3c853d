package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// DensityPoint is one sample of an estimated density curve.
type DensityPoint struct {
	X       float64
	Density float64
}

// DefaultKDEPoints is the number of curve samples KDE produces.
const DefaultKDEPoints = 128

// Bandwidth returns the Silverman rule-of-thumb kernel bandwidth for
// values: 0.9 * min(sigma, IQR/1.34) * n^(-1/5). Falls back to 1 when the
// sample has no spread, so degenerate distributions still produce a
// drawable (if meaningless) silhouette.
func Bandwidth(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 1
	}

	sigma := StdDev(values)
	q1, _, q3 := Quartiles(values)
	spread := sigma
	if iqr := (q3 - q1) / 1.34; iqr > 0 && iqr < spread {
		spread = iqr
	}
	// StdDev of a single value is NaN, which must take the fallback too.
	if !(spread > 0) {
		return 1
	}

	return 0.9 * spread * math.Pow(float64(n), -0.2)
}

// KDE estimates the probability density of values with a Gaussian kernel
// and Silverman bandwidth, sampled at n evenly spaced points across the
// data range extended by three bandwidths on each side. Unusable values
// (NaN, Inf) are skipped. Returns nil when no usable value remains.
func KDE(values []float64, n int) []DensityPoint {
	if n <= 1 {
		n = DefaultKDEPoints
	}

	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if IsUsable(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return nil
	}

	h := Bandwidth(clean)
	lo := floats.Min(clean) - 3*h
	hi := floats.Max(clean) + 3*h
	step := (hi - lo) / float64(n-1)

	kernel := distuv.UnitNormal
	out := make([]DensityPoint, n)
	for i := range out {
		x := lo + float64(i)*step
		sum := 0.0
		for _, v := range clean {
			sum += kernel.Prob((x - v) / h)
		}
		out[i] = DensityPoint{X: x, Density: sum / (float64(len(clean)) * h)}
	}
	return out
}

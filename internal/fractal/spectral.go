package fractal

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientSamples is returned when a point sequence is too short for
// the spectral estimator's frequency window
var ErrInsufficientSamples = errors.New("fractal: insufficient samples")

// MinSamples is the smallest sequence length the estimator accepts
const MinSamples = 16

// Lag-selection modes
const (
	LagAutomatic = "automatic" // fit over the lower half of the spectrum
	LagFull      = "full"      // fit over every non-DC bin
)

// Estimate holds a spectral fractal-dimension estimate and the log-log data
// behind it, kept for the diagnostic plot
type Estimate struct {
	Dimension float64 // D in [1, 2]
	Exponent  float64 // fitted spectral exponent beta (power ~ f^-beta)
	N         int     // sequence length

	// Pooled log10 frequency / log10 power pairs used in the fit
	LogFreq  []float64
	LogPower []float64

	// Fit line: logPower = Intercept + Slope*logFreq
	Slope     float64
	Intercept float64
}

// SpectralDimension estimates the fractal dimension of a 2-D point sequence
// with a DCT-II periodogram: each coordinate series is transformed, the
// log-log power/frequency relation is fitted over the selected window, and
// the spectral exponent is mapped to a dimension D = (5 - beta) / 2 clamped
// to [1, 2]. Coordinates with no spread contribute a dimension of 1.
func SpectralDimension(points []orb.Point, lagMode string) (*Estimate, error) {
	switch lagMode {
	case LagAutomatic, LagFull:
	case "":
		lagMode = LagAutomatic
	default:
		return nil, fmt.Errorf("fractal: unknown lag mode %q", lagMode)
	}

	n := len(points)
	if n < MinSamples {
		return nil, fmt.Errorf("%w: need at least %d points, got %d", ErrInsufficientSamples, MinSamples, n)
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range points {
		xs[i] = p[0]
		ys[i] = p[1]
	}

	est := &Estimate{N: n}

	var dims []float64
	var betas []float64
	for _, series := range [][]float64{xs, ys} {
		d, beta, logF, logP, ok := dimensionOf(series, lagMode)
		if !ok {
			// Degenerate coordinate, e.g. movement along one axis only
			dims = append(dims, 1.0)
			continue
		}
		dims = append(dims, d)
		betas = append(betas, beta)
		est.LogFreq = append(est.LogFreq, logF...)
		est.LogPower = append(est.LogPower, logP...)
	}

	var sumD float64
	for _, d := range dims {
		sumD += d
	}
	est.Dimension = sumD / float64(len(dims))

	if len(betas) > 0 {
		var sumB float64
		for _, b := range betas {
			sumB += b
		}
		est.Exponent = sumB / float64(len(betas))
	}

	if len(est.LogFreq) >= 2 {
		est.Intercept, est.Slope = stat.LinearRegression(est.LogFreq, est.LogPower, nil, false)
	}

	return est, nil
}

// dimensionOf runs the DCT-II periodogram fit for one coordinate series.
// ok is false when the series carries no usable spectral content.
func dimensionOf(series []float64, lagMode string) (dim, beta float64, logF, logP []float64, ok bool) {
	n := len(series)

	if stat.Variance(series, nil) == 0 {
		return 0, 0, nil, nil, false
	}

	dct := fourier.NewDCT(n)
	coefs := dct.Transform(nil, series)

	// Periodogram over non-DC bins
	hi := n - 1
	if lagMode == LagAutomatic {
		hi = n / 2
	}

	var maxPower float64
	for k := 1; k <= hi && k < len(coefs); k++ {
		if p := coefs[k] * coefs[k]; p > maxPower {
			maxPower = p
		}
	}
	if maxPower <= 0 {
		return 0, 0, nil, nil, false
	}

	// Bins at the floating-point noise floor carry no signal and would
	// dominate the regression
	floor := maxPower * 1e-12

	for k := 1; k <= hi && k < len(coefs); k++ {
		power := coefs[k] * coefs[k]
		if power < floor {
			continue
		}
		logF = append(logF, math.Log10(float64(k)))
		logP = append(logP, math.Log10(power))
	}
	if len(logF) < 2 {
		return 0, 0, nil, nil, false
	}

	_, slope := stat.LinearRegression(logF, logP, nil, false)
	beta = -slope

	dim = (5 - beta) / 2
	if dim < 1 {
		dim = 1
	}
	if dim > 2 {
		dim = 2
	}

	return dim, beta, logF, logP, true
}

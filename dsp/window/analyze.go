package window

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Analysis holds measured spectral properties of a window. Positions are
// in bins of the window length.
type Analysis struct {
	CoherentGain float64 // mean coefficient, the DC gain per sample
	ENBW         float64 // equivalent noise bandwidth

	Bandwidth3dB      float64 // two-sided half-power main lobe width
	FirstMinimumBins  float64 // first null above DC
	HighestSidelobedB float64 // loudest point past the first null, relative to DC
	ScallopLossdB     float64 // response half a bin off centre, relative to DC
}

const (
	// analysisOversample is the number of spectrum points per window bin.
	analysisOversample = 32
	maxAnalysisFFT     = 1 << 20
)

// Analyze measures coeffs from a zero-padded FFT of the window. It is
// meant for reports, not for the analysis hot path.
func Analyze(coeffs []float64) (Analysis, error) {
	n := len(coeffs)
	if err := validateLength(n); err != nil {
		return Analysis{}, err
	}

	var sum, sumSq float64
	for _, c := range coeffs {
		sum += c
		sumSq += c * c
	}
	if sum == 0 {
		return Analysis{}, errZeroCoherentGain
	}

	pow, perBin, err := relativePower(coeffs)
	if err != nil {
		return Analysis{}, err
	}

	null := firstNull(pow)

	return Analysis{
		CoherentGain:      sum / float64(n),
		ENBW:              float64(n) * sumSq / (sum * sum),
		Bandwidth3dB:      2 * halfPowerPoint(pow) / perBin,
		FirstMinimumBins:  null / perBin,
		HighestSidelobedB: peakFrom(pow, int(math.Ceil(null))),
		ScallopLossdB:     10 * math.Log10(dtftPower(coeffs, 0.5/float64(n))/(sum*sum)),
	}, nil
}

// relativePower returns the power spectrum of coeffs from DC to Nyquist,
// normalised to DC, and the number of spectrum points per window bin.
func relativePower(coeffs []float64) ([]float64, float64, error) {
	n := len(coeffs)
	size := ceilPow2(n * analysisOversample)
	if size > maxAnalysisFFT {
		size = max(maxAnalysisFFT, ceilPow2(4*n))
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, 0, fmt.Errorf("window: analysis plan: %w", err)
	}

	in := make([]complex128, size)
	for i, c := range coeffs {
		in[i] = complex(c, 0)
	}
	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, 0, fmt.Errorf("window: analysis fft: %w", err)
	}

	dc := cmplx.Abs(out[0])
	pow := make([]float64, size/2+1)
	for k := range pow {
		r := cmplx.Abs(out[k]) / dc
		pow[k] = r * r
	}

	return pow, float64(size) / float64(n), nil
}

// halfPowerPoint is the first position where pow falls to one half,
// interpolated linearly between spectrum points.
func halfPowerPoint(pow []float64) float64 {
	for k := 1; k < len(pow); k++ {
		if pow[k] <= 0.5 {
			return float64(k-1) + (pow[k-1]-0.5)/(pow[k-1]-pow[k])
		}
	}
	return float64(len(pow) - 1)
}

// firstNull is the first local minimum below -10 dB. The threshold skips
// the ripple on flat-top main lobes. Without a null it returns Nyquist.
func firstNull(pow []float64) float64 {
	for k := 1; k+1 < len(pow); k++ {
		if pow[k] < 0.1 && pow[k] <= pow[k-1] && pow[k] < pow[k+1] {
			return float64(k) + vertex(pow[k-1], pow[k], pow[k+1])
		}
	}
	return float64(len(pow) - 1)
}

// peakFrom returns the largest value of pow at or above index from in dB,
// refined by a parabola through the neighbouring points.
func peakFrom(pow []float64, from int) float64 {
	best := -1
	for k := max(from, 0); k < len(pow); k++ {
		if best < 0 || pow[k] > pow[best] {
			best = k
		}
	}
	if best < 0 || !(pow[best] > 0) {
		return math.Inf(-1)
	}

	db := 10 * math.Log10(pow[best])
	if best == 0 || best == len(pow)-1 || !(pow[best-1] > 0) || !(pow[best+1] > 0) {
		return db
	}
	a := 10 * math.Log10(pow[best-1])
	c := 10 * math.Log10(pow[best+1])
	return db - 0.25*(a-c)*vertex(a, db, c)
}

// vertex returns the offset in [-0.5, 0.5] of the extremum of the parabola
// through (-1, a), (0, b), (1, c).
func vertex(a, b, c float64) float64 {
	den := a - 2*b + c
	if den == 0 {
		return 0
	}
	return math.Max(-0.5, math.Min(0.5, 0.5*(a-c)/den))
}

// dtftPower evaluates |W(f)|² at f cycles per sample.
func dtftPower(coeffs []float64, f float64) float64 {
	var acc complex128
	for k, c := range coeffs {
		acc += complex(c, 0) * cmplx.Rect(1, -2*math.Pi*f*float64(k))
	}
	r := cmplx.Abs(acc)
	return r * r
}

func ceilPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

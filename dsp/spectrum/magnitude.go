package spectrum

import (
	"github.com/cwbudde/algo-vecmath"
)

// SplitComplex unpacks in into separate real and imaginary slices.
// re and im must be at least len(in) long.
func SplitComplex(re, im []float64, in []complex128) {
	_ = re[len(in)-1]
	_ = im[len(in)-1]
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// MagnitudeFromParts computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst.
// All three slices must have the same length. Zero-alloc.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re := make([]float64, len(in))
	im := make([]float64, len(in))
	SplitComplex(re, im, in)
	vecmath.Magnitude(out, re, im)

	return out
}

// BinFrequency returns the centre frequency in Hz of FFT bin k.
func BinFrequency(k, fftSize int, sampleRate float64) float64 {
	if fftSize <= 0 {
		return 0
	}

	return sampleRate * float64(k) / float64(fftSize)
}

// FrequencyBin returns the FFT bin nearest to freqHz, clamped to [0, fftSize/2].
func FrequencyBin(freqHz float64, fftSize int, sampleRate float64) int {
	if fftSize <= 0 || sampleRate <= 0 || freqHz <= 0 {
		return 0
	}

	k := int(freqHz*float64(fftSize)/sampleRate + 0.5)

	return min(k, fftSize/2)
}

// PeakBin returns the index and value of the largest magnitude, ignoring
// bins below skip (typically DC). It returns -1 for an empty range.
func PeakBin(mags []float64, skip int) (int, float64) {
	best := -1
	bestVal := 0.0
	for k := max(skip, 0); k < len(mags); k++ {
		if best < 0 || mags[k] > bestVal {
			best = k
			bestVal = mags[k]
		}
	}

	return best, bestVal
}

package curve

// SpectrumConfig controls BuildSpectrum.
type SpectrumConfig struct {
	SampleRate float64
	FFTSize    int
	MinFreq    float64
	Octaves    float64
	FloorDB    float64
	CeilDB     float64
	// DenseBins is the bin below which cubic segments span 6 bins instead of 12.
	DenseBins int
}

// DefaultSpectrumConfig returns the analyser display defaults: ten octaves
// above 20 Hz, -120 dB to +30 dB, dense segments below bin 90.
func DefaultSpectrumConfig(sampleRate float64, fftSize int) SpectrumConfig {
	return SpectrumConfig{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		MinFreq:    20,
		Octaves:    10,
		FloorDB:    -120,
		CeilDB:     30,
		DenseBins:  90,
	}
}

// BuildSpectrum returns the filled spectrum shape for bins (linear
// magnitudes of the first FFTSize/2 bins).
func BuildSpectrum(bins []float64, bounds Rect, cfg SpectrumConfig) Path {
	var p Path
	AppendSpectrum(&p, bins, bounds, cfg)

	return p
}

// AppendSpectrum resets p and writes the spectrum shape into it, reusing
// p's storage. The shape starts at the bottom-left corner, rises to bin 0,
// follows the bins with cubic segments (control points at i, i+step/3,
// i+2*step/3) and returns along the bottom edge.
func AppendSpectrum(p *Path, bins []float64, bounds Rect, cfg SpectrumConfig) {
	p.Reset()
	if len(bins) == 0 || cfg.FFTSize <= 0 || cfg.Octaves <= 0 {
		return
	}

	at := func(i int) Point {
		i = min(i, len(bins)-1)
		freq := cfg.SampleRate * float64(i) / float64(cfg.FFTSize)
		return Point{
			X: XForFrequency(freq, cfg.MinFreq, cfg.Octaves, bounds),
			Y: YForMagnitude(bins[i], cfg.FloorDB, cfg.CeilDB, bounds),
		}
	}

	p.MoveTo(Point{X: bounds.X, Y: bounds.Bottom()})
	p.LineTo(at(0))

	dense := min(max(cfg.DenseBins, 0), len(bins))
	for i := 0; i < dense; i += 6 {
		p.CubicTo(at(i), at(i+2), at(i+4))
	}
	for i := dense; i < len(bins); i += 12 {
		p.CubicTo(at(i), at(i+4), at(i+8))
	}

	p.LineTo(Point{X: bounds.Right(), Y: bounds.Bottom()})
	p.Close()
}

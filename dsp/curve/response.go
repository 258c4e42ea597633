package curve

// ResponseConfig controls BuildResponse.
type ResponseConfig struct {
	MinFreq float64
	Octaves float64
	FloorDB float64
	CeilDB  float64
}

// DefaultResponseConfig returns the equalizer display defaults: ten octaves
// above 20 Hz and ±24 dB.
func DefaultResponseConfig() ResponseConfig {
	return ResponseConfig{MinFreq: 20, Octaves: 10, FloorDB: -24, CeilDB: 24}
}

// BuildResponse returns an open curve through (freqs[i], mags[i]) with
// mags given as linear magnitudes. Consecutive points are joined by
// Catmull-Rom splines expressed as cubic Béziers, so the curve passes
// through every sample.
func BuildResponse(freqs, mags []float64, bounds Rect, cfg ResponseConfig) Path {
	n := min(len(freqs), len(mags))
	if n == 0 || cfg.Octaves <= 0 {
		return Path{}
	}

	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{
			X: XForFrequency(freqs[i], cfg.MinFreq, cfg.Octaves, bounds),
			Y: YForMagnitude(mags[i], cfg.FloorDB, cfg.CeilDB, bounds),
		}
	}

	p := Path{Segments: make([]Segment, 0, n)}
	p.MoveTo(pts[0])
	for i := 1; i < n; i++ {
		p0 := pts[max(i-2, 0)]
		p1 := pts[i-1]
		p2 := pts[i]
		p3 := pts[min(i+1, n-1)]
		c1 := Point{X: p1.X + (p2.X-p0.X)/6, Y: p1.Y + (p2.Y-p0.Y)/6}
		c2 := Point{X: p2.X - (p3.X-p1.X)/6, Y: p2.Y - (p3.Y-p1.Y)/6}
		p.CubicTo(c1, c2, p2)
	}

	return p
}

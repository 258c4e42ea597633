package eq

import (
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// Stage is one band of the real-time cascade: a biquad section per channel
// sharing a coefficient set that the control side swaps atomically.
type Stage struct {
	coeffs   atomic.Pointer[biquad.Coefficients]
	bypassed atomic.Bool

	// Audio side only.
	sections []biquad.Section
}

// NewStage returns a pass-through stage for the given channel count.
func NewStage(channels int) *Stage {
	s := &Stage{sections: make([]biquad.Section, max(channels, 0))}
	c := biquad.Identity
	s.coeffs.Store(&c)

	return s
}

// Channels returns the number of per-channel sections.
func (s *Stage) Channels() int { return len(s.sections) }

// Coefficients returns the coefficient set currently published to the audio side.
func (s *Stage) Coefficients() biquad.Coefficients {
	return *s.coeffs.Load()
}

// SetCoefficients publishes a new immutable coefficient set. Non-finite sets
// are replaced by the identity.
func (s *Stage) SetCoefficients(c biquad.Coefficients) {
	if !c.IsFinite() {
		c = biquad.Identity
	}
	s.coeffs.Store(&c)
}

// Bypassed reports whether the stage is skipped by Process.
func (s *Stage) Bypassed() bool { return s.bypassed.Load() }

// SetBypassed marks the stage as skipped or processed.
func (s *Stage) SetBypassed(v bool) { s.bypassed.Store(v) }

// Process filters block in place, one section per channel. Channels beyond
// the stage's channel count are left untouched.
func (s *Stage) Process(block [][]float64) {
	c := s.coeffs.Load()
	n := min(len(block), len(s.sections))
	for ch := range n {
		sec := &s.sections[ch]
		sec.Coefficients = *c
		sec.ProcessBlock(block[ch])
	}
}

// Reset clears every channel's delay line.
func (s *Stage) Reset() {
	for i := range s.sections {
		s.sections[i].Reset()
	}
}

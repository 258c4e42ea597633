package signal

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Source produces an endless mono stream. Read fills dst completely and
// keeps phase across calls. Read does not allocate.
type Source interface {
	Read(dst []float64)
}

// Kind names a test-signal shape.
type Kind int

const (
	KindSine Kind = iota
	KindNoise
	KindSweep
	KindSilence
)

var kindNames = [...]string{"sine", "noise", "sweep", "silence"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a kind name.
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("signal: unknown kind %q", s)
}

// Spec describes a source independent of sample rate.
type Spec struct {
	Kind      Kind
	Freq      float64 // sine frequency, or sweep start
	FreqEnd   float64 // sweep end
	Amplitude float64
	// Period is the sweep duration in seconds before it restarts.
	Period float64
}

// NewSource builds the source described by spec.
func (g *Generator) NewSource(spec Spec) (Source, error) {
	switch spec.Kind {
	case KindSine:
		return g.NewSine(spec.Freq, spec.Amplitude)
	case KindNoise:
		return g.NewNoise(spec.Amplitude)
	case KindSweep:
		return g.NewSweep(spec.Freq, spec.FreqEnd, spec.Amplitude, spec.Period)
	case KindSilence:
		return Silence{}, nil
	default:
		return nil, fmt.Errorf("signal: unknown kind %v", spec.Kind)
	}
}

// SineSource is a phase-continuous sine oscillator.
type SineSource struct {
	amp   float64
	step  float64
	phase float64
}

// NewSine returns a sine source at freqHz.
func (g *Generator) NewSine(freqHz, amplitude float64) (*SineSource, error) {
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	if freqHz < 0 || freqHz >= g.cfg.SampleRate/2 {
		return nil, fmt.Errorf("sine frequency must be in [0, fs/2): %f", freqHz)
	}
	return &SineSource{amp: amplitude, step: 2 * math.Pi * freqHz / g.cfg.SampleRate}, nil
}

// Read implements Source.
func (s *SineSource) Read(dst []float64) {
	for i := range dst {
		dst[i] = s.amp * math.Sin(s.phase)
		s.phase += s.step
		if s.phase >= 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
	}
}

// NoiseSource is seeded uniform white noise.
type NoiseSource struct {
	amp float64
	rng *rand.Rand
}

// NewNoise returns a noise source seeded from the generator.
func (g *Generator) NewNoise(amplitude float64) (*NoiseSource, error) {
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	return &NoiseSource{amp: amplitude, rng: newRand(g.seed)}, nil
}

// Read implements Source.
func (s *NoiseSource) Read(dst []float64) {
	for i := range dst {
		dst[i] = (s.rng.Float64()*2 - 1) * s.amp
	}
}

// SweepSource is an exponential sine sweep that restarts every period.
type SweepSource struct {
	amp     float64
	f0      float64
	rate    float64 // ln(f1/f0) / length
	length  int
	n       int
	phase   float64
	sampleT float64
}

// NewSweep returns a sweep from f0 to f1 over period seconds.
func (g *Generator) NewSweep(f0, f1, amplitude, period float64) (*SweepSource, error) {
	fs := g.cfg.SampleRate
	if fs <= 0 {
		return nil, fmt.Errorf("sweep sample rate must be > 0: %f", fs)
	}
	if f0 <= 0 || f1 <= 0 || f0 >= fs/2 || f1 >= fs/2 {
		return nil, fmt.Errorf("sweep frequencies must be in (0, fs/2): %f, %f", f0, f1)
	}
	length := int(period * fs)
	if length <= 1 {
		return nil, fmt.Errorf("sweep period too short: %f s", period)
	}
	return &SweepSource{
		amp:     amplitude,
		f0:      f0,
		rate:    math.Log(f1/f0) / float64(length),
		length:  length,
		sampleT: 1 / fs,
	}, nil
}

// Frequency returns the instantaneous frequency of the next sample.
func (s *SweepSource) Frequency() float64 {
	return s.f0 * math.Exp(s.rate*float64(s.n))
}

// Read implements Source.
func (s *SweepSource) Read(dst []float64) {
	for i := range dst {
		dst[i] = s.amp * math.Sin(s.phase)
		s.phase += 2 * math.Pi * s.Frequency() * s.sampleT
		if s.phase >= 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
		s.n++
		if s.n == s.length {
			s.n = 0
			s.phase = 0
		}
	}
}

// Silence is an all-zero source.
type Silence struct{}

// Read implements Source.
func (Silence) Read(dst []float64) { clear(dst) }

// Fill reads one block of mono samples from src into block[0] and copies
// it to every other channel.
func Fill(src Source, block [][]float64) {
	if len(block) == 0 {
		return
	}
	src.Read(block[0])
	for _, ch := range block[1:] {
		copy(ch, block[0])
	}
}

package eq

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// NoSolo is the solo index meaning "no band soloed".
const NoSolo = -1

// Bank is a six-band equalizer with per-band and combined response curves.
type Bank struct {
	mu         sync.Mutex
	sampleRate float64
	bands      [NumBands]Band
	responses  [NumBands][]float64
	combined   []float64
	freqs      []float64
	solo       int
	onChange   func()
	logger     *slog.Logger

	channels   int
	stages     [NumBands]*Stage
	outputGain atomic.Uint64
	resetAll   atomic.Bool

	// Audio side only.
	wasBypassed [NumBands]bool
}

// NewBank returns a bank configured for sampleRate and numChannels.
func NewBank(sampleRate float64, numChannels int, opts ...Option) (*Bank, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if numChannels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, numChannels)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if len(cfg.bands) != NumBands {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBands, len(cfg.bands))
	}

	b := &Bank{
		sampleRate: sampleRate,
		freqs:      cfg.freqs,
		combined:   make([]float64, len(cfg.freqs)),
		solo:       NoSolo,
		onChange:   cfg.onChange,
		logger:     cfg.logger,
		channels:   numChannels,
	}
	b.outputGain.Store(math.Float64bits(1))
	b.resetAll.Store(true)

	for i := range b.stages {
		b.stages[i] = NewStage(numChannels)
		b.bands[i] = cfg.bands[i].sanitize(sampleRate)
		b.responses[i] = make([]float64, len(cfg.freqs))
		b.updateBandLocked(i)
	}
	b.updateBypassLocked()
	b.computeCombinedLocked()

	return b, nil
}

// SampleRate returns the current sample rate.
func (b *Bank) SampleRate() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.sampleRate
}

// Channels returns the number of channels each stage processes.
func (b *Bank) Channels() int { return b.channels }

// SetSampleRate redesigns every band for a new sample rate. Filter state is
// cleared on the next Process call.
func (b *Bank) SetSampleRate(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	b.mu.Lock()
	b.sampleRate = sampleRate
	for i := range b.bands {
		b.bands[i] = b.bands[i].sanitize(sampleRate)
		b.updateBandLocked(i)
	}
	b.computeCombinedLocked()
	b.resetAll.Store(true)
	b.mu.Unlock()

	b.logger.Debug("eq sample rate changed", "sample_rate", sampleRate)
	b.notify()

	return nil
}

// SetBandParameter updates one field of band index, redesigns the band and
// refreshes the bypass pattern and combined curve. Out-of-range indices and
// unknown fields are ignored. Values are clamped to the field's range.
func (b *Bank) SetBandParameter(index int, field Field, value float64) {
	if index < 0 || index >= NumBands {
		return
	}

	b.mu.Lock()
	band, ok := b.bands[index].withField(field, value, b.sampleRate)
	if !ok {
		b.mu.Unlock()
		return
	}
	b.bands[index] = band
	b.updateBandLocked(index)
	b.updateBypassLocked()
	b.computeCombinedLocked()
	b.mu.Unlock()

	b.logger.Debug("eq band changed", "band", index, "field", field.String(), "value", value)
	b.notify()
}

// SetBand replaces every field of band index except its name and colour.
func (b *Bank) SetBand(index int, band Band) {
	if index < 0 || index >= NumBands {
		return
	}

	b.mu.Lock()
	band.Name = b.bands[index].Name
	band.Colour = b.bands[index].Colour
	b.bands[index] = band.sanitize(b.sampleRate)
	b.updateBandLocked(index)
	b.updateBypassLocked()
	b.computeCombinedLocked()
	b.mu.Unlock()

	b.logger.Debug("eq band replaced", "band", index, "type", band.Type.String())
	b.notify()
}

// SetSolo solos band index, or clears the solo with NoSolo. Any other
// out-of-range value is ignored.
func (b *Bank) SetSolo(index int) {
	if index != NoSolo && (index < 0 || index >= NumBands) {
		return
	}

	b.mu.Lock()
	b.solo = index
	b.updateBypassLocked()
	b.computeCombinedLocked()
	b.mu.Unlock()

	b.logger.Debug("eq solo changed", "solo", index)
	b.notify()
}

// Solo returns the soloed band index or NoSolo.
func (b *Bank) Solo() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.solo
}

// SetOutputGain sets the linear output gain, clamped to [0, MaxOutputGain].
func (b *Bank) SetOutputGain(gain float64) {
	gain = core.Clamp(gain, 0, MaxOutputGain)

	b.mu.Lock()
	b.outputGain.Store(math.Float64bits(gain))
	b.computeCombinedLocked()
	b.mu.Unlock()

	b.notify()
}

// OutputGain returns the linear output gain.
func (b *Bank) OutputGain() float64 {
	return math.Float64frombits(b.outputGain.Load())
}

// Band returns a copy of band index.
func (b *Bank) Band(index int) (Band, bool) {
	if index < 0 || index >= NumBands {
		return Band{}, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.bands[index], true
}

// Bands returns a copy of every band.
func (b *Bank) Bands() []Band {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]Band(nil), b.bands[:]...)
}

// Bypassed reports whether stage index is skipped in the audio path.
func (b *Bank) Bypassed(index int) bool {
	if index < 0 || index >= NumBands {
		return true
	}

	return b.stages[index].Bypassed()
}

// Stage exposes stage index for inspection.
func (b *Bank) Stage(index int) *Stage {
	if index < 0 || index >= NumBands {
		return nil
	}

	return b.stages[index]
}

// Frequencies returns a copy of the response frequency grid.
func (b *Bank) Frequencies() []float64 {
	return append([]float64(nil), b.freqs...)
}

// BandResponse copies the magnitude response of band index into dst, which
// is grown as needed. It returns nil for out-of-range indices.
func (b *Bank) BandResponse(index int, dst []float64) []float64 {
	if index < 0 || index >= NumBands {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	dst = core.EnsureLen(dst, len(b.freqs))
	copy(dst, b.responses[index])

	return dst
}

// CombinedResponse copies the combined magnitude response into dst.
func (b *Bank) CombinedResponse(dst []float64) []float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	dst = core.EnsureLen(dst, len(b.freqs))
	copy(dst, b.combined)

	return dst
}

// ComputeCombinedMagnitude recomputes and returns a copy of the combined
// response: the output gain times the soloed band, or times every active
// band in index order.
func (b *Bank) ComputeCombinedMagnitude() []float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.computeCombinedLocked()

	return append([]float64(nil), b.combined...)
}

// Process runs block through the active stages in band order and applies
// the output gain. Channels beyond Channels() pass through untouched. It
// does not lock or allocate. Stages that just left
// bypass start from a cleared delay line.
func (b *Bank) Process(block [][]float64) {
	resetAll := b.resetAll.Swap(false)
	for i, st := range b.stages {
		bypassed := st.Bypassed()
		if resetAll || (b.wasBypassed[i] && !bypassed) {
			st.Reset()
		}
		b.wasBypassed[i] = bypassed
		if !bypassed {
			st.Process(block)
		}
	}

	gain := b.OutputGain()
	if gain == 1 {
		return
	}
	for _, ch := range block[:min(len(block), b.channels)] {
		vecmath.ScaleBlockInPlace(ch, gain)
	}
}

// Reset clears every stage's delay line on the next Process call.
func (b *Bank) Reset() {
	b.resetAll.Store(true)
}

func (b *Bank) updateBandLocked(index int) {
	band := b.bands[index]
	c := band.coefficients(b.sampleRate)
	b.stages[index].SetCoefficients(c)
	b.responses[index] = c.MagnitudeResponse(b.responses[index], b.freqs, b.sampleRate)
}

func (b *Bank) updateBypassLocked() {
	for i, st := range b.stages {
		if b.solo >= 0 {
			st.SetBypassed(i != b.solo)
		} else {
			st.SetBypassed(!b.bands[i].Active)
		}
	}
}

func (b *Bank) computeCombinedLocked() {
	gain := b.OutputGain()
	for i := range b.combined {
		b.combined[i] = gain
	}

	if b.solo >= 0 {
		vecmath.MulBlockInPlace(b.combined, b.responses[b.solo])
		return
	}

	for i := range b.bands {
		if b.bands[i].Active {
			vecmath.MulBlockInPlace(b.combined, b.responses[i])
		}
	}
}

func (b *Bank) notify() {
	if b.onChange != nil {
		b.onChange()
	}
}

// Package processor is the host-facing surface of the equalizer: one
// six-band bank plus input and output spectrum analysis taps.
//
// Audio-thread methods (Process, ProcessBlock, PushAudio) never block or
// allocate. Control methods may be called from any other goroutine.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/analyzer"
	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/curve"
	"github.com/cwbudde/algo-eq/dsp/eq"
)

// ErrNotSetup is returned by analysis queries before Setup succeeded.
var ErrNotSetup = errors.New("processor: Setup has not been called")

// Tap selects the analysis point.
type Tap int

const (
	// Input analyses the signal before the equalizer.
	Input Tap = iota
	// Output analyses the signal after the equalizer and output gain.
	Output

	numTaps
)

func (t Tap) String() string {
	switch t {
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		return fmt.Sprintf("Tap(%d)", int(t))
	}
}

// CombinedCurve selects the combined response in BuildResponsePath.
const CombinedCurve = -1

// Processor wires an eq.Bank to two analyzers.
type Processor struct {
	cfg    config
	logger *slog.Logger
	bank   *eq.Bank

	taps     [numTaps]atomic.Pointer[analyzer.Analyzer]
	analysis atomic.Bool

	lifecycle sync.Mutex
}

// New returns a processor whose bank runs at the default sample rate until
// Setup is called.
func New(opts ...Option) (*Processor, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	bankOpts := append([]eq.Option{eq.WithLogger(cfg.logger)}, cfg.bankOpts...)
	bank, err := eq.NewBank(core.DefaultProcessorConfig().SampleRate, cfg.channels, bankOpts...)
	if err != nil {
		return nil, fmt.Errorf("processor: %w", err)
	}

	p := &Processor{cfg: cfg, logger: cfg.logger, bank: bank}
	p.analysis.Store(cfg.analysis)

	return p, nil
}

// Setup prepares the processor for sampleRate. It redesigns the bank,
// replaces both analyzers with fresh ones using a FIFO of
// analysisBufferCapacity samples and, unless background analysis is
// disabled, starts their workers under ctx. The previous workers are
// stopped only once the new ones are running; when Setup fails the
// previous configuration stays in place.
func (p *Processor) Setup(ctx context.Context, sampleRate float64, analysisBufferCapacity int) error {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	// Everything that can fail happens before the running taps are touched.
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("processor: setup: %w: %v", eq.ErrInvalidSampleRate, sampleRate)
	}

	opts := append([]analyzer.Option{analyzer.WithLogger(p.logger)}, p.cfg.analyzerOpts...)
	var fresh [numTaps]*analyzer.Analyzer
	for t := range fresh {
		a, err := analyzer.New(sampleRate, analysisBufferCapacity, opts...)
		if err != nil {
			return fmt.Errorf("processor: setup %v tap: %w", Tap(t), err)
		}
		fresh[t] = a
	}

	if p.cfg.background {
		for t, a := range fresh {
			if err := a.Start(ctx); err != nil {
				for _, started := range fresh[:t] {
					_ = started.Stop()
				}
				return fmt.Errorf("processor: start %v tap: %w", Tap(t), err)
			}
		}
	}

	if err := p.bank.SetSampleRate(sampleRate); err != nil {
		for _, a := range fresh {
			_ = a.Stop()
		}
		return fmt.Errorf("processor: setup: %w", err)
	}

	stopErr := p.stopLocked()
	for t, a := range fresh {
		p.taps[t].Store(a)
	}
	p.logger.Info("processor ready",
		"sample_rate", sampleRate, "channels", p.cfg.channels,
		"fifo", analysisBufferCapacity, "background", p.cfg.background)

	return stopErr
}

// Close stops both analyzer workers within their stop timeouts.
func (p *Processor) Close() error {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	return p.stopLocked()
}

func (p *Processor) stopLocked() error {
	var errs []error
	for t := range p.taps {
		if a := p.taps[t].Load(); a != nil {
			if err := a.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("%v tap: %w", Tap(t), err))
			}
		}
	}

	return errors.Join(errs...)
}

// Bank returns the equalizer bank.
func (p *Processor) Bank() *eq.Bank { return p.bank }

// SampleRate returns the bank's sample rate.
func (p *Processor) SampleRate() float64 { return p.bank.SampleRate() }

// Analyzer returns the analyzer behind tap, or nil before Setup.
func (p *Processor) Analyzer(tap Tap) *analyzer.Analyzer {
	if tap < 0 || tap >= numTaps {
		return nil
	}

	return p.taps[tap].Load()
}

// SetAnalysisEnabled gates PushAudio. Disabling it skips the FIFO writes
// entirely, which is cheaper than feeding analyzers nobody reads.
func (p *Processor) SetAnalysisEnabled(enabled bool) { p.analysis.Store(enabled) }

// AnalysisEnabled reports whether PushAudio feeds the analyzers.
func (p *Processor) AnalysisEnabled() bool { return p.analysis.Load() }

// PushAudio mono-reduces channels [startChannel, startChannel+numChannels)
// of block into tap's FIFO. It returns false when analysis is disabled, the
// processor is not set up, or the FIFO is full.
func (p *Processor) PushAudio(tap Tap, block [][]float64, startChannel, numChannels int) bool {
	if !p.analysis.Load() {
		return false
	}
	a := p.Analyzer(tap)
	if a == nil {
		return false
	}

	return a.AddAudioData(block, startChannel, numChannels)
}

// Process filters block in place through the bank.
func (p *Processor) Process(block [][]float64) {
	p.bank.Process(block)
}

// ProcessBlock pushes block to the input tap, filters it in place and
// pushes the result to the output tap.
func (p *Processor) ProcessBlock(block [][]float64) {
	p.PushAudio(Input, block, 0, len(block))
	p.bank.Process(block)
	p.PushAudio(Output, block, 0, len(block))
}

// HasNewAnalysisData reports whether either tap produced new data since
// the last call. Both taps' flags are cleared.
func (p *Processor) HasNewAnalysisData() bool {
	fresh := false
	for t := range p.taps {
		if a := p.taps[t].Load(); a != nil && a.CheckDataAvailable() {
			fresh = true
		}
	}

	return fresh
}

// AnalyzePending runs pending analysis for both taps on the calling
// goroutine. It is meant for processors built with background analysis
// disabled.
func (p *Processor) AnalyzePending() (int, error) {
	n := 0
	for t := range p.taps {
		a := p.taps[t].Load()
		if a == nil {
			return 0, ErrNotSetup
		}
		n += a.AnalyzePending()
	}

	return n, nil
}

// SpectrumSnapshot copies tap's averaged magnitudes into dst.
func (p *Processor) SpectrumSnapshot(tap Tap, dst []float64) ([]float64, error) {
	a := p.Analyzer(tap)
	if a == nil {
		return dst, ErrNotSetup
	}

	return a.Snapshot(dst), nil
}

// BuildSpectrumCurve returns tap's spectrum shape inside bounds. Before
// Setup the path is empty.
func (p *Processor) BuildSpectrumCurve(tap Tap, bounds curve.Rect, minFreq float64) curve.Path {
	a := p.Analyzer(tap)
	if a == nil {
		return curve.Path{}
	}

	return a.CreatePath(bounds, minFreq)
}

// SetBandParameter forwards to the bank.
func (p *Processor) SetBandParameter(index int, field eq.Field, value float64) {
	p.bank.SetBandParameter(index, field, value)
}

// SetSolo forwards to the bank.
func (p *Processor) SetSolo(index int) { p.bank.SetSolo(index) }

// SetOutputGain forwards to the bank.
func (p *Processor) SetOutputGain(gain float64) { p.bank.SetOutputGain(gain) }

// SetParameter forwards a parameter id to the bank.
func (p *Processor) SetParameter(id string, value float64) error {
	return p.bank.SetParameter(id, value)
}

// BandResponseCurve returns the magnitude response of band index on the
// bank's frequency grid, or nil for out-of-range indices.
func (p *Processor) BandResponseCurve(index int) []float64 {
	return p.bank.BandResponse(index, nil)
}

// CombinedResponseCurve returns the combined magnitude response.
func (p *Processor) CombinedResponseCurve() []float64 {
	return p.bank.CombinedResponse(nil)
}

// BuildResponsePath draws band index, or CombinedCurve, inside bounds.
func (p *Processor) BuildResponsePath(index int, bounds curve.Rect) curve.Path {
	var mags []float64
	if index == CombinedCurve {
		mags = p.CombinedResponseCurve()
	} else {
		mags = p.BandResponseCurve(index)
	}
	if mags == nil {
		return curve.Path{}
	}

	return curve.BuildResponse(p.bank.Frequencies(), mags, bounds, curve.DefaultResponseConfig())
}

package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/bits"
	"sync"
	"sync/atomic"
	"time"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/curve"
	"github.com/cwbudde/algo-eq/dsp/fifo"
	"github.com/cwbudde/algo-eq/dsp/spectrum"
	"github.com/cwbudde/algo-eq/dsp/window"
)

var (
	// ErrInvalidSampleRate is returned for non-positive or non-finite sample rates.
	ErrInvalidSampleRate = errors.New("analyzer: sample rate must be positive and finite")
	// ErrInvalidFFTSize is returned when the frame length is not a power of two >= 16.
	ErrInvalidFFTSize = errors.New("analyzer: fft size must be a power of two >= 16")
	// ErrAlreadyRunning is returned by Start while the worker is active.
	ErrAlreadyRunning = errors.New("analyzer: already running")
	// ErrStopTimeout is returned by Stop when the worker does not exit in time.
	ErrStopTimeout = errors.New("analyzer: worker did not stop in time")
)

// Stats reports analyzer activity counters.
type Stats struct {
	FramesAnalysed uint64
	// WritesDropped counts AddAudioData calls discarded because the FIFO was full.
	WritesDropped uint64
	// Pending is the number of samples waiting in the FIFO.
	Pending int
}

// Analyzer owns the FIFO, the FFT plan and the running average of one
// analysis tap.
type Analyzer struct {
	sampleRate float64
	cfg        config
	fifo       *fifo.Fifo
	logger     *slog.Logger

	// Worker side.
	plan   *algofft.Plan[complex128]
	win    []float64
	frame  []float64
	fftIn  []complex128
	fftOut []complex128
	re, im []float64
	mags   []float64

	mu  sync.Mutex
	avg *spectrum.Averager

	dataAvailable atomic.Bool
	frames        atomic.Uint64
	running       atomic.Bool

	lifecycle sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
}

// New allocates an analyzer for sampleRate with a FIFO of fifoCapacity
// samples. The capacity is raised if needed so one full frame fits.
func New(sampleRate float64, fifoCapacity int, opts ...Option) (*Analyzer, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := cfg.fftSize
	if n < 16 || bits.OnesCount(uint(n)) != 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, n)
	}
	if cfg.hop <= 0 || cfg.hop > n {
		cfg.hop = n
	}

	q, err := fifo.New(max(fifoCapacity, n+1))
	if err != nil {
		return nil, fmt.Errorf("analyzer: fifo: %w", err)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("analyzer: fft plan: %w", err)
	}

	win, err := window.Normalized(cfg.window, n, window.WithPeriodic())
	if err != nil {
		return nil, fmt.Errorf("analyzer: window: %w", err)
	}

	bins := n / 2
	avg, err := spectrum.NewAverager(bins, cfg.depth)
	if err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}

	return &Analyzer{
		sampleRate: sampleRate,
		cfg:        cfg,
		fifo:       q,
		logger:     cfg.logger,
		plan:       plan,
		win:        win,
		frame:      make([]float64, n),
		fftIn:      make([]complex128, n),
		fftOut:     make([]complex128, n),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		mags:       make([]float64, bins),
		avg:        avg,
	}, nil
}

// SampleRate returns the configured sample rate.
func (a *Analyzer) SampleRate() float64 { return a.sampleRate }

// FFTSize returns the frame length.
func (a *Analyzer) FFTSize() int { return a.cfg.fftSize }

// HopSize returns how far the frame advances per analysis.
func (a *Analyzer) HopSize() int { return a.cfg.hop }

// Bins returns the number of magnitude bins, FFTSize/2.
func (a *Analyzer) Bins() int { return a.cfg.fftSize / 2 }

// AverageDepth returns the number of averaged frames.
func (a *Analyzer) AverageDepth() int { return a.cfg.depth }

// AddAudioData mono-reduces channels [startChannel, startChannel+numChannels)
// of block into the FIFO. It never blocks or allocates; a block that does
// not fit is dropped whole and false is returned.
func (a *Analyzer) AddAudioData(block [][]float64, startChannel, numChannels int) bool {
	return a.fifo.WriteChannels(block, startChannel, numChannels)
}

// CheckDataAvailable reports whether the average changed since the last
// call, and clears the flag.
func (a *Analyzer) CheckDataAvailable() bool {
	return a.dataAvailable.Swap(false)
}

// Snapshot copies the current average into dst, growing it as needed.
func (a *Analyzer) Snapshot(dst []float64) []float64 {
	dst = core.EnsureLen(dst, a.Bins())

	a.mu.Lock()
	a.avg.CopyAverage(dst)
	a.mu.Unlock()

	return dst
}

// CreatePath builds the spectrum shape of the current average inside
// bounds, with minFreq on the left edge and ten octaves across.
func (a *Analyzer) CreatePath(bounds curve.Rect, minFreq float64) curve.Path {
	cfg := curve.DefaultSpectrumConfig(a.sampleRate, a.cfg.fftSize)
	cfg.MinFreq = minFreq

	return curve.BuildSpectrum(a.Snapshot(nil), bounds, cfg)
}

// Stats returns the current counters.
func (a *Analyzer) Stats() Stats {
	return Stats{
		FramesAnalysed: a.frames.Load(),
		WritesDropped:  a.fifo.Dropped(),
		Pending:        a.fifo.Ready(),
	}
}

// Running reports whether the worker goroutine is active.
func (a *Analyzer) Running() bool { return a.running.Load() }

// Start launches the worker goroutine. It exits when ctx is cancelled or
// Stop is called.
func (a *Analyzer) Start(ctx context.Context) error {
	a.lifecycle.Lock()
	defer a.lifecycle.Unlock()

	if a.running.Load() {
		return ErrAlreadyRunning
	}
	if a.cancel != nil {
		a.cancel()
	}

	wctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	a.cancel = cancel
	a.done = done
	a.running.Store(true)

	go a.run(wctx, done)

	a.logger.Debug("analyzer started",
		"fft_size", a.cfg.fftSize, "hop", a.cfg.hop, "depth", a.cfg.depth,
		"window", a.cfg.window.String(), "fifo", a.fifo.Capacity())

	return nil
}

// Stop cancels the worker and waits up to the stop timeout for it to exit.
// Stopping an idle analyzer is a no-op.
func (a *Analyzer) Stop() error {
	a.lifecycle.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.lifecycle.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	timer := time.NewTimer(a.cfg.stopTimeout)
	defer timer.Stop()

	select {
	case <-done:
		a.logger.Debug("analyzer stopped", "frames", a.frames.Load())
		return nil
	case <-timer.C:
		a.logger.Warn("analyzer stop timed out", "timeout", a.cfg.stopTimeout)
		return ErrStopTimeout
	}
}

// AnalyzePending analyses every complete frame waiting in the FIFO on the
// calling goroutine and returns how many were processed. It does nothing
// while the worker is running.
func (a *Analyzer) AnalyzePending() int {
	if a.running.Load() {
		return 0
	}

	return a.drain(context.Background())
}

// Reset discards pending samples and clears the average. It must not be
// called while the worker is running or audio is being pushed.
func (a *Analyzer) Reset() {
	a.fifo.Reset()

	a.mu.Lock()
	a.avg.Reset()
	a.mu.Unlock()

	a.dataAvailable.Store(false)
}

func (a *Analyzer) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	defer a.running.Store(false)

	timer := time.NewTimer(a.cfg.waitTimeout)
	defer timer.Stop()

	for {
		a.drain(ctx)

		timer.Reset(a.cfg.waitTimeout)
		select {
		case <-ctx.Done():
			return
		case <-a.fifo.Signal():
		case <-timer.C:
		}
	}
}

// drain analyses frames while a full frame is ready.
func (a *Analyzer) drain(ctx context.Context) int {
	n := 0
	for a.fifo.Ready() >= a.cfg.fftSize {
		if ctx.Err() != nil {
			break
		}
		a.analyzeFrame()
		n++
	}

	return n
}

func (a *Analyzer) analyzeFrame() {
	first, second := a.fifo.PrepareToRead(a.cfg.fftSize)
	copy(a.frame, first)
	copy(a.frame[len(first):], second)
	a.fifo.FinishedRead(a.cfg.hop)

	vecmath.MulBlockInPlace(a.frame, a.win)
	for i, v := range a.frame {
		a.fftIn[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.fftOut, a.fftIn); err != nil {
		a.logger.Error("analyzer fft failed", "err", err)
		return
	}

	bins := len(a.mags)
	spectrum.SplitComplex(a.re, a.im, a.fftOut[:bins])
	spectrum.MagnitudeFromParts(a.mags, a.re, a.im)
	vecmath.ScaleBlockInPlace(a.mags, 1/float64(bins))

	a.mu.Lock()
	a.avg.Add(a.mags)
	a.mu.Unlock()

	a.frames.Add(1)
	a.dataAvailable.Store(true)
}

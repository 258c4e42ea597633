package analyzer

import (
	"log/slog"
	"time"

	"github.com/cwbudde/algo-eq/dsp/window"
)

const (
	// DefaultFFTSize is the analysis frame length (2^12).
	DefaultFFTSize = 4096
	// DefaultAverageDepth is the number of frames in the running average.
	DefaultAverageDepth = 4
	// DefaultWaitTimeout bounds how long the worker sleeps without data.
	DefaultWaitTimeout = 100 * time.Millisecond
	// DefaultStopTimeout bounds how long Stop waits for the worker.
	DefaultStopTimeout = time.Second
)

type config struct {
	fftSize     int
	depth       int
	hop         int
	window      window.Type
	waitTimeout time.Duration
	stopTimeout time.Duration
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{
		fftSize:     DefaultFFTSize,
		depth:       DefaultAverageDepth,
		window:      window.TypeHann,
		waitTimeout: DefaultWaitTimeout,
		stopTimeout: DefaultStopTimeout,
		logger:      slog.New(slog.DiscardHandler),
	}
}

// Option configures an Analyzer.
type Option func(*config)

// WithFFTSize sets the frame length. It must be a power of two >= 16.
func WithFFTSize(n int) Option {
	return func(c *config) { c.fftSize = n }
}

// WithAverageDepth sets how many frames are averaged.
func WithAverageDepth(depth int) Option {
	return func(c *config) { c.depth = depth }
}

// WithHopSize sets how many samples the frame advances per analysis. The
// default, zero, advances by a full frame. Values above the frame length
// are clamped to it.
func WithHopSize(hop int) Option {
	return func(c *config) { c.hop = hop }
}

// WithWindow selects the analysis window.
func WithWindow(t window.Type) Option {
	return func(c *config) { c.window = t }
}

// WithWaitTimeout sets the idle wake-up interval of the worker.
func WithWaitTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.waitTimeout = d
		}
	}
}

// WithStopTimeout sets how long Stop waits for the worker to exit.
func WithStopTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.stopTimeout = d
		}
	}
}

// WithLogger sets the logger used by the worker goroutine.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

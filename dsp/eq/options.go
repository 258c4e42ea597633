package eq

import (
	"log/slog"
	"math"
)

// DefaultResponsePoints is the size of the default response frequency grid.
const DefaultResponsePoints = 300

// ResponseFrequencies returns n plot frequencies spaced 30 per octave from
// 20 Hz upward: f(i) = 20 * 2^(i/30).
func ResponseFrequencies(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = MinFrequency * math.Exp2(float64(i)/30)
	}

	return out
}

type config struct {
	freqs    []float64
	bands    []Band
	onChange func()
	logger   *slog.Logger
}

// Option configures a Bank.
type Option func(*config)

// WithResponseFrequencies replaces the frequency grid used for the per-band
// and combined magnitude curves. Empty grids are ignored.
func WithResponseFrequencies(freqs []float64) Option {
	return func(c *config) {
		if len(freqs) > 0 {
			c.freqs = append([]float64(nil), freqs...)
		}
	}
}

// WithBands overrides the default band layout. The slice must hold exactly
// NumBands entries.
func WithBands(bands []Band) Option {
	return func(c *config) {
		c.bands = append([]Band(nil), bands...)
	}
}

// WithOnChange registers a callback invoked on the control goroutine after
// every parameter, solo or output-gain change, once the bank lock is released.
func WithOnChange(fn func()) Option {
	return func(c *config) {
		c.onChange = fn
	}
}

// WithLogger sets the logger for control-side diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func defaultConfig() config {
	return config{
		freqs:  ResponseFrequencies(DefaultResponsePoints),
		bands:  DefaultBands(),
		logger: slog.New(slog.DiscardHandler),
	}
}

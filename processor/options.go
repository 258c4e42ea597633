package processor

import (
	"log/slog"

	"github.com/cwbudde/algo-eq/dsp/analyzer"
	"github.com/cwbudde/algo-eq/dsp/eq"
)

type config struct {
	channels     int
	analyzerOpts []analyzer.Option
	bankOpts     []eq.Option
	logger       *slog.Logger
	analysis     bool
	background   bool
}

func defaultConfig() config {
	return config{
		channels:   2,
		logger:     slog.New(slog.DiscardHandler),
		analysis:   true,
		background: true,
	}
}

// Option configures a Processor.
type Option func(*config)

// WithChannels sets the number of channels the equalizer processes.
func WithChannels(n int) Option {
	return func(c *config) { c.channels = n }
}

// WithAnalyzerOptions passes options to both analysis taps.
func WithAnalyzerOptions(opts ...analyzer.Option) Option {
	return func(c *config) { c.analyzerOpts = append(c.analyzerOpts, opts...) }
}

// WithBankOptions passes options to the equalizer bank.
func WithBankOptions(opts ...eq.Option) Option {
	return func(c *config) { c.bankOpts = append(c.bankOpts, opts...) }
}

// WithLogger sets the logger shared by the bank and the analyzers.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithAnalysisEnabled sets whether PushAudio feeds the analyzers initially.
// Hosts typically enable it only while a display is open.
func WithAnalysisEnabled(enabled bool) Option {
	return func(c *config) { c.analysis = enabled }
}

// WithBackgroundAnalysis controls whether Setup starts the analyzer
// goroutines. Without them, call AnalyzePending to run analysis inline.
func WithBackgroundAnalysis(enabled bool) Option {
	return func(c *config) { c.background = enabled }
}

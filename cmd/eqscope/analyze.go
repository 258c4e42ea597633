package main

import (
	"context"
	"fmt"
	"math"
	"slices"
	"text/tabwriter"

	"github.com/cwbudde/algo-eq/dsp/analyzer"
	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/signal"
	"github.com/cwbudde/algo-eq/internal/host"
	"github.com/cwbudde/algo-eq/processor"
)

// SignalFlags select the test signal.
type SignalFlags struct {
	Signal    string  `short:"s" default:"sine" enum:"sine,noise,sweep,silence" help:"Test signal: ${enum}."`
	Freq      float64 `short:"f" default:"1000" help:"Sine frequency, or sweep start, in Hz."`
	FreqEnd   float64 `default:"20000" help:"Sweep end frequency in Hz."`
	Period    float64 `default:"5" help:"Sweep period in seconds."`
	Amplitude float64 `default:"0.5" help:"Peak amplitude."`
	Seed      int64   `default:"1" help:"Noise seed."`
}

// source builds the selected signal at the generator's sample rate.
func (f SignalFlags) source(gen *signal.Generator) (signal.Source, error) {
	kind, err := signal.ParseKind(f.Signal)
	if err != nil {
		return nil, err
	}

	return gen.NewSource(signal.Spec{
		Kind:      kind,
		Freq:      f.Freq,
		FreqEnd:   f.FreqEnd,
		Amplitude: f.Amplitude,
		Period:    f.Period,
	})
}

// AnalyzeCmd runs a test signal through the equalizer offline and prints
// the strongest spectral peaks before and after it.
type AnalyzeCmd struct {
	EQFlags     `embed:""`
	SignalFlags `embed:""`

	Seconds float64 `default:"1" help:"Signal duration in seconds."`
	Rate    float64 `default:"48000" help:"Sample rate in Hz."`
	FFT     int     `name:"fft" default:"4096" help:"FFT size (power of two)."`
	Depth   int     `default:"4" help:"Number of spectra averaged."`
	Top     int     `default:"5" help:"Peaks listed per tap."`
}

// analysisBlock is the render chunk in frames.
const analysisBlock = 512

func (c *AnalyzeCmd) Run(env *runEnv) error {
	if !(c.Seconds > 0) {
		return fmt.Errorf("seconds must be positive, got %g", c.Seconds)
	}

	p, err := processor.New(
		processor.WithLogger(env.log),
		processor.WithBackgroundAnalysis(false),
		processor.WithAnalyzerOptions(
			analyzer.WithFFTSize(c.FFT),
			analyzer.WithAverageDepth(c.Depth),
		),
	)
	if err != nil {
		return err
	}
	if err := p.Setup(context.Background(), c.Rate, c.FFT+2*analysisBlock); err != nil {
		return err
	}
	defer p.Close()

	if err := c.apply(p); err != nil {
		return err
	}

	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(c.Rate),
		core.WithBlockSize(analysisBlock),
		core.WithChannels(2),
	)
	gen := signal.NewGenerator([]core.ProcessorOption{core.WithSampleRate(c.Rate)}, signal.WithSeed(c.Seed))
	src, err := c.source(gen)
	if err != nil {
		return err
	}

	render := host.NewEQSource(src, p, cfg)
	buf := make([]float32, analysisBlock*render.Channels())
	total := int(math.Round(c.Seconds * c.Rate))
	frames := 0
	for done := 0; done < total; done += analysisBlock {
		render.Process(buf)
		n, err := p.AnalyzePending()
		if err != nil {
			return err
		}
		frames += n
	}
	env.log.Debug("analysis finished", "samples", total, "frames", frames)

	if frames == 0 {
		return fmt.Errorf("signal too short: %d samples for a %d-point FFT", total, c.FFT)
	}

	tw := tabwriter.NewWriter(env.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "Tap\tFrequency [Hz]\tLevel [dB]\t\n")
	for _, tap := range []processor.Tap{processor.Input, processor.Output} {
		mags, err := p.SpectrumSnapshot(tap, nil)
		if err != nil {
			return err
		}
		binWidth := c.Rate / float64(c.FFT)
		for _, k := range strongestPeaks(mags, c.Top) {
			fmt.Fprintf(tw, "%s\t%.1f\t%s\t\n", tap, float64(k)*binWidth, formatDB(mags[k]))
		}
	}

	return tw.Flush()
}

// strongestPeaks returns up to n local maxima of mags, loudest first.
// Silent bins are never reported.
func strongestPeaks(mags []float64, n int) []int {
	var peaks []int
	for k, m := range mags {
		if !(m > 0) {
			continue
		}
		if k > 0 && mags[k-1] >= m {
			continue
		}
		if k < len(mags)-1 && mags[k+1] > m {
			continue
		}
		peaks = append(peaks, k)
	}

	slices.SortStableFunc(peaks, func(a, b int) int {
		switch {
		case mags[a] > mags[b]:
			return -1
		case mags[a] < mags[b]:
			return 1
		default:
			return 0
		}
	})

	return peaks[:max(0, min(n, len(peaks)))]
}

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-eq/dsp/analyzer"
	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/signal"
	"github.com/cwbudde/algo-eq/internal/host"
	"github.com/cwbudde/algo-eq/internal/tui"
	"github.com/cwbudde/algo-eq/processor"
)

// LiveCmd plays a test signal through the equalizer on the default audio
// device and shows both spectra and the filter responses.
type LiveCmd struct {
	EQFlags     `embed:""`
	SignalFlags `embed:""`

	Rate    int           `default:"48000" help:"Device sample rate in Hz."`
	FFT     int           `name:"fft" default:"4096" help:"FFT size (power of two)."`
	Depth   int           `default:"4" help:"Number of spectra averaged."`
	Block   int           `default:"256" help:"Processing block size in frames."`
	Latency time.Duration `default:"50ms" help:"Device buffer size."`
}

func (c *LiveCmd) Run(env *runEnv) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p, err := processor.New(
		processor.WithLogger(env.log),
		processor.WithAnalyzerOptions(
			analyzer.WithFFTSize(c.FFT),
			analyzer.WithAverageDepth(c.Depth),
		),
	)
	if err != nil {
		return err
	}
	if err := p.Setup(ctx, float64(c.Rate), 4*c.FFT); err != nil {
		return err
	}
	if err := c.apply(p); err != nil {
		return errors.Join(err, p.Close())
	}

	gen := signal.NewGenerator([]core.ProcessorOption{core.WithSampleRate(float64(c.Rate))}, signal.WithSeed(c.Seed))
	src, err := c.source(gen)
	if err != nil {
		return errors.Join(err, p.Close())
	}

	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(c.Rate)),
		core.WithBlockSize(c.Block),
		core.WithChannels(2),
	)
	player, err := host.NewPlayer(c.Rate, host.NewEQSource(src, p, cfg), c.Latency)
	if err != nil {
		return errors.Join(err, p.Close())
	}
	player.Play()
	env.log.Info("playing", "signal", c.Signal, "rate", c.Rate, "block", c.Block)

	title := fmt.Sprintf("%s %.0f Hz", c.Signal, c.Freq)
	_, runErr := tea.NewProgram(tui.NewModel(p, title), tea.WithAltScreen(), tea.WithContext(ctx)).Run()

	return errors.Join(runErr, player.Stop(), p.Close())
}

package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-eq/dsp/window"
)

// alphaDefaults lists the parametric windows and their default shape.
var alphaDefaults = map[window.Type]float64{
	window.TypeKaiser: 8.6,
}

// WindowsCmd prints measured spectral properties of the analysis windows.
type WindowsCmd struct {
	Size     int      `default:"1024" help:"Window length in samples."`
	Alpha    float64  `default:"NaN" help:"Shape parameter for parametric windows (kaiser)."`
	Periodic bool     `default:"true" negatable:"" help:"Use the periodic (FFT) form."`
	List     bool     `help:"List window names and exit."`
	Names    []string `arg:"" optional:"" help:"Windows to describe. All when omitted."`
}

func (c *WindowsCmd) Run(env *runEnv) error {
	if c.List {
		for _, t := range window.Types() {
			fmt.Fprintln(env.out, t)
		}
		return nil
	}
	if c.Size < 2 {
		return fmt.Errorf("size must be at least 2, got %d", c.Size)
	}

	types := window.Types()
	if len(c.Names) > 0 {
		types = types[:0:0]
		for _, name := range c.Names {
			t, err := window.ParseType(name)
			if err != nil {
				return err
			}
			types = append(types, t)
		}
	}

	tw := tabwriter.NewWriter(env.out, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\tBW 3dB [bins]\tSidelobe [dB]\t1st Min [bins]\tScallop [dB]\n")
	fmt.Fprint(tw, "------\t----\t-------------\t-----------\t-------------\t-------------\t--------------\t------------\n")

	for _, t := range types {
		var opts []window.Option
		if c.Periodic {
			opts = append(opts, window.WithPeriodic())
		}
		label := t.String()
		if def, ok := alphaDefaults[t]; ok {
			alpha := def
			if !math.IsNaN(c.Alpha) {
				alpha = c.Alpha
			}
			opts = append(opts, window.WithAlpha(alpha))
			label = fmt.Sprintf("%s (a=%.2f)", t, alpha)
		}

		a, err := window.Analyze(window.Generate(t, c.Size, opts...))
		if err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\t%.4f\t%.2f\t%.4f\t%.4f\n",
			label, c.Size,
			a.CoherentGain, a.ENBW, a.Bandwidth3dB,
			a.HighestSidelobedB, a.FirstMinimumBins, a.ScallopLossdB)
	}

	return tw.Flush()
}

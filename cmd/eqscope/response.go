package main

import (
	"context"
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/processor"
)

// responseFloorDB is the lowest level printed.
const responseFloorDB = -120

// ResponseCmd prints the magnitude response of the configured equalizer.
type ResponseCmd struct {
	EQFlags `embed:""`

	Rate    float64 `default:"48000" help:"Sample rate in Hz."`
	Points  int     `default:"31" help:"Number of log-spaced frequencies between 20 Hz and 20.48 kHz."`
	PerBand bool    `help:"Add a column per active band."`
}

// logFrequencies spaces n points over the ten octaves above eq.MinFrequency.
func logFrequencies(n int) []float64 {
	if n == 1 {
		return []float64{eq.MinFrequency}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = eq.MinFrequency * math.Exp2(10*float64(i)/float64(n-1))
	}
	return out
}

func (c *ResponseCmd) Run(env *runEnv) error {
	if c.Points < 1 {
		return fmt.Errorf("points must be positive, got %d", c.Points)
	}

	p, err := processor.New(
		processor.WithLogger(env.log),
		processor.WithBackgroundAnalysis(false),
		processor.WithAnalysisEnabled(false),
		processor.WithBankOptions(eq.WithResponseFrequencies(logFrequencies(c.Points))),
	)
	if err != nil {
		return err
	}
	if err := p.Setup(context.Background(), c.Rate, 0); err != nil {
		return err
	}
	defer p.Close()

	if err := c.apply(p); err != nil {
		return err
	}

	bank := p.Bank()
	var active []int
	if c.PerBand {
		for i := range eq.NumBands {
			if !bank.Bypassed(i) {
				active = append(active, i)
			}
		}
	}
	perBand := make([][]float64, len(active))
	for j, i := range active {
		perBand[j] = p.BandResponseCurve(i)
	}
	combined := p.CombinedResponseCurve()

	tw := tabwriter.NewWriter(env.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "Frequency [Hz]\t")
	for _, i := range active {
		b, _ := bank.Band(i)
		fmt.Fprintf(tw, "%s [dB]\t", b.Name)
	}
	fmt.Fprint(tw, "Combined [dB]\t\n")

	for k, f := range bank.Frequencies() {
		fmt.Fprintf(tw, "%.1f\t", f)
		for j := range active {
			fmt.Fprintf(tw, "%s\t", formatDB(perBand[j][k]))
		}
		fmt.Fprintf(tw, "%s\t\n", formatDB(combined[k]))
	}

	return tw.Flush()
}

// formatDB prints a gain in dB with two decimals. Rounding noise around
// unity never shows up as "-0.00".
func formatDB(gain float64) string {
	db := math.Round(core.GainToDecibels(gain, responseFloorDB)*100) / 100
	if db == 0 {
		db = 0
	}
	return fmt.Sprintf("%.2f", db)
}

package analyzer_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-eq/dsp/analyzer"
	"github.com/cwbudde/algo-eq/dsp/spectrum"
)

func ExampleAnalyzer_AnalyzePending() {
	const fftSize = 1024
	a, err := analyzer.New(48000, 4*fftSize, analyzer.WithFFTSize(fftSize), analyzer.WithAverageDepth(1))
	if err != nil {
		panic(err)
	}

	sine := make([]float64, fftSize)
	for i := range sine {
		sine[i] = 0.5 * math.Sin(2*math.Pi*1500*float64(i)/48000)
	}
	a.AddAudioData([][]float64{sine}, 0, 1)

	frames := a.AnalyzePending()
	bin, mag := spectrum.PeakBin(a.Snapshot(nil), 1)
	fmt.Printf("%d frame(s), peak at %.0f Hz, magnitude %.2f\n",
		frames, spectrum.BinFrequency(bin, fftSize, 48000), mag)

	// Output:
	// 1 frame(s), peak at 1500 Hz, magnitude 0.50
}

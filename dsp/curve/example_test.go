package curve_test

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/curve"
)

func ExampleXForFrequency() {
	bounds := curve.NewRect(0, 0, 1000, 200)
	for _, f := range []float64{20, 40, 1000} {
		fmt.Printf("%.0f Hz -> x=%.2f\n", f, curve.XForFrequency(f, 20, 10, bounds))
	}

	// Output:
	// 20 Hz -> x=0.00
	// 40 Hz -> x=100.00
	// 1000 Hz -> x=564.39
}

func ExampleBuildResponse() {
	bounds := curve.NewRect(0, 0, 100, 48)
	p := curve.BuildResponse([]float64{20, 40}, []float64{1, 1}, bounds, curve.DefaultResponseConfig())
	fmt.Println(p.SVG())

	// Output:
	// M0.00,24.00 C1.67,24.00 8.33,24.00 10.00,24.00
}

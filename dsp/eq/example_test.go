package eq_test

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

func ExampleBank() {
	bank, err := eq.NewBank(48000, 2)
	if err != nil {
		panic(err)
	}

	_ = bank.SetParameter("High Mids-gain", 2)
	band, _ := bank.Band(3)
	fmt.Println(band)

	bank.SetSolo(3)
	fmt.Println(bank.Bypassed(0), bank.Bypassed(3))

	// Output:
	// High Mids: Peak 1000 Hz Q=1.00 +6.0 dB (active)
	// true false
}

func ExampleParamID() {
	fmt.Println(eq.ParamID(2, eq.FieldFrequency))
	fmt.Println(eq.ParamID(5, eq.FieldActive))

	// Output:
	// Low Mids-frequency
	// Highest-active
}

//go:build amd64 && !purego

package biquad

import (
	_ "github.com/cwbudde/algo-eq/dsp/filter/biquad/internal/arch/amd64/unrolled" // register amd64 kernel
	_ "github.com/cwbudde/algo-eq/dsp/filter/biquad/internal/arch/generic"        // register generic kernel
)

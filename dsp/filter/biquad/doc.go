// Package biquad provides the second-order IIR runtime used by each EQ
// band.
//
// A [Section] implements Direct Form II Transposed processing for one set of
// [Coefficients]. Block processing is dispatched to the fastest kernel
// registered for the running CPU. Magnitude responses are evaluated
// analytically from the coefficients, never by running audio.
//
// Coefficient design lives in dsp/filter/design.
package biquad

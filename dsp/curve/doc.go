// Package curve turns magnitude data into resolution-independent vector
// paths for display.
//
// Frequencies map to x on a log2 axis spanning a fixed number of octaves
// above a minimum frequency; magnitudes map to y on a clamped decibel axis.
// [BuildSpectrum] produces the filled analyser shape and [BuildResponse]
// the open equalizer curve. Both are pure functions of their inputs, so the
// same data always yields the same [Path].
//
// Building with the fastmath tag swaps the frequency-axis logarithm for an
// approximation; results stay deterministic but differ slightly from the
// exact build.
package curve

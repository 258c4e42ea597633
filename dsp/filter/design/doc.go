// Package design derives biquad coefficients for the equalizer band types.
//
// Second-order designs follow the RBJ audio-EQ cookbook; the first-order
// variants use the bilinear transform with frequency pre-warping. Every
// designer returns [biquad.Identity] when the frequency or sample rate is
// outside the valid range, so the result is always safe to run.
package design

//go:build fastmath

package curve

import "github.com/meko-christian/algo-approx"

// ln2 is the natural logarithm of 2.
const ln2 = 0.693147180559945309417232121458

// mathLog2 computes log2(x) using a fast approximation.
func mathLog2(x float64) float64 {
	return approx.FastLog(x) / ln2
}

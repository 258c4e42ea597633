// Package cpu reports the instruction set extensions the biquad block
// kernels can target. The host is queried once; tests pin a feature set
// with Force.
package cpu

import (
	"sync"
	"sync/atomic"
)

// Level is the instruction set a kernel requires.
type Level uint8

const (
	// Generic kernels are portable Go and run everywhere.
	Generic Level = iota
	SSE2
	AVX2
	NEON
)

func (l Level) String() string {
	switch l {
	case Generic:
		return "generic"
	case SSE2:
		return "sse2"
	case AVX2:
		return "avx2"
	case NEON:
		return "neon"
	default:
		return "unknown"
	}
}

// Features is the set of extensions a kernel may rely on.
type Features struct {
	SSE2 bool
	AVX2 bool
	NEON bool

	// Portable restricts kernel selection to Generic.
	Portable bool

	// Arch is runtime.GOARCH for detected features.
	Arch string
}

// Supports reports whether a kernel requiring l can run with f.
func (f Features) Supports(l Level) bool {
	switch {
	case l == Generic:
		return true
	case f.Portable:
		return false
	case l == SSE2:
		return f.SSE2
	case l == AVX2:
		return f.AVX2
	case l == NEON:
		return f.NEON
	default:
		return false
	}
}

var (
	host   = sync.OnceValue(detect)
	forced atomic.Pointer[Features]
)

// Detect returns the forced feature set if one is pinned, otherwise the
// host's.
func Detect() Features {
	if f := forced.Load(); f != nil {
		return *f
	}

	return host()
}

// Force pins Detect to f until restore is called.
func Force(f Features) (restore func()) {
	prev := forced.Swap(&f)
	return func() { forced.Store(prev) }
}

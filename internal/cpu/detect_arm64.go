//go:build arm64

package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// ASIMD is mandatory on arm64, the flag is read for completeness.
func detect() Features {
	return Features{NEON: cpu.ARM64.HasASIMD, Arch: runtime.GOARCH}
}

//go:build amd64

package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

func detect() Features {
	return Features{
		SSE2: cpu.X86.HasSSE2,
		AVX2: cpu.X86.HasAVX2,
		Arch: runtime.GOARCH,
	}
}

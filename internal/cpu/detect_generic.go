//go:build !amd64 && !arm64

package cpu

import "runtime"

func detect() Features {
	return Features{Arch: runtime.GOARCH}
}

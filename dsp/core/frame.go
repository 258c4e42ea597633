package core

// NewFrame allocates a planar block of channels x samples.
func NewFrame(channels, samples int) [][]float64 {
	if channels <= 0 || samples < 0 {
		return nil
	}

	backing := make([]float64, channels*samples)
	frame := make([][]float64, channels)
	for ch := range frame {
		frame[ch] = backing[ch*samples : (ch+1)*samples : (ch+1)*samples]
	}

	return frame
}

// FrameLen returns the shortest channel length of block, or 0 for an empty block.
func FrameLen(block [][]float64) int {
	if len(block) == 0 {
		return 0
	}

	n := len(block[0])
	for _, ch := range block[1:] {
		if len(ch) < n {
			n = len(ch)
		}
	}

	return n
}

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Deinterleave splits interleaved samples into the planar dst block and
// returns the number of frames written. Extra source channels are ignored;
// extra destination channels are left untouched.
func Deinterleave(dst [][]float64, src []float32, srcChannels int) int {
	if srcChannels <= 0 || len(dst) == 0 {
		return 0
	}

	frames := len(src) / srcChannels
	if n := FrameLen(dst); n < frames {
		frames = n
	}

	channels := min(len(dst), srcChannels)
	for i := range frames {
		base := i * srcChannels
		for ch := range channels {
			dst[ch][i] = float64(src[base+ch])
		}
	}

	return frames
}

// Interleave writes the planar src block into dst with dstChannels
// interleaved channels and returns the number of frames written. A mono
// source is duplicated onto every destination channel.
func Interleave(dst []float32, src [][]float64, dstChannels int) int {
	if dstChannels <= 0 || len(src) == 0 {
		return 0
	}

	frames := len(dst) / dstChannels
	if n := FrameLen(src); n < frames {
		frames = n
	}

	for i := range frames {
		base := i * dstChannels
		for ch := range dstChannels {
			srcCh := ch
			if srcCh >= len(src) {
				srcCh = len(src) - 1
			}
			dst[base+ch] = float32(src[srcCh][i])
		}
	}

	return frames
}

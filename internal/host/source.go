// Package host drives the equalizer from an audio device callback.
//
// The device pulls interleaved float32 frames through a [StreamReader];
// an [EQSource] renders them by pulling a test signal, running it through
// the processor block by block and interleaving the result.
package host

import (
	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/signal"
)

// SampleSource renders interleaved stereo float32 samples.
type SampleSource interface {
	Process(dst []float32)
}

// BlockProcessor filters a planar block in place.
type BlockProcessor interface {
	ProcessBlock(block [][]float64)
}

// EQSource renders a signal.Source through a BlockProcessor in chunks of at
// most blockSize frames. Process does not allocate.
type EQSource struct {
	src      signal.Source
	proc     BlockProcessor
	channels int
	scratch  [][]float64
	view     [][]float64
}

// NewEQSource returns a source rendering channels interleaved channels.
func NewEQSource(src signal.Source, proc BlockProcessor, cfg core.ProcessorConfig) *EQSource {
	channels := max(cfg.Channels, 1)
	blockSize := max(cfg.BlockSize, 1)

	return &EQSource{
		src:      src,
		proc:     proc,
		channels: channels,
		scratch:  core.NewFrame(channels, blockSize),
		view:     make([][]float64, channels),
	}
}

// Channels returns the number of interleaved output channels.
func (s *EQSource) Channels() int { return s.channels }

// Process implements SampleSource.
func (s *EQSource) Process(dst []float32) {
	blockSize := len(s.scratch[0])
	frames := len(dst) / s.channels

	for done := 0; done < frames; {
		n := min(blockSize, frames-done)
		for ch := range s.view {
			s.view[ch] = s.scratch[ch][:n]
		}

		signal.Fill(s.src, s.view)
		s.proc.ProcessBlock(s.view)
		core.Interleave(dst[done*s.channels:(done+n)*s.channels], s.view, s.channels)

		done += n
	}

	clear(dst[frames*s.channels:])
}

package host

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/signal"
)

type gainProcessor struct {
	gain   float64
	blocks []int
}

func (g *gainProcessor) ProcessBlock(block [][]float64) {
	g.blocks = append(g.blocks, len(block[0]))
	for _, ch := range block {
		for i := range ch {
			ch[i] *= g.gain
		}
	}
}

type rampSource struct{ n float64 }

func (r *rampSource) Read(dst []float64) {
	for i := range dst {
		dst[i] = r.n
		r.n++
	}
}

func TestEQSourceChunksAndInterleaves(t *testing.T) {
	proc := &gainProcessor{gain: 0.5}
	cfg := core.ProcessorConfig{SampleRate: 48000, BlockSize: 4, Channels: 2}
	src := NewEQSource(&rampSource{}, proc, cfg)

	dst := make([]float32, 2*10+1)
	dst[len(dst)-1] = 99
	src.Process(dst)

	if want := []int{4, 4, 2}; len(proc.blocks) != len(want) ||
		proc.blocks[0] != 4 || proc.blocks[1] != 4 || proc.blocks[2] != 2 {
		t.Fatalf("block sizes = %v, want %v", proc.blocks, want)
	}
	for i := range 10 {
		want := float32(0.5 * float64(i))
		if dst[2*i] != want || dst[2*i+1] != want {
			t.Fatalf("frame %d = %v,%v want %v", i, dst[2*i], dst[2*i+1], want)
		}
	}
	if dst[len(dst)-1] != 0 {
		t.Fatalf("trailing partial frame not cleared: %v", dst[len(dst)-1])
	}
}

func TestEQSourceDoesNotAllocate(t *testing.T) {
	g := signal.NewGenerator(nil)
	sine, err := g.NewSine(440, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	src := NewEQSource(sine, nopProcessor{}, core.DefaultProcessorConfig())
	dst := make([]float32, 2*1500)

	if allocs := testing.AllocsPerRun(50, func() { src.Process(dst) }); allocs != 0 {
		t.Fatalf("Process allocated %.1f times per run", allocs)
	}
}

type nopProcessor struct{}

func (nopProcessor) ProcessBlock([][]float64) {}

type constSource float32

func (c constSource) Process(dst []float32) {
	for i := range dst {
		dst[i] = float32(c)
	}
}

func TestStreamReaderEncodesFloat32LE(t *testing.T) {
	r := NewStreamReader(constSource(0.25))

	p := make([]byte, 8*3+5)
	n, err := r.Read(p)
	if err != nil {
		t.Fatal(err)
	}
	if n != 24 {
		t.Fatalf("n = %d, want 24", n)
	}
	for i := 0; i < n; i += 4 {
		if v := math.Float32frombits(binary.LittleEndian.Uint32(p[i:])); v != 0.25 {
			t.Fatalf("sample at byte %d = %v", i, v)
		}
	}

	if n, _ := r.Read(make([]byte, 7)); n != 0 {
		t.Fatalf("short read returned %d", n)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
}

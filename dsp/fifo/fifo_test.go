package fifo

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func ramp(start, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(start + i)
	}
	return out
}

func TestNewRejectsSmallCapacity(t *testing.T) {
	for _, c := range []int{-1, 0, 1} {
		if _, err := New(c); !errors.Is(err, ErrInvalidCapacity) {
			t.Fatalf("New(%d) err = %v, want ErrInvalidCapacity", c, err)
		}
	}
}

func TestWriteReadPreservesOrderAcrossWrap(t *testing.T) {
	f, err := New(10)
	if err != nil {
		t.Fatal(err)
	}

	next := 0
	want := 0
	dst := make([]float64, 4)

	for round := 0; round < 25; round++ {
		if !f.Write(ramp(next, 5)) {
			t.Fatalf("round %d: write of 5 failed with free=%d", round, f.Free())
		}
		next += 5

		for f.Ready() > 0 {
			n := f.ReadInto(dst)
			for i := 0; i < n; i++ {
				if dst[i] != float64(want) {
					t.Fatalf("round %d: got %v, want %d", round, dst[i], want)
				}
				want++
			}
		}
	}

	if want != next {
		t.Fatalf("read %d samples, wrote %d", want, next)
	}
}

func TestFreeSpaceReservesOneSlot(t *testing.T) {
	f, _ := New(8)
	if got := f.Free(); got != 7 {
		t.Fatalf("Free = %d, want 7", got)
	}
	if !f.Write(ramp(0, 7)) {
		t.Fatal("expected 7 samples to fit")
	}
	if f.Free() != 0 || f.Ready() != 7 {
		t.Fatalf("Free=%d Ready=%d after filling", f.Free(), f.Ready())
	}
}

func TestOversizedWriteIsDroppedWhole(t *testing.T) {
	f, _ := New(8)
	f.Write(ramp(0, 5))

	before := f.Ready()
	if f.Write(ramp(100, 3)) {
		t.Fatal("write exceeding free space must fail")
	}
	if f.Ready() != before {
		t.Fatalf("Ready changed from %d to %d on dropped write", before, f.Ready())
	}
	if f.Dropped() != 1 {
		t.Fatalf("Dropped = %d, want 1", f.Dropped())
	}

	dst := make([]float64, 8)
	n := f.ReadInto(dst)
	for i := 0; i < n; i++ {
		if dst[i] != float64(i) {
			t.Fatalf("index %d: got %v; dropped data leaked into ring", i, dst[i])
		}
	}
}

func TestPrepareToReadSplitsAtWrap(t *testing.T) {
	f, _ := New(8)
	f.Write(ramp(0, 6))
	f.FinishedRead(5)
	f.Write(ramp(6, 6))

	first, second := f.PrepareToRead(7)
	if len(first)+len(second) != 7 {
		t.Fatalf("span lengths %d+%d, want 7", len(first), len(second))
	}
	if len(second) == 0 {
		t.Fatal("expected a wrapped second span")
	}

	got := append(append([]float64(nil), first...), second...)
	for i, v := range got {
		if v != float64(5+i) {
			t.Fatalf("index %d: got %v, want %d", i, v, 5+i)
		}
	}

	if f.Ready() != 7 {
		t.Fatal("PrepareToRead must not advance the read cursor")
	}
	f.FinishedRead(7)
	if f.Ready() != 0 {
		t.Fatalf("Ready = %d after FinishedRead", f.Ready())
	}
}

func TestWriteChannelsSumsToMono(t *testing.T) {
	f, _ := New(16)
	block := [][]float64{
		{1, 2, 3, 4},
		{10, 20, 30, 40},
		{100, 200, 300, 400},
	}

	if !f.WriteChannels(block, 1, 2) {
		t.Fatal("WriteChannels failed")
	}

	dst := make([]float64, 4)
	f.ReadInto(dst)
	want := []float64{110, 220, 330, 440}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestWriteChannelsAcrossWrap(t *testing.T) {
	f, _ := New(6)
	f.Write(ramp(0, 4))
	f.FinishedRead(4)

	block := [][]float64{{1, 2, 3, 4}, {1, 1, 1, 1}}
	if !f.WriteChannels(block, 0, 2) {
		t.Fatal("WriteChannels failed")
	}

	dst := make([]float64, 4)
	f.ReadInto(dst)
	want := []float64{2, 3, 4, 5}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestWriteChannelsInvalidRange(t *testing.T) {
	f, _ := New(8)
	block := [][]float64{{1}, {2}}
	for _, r := range [][2]int{{-1, 1}, {0, 0}, {1, 2}, {2, 1}} {
		if f.WriteChannels(block, r[0], r[1]) {
			t.Fatalf("range %v accepted", r)
		}
	}
	if f.Ready() != 0 {
		t.Fatal("invalid range wrote samples")
	}
}

func TestSignalRaisedOnWrite(t *testing.T) {
	f, _ := New(8)
	f.Write([]float64{1})
	f.Write([]float64{2})

	select {
	case <-f.Signal():
	case <-time.After(time.Second):
		t.Fatal("no signal after write")
	}

	select {
	case <-f.Signal():
		t.Fatal("signal must coalesce to a single pending wake-up")
	default:
	}
}

func TestReset(t *testing.T) {
	f, _ := New(8)
	f.Write(ramp(0, 5))
	f.Write(ramp(0, 5))
	f.Reset()

	if f.Ready() != 0 || f.Dropped() != 0 || f.Free() != 7 {
		t.Fatalf("Ready=%d Dropped=%d Free=%d after Reset", f.Ready(), f.Dropped(), f.Free())
	}
}

func TestConcurrentProducerConsumer(t *testing.T) {
	const total = 200000

	f, _ := New(1024)

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		block := make([]float64, 64)
		next := 0
		for next < total {
			n := min(len(block), total-next)
			for i := 0; i < n; i++ {
				block[i] = float64(next + i)
			}
			if f.Write(block[:n]) {
				next += n
			}
		}
	}()

	dst := make([]float64, 100)
	want := 0
	deadline := time.Now().Add(10 * time.Second)
	for want < total {
		if time.Now().After(deadline) {
			t.Fatalf("timed out after %d samples", want)
		}
		n := f.ReadInto(dst)
		for i := 0; i < n; i++ {
			if dst[i] != float64(want) {
				t.Fatalf("sample %d: got %v", want, dst[i])
			}
			want++
		}
	}

	wg.Wait()
}

func TestWriteDoesNotAllocate(t *testing.T) {
	f, _ := New(4096)
	block := [][]float64{make([]float64, 256), make([]float64, 256)}
	dst := make([]float64, 256)

	allocs := testing.AllocsPerRun(100, func() {
		f.WriteChannels(block, 0, 2)
		f.ReadInto(dst)
	})
	if allocs != 0 {
		t.Fatalf("allocs per run = %v, want 0", allocs)
	}
}

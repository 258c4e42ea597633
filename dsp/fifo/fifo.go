package fifo

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidCapacity is returned by New for capacities below 2.
var ErrInvalidCapacity = errors.New("fifo: capacity must be >= 2")

// Fifo is a lock-free SPSC ring of mono samples. One slot is always kept
// empty so that a full ring can be told apart from an empty one.
type Fifo struct {
	buf      []float64
	capacity int

	write   atomic.Int64
	read    atomic.Int64
	dropped atomic.Uint64

	signal chan struct{}
}

// New allocates a ring holding up to capacity-1 ready samples.
func New(capacity int) (*Fifo, error) {
	if capacity < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	return &Fifo{
		buf:      make([]float64, capacity),
		capacity: capacity,
		signal:   make(chan struct{}, 1),
	}, nil
}

// Capacity returns the size of the backing store.
func (f *Fifo) Capacity() int { return f.capacity }

// Ready returns the number of samples available to the consumer.
func (f *Fifo) Ready() int {
	return f.ready(int(f.write.Load()), int(f.read.Load()))
}

// Free returns the number of samples the producer can write without dropping.
func (f *Fifo) Free() int {
	return f.capacity - 1 - f.Ready()
}

// Dropped returns how many writes were discarded because they did not fit.
func (f *Fifo) Dropped() uint64 { return f.dropped.Load() }

// Signal is raised after every successful write. It holds at most one
// pending wake-up, so the consumer must re-check Ready after receiving.
func (f *Fifo) Signal() <-chan struct{} { return f.signal }

// Write appends samples. It returns false and leaves the ring untouched if
// len(samples) exceeds the free space.
func (f *Fifo) Write(samples []float64) bool {
	n := len(samples)
	if n == 0 {
		return true
	}

	first, second, ok := f.reserve(n)
	if !ok {
		return false
	}

	copy(first, samples)
	copy(second, samples[len(first):])
	f.publish(n)

	return true
}

// WriteChannels mono-reduces channels [start, start+num) of block by
// summation and appends the result with the same all-or-nothing policy as
// Write. An invalid channel range writes nothing and returns false.
func (f *Fifo) WriteChannels(block [][]float64, start, num int) bool {
	if start < 0 || num <= 0 || start+num > len(block) {
		return false
	}

	channels := block[start : start+num]

	n := len(channels[0])
	for _, ch := range channels[1:] {
		n = min(n, len(ch))
	}

	if n == 0 {
		return true
	}

	first, second, ok := f.reserve(n)
	if !ok {
		return false
	}

	split := len(first)
	copy(first, channels[0][:split])
	copy(second, channels[0][split:n])

	for _, ch := range channels[1:] {
		vecmath.AddBlockInPlace(first, ch[:split])
		if len(second) > 0 {
			vecmath.AddBlockInPlace(second, ch[split:n])
		}
	}

	f.publish(n)

	return true
}

// PrepareToRead returns the oldest min(n, Ready()) samples as two spans.
// The spans alias the ring and stay valid until FinishedRead is called.
// Consumer side only.
func (f *Fifo) PrepareToRead(n int) (first, second []float64) {
	r := int(f.read.Load())
	ready := f.ready(int(f.write.Load()), r)

	n = min(n, ready)
	if n <= 0 {
		return nil, nil
	}

	end := r + n
	if end <= f.capacity {
		return f.buf[r:end], nil
	}

	return f.buf[r:], f.buf[:end-f.capacity]
}

// FinishedRead releases n samples previously returned by PrepareToRead.
// Consumer side only.
func (f *Fifo) FinishedRead(n int) {
	r := int(f.read.Load())
	n = min(n, f.ready(int(f.write.Load()), r))

	if n <= 0 {
		return
	}

	f.read.Store(int64((r + n) % f.capacity))
}

// ReadInto copies up to len(dst) of the oldest samples into dst, advances
// the read cursor and returns the count. Consumer side only.
func (f *Fifo) ReadInto(dst []float64) int {
	first, second := f.PrepareToRead(len(dst))
	n := copy(dst, first)
	n += copy(dst[n:], second)
	f.FinishedRead(n)

	return n
}

// Reset discards all ready samples. It must only be called while the
// producer is quiescent.
func (f *Fifo) Reset() {
	f.read.Store(f.write.Load())
	f.dropped.Store(0)

	select {
	case <-f.signal:
	default:
	}
}

func (f *Fifo) ready(w, r int) int {
	d := w - r
	if d < 0 {
		d += f.capacity
	}

	return d
}

// reserve returns the writable spans for n samples without publishing them.
func (f *Fifo) reserve(n int) (first, second []float64, ok bool) {
	w := int(f.write.Load())
	free := f.capacity - 1 - f.ready(w, int(f.read.Load()))

	if n > free {
		f.dropped.Add(1)
		return nil, nil, false
	}

	end := w + n
	if end <= f.capacity {
		return f.buf[w:end], nil, true
	}

	return f.buf[w:], f.buf[:end-f.capacity], true
}

func (f *Fifo) publish(n int) {
	w := int(f.write.Load())
	f.write.Store(int64((w + n) % f.capacity))

	select {
	case f.signal <- struct{}{}:
	default:
	}
}

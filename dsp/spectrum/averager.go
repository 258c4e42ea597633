package spectrum

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrInvalidBins is returned when an averager is created without bins.
	ErrInvalidBins = errors.New("spectrum: bin count must be > 0")
	// ErrInvalidDepth is returned when the history depth is below 1.
	ErrInvalidDepth = errors.New("spectrum: averaging depth must be > 0")
)

// Averager keeps the arithmetic mean of the last Depth magnitude frames.
//
// Slot 0 is the accumulator; slots 1..depth hold each frame already scaled
// by 1/depth. Every Add subtracts the slot being overwritten from the
// accumulator and adds the new one, so the update is O(bins) regardless of
// depth. Until depth frames have been added, missing frames count as zero.
//
// An Averager is not safe for concurrent use.
type Averager struct {
	slots  [][]float64
	depth  int
	next   int
	scale  float64
	frames uint64
}

// NewAverager allocates an averager over bins values with the given depth.
func NewAverager(bins, depth int) (*Averager, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBins, bins)
	}

	if depth <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}

	backing := make([]float64, (depth+1)*bins)
	slots := make([][]float64, depth+1)
	for i := range slots {
		slots[i] = backing[i*bins : (i+1)*bins : (i+1)*bins]
	}

	return &Averager{
		slots: slots,
		depth: depth,
		next:  1,
		scale: 1 / float64(depth),
	}, nil
}

// Bins returns the number of values per frame.
func (a *Averager) Bins() int { return len(a.slots[0]) }

// Depth returns the number of frames in the averaging window.
func (a *Averager) Depth() int { return a.depth }

// Frames returns the total number of frames added since the last Reset.
func (a *Averager) Frames() uint64 { return a.frames }

// Add folds frame into the running mean. Values past Bins are ignored and
// a short frame is padded with zeros.
func (a *Averager) Add(frame []float64) {
	acc := a.slots[0]
	slot := a.slots[a.next]

	for i, v := range slot {
		acc[i] -= v
	}

	n := min(len(frame), len(slot))
	vecmath.ScaleBlock(slot[:n], frame[:n], a.scale)
	clear(slot[n:])
	vecmath.AddBlockInPlace(acc, slot)

	a.next++
	if a.next > a.depth {
		a.next = 1
	}
	a.frames++
}

// Average returns the accumulator. The slice aliases internal storage and
// is only valid until the next Add or Reset.
func (a *Averager) Average() []float64 { return a.slots[0] }

// CopyAverage copies the current mean into dst and returns the count.
func (a *Averager) CopyAverage(dst []float64) int {
	return copy(dst, a.slots[0])
}

// Reset clears the history.
func (a *Averager) Reset() {
	for _, s := range a.slots {
		clear(s)
	}

	a.next = 1
	a.frames = 0
}

package curve

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// Point is a position in display coordinates. Y grows downward.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect returns a rectangle at (x, y) with the given size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CentreY returns the y coordinate of the horizontal centre line.
func (r Rect) CentreY() float64 { return r.Y + r.Height/2 }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return !(r.Width > 0) || !(r.Height > 0) }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// XForFrequency maps freq onto bounds on a log2 axis: minFreq lands on the
// left edge and each octave above it advances Width/octaves. Frequencies at
// or below 0.01 Hz map to the left edge.
func XForFrequency(freq, minFreq, octaves float64, bounds Rect) float64 {
	pos := 0.0
	if freq > 0.01 && minFreq > 0 {
		pos = mathLog2(freq / minFreq)
	}

	return bounds.X + bounds.Width/octaves*pos
}

// FrequencyForX is the inverse of XForFrequency.
func FrequencyForX(x, minFreq, octaves float64, bounds Rect) float64 {
	if bounds.Width == 0 {
		return minFreq
	}

	return minFreq * math.Exp2((x-bounds.X)*octaves/bounds.Width)
}

// YForDecibels maps db linearly from [floorDB, ceilDB] onto [Bottom, Top].
// Values outside the range extrapolate.
func YForDecibels(db, floorDB, ceilDB float64, bounds Rect) float64 {
	if ceilDB == floorDB {
		return bounds.Bottom()
	}

	return bounds.Bottom() + (db-floorDB)/(ceilDB-floorDB)*(bounds.Y-bounds.Bottom())
}

// YForMagnitude converts a linear magnitude to decibels, floored at floorDB,
// and maps it with YForDecibels.
func YForMagnitude(mag, floorDB, ceilDB float64, bounds Rect) float64 {
	return YForDecibels(core.GainToDecibels(mag, floorDB), floorDB, ceilDB, bounds)
}

package curve

import (
	"fmt"
	"math"
	"strings"
)

// SegmentKind identifies a path command.
type SegmentKind uint8

const (
	MoveTo SegmentKind = iota
	LineTo
	CubicTo
	Close
)

func (k SegmentKind) String() string {
	switch k {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case CubicTo:
		return "C"
	case Close:
		return "Z"
	default:
		return fmt.Sprintf("SegmentKind(%d)", uint8(k))
	}
}

// Segment is one path command. MoveTo and LineTo use Points[0]; CubicTo
// uses two control points followed by the end point; Close uses none.
type Segment struct {
	Kind   SegmentKind
	Points [3]Point
}

// End returns the point the segment finishes at.
func (s Segment) End() Point {
	switch s.Kind {
	case CubicTo:
		return s.Points[2]
	default:
		return s.Points[0]
	}
}

// Path is an ordered list of segments.
type Path struct {
	Segments []Segment
}

// Reset empties p, keeping its storage.
func (p *Path) Reset() { p.Segments = p.Segments[:0] }

// Len returns the number of segments.
func (p Path) Len() int { return len(p.Segments) }

// Empty reports whether p has no segments.
func (p Path) Empty() bool { return len(p.Segments) == 0 }

// MoveTo starts a new subpath at pt.
func (p *Path) MoveTo(pt Point) {
	p.Segments = append(p.Segments, Segment{Kind: MoveTo, Points: [3]Point{pt}})
}

// LineTo adds a straight line to pt.
func (p *Path) LineTo(pt Point) {
	p.Segments = append(p.Segments, Segment{Kind: LineTo, Points: [3]Point{pt}})
}

// CubicTo adds a cubic Bézier through control points c1, c2 ending at end.
func (p *Path) CubicTo(c1, c2, end Point) {
	p.Segments = append(p.Segments, Segment{Kind: CubicTo, Points: [3]Point{c1, c2, end}})
}

// Close closes the current subpath back to its start.
func (p *Path) Close() {
	p.Segments = append(p.Segments, Segment{Kind: Close})
}

// Bounds returns the bounding box of every segment point, control points
// included. An empty path yields the zero Rect.
func (p Path) Bounds() Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	seen := false
	for _, s := range p.Segments {
		n := 1
		switch s.Kind {
		case CubicTo:
			n = 3
		case Close:
			n = 0
		}
		for _, pt := range s.Points[:n] {
			seen = true
			minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
			minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
		}
	}
	if !seen {
		return Rect{}
	}

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Flatten converts p into polylines, one per subpath, sampling each cubic
// at steps evenly spaced parameter values. Closed subpaths repeat their
// first point at the end.
func (p Path) Flatten(steps int) [][]Point {
	steps = max(steps, 1)

	var (
		out   [][]Point
		cur   []Point
		start Point
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
		}
		cur = nil
	}

	for _, s := range p.Segments {
		switch s.Kind {
		case MoveTo:
			flush()
			start = s.Points[0]
			cur = []Point{start}
		case LineTo:
			if len(cur) == 0 {
				cur = []Point{start}
			}
			cur = append(cur, s.Points[0])
		case CubicTo:
			if len(cur) == 0 {
				cur = []Point{start}
			}
			p0 := cur[len(cur)-1]
			for i := 1; i <= steps; i++ {
				cur = append(cur, cubicPoint(p0, s.Points[0], s.Points[1], s.Points[2], float64(i)/float64(steps)))
			}
		case Close:
			if len(cur) > 0 {
				cur = append(cur, start)
			}
			flush()
		}
	}
	flush()

	return out
}

func cubicPoint(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t

	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// SVG renders p as an SVG path data string.
func (p Path) SVG() string {
	var b strings.Builder
	for i, s := range p.Segments {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.Kind.String())
		switch s.Kind {
		case MoveTo, LineTo:
			fmt.Fprintf(&b, "%.2f,%.2f", s.Points[0].X, s.Points[0].Y)
		case CubicTo:
			fmt.Fprintf(&b, "%.2f,%.2f %.2f,%.2f %.2f,%.2f",
				s.Points[0].X, s.Points[0].Y, s.Points[1].X, s.Points[1].Y, s.Points[2].X, s.Points[2].Y)
		}
	}

	return b.String()
}

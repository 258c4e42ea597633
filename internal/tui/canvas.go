package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cwbudde/algo-eq/dsp/curve"
)

// layer identifies what occupies a canvas cell. Higher layers win.
type layer uint8

const (
	layerEmpty layer = iota
	layerGrid
	layerInput
	layerOutput
	layerBand
	layerCombined
)

var layerGlyphs = [...]rune{' ', '·', '░', '▒', '•', '█'}

// canvas is a character grid that curve paths are rasterised onto.
type canvas struct {
	width, height int
	cells         []layer
	tints         []lipgloss.Color
}

func newCanvas(width, height int) *canvas {
	width, height = max(width, 1), max(height, 1)

	return &canvas{
		width:  width,
		height: height,
		cells:  make([]layer, width*height),
		tints:  make([]lipgloss.Color, width*height),
	}
}

// bounds is the drawing area in cell coordinates.
func (c *canvas) bounds() curve.Rect {
	return curve.NewRect(0, 0, float64(c.width-1), float64(c.height-1))
}

func (c *canvas) at(x, y int) layer {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return layerEmpty
	}
	return c.cells[y*c.width+x]
}

func (c *canvas) set(x, y int, l layer, tint lipgloss.Color) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	i := y*c.width + x
	if l >= c.cells[i] {
		c.cells[i] = l
		c.tints[i] = tint
	}
}

// hline draws a horizontal grid line at row y.
func (c *canvas) hline(y int) {
	for x := range c.width {
		c.set(x, y, layerGrid, "")
	}
}

// line draws a segment with Bresenham's algorithm.
func (c *canvas) line(a, b curve.Point, l layer, tint lipgloss.Color) {
	if !finitePoint(a) || !finitePoint(b) {
		return
	}
	x0, y0 := int(math.Round(a.X)), int(math.Round(a.Y))
	x1, y1 := int(math.Round(b.X)), int(math.Round(b.Y))

	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0, l, tint)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// plot rasterises p. Cubic segments are flattened first.
func (c *canvas) plot(p curve.Path, l layer, tint lipgloss.Color) {
	for _, poly := range p.Flatten(4) {
		for i := 1; i < len(poly); i++ {
			c.line(poly[i-1], poly[i], l, tint)
		}
	}
}

// render styles runs of equal cells together.
func (c *canvas) render(styles map[layer]lipgloss.Style) string {
	var b strings.Builder
	for y := range c.height {
		x := 0
		for x < c.width {
			i := y*c.width + x
			l, tint := c.cells[i], c.tints[i]
			end := x + 1
			for end < c.width && c.cells[y*c.width+end] == l && c.tints[y*c.width+end] == tint {
				end++
			}
			run := strings.Repeat(string(layerGlyphs[l]), end-x)
			st, ok := styles[l]
			switch {
			case tint != "":
				run = st.Foreground(tint).Render(run)
			case ok:
				run = st.Render(run)
			}
			b.WriteString(run)
			x = end
		}
		if y < c.height-1 {
			b.WriteByte('\n')
		}
	}

	return b.String()
}

func finitePoint(p curve.Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package viz

import (
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// blank is the empty braille cell; each cell holds 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
const blank = rune(0x2800)

var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a dot raster backed by braille characters. Dot coordinates run
// from (0, 0) at the top left to (2·Width-1, 4·Height-1).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// cell locates the braille cell and bit of dot (x, y).
func (c *Canvas) cell(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	row, col = y/4, x/2
	if row >= c.Height || col >= c.Width {
		return 0, 0, 0, false
	}
	return row, col, dotBits[y%4][x%2], true
}

// Set lights dot (x, y). Dots off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= bit
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= bit
	}
}

// Dot reports whether dot (x, y) is lit.
func (c *Canvas) Dot(x, y int) bool {
	row, col, bit, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

func (c *Canvas) Clear() {
	for _, row := range c.Grid {
		for j := range row {
			row[j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x1 < x0 {
		sx = -1
	}
	if y1 < y0 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// FillDisc lights every dot within r of (x, y).
func (c *Canvas) FillDisc(x, y, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(x+dx, y+dy)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.Height * (c.Width*3 + 1))
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// viewport maps a bounding box, padded by 10% on every side, onto the unit
// square with y pointing up.
type viewport struct {
	minX, minY   float64
	spanX, spanY float64
}

// fit returns the viewport of all points in paths, or false if there are
// none.
func fit(paths ...[]r2.Vec) (viewport, bool) {
	var lo, hi r2.Vec
	found := false
	for _, path := range paths {
		for _, p := range path {
			if !found {
				lo, hi, found = p, p, true
				continue
			}
			lo = r2.Vec{X: min(lo.X, p.X), Y: min(lo.Y, p.Y)}
			hi = r2.Vec{X: max(hi.X, p.X), Y: max(hi.Y, p.Y)}
		}
	}
	if !found {
		return viewport{}, false
	}

	span := r2.Sub(hi, lo)
	if span.X == 0 {
		span.X = 1
	}
	if span.Y == 0 {
		span.Y = 1
	}
	lo = r2.Sub(lo, r2.Scale(0.1, span))
	return viewport{minX: lo.X, minY: lo.Y, spanX: 1.2 * span.X, spanY: 1.2 * span.Y}, true
}

// unit returns p in viewport coordinates, both in [0, 1] for points inside.
func (v viewport) unit(p r2.Vec) (u, w float64) {
	return (p.X - v.minX) / v.spanX, (p.Y - v.minY) / v.spanY
}

// PlotPoints scatters points onto a w×h character canvas, scaled to their
// bounding box plus 10% padding, and draws the axes where they are in view.
func PlotPoints(points []r2.Vec, w, h int) *Canvas {
	c := NewCanvas(w, h)
	v, ok := fit(points)
	if !ok {
		return c
	}

	cw, ch := w*2, h*4
	dot := func(p r2.Vec) (int, int) {
		u, s := v.unit(p)
		return int(u * float64(cw-1)), ch - 1 - int(s*float64(ch-1))
	}

	u, s := v.unit(r2.Vec{})
	ox, oy := dot(r2.Vec{})
	if u >= 0 && u <= 1 {
		c.DrawLine(ox, 0, ox, ch-1)
	}
	if s >= 0 && s <= 1 {
		c.DrawLine(0, oy, cw-1, oy)
	}
	for _, p := range points {
		c.Set(dot(p))
	}
	return c
}

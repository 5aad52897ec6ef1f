package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille pixel grid with one style layer per cell, so the
// axes, the trail and the mass marker can be coloured independently.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	layer         [][]int
	styles        []lipgloss.Style
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		layer:  make([][]int, h),
		styles: []lipgloss.Style{lipgloss.NewStyle()},
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.layer[i] = make([]int, w)
	}
	c.Clear()
	return c
}

// Style registers a style and returns its layer id. Higher ids win when
// two layers share a cell.
func (c *Canvas) Style(s lipgloss.Style) int {
	c.styles = append(c.styles, s)
	return len(c.styles) - 1
}

// Set lights the sub-pixel (x, y). The canvas is Width*2 by Height*4 sub-pixels.
func (c *Canvas) Set(x, y, layer int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if layer > c.layer[row][col] {
		c.layer[row][col] = layer
	}
}

// Dot fills the whole cell containing sub-pixel (x, y).
func (c *Canvas) Dot(x, y, layer int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] = blank + 0xff
	c.layer[row][col] = layer
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.layer[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1, layer int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, layer)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the grid, batching runs of cells that share a layer.
func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.layer[i][j] == c.layer[i][start] {
				continue
			}
			run := string(row[start:j])
			if l := c.layer[i][start]; l > 0 {
				run = c.styles[l].Render(run)
			}
			b.WriteString(run)
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

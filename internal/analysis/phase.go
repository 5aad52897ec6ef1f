package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/oscillo/internal/dynamo"
	"github.com/san-kum/oscillo/internal/sim"
)

type Point struct{ X, Y float64 }

// PhasePortrait is the (position, velocity) trajectory of one axis.
type PhasePortrait struct {
	Axis   dynamo.Axis
	Points []Point
}

func GeneratePhasePortrait(d *sim.Driver, a dynamo.Axis, ticks int) *PhasePortrait {
	ticks = max(ticks, 0)
	portrait := &PhasePortrait{
		Axis:   a,
		Points: make([]Point, 0, ticks),
	}

	for i := 0; i < ticks; i++ {
		d.Tick()
		s := d.State(a)
		portrait.Points = append(portrait.Points, Point{X: s.Position, Y: s.Velocity})
	}

	return portrait
}

func (pt Point) finite() bool {
	return !math.IsNaN(pt.X) && !math.IsInf(pt.X, 0) && !math.IsNaN(pt.Y) && !math.IsInf(pt.Y, 0)
}

// ASCII plots the portrait with position across and velocity up. Non-finite
// points are left out; it returns "" when nothing can be placed.
func (p *PhasePortrait) ASCII(width, height int) string {
	if p == nil || width < 2 || height < 2 {
		return ""
	}

	points := make([]Point, 0, len(p.Points))
	for _, pt := range p.Points {
		if pt.finite() {
			points = append(points, pt)
		}
	}
	if len(points) == 0 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, pt := range points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY
	if math.IsInf(rangeX, 0) || math.IsInf(rangeY, 0) {
		return ""
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	if minX <= 0 && maxX >= 0 {
		col := int(-minX / rangeX * float64(width-1))
		for row := range grid {
			grid[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int(-minY/rangeY*float64(height-1))
		for col := range grid[row] {
			if grid[row][col] == '│' {
				grid[row][col] = '┼'
			} else {
				grid[row][col] = '─'
			}
		}
	}

	for _, pt := range points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

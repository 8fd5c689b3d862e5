// Package world provides the cave grid: a 2D array of tiles with
// bounds-checked access and neighbour queries.
package world

import "fmt"

// Point is a cell coordinate. X indexes the outer row slice of the grid,
// Y the position inside that row.
type Point struct {
	X int
	Y int
}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the point offset by (dx, dy)
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Step returns the neighbouring point in the given direction
func (p Point) Step(dir Direction) Point {
	dx, dy := dir.Delta()
	return p.Add(dx, dy)
}

// Manhattan returns the Manhattan distance between two points
func (p Point) Manhattan(o Point) int {
	dx := p.X - o.X
	dy := p.Y - o.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}

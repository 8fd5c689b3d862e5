package world

import (
	"errors"
	"fmt"

	"cavern/pkg/engine/tile"
)

// ErrOutOfBounds is returned for lookups outside the declared grid extents
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// Grid represents the cave with encapsulated tile storage.
// Rows may differ in length. The grid never changes size after creation;
// only tile values are mutated.
type Grid struct {
	cells [][]tile.Tile
}

// NewGrid creates a grid holding a copy of the given tiles
func NewGrid(rows [][]tile.Tile) *Grid {
	g := &Grid{}
	g.Build(rows)
	return g
}

// NewFilledGrid creates a rectangular grid where every cell holds t
func NewFilledGrid(width, height int, t tile.Tile) *Grid {
	if width <= 0 || height <= 0 {
		panic("Grid dimensions must be positive")
	}
	rows := make([][]tile.Tile, width)
	for x := range rows {
		rows[x] = make([]tile.Tile, height)
		for y := range rows[x] {
			rows[x][y] = t
		}
	}
	return &Grid{cells: rows}
}

// Build initializes the grid from the given tiles
func (g *Grid) Build(rows [][]tile.Tile) {
	g.cells = make([][]tile.Tile, len(rows))
	for x, row := range rows {
		g.cells[x] = append([]tile.Tile(nil), row...)
	}
}

// Width returns the number of rows (the extent along X)
func (g *Grid) Width() int {
	return len(g.cells)
}

// RowLen returns the length of row x, or 0 if x is out of range
func (g *Grid) RowLen(x int) int {
	if x < 0 || x >= len(g.cells) {
		return 0
	}
	return len(g.cells[x])
}

// MaxRowLen returns the length of the longest row
func (g *Grid) MaxRowLen() int {
	longest := 0
	for _, row := range g.cells {
		if len(row) > longest {
			longest = len(row)
		}
	}
	return longest
}

// Contains checks if a point is within the grid
func (g *Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < len(g.cells) && p.Y >= 0 && p.Y < len(g.cells[p.X])
}

// Get returns the tile at the given position, or false if out of bounds
func (g *Grid) Get(p Point) (tile.Tile, bool) {
	if !g.Contains(p) {
		return tile.Tile{}, false
	}
	return g.cells[p.X][p.Y], true
}

// At returns a pointer to the tile at the given position for in-place
// mutation. Lookups outside the grid return an error wrapping ErrOutOfBounds.
func (g *Grid) At(p Point) (*tile.Tile, error) {
	if !g.Contains(p) {
		return nil, fmt.Errorf("cell %v: %w", p, ErrOutOfBounds)
	}
	return &g.cells[p.X][p.Y], nil
}

// Set replaces the tile at the given position
func (g *Grid) Set(p Point, t tile.Tile) error {
	cell, err := g.At(p)
	if err != nil {
		return err
	}
	*cell = t
	return nil
}

// IsWalkable checks if the tile at p is revealed ground. Out of range is not walkable.
func (g *Grid) IsWalkable(p Point) bool {
	t, ok := g.Get(p)
	return ok && t.IsWalkable()
}

// IsConcealed checks if the tile at p is concealed ground
func (g *Grid) IsConcealed(p Point) bool {
	t, ok := g.Get(p)
	return ok && t.IsConcealed()
}

// DirectNeighbors returns the existing cells at (0,±1) and (±1,0)
func (g *Grid) DirectNeighbors(p Point) []Point {
	return g.neighbors(p, DirectDirections())
}

// DiagonalNeighbors returns the existing cells at (±1,±1)
func (g *Grid) DiagonalNeighbors(p Point) []Point {
	return g.neighbors(p, DiagonalDirections())
}

func (g *Grid) neighbors(p Point, dirs []Direction) []Point {
	result := make([]Point, 0, len(dirs))
	for _, dir := range dirs {
		n := p.Step(dir)
		if g.Contains(n) {
			result = append(result, n)
		}
	}
	return result
}

// Window returns the 3x3 neighbourhood centred on p, indexed [dx][dy] for
// the cell (p.X+dx-1, p.Y+dy-1). Members outside the grid are plain walls.
func (g *Grid) Window(p Point) [3][3]tile.Tile {
	var w [3][3]tile.Tile
	for dx := 0; dx < 3; dx++ {
		for dy := 0; dy < 3; dy++ {
			if t, ok := g.Get(p.Add(dx-1, dy-1)); ok {
				w[dx][dy] = t
			}
		}
	}
	return w
}

// ForEachCell iterates over all cells in the grid, calling the provided function for each
func (g *Grid) ForEachCell(fn func(p Point, t tile.Tile)) {
	for x, row := range g.cells {
		for y, t := range row {
			fn(Point{X: x, Y: y}, t)
		}
	}
}

// Count returns the number of cells whose tile satisfies pred
func (g *Grid) Count(pred func(tile.Tile) bool) int {
	n := 0
	g.ForEachCell(func(_ Point, t tile.Tile) {
		if pred(t) {
			n++
		}
	})
	return n
}

// Validate checks the grid for common issues and returns an error description or empty string if valid
func (g *Grid) Validate() string {
	if len(g.cells) == 0 {
		return "Grid has no rows"
	}

	for x, row := range g.cells {
		if len(row) == 0 {
			return fmt.Sprintf("Grid row %d is empty", x)
		}
	}

	if g.Count(tile.Tile.IsGround) == 0 {
		return "Grid has no ground cells"
	}

	return ""
}

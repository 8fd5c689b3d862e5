// Package tile provides the cell value types of the cave grid.
// A live grid only ever holds a Tile (wall or ground). Pattern dictionaries
// are authored with Pattern, which adds the Any wildcard.
package tile

import "fmt"

// Kind is the classification of a live cell
type Kind uint8

// Kind constants
const (
	KindWall Kind = iota
	KindGround
)

// String returns the string representation of a kind
func (k Kind) String() string {
	switch k {
	case KindWall:
		return "Wall"
	case KindGround:
		return "Ground"
	default:
		return "Unknown"
	}
}

// Tile is a single cell of the cave.
// The zero value is an unbreakable wall without ore, which is also the
// value assumed for cells outside the grid when building a pattern window.
type Tile struct {
	Kind Kind

	// Wall data
	Breakable bool
	Ore       uint8

	// Ground data
	Concealed bool
}

// Wall creates a wall tile
func Wall(breakable bool, ore uint8) Tile {
	return Tile{Kind: KindWall, Breakable: breakable, Ore: ore}
}

// Ground creates a ground tile
func Ground(concealed bool) Tile {
	return Tile{Kind: KindGround, Concealed: concealed}
}

// IsWall returns true if the tile is a wall
func (t Tile) IsWall() bool {
	return t.Kind == KindWall
}

// IsGround returns true if the tile is ground, concealed or not
func (t Tile) IsGround() bool {
	return t.Kind == KindGround
}

// IsConcealed returns true if the tile is ground that has not been revealed yet
func (t Tile) IsConcealed() bool {
	return t.Kind == KindGround && t.Concealed
}

// IsWalkable returns true if actors may traverse the tile (revealed ground only)
func (t Tile) IsWalkable() bool {
	return t.Kind == KindGround && !t.Concealed
}

// Reveal flips concealed ground to revealed ground.
// Returns false and leaves the tile untouched for walls and already revealed ground.
func (t *Tile) Reveal() bool {
	if !t.IsConcealed() {
		return false
	}
	t.Concealed = false
	return true
}

// Dig breaks a breakable wall into revealed ground.
// Returns the ore the wall held and true, or 0 and false if nothing changed.
func (t *Tile) Dig() (uint8, bool) {
	if t.Kind != KindWall || !t.Breakable {
		return 0, false
	}
	ore := t.Ore
	*t = Ground(false)
	return ore, true
}

func (t Tile) String() string {
	switch t.Kind {
	case KindWall:
		return fmt.Sprintf("Wall{breakable:%t, ore:%d}", t.Breakable, t.Ore)
	case KindGround:
		return fmt.Sprintf("Ground{concealed:%t}", t.Concealed)
	default:
		return "Unknown"
	}
}

package autotile

import (
	"errors"
	"fmt"

	"cavern/pkg/engine/tile"
	"cavern/pkg/engine/world"
)

// Concealed is the descriptor of every concealed ground cell
const Concealed = "concealed"

// ErrIncompletePatternMap means no dictionary entry matched a window in any rotation
var ErrIncompletePatternMap = errors.New("incomplete pattern dictionary")

// Entry pairs a 3x3 pattern with the descriptor it selects
type Entry struct {
	Pattern    [3][3]tile.Pattern
	Descriptor string
}

// PatternMap is the ordered pattern dictionary. The first matching entry wins.
type PatternMap []Entry

// Descriptor is the result of autotiling a cell
type Descriptor struct {
	Name     string
	Rotation int // degrees, clockwise, multiple of 90
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s@%d", d.Name, d.Rotation)
}

// IncompleteError carries the cell and window no dictionary entry matched
type IncompleteError struct {
	Cell   world.Point
	Window Window
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%v: no pattern for cell %v with window %v", ErrIncompletePatternMap, e.Cell, e.Window)
}

func (e *IncompleteError) Unwrap() error {
	return ErrIncompletePatternMap
}

// Match reports whether the pattern matches the window at every position
func (e Entry) Match(w Window) bool {
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			if !e.Pattern[x][y].Matches(w[x][y]) {
				return false
			}
		}
	}
	return true
}

// Resolve finds the descriptor for a window. The window is rotated clockwise
// up to three times; dictionary entries never rotate.
func (m PatternMap) Resolve(w Window) (Descriptor, bool) {
	for pass := 0; pass < 4; pass++ {
		for _, entry := range m {
			if entry.Match(w) {
				return Descriptor{Name: entry.Descriptor, Rotation: 90 * pass}, true
			}
		}
		w = Rotate(w)
	}
	return Descriptor{}, false
}

// DetermineDescriptor returns the descriptor and rotation for the cell at p.
// Concealed ground always yields Concealed at rotation 0. A window that no
// entry matches returns an *IncompleteError.
func DetermineDescriptor(g *world.Grid, p world.Point, m PatternMap) (Descriptor, error) {
	t, ok := g.Get(p)
	if !ok {
		return Descriptor{}, fmt.Errorf("cell %v: %w", p, world.ErrOutOfBounds)
	}
	if t.IsConcealed() {
		return Descriptor{Name: Concealed}, nil
	}

	w := Window(g.Window(p))
	if d, ok := m.Resolve(w); ok {
		return d, nil
	}
	return Descriptor{}, &IncompleteError{Cell: p, Window: w}
}

// Refresh determines the descriptor of every cell in the grid and passes it
// to fn. It stops at the first error.
func Refresh(g *world.Grid, m PatternMap, fn func(world.Point, Descriptor)) error {
	var err error
	g.ForEachCell(func(p world.Point, _ tile.Tile) {
		if err != nil {
			return
		}
		var d Descriptor
		if d, err = DetermineDescriptor(g, p, m); err == nil {
			fn(p, d)
		}
	})
	return err
}

// Descriptors returns the distinct descriptor names in declared order,
// followed by Concealed. Renderers use it to preload assets.
func Descriptors(m PatternMap) []string {
	seen := make(map[string]bool, len(m)+1)
	names := make([]string, 0, len(m)+1)
	for _, entry := range m {
		if !seen[entry.Descriptor] {
			seen[entry.Descriptor] = true
			names = append(names, entry.Descriptor)
		}
	}
	if !seen[Concealed] {
		names = append(names, Concealed)
	}
	return names
}

// Validate checks the dictionary for entries that can never be used
func Validate(m PatternMap) error {
	if len(m) == 0 {
		return fmt.Errorf("%w: no entries", ErrIncompletePatternMap)
	}
	for i, entry := range m {
		if entry.Descriptor == "" {
			return fmt.Errorf("pattern entry %d has an empty descriptor", i)
		}
	}
	return nil
}

// Package autotile picks a rendering descriptor for a cell from the
// configuration of its 3x3 neighbourhood.
package autotile

import (
	"fmt"
	"strings"

	"cavern/pkg/engine/tile"
)

// Window is the 3x3 neighbourhood of a cell, indexed [dx][dy]
type Window [3][3]tile.Tile

// Rotate returns the window turned 90 degrees clockwise.
// Four rotations return the original window.
func Rotate(w Window) Window {
	var r Window
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			r[x][y] = w[2-y][x]
		}
	}
	return r
}

// String renders the window with one line per dx, using the level glyphs
func (w Window) String() string {
	var b strings.Builder
	for x := 0; x < 3; x++ {
		if x > 0 {
			b.WriteByte('/')
		}
		for y := 0; y < 3; y++ {
			b.WriteByte(glyph(w[x][y]))
		}
	}
	return b.String()
}

func glyph(t tile.Tile) byte {
	switch {
	case t.IsConcealed():
		return ':'
	case t.IsGround():
		return '.'
	default:
		return '#'
	}
}

// ParsePattern builds a dictionary pattern from three rows of three glyphs,
// row i holding dx = i: '#' wall, '.' revealed ground, ':' concealed ground,
// '?' any tile.
func ParsePattern(rows []string) ([3][3]tile.Pattern, error) {
	var p [3][3]tile.Pattern
	if len(rows) != 3 {
		return p, fmt.Errorf("pattern needs 3 rows, got %d", len(rows))
	}
	for x, row := range rows {
		if len(row) != 3 {
			return p, fmt.Errorf("pattern row %d needs 3 glyphs, got %q", x, row)
		}
		for y := 0; y < 3; y++ {
			switch row[y] {
			case '#':
				p[x][y] = tile.PatternOf(tile.Wall(false, 0))
			case '.':
				p[x][y] = tile.PatternOf(tile.Ground(false))
			case ':':
				p[x][y] = tile.PatternOf(tile.Ground(true))
			case '?':
				p[x][y] = tile.AnyPattern()
			default:
				return p, fmt.Errorf("pattern row %d: unknown glyph %q", x, row[y])
			}
		}
	}
	return p, nil
}

// MustParsePattern is ParsePattern for patterns known at compile time
func MustParsePattern(rows ...string) [3][3]tile.Pattern {
	p, err := ParsePattern(rows)
	if err != nil {
		panic(err)
	}
	return p
}

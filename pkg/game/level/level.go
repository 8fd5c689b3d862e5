// Package level loads cave layouts and pattern dictionaries.
//
// Layout files hold one line per grid row (X), one glyph per cell (Y):
//
//	#      unbreakable wall
//	%      breakable wall without ore
//	1-9    breakable wall holding that much ore
//	.      revealed ground
//	:      concealed ground
//	B      concealed ground where the base is placed
//
// Blank lines and lines starting with ';' are ignored.
package level

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"cavern/pkg/engine/tile"
	"cavern/pkg/engine/world"
)

// Level is a parsed layout
type Level struct {
	Name  string
	Tiles [][]tile.Tile
	Base  *world.Point
}

// Grid builds the live grid of the level
func (l *Level) Grid() *world.Grid {
	return world.NewGrid(l.Tiles)
}

// ParseLevel reads a layout in the text format described in the package comment
func ParseLevel(r io.Reader) (*Level, error) {
	lvl := &Level{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), " \t\r")
		if text == "" || strings.HasPrefix(text, ";") {
			continue
		}

		x := len(lvl.Tiles)
		row := make([]tile.Tile, 0, len(text))
		for y, glyph := range []byte(text) {
			t, ok := parseGlyph(glyph)
			if !ok {
				return nil, fmt.Errorf("level line %d col %d: unknown glyph %q", line, y+1, glyph)
			}
			if glyph == 'B' {
				if lvl.Base != nil {
					return nil, fmt.Errorf("level line %d: second base at %d:%d", line, x, y)
				}
				base := world.Pt(x, y)
				lvl.Base = &base
			}
			row = append(row, t)
		}
		lvl.Tiles = append(lvl.Tiles, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading level: %w", err)
	}
	if len(lvl.Tiles) == 0 {
		return nil, fmt.Errorf("level has no rows")
	}
	return lvl, nil
}

func parseGlyph(glyph byte) (tile.Tile, bool) {
	switch {
	case glyph == '#':
		return tile.Wall(false, 0), true
	case glyph == '%' || glyph == '0':
		return tile.Wall(true, 0), true
	case glyph >= '1' && glyph <= '9':
		return tile.Wall(true, glyph-'0'), true
	case glyph == '.':
		return tile.Ground(false), true
	case glyph == ':' || glyph == 'B':
		return tile.Ground(true), true
	default:
		return tile.Tile{}, false
	}
}

// Glyph returns the layout glyph of a tile
func Glyph(t tile.Tile) byte {
	switch {
	case t.IsConcealed():
		return ':'
	case t.IsGround():
		return '.'
	case !t.Breakable:
		return '#'
	case t.Ore == 0:
		return '%'
	case t.Ore > 9:
		return '9'
	default:
		return '0' + t.Ore
	}
}

// FormatGrid writes the grid back in the layout format
func FormatGrid(g *world.Grid) string {
	var b strings.Builder
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.RowLen(x); y++ {
			t, _ := g.Get(world.Pt(x, y))
			b.WriteByte(Glyph(t))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

package level

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cavern/pkg/engine/autotile"
	"cavern/pkg/engine/tile"
	"cavern/pkg/engine/world"
)

func TestParseLevel_Glyphs(t *testing.T) {
	lvl, err := ParseLevel(strings.NewReader("; comment\n\n#%0\n7.:\nB##\n"))
	require.NoError(t, err)

	cases := []struct {
		p    world.Point
		want tile.Tile
	}{
		{world.Pt(0, 0), tile.Wall(false, 0)},
		{world.Pt(0, 1), tile.Wall(true, 0)},
		{world.Pt(0, 2), tile.Wall(true, 0)},
		{world.Pt(1, 0), tile.Wall(true, 7)},
		{world.Pt(1, 1), tile.Ground(false)},
		{world.Pt(1, 2), tile.Ground(true)},
		{world.Pt(2, 0), tile.Ground(true)},
	}
	g := lvl.Grid()
	for _, c := range cases {
		got, ok := g.Get(c.p)
		require.True(t, ok, "cell %v", c.p)
		assert.Equal(t, c.want, got, "cell %v", c.p)
	}
	require.NotNil(t, lvl.Base)
	assert.Equal(t, world.Pt(2, 0), *lvl.Base)
}

func TestParseLevel_Errors(t *testing.T) {
	for _, layout := range []string{
		"",
		"; only comments\n",
		"#x#",
		"B\nB",
	} {
		_, err := ParseLevel(strings.NewReader(layout))
		assert.Error(t, err, "ParseLevel(%q)", layout)
	}
}

func TestFormatGrid_RoundTrip(t *testing.T) {
	layout := "#####\n#%3.#\n#::.#\n#####\n"
	lvl, err := ParseLevel(strings.NewReader(layout))
	require.NoError(t, err)
	assert.Equal(t, layout, FormatGrid(lvl.Grid()))
}

func TestDefaultLevel(t *testing.T) {
	lvl := DefaultLevel()
	require.NotNil(t, lvl.Base, "default level has no base")

	g := lvl.Grid()
	assert.Empty(t, g.Validate())
	tl, _ := g.Get(*lvl.Base)
	assert.True(t, tl.IsGround(), "base on %v", tl)
	assert.NoError(t, autotile.Refresh(g, DefaultPatterns(), func(world.Point, autotile.Descriptor) {}))
}

func TestParsePatterns(t *testing.T) {
	m, err := ParsePatterns(strings.NewReader(`[
		{"pattern": ["???", "?.?", "???"], "descriptor": "ground"},
		{"pattern": ["?.?", "###", "?#?"], "descriptor": "wall_straight"}
	]`))
	require.NoError(t, err)
	require.Len(t, m, 2)
	assert.Equal(t, "ground", m[0].Descriptor)
	assert.Equal(t, "wall_straight", m[1].Descriptor)
}

func TestParsePatterns_Errors(t *testing.T) {
	cases := map[string]string{
		"not json":      `{`,
		"unknown field": `[{"pattern": ["???","???","???"], "descriptor": "x", "weight": 2}]`,
		"short pattern": `[{"pattern": ["???","???"], "descriptor": "x"}]`,
		"bad glyph":     `[{"pattern": ["???","?x?","???"], "descriptor": "x"}]`,
	}
	for name, doc := range cases {
		_, err := ParsePatterns(strings.NewReader(doc))
		assert.Error(t, err, name)
	}
}

func TestDefaultPatterns_Complete(t *testing.T) {
	m := DefaultPatterns()
	// Every 3x3 neighbourhood of a revealed centre wall resolves
	for mask := 0; mask < 256; mask++ {
		var w autotile.Window
		bit := 0
		for x := 0; x < 3; x++ {
			for y := 0; y < 3; y++ {
				if x == 1 && y == 1 {
					w[x][y] = tile.Wall(true, 0)
					continue
				}
				if mask&(1<<bit) != 0 {
					w[x][y] = tile.Ground(false)
				} else {
					w[x][y] = tile.Wall(true, 0)
				}
				bit++
			}
		}
		_, ok := m.Resolve(w)
		assert.True(t, ok, "no entry for window\n%v", w)
	}
}

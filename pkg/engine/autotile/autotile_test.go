package autotile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cavern/pkg/engine/tile"
	"cavern/pkg/engine/world"
)

// gridOf builds a grid from glyph rows: '#' wall, '%' breakable wall,
// '.' revealed ground, ':' concealed ground. Row i is x = i.
func gridOf(t *testing.T, rows ...string) *world.Grid {
	t.Helper()
	tiles := make([][]tile.Tile, len(rows))
	for x, row := range rows {
		for _, r := range row {
			switch r {
			case '#':
				tiles[x] = append(tiles[x], tile.Wall(false, 0))
			case '%':
				tiles[x] = append(tiles[x], tile.Wall(true, 2))
			case '.':
				tiles[x] = append(tiles[x], tile.Ground(false))
			case ':':
				tiles[x] = append(tiles[x], tile.Ground(true))
			default:
				t.Fatalf("unknown glyph %q", r)
			}
		}
	}
	return world.NewGrid(tiles)
}

// cave is a dictionary that covers every wall topology up to rotation
func cave() PatternMap {
	return PatternMap{
		{MustParsePattern("???", "?.?", "???"), "ground"},
		{MustParsePattern("###", "###", "###"), "wall_solid"},
		{MustParsePattern(".#?", "###", "?#?"), "wall_corner_inner"},
		{MustParsePattern("?.?", "###", "?#?"), "wall_straight"},
		{MustParsePattern("?.?", ".##", "?#?"), "wall_corner_outer"},
		{MustParsePattern("?.?", "###", "?.?"), "wall_thin"},
		{MustParsePattern("?.?", ".##", "?.?"), "wall_end"},
		{MustParsePattern("?.?", ".#.", "?.?"), "wall_pillar"},
	}
}

func TestRotateClosure(t *testing.T) {
	g := gridOf(t, ".#:", "%..", "#:#")
	w := Window(g.Window(world.Pt(1, 1)))

	r := w
	for i := 0; i < 4; i++ {
		r = Rotate(r)
	}
	assert.Equal(t, w, r)
	assert.NotEqual(t, w, Rotate(w))
}

func TestRotateClockwise(t *testing.T) {
	var w Window
	w[0][1] = tile.Ground(false)

	r := Rotate(w)
	assert.Equal(t, tile.Ground(false), r[1][2], "rotated[x][y] = original[2-y][x]")
	assert.Equal(t, tile.Wall(false, 0), r[0][1])
}

func TestSingleWallAllWall(t *testing.T) {
	m := PatternMap{{MustParsePattern("###", "#?#", "###"), "all_wall"}}
	g := gridOf(t, "#")

	d, err := DetermineDescriptor(g, world.Pt(0, 0), m)
	require.NoError(t, err)
	assert.Equal(t, Descriptor{Name: "all_wall", Rotation: 0}, d)
}

func TestConcealedShortCircuits(t *testing.T) {
	g := gridOf(t, "...", ".:.", "...")

	// an empty dictionary would fail for any other cell
	d, err := DetermineDescriptor(g, world.Pt(1, 1), nil)
	require.NoError(t, err)
	assert.Equal(t, Descriptor{Name: Concealed}, d)
}

func TestStraightWallRotations(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want int
	}{
		{"open at (0,1)", []string{"#.#", "###", "###"}, 0},
		{"open at (1,0)", []string{"###", ".##", "###"}, 90},
		{"open at (2,1)", []string{"###", "###", "#.#"}, 180},
		{"open at (1,2)", []string{"###", "##.", "###"}, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridOf(t, tt.rows...)
			d, err := DetermineDescriptor(g, world.Pt(1, 1), cave())
			require.NoError(t, err)
			assert.Equal(t, Descriptor{Name: "wall_straight", Rotation: tt.want}, d)
		})
	}
}

func TestConcealedNeighbourMatchesAsRock(t *testing.T) {
	g := gridOf(t, ":::", ":#:", ":::")
	d, err := DetermineDescriptor(g, world.Pt(1, 1), cave())
	require.NoError(t, err)
	assert.Equal(t, "wall_solid", d.Name)
}

func TestConcealedPatternNeverMatchesConcealed(t *testing.T) {
	m := PatternMap{
		{MustParsePattern("?:?", "?#?", "???"), "hidden_above"},
		{MustParsePattern("???", "?#?", "???"), "fallback"},
	}
	g := gridOf(t, "#:#", "###", "###")

	d, err := DetermineDescriptor(g, world.Pt(1, 1), m)
	require.NoError(t, err)
	assert.Equal(t, Descriptor{Name: "fallback", Rotation: 0}, d)
}

func TestFirstMatchWins(t *testing.T) {
	m := PatternMap{
		{MustParsePattern("???", "?#?", "???"), "first"},
		{MustParsePattern("###", "###", "###"), "second"},
	}
	g := gridOf(t, "###", "###", "###")

	d, err := DetermineDescriptor(g, world.Pt(1, 1), m)
	require.NoError(t, err)
	assert.Equal(t, "first", d.Name)
}

func TestRotationIsOuterLoop(t *testing.T) {
	// the later entry matches unrotated and must win over an earlier entry
	// that would only match after a rotation
	m := PatternMap{
		{MustParsePattern("?.?", "###", "?#?"), "needs_rotation"},
		{MustParsePattern("?#?", "###", "?.?"), "direct"},
	}
	g := gridOf(t, "###", "###", "#.#")

	d, err := DetermineDescriptor(g, world.Pt(1, 1), m)
	require.NoError(t, err)
	assert.Equal(t, Descriptor{Name: "direct", Rotation: 0}, d)
}

func TestDeterministic(t *testing.T) {
	g := gridOf(t, "%.#:", "..##", "#.:.", "####")
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.RowLen(x); y++ {
			p := world.Pt(x, y)
			first, err := DetermineDescriptor(g, p, cave())
			require.NoError(t, err)
			for i := 0; i < 3; i++ {
				again, err := DetermineDescriptor(g, p, cave())
				require.NoError(t, err)
				assert.Equal(t, first, again, "cell %v", p)
			}
		}
	}
}

func TestCaveDictionaryIsComplete(t *testing.T) {
	// every combination of the 8 neighbours around a wall
	for mask := 0; mask < 256; mask++ {
		var w Window
		bit := 0
		for x := 0; x < 3; x++ {
			for y := 0; y < 3; y++ {
				if x == 1 && y == 1 {
					continue
				}
				if mask&(1<<bit) != 0 {
					w[x][y] = tile.Ground(false)
				}
				bit++
			}
		}
		_, ok := cave().Resolve(w)
		assert.True(t, ok, "window %v unmatched", w)
	}
}

func TestIncompleteDictionaryFails(t *testing.T) {
	m := PatternMap{{MustParsePattern("###", "###", "###"), "wall_solid"}}
	g := gridOf(t, "#.#", "###", "###")

	_, err := DetermineDescriptor(g, world.Pt(1, 1), m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompletePatternMap))

	var incomplete *IncompleteError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, world.Pt(1, 1), incomplete.Cell)
}

func TestDetermineOutOfBounds(t *testing.T) {
	g := gridOf(t, "#")
	_, err := DetermineDescriptor(g, world.Pt(3, 0), cave())
	assert.True(t, errors.Is(err, world.ErrOutOfBounds))
}

func TestRefreshVisitsEveryCell(t *testing.T) {
	g := gridOf(t, "#.#", "#:")
	seen := map[world.Point]Descriptor{}
	require.NoError(t, Refresh(g, cave(), func(p world.Point, d Descriptor) {
		seen[p] = d
	}))
	assert.Len(t, seen, 5)
	assert.Equal(t, Concealed, seen[world.Pt(1, 1)].Name)
	assert.Equal(t, "ground", seen[world.Pt(0, 1)].Name)
}

func TestDescriptorsAndValidate(t *testing.T) {
	m := PatternMap{
		{MustParsePattern("???", "?.?", "???"), "ground"},
		{MustParsePattern("???", "?#?", "???"), "wall"},
		{MustParsePattern("###", "###", "###"), "ground"},
	}
	assert.Equal(t, []string{"ground", "wall", Concealed}, Descriptors(m))
	assert.NoError(t, Validate(m))

	assert.Error(t, Validate(nil))
	assert.Error(t, Validate(PatternMap{{Descriptor: ""}}))
}

func TestParsePatternErrors(t *testing.T) {
	_, err := ParsePattern([]string{"###", "###"})
	assert.Error(t, err)
	_, err = ParsePattern([]string{"###", "#x#", "###"})
	assert.Error(t, err)
	_, err = ParsePattern([]string{"###", "##", "###"})
	assert.Error(t, err)
}

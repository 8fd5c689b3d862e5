package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cavern/pkg/engine/autotile"
	"cavern/pkg/engine/world"
	"cavern/pkg/game/level"
	"cavern/pkg/game/state"
)

func TestWallIcon(t *testing.T) {
	cases := []struct {
		d    autotile.Descriptor
		want string
	}{
		{autotile.Descriptor{Name: "wall_straight"}, "─"},
		{autotile.Descriptor{Name: "wall_straight", Rotation: 90}, "│"},
		{autotile.Descriptor{Name: "wall_corner_outer", Rotation: 180}, "┘"},
		{autotile.Descriptor{Name: "mystery"}, IconWall},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, WallIcon(c.d), "WallIcon(%v)", c.d)
	}
}

func TestRenderFrame_DrawsMapActorsAndMessages(t *testing.T) {
	lvl, err := level.ParseLevel(strings.NewReader("#####\n#...#\n#####"))
	require.NoError(t, err)

	var out bytes.Buffer
	r := New(&out)
	r.Init()

	g := state.NewGame(lvl.Grid(), level.DefaultPatterns(), r)
	require.NoError(t, g.Load())
	g.SpawnActor(world.Pt(1, 2))
	g.AddMessage("hello")

	r.RenderFrame(g)
	lines := strings.Split(color.ClearCode(out.String()), "\n")

	// status, blank, 3 map rows
	require.GreaterOrEqual(t, len(lines), 5, "frame too short: %q", lines)
	assert.Contains(t, lines[3], IconActor)
	assert.Contains(t, lines[3], IconGround)
	assert.Contains(t, out.String(), "hello")
}

func TestRenderFrame_UnannouncedCellsAreConcealed(t *testing.T) {
	lvl, err := level.ParseLevel(strings.NewReader("###\n#.#\n###"))
	require.NoError(t, err)

	var out bytes.Buffer
	r := New(&out)
	r.Init()
	g := state.NewGame(lvl.Grid(), level.DefaultPatterns(), r)

	r.RenderFrame(g)
	lines := strings.Split(color.ClearCode(out.String()), "\n")
	require.Greater(t, len(lines), 3)
	assert.Equal(t, strings.Repeat(IconConcealed, 3), lines[3])
}

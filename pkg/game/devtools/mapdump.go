// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cavern/pkg/engine/autotile"
	"cavern/pkg/engine/pathfind"
	"cavern/pkg/engine/tile"
	"cavern/pkg/engine/world"
	"cavern/pkg/game/level"
	"cavern/pkg/game/state"
)

const mapDumpFilename = "map.txt"

// DescriptorSource looks up the descriptor a renderer last received for a cell
type DescriptorSource interface {
	Descriptor(p world.Point) (autotile.Descriptor, bool)
}

// writeRevealedGrid writes the layout with concealed cells hidden and
// colonists overlaid
func writeRevealedGrid(w io.Writer, g *state.Game) {
	actors := make(map[world.Point]bool, len(g.Actors))
	for _, a := range g.Actors {
		actors[a.Position.Cell()] = true
	}

	for x := 0; x < g.Grid.Width(); x++ {
		for y := 0; y < g.Grid.RowLen(x); y++ {
			p := world.Pt(x, y)
			t, _ := g.Grid.Get(p)
			switch {
			case actors[p]:
				fmt.Fprint(w, "@")
			case g.Base != nil && *g.Base == p:
				fmt.Fprint(w, "B")
			case t.IsConcealed():
				fmt.Fprint(w, "?")
			default:
				fmt.Fprintf(w, "%c", level.Glyph(t))
			}
		}
		fmt.Fprintln(w)
	}
}

// DumpMap writes a full debug dump: metadata, legend, revealed map, full
// layout, colonists and the descriptor of every visible wall.
// Format is human-readable (sections, key: value, consistent structure).
func DumpMap(w io.Writer, g *state.Game, descriptors DescriptorSource) error {
	if g.Grid == nil {
		return fmt.Errorf("no grid")
	}

	baseX, baseY := -1, -1
	reachable := 0
	if g.Base != nil {
		baseX, baseY = g.Base.X, g.Base.Y
		reachable = len(pathfind.Reachable(g.Grid, *g.Base))
	}

	// --- Metadata ---
	fmt.Fprintln(w, "=== MAP DUMP DEBUG (layout, reveal cascade, colonists) ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "time: %v\n", g.Now)
	fmt.Fprintf(w, "grid_rows: %d\n", g.Grid.Width())
	fmt.Fprintf(w, "grid_cols: %d\n", g.Grid.MaxRowLen())
	fmt.Fprintf(w, "coordinate_system: x,y (0-based, x=line, y=column)\n")
	fmt.Fprintf(w, "base: %d,%d\n", baseX, baseY)
	fmt.Fprintf(w, "reachable_from_base: %d\n", reachable)
	fmt.Fprintf(w, "ore: %d\n", g.Ore)
	fmt.Fprintf(w, "revealed: %d\n", g.Scheduler.Revealed())
	fmt.Fprintf(w, "pending_reveals: %d\n", g.Scheduler.Pending())
	fmt.Fprintf(w, "concealed_cells: %d\n", g.Grid.Count(tile.Tile.IsConcealed))
	fmt.Fprintln(w, "")

	// --- Legend ---
	fmt.Fprintln(w, "--- Legend (cell symbols) ---")
	fmt.Fprintln(w, "# = unbreakable wall  % = breakable wall  1-9 = wall with ore  . = ground  : or ? = concealed ground  B = base  @ = colonist")
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Map (revealed cells only; concealed = ?) ---")
	writeRevealedGrid(w, g)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Map (full layout) ---")
	fmt.Fprint(w, level.FormatGrid(g.Grid))
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "Colonists:")
	for _, a := range g.Actors {
		var waypoints []string
		if a.Path != nil {
			for _, wp := range a.Path.Waypoints() {
				waypoints = append(waypoints, wp.Cell().String())
			}
		}
		fmt.Fprintf(w, "  id: %d cell: %v position: %.2f,%.2f idle: %v waypoints: [%s]\n",
			a.ID, a.Position.Cell(), a.Position.X, a.Position.Y, a.Idle(), strings.Join(waypoints, " "))
	}
	fmt.Fprintln(w, "")

	if descriptors == nil {
		return nil
	}
	fmt.Fprintln(w, "Wall descriptors:")
	g.Grid.ForEachCell(func(p world.Point, t tile.Tile) {
		if !t.IsWall() {
			return
		}
		if d, ok := descriptors.Descriptor(p); ok {
			fmt.Fprintf(w, "  x: %d y: %d descriptor: %v\n", p.X, p.Y, d)
		}
	})
	return nil
}

// DumpMapToFile writes DumpMap to map.txt in the working directory and
// returns its absolute path
func DumpMapToFile(g *state.Game, descriptors DescriptorSource) (string, error) {
	absPath, err := filepath.Abs(mapDumpFilename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := DumpMap(f, g, descriptors); err != nil {
		return "", err
	}
	return absPath, nil
}

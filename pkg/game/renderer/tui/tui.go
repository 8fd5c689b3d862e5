package tui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"cavern/pkg/engine/autotile"
	"cavern/pkg/engine/reveal"
	"cavern/pkg/engine/terminal"
	"cavern/pkg/engine/tile"
	"cavern/pkg/engine/world"
	"cavern/pkg/game/renderer"
	"cavern/pkg/game/state"
)

// Icon constants for the cave map
const (
	IconActor     = "@"
	IconBase      = "B"
	IconGround    = "·"
	IconConcealed = "░"
	IconWall      = "#"
	IconVoid      = " "
)

// Wall glyphs per descriptor, indexed by rotation/90
var wallIcons = map[string][4]string{
	"wall_solid":        {"█", "█", "█", "█"},
	"wall_straight":     {"─", "│", "─", "│"},
	"wall_thin":         {"═", "║", "═", "║"},
	"wall_corner_outer": {"┌", "└", "┘", "┐"},
	"wall_corner_inner": {"┘", "┐", "┌", "└"},
	"wall_end":          {"╶", "╵", "╴", "╷"},
	"wall_pillar":       {"o", "o", "o", "o"},
}

// Viewport margins and minimum sizes
const (
	ViewportMinRows = 5
	ViewportMinCols = 10
	// Lines needed outside viewport:
	// - Status line + blank (2)
	// - Messages pane (header + 5 messages) (6)
	// - Prompt (1)
	ViewportTopMargin = 9
)

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	*renderer.Cache

	out io.Writer

	colorGround    color.Style
	colorConcealed color.Style
	colorWall      color.Style
	colorRock      color.Style
	colorOre       color.Style
	colorActor     color.Style
	colorBase      color.Style
	colorStatus    color.Style
	colorSubtle    color.Style
}

// New creates a new TUI renderer writing to out, or stdout when out is nil
func New(out io.Writer) *TUIRenderer {
	if out == nil {
		out = os.Stdout
	}
	return &TUIRenderer{
		Cache: renderer.NewCache(),
		out:   out,
	}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.colorGround = color.Style{color.FgGray}
	t.colorConcealed = color.Style{color.FgDarkGray}
	t.colorWall = color.Style{color.FgWhite}
	t.colorRock = color.Style{color.FgGray, color.OpBold} // Unbreakable
	t.colorOre = color.Style{color.FgYellow, color.OpBold}
	t.colorActor = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorBase = color.Style{color.FgCyan, color.OpBold}
	t.colorStatus = color.Style{color.FgMagenta}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	c := exec.Command("clear")
	c.Stdout = os.Stdout
	c.Run()
}

// Close resets terminal colours
func (t *TUIRenderer) Close() {
	fmt.Fprint(t.out, color.ResetSet)
}

// GetViewportSize returns the viewport dimensions based on terminal size
func (t *TUIRenderer) GetViewportSize() (rows, cols int) {
	termWidth, termHeight := terminal.GetSize()

	cols = termWidth
	rows = termHeight - ViewportTopMargin

	if cols < ViewportMinCols {
		cols = ViewportMinCols
	}
	if rows < ViewportMinRows {
		rows = ViewportMinRows
	}
	return rows, cols
}

// RenderFrame renders a complete game frame
func (t *TUIRenderer) RenderFrame(g *state.Game) {
	var b strings.Builder

	// Status line
	b.WriteString(t.colorStatus.Sprint(gotext.Get("Time %v  Ore %d  Colonists %d  Revealed %d",
		g.Now, g.Ore, len(g.Actors), g.Scheduler.Revealed())))
	b.WriteString("\n\n")

	t.writeMap(&b, g)
	t.writeMessagesPane(&b, g)

	fmt.Fprint(t.out, b.String())
}

// viewportOrigin returns the top-left cell of the viewport, centred on the
// base when the map does not fit
func viewportOrigin(g *state.Game, rows, cols int) world.Point {
	var center world.Point
	if g.Base != nil {
		center = *g.Base
	}
	return world.Pt(
		clamp(center.X-rows/2, 0, g.Grid.Width()-rows),
		clamp(center.Y-cols/2, 0, g.Grid.MaxRowLen()-cols),
	)
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// writeMap draws the part of the grid that fits the terminal
func (t *TUIRenderer) writeMap(b *strings.Builder, g *state.Game) {
	rows, cols := t.GetViewportSize()
	origin := viewportOrigin(g, rows, cols)

	actors := make(map[world.Point]bool, len(g.Actors))
	for _, a := range g.Actors {
		actors[a.Position.Cell()] = true
	}

	for x := origin.X; x < origin.X+rows && x < g.Grid.Width(); x++ {
		for y := origin.Y; y < origin.Y+cols && y < g.Grid.RowLen(x); y++ {
			p := world.Pt(x, y)
			switch {
			case actors[p]:
				b.WriteString(t.colorActor.Sprint(IconActor))
			case g.Base != nil && *g.Base == p:
				b.WriteString(t.colorBase.Sprint(IconBase))
			default:
				b.WriteString(t.renderCell(g, p))
			}
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
}

// renderCell returns the string representation of a cell
func (t *TUIRenderer) renderCell(g *state.Game, p world.Point) string {
	tl, ok := g.Grid.Get(p)
	if !ok {
		return IconVoid
	}
	d, ok := t.Descriptor(p)
	if !ok {
		// Not announced yet, draw as rock
		return t.colorConcealed.Sprint(IconConcealed)
	}

	switch renderer.FamilyOf(d) {
	case renderer.FamilyConcealed:
		return t.colorConcealed.Sprint(IconConcealed)
	case renderer.FamilyGround:
		return t.colorGround.Sprint(IconGround)
	default:
		return t.wallStyle(tl).Sprint(WallIcon(d))
	}
}

func (t *TUIRenderer) wallStyle(tl tile.Tile) color.Style {
	switch {
	case tl.Ore > 0:
		return t.colorOre
	case !tl.Breakable:
		return t.colorRock
	default:
		return t.colorWall
	}
}

// WallIcon returns the glyph for a wall descriptor
func WallIcon(d autotile.Descriptor) string {
	icons, ok := wallIcons[d.Name]
	if !ok {
		return IconWall
	}
	return icons[(d.Rotation/90)%4]
}

// writeMessagesPane writes the last messages of the game log
func (t *TUIRenderer) writeMessagesPane(b *strings.Builder, g *state.Game) {
	b.WriteString(t.colorSubtle.Sprint(gotext.Get("Messages")))
	b.WriteByte('\n')
	for _, msg := range g.Messages {
		b.WriteString("- ")
		b.WriteString(msg)
		b.WriteByte('\n')
	}
}

var _ reveal.Notifier = (*TUIRenderer)(nil)
var _ renderer.Renderer = (*TUIRenderer)(nil)

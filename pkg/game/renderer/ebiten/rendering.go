package ebiten

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"

	"cavern/pkg/engine/tile"
	"cavern/pkg/engine/world"
	"cavern/pkg/game/renderer"
	"cavern/pkg/game/state"
)

// Draw renders the game to the screen (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	e.gameMutex.RLock()
	defer e.gameMutex.RUnlock()
	g := e.game
	if g == nil {
		return
	}

	e.updateMapLayer(g)
	if e.mapLayer != nil {
		screen.DrawImage(e.mapLayer, nil)
	}
	e.drawBase(screen, g)
	e.drawActors(screen, g)
	e.drawPanel(screen, g)
}

// updateMapLayer repaints the cells whose descriptor changed since the last
// frame. A new game or zoom level repaints the whole layer.
func (e *EbitenRenderer) updateMapLayer(g *state.Game) {
	w := g.Grid.MaxRowLen() * e.tileSize
	h := g.Grid.Width() * e.tileSize
	if w == 0 || h == 0 {
		return
	}

	stale := e.mapLayer == nil || e.layerGame != g || e.layerTileSize != e.tileSize
	if !stale {
		for _, p := range e.Drain() {
			if t, ok := g.Grid.Get(p); ok {
				e.drawCell(e.mapLayer, p, t)
			}
		}
		return
	}

	if e.mapLayer != nil {
		e.mapLayer.Deallocate()
	}
	e.mapLayer = ebiten.NewImage(w, h)
	e.layerGame = g
	e.layerTileSize = e.tileSize
	e.Drain()
	g.Grid.ForEachCell(func(p world.Point, t tile.Tile) {
		e.drawCell(e.mapLayer, p, t)
	})
}

// cellOrigin returns the top-left pixel of a cell. Rows run down the screen.
func (e *EbitenRenderer) cellOrigin(p world.Point) (float32, float32) {
	return float32(p.Y * e.tileSize), float32(p.X * e.tileSize)
}

// drawCell fills a cell with the colour of its descriptor family and marks
// wall rotations with a tick on the side the descriptor faces
func (e *EbitenRenderer) drawCell(screen *ebiten.Image, p world.Point, t tile.Tile) {
	x, y := e.cellOrigin(p)
	size := float32(e.tileSize)

	d, ok := e.Descriptor(p)
	family := renderer.FamilyConcealed
	if ok {
		family = renderer.FamilyOf(d)
	}

	var c color.Color
	switch family {
	case renderer.FamilyGround:
		c = colorGround
	case renderer.FamilyWall:
		c = wallColor(t)
	default:
		c = colorConcealed
	}
	vector.DrawFilledRect(screen, x, y, size, size, c, false)

	if family != renderer.FamilyWall || d.Name == "wall_solid" {
		return
	}

	// Rotation 0 faces up; each step turns a quarter counter-clockwise
	mark := size / 6
	switch (d.Rotation / 90) % 4 {
	case 0:
		vector.DrawFilledRect(screen, x, y, size, mark, colorWallMark, false)
	case 1:
		vector.DrawFilledRect(screen, x, y, mark, size, colorWallMark, false)
	case 2:
		vector.DrawFilledRect(screen, x, y+size-mark, size, mark, colorWallMark, false)
	case 3:
		vector.DrawFilledRect(screen, x+size-mark, y, mark, size, colorWallMark, false)
	}
}

func wallColor(t tile.Tile) color.Color {
	switch {
	case t.Ore > 0:
		return colorOre
	case !t.Breakable:
		return colorWallSolid
	default:
		return colorWall
	}
}

// drawBase outlines the base cell
func (e *EbitenRenderer) drawBase(screen *ebiten.Image, g *state.Game) {
	if g.Base == nil {
		return
	}
	x, y := e.cellOrigin(*g.Base)
	size := float32(e.tileSize)
	vector.StrokeRect(screen, x+1, y+1, size-2, size-2, 2, colorBase, false)
}

// drawActors draws every colonist as a square at its interpolated position
func (e *EbitenRenderer) drawActors(screen *ebiten.Image, g *state.Game) {
	size := float32(e.tileSize)
	inset := size / 4
	for _, a := range g.Actors {
		c := colorActor
		if a.ID == e.selected {
			c = colorActorSelected
		}
		x := float32(a.Position.Y)*size + inset
		y := float32(a.Position.X)*size + inset
		vector.DrawFilledRect(screen, x, y, size-2*inset, size-2*inset, c, false)
	}
}

// drawPanel draws the status line and message log under the map
func (e *EbitenRenderer) drawPanel(screen *ebiten.Image, g *state.Game) {
	top := float32(g.Grid.Width() * e.tileSize)
	width := float32(screen.Bounds().Dx())
	vector.DrawFilledRect(screen, 0, top, width, float32(e.panelHeight()), colorPanel, false)

	if e.fontSource == nil {
		return
	}
	face := e.getFontFace()
	lineHeight := e.getUIFontSize() * 1.4

	status := gotext.Get("Time %v  Ore %d  Colonists %d  Revealed %d",
		g.Now.Truncate(100*time.Millisecond), g.Ore, len(g.Actors), g.Scheduler.Revealed())
	if e.paused {
		status += "  " + gotext.Get("PAUSED")
	}
	e.drawText(screen, face, status, 8, float64(top)+4, colorText)

	for i, msg := range g.Messages {
		e.drawText(screen, face, msg, 8, float64(top)+4+lineHeight*float64(i+1), colorSubtle)
	}
}

func (e *EbitenRenderer) drawText(screen *ebiten.Image, face *text.GoTextFace, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

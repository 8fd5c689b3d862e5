package ebiten

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "cavern/pkg/engine/input"
	"cavern/pkg/engine/world"
	"cavern/pkg/game/devtools"
	"cavern/pkg/game/state"
)

// Update handles input and advances the game clock (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		log.Printf("Main window opened successfully (%dx%d)", w, h)
	}

	e.gameMutex.Lock()
	defer e.gameMutex.Unlock()
	g := e.game
	if g == nil {
		return nil
	}

	if intent := e.checkInput(); intent.Action != engineinput.ActionNone {
		if done := e.apply(g, intent); done {
			return ebiten.Termination
		}
	}

	if e.paused {
		return nil
	}
	if err := g.Tick(g.Now + tickStep()); err != nil {
		e.err = err
		return ebiten.Termination
	}
	return nil
}

// checkInput maps this frame's key and mouse presses to an intent (raw layer)
func (e *EbitenRenderer) checkInput() engineinput.Intent {
	var code string
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		code = "mouse_left"
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		code = "mouse_right"
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		code = "space"
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		code = "tab"
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		code = "p"
	case inpututil.IsKeyJustPressed(ebiten.KeyF9):
		code = "f9"
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		code = "q"
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		code = "escape"
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		code = "="
	case inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		code = "numpad_add"
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		code = "-"
	case inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		code = "numpad_subtract"
	default:
		return engineinput.Intent{}
	}

	raw := engineinput.RawInput{Device: engineinput.DeviceKeyboard, Code: code}
	if code == "mouse_left" || code == "mouse_right" {
		raw.Device = engineinput.DeviceMouse
	}
	return engineinput.MapToIntent(engineinput.NewDebouncedInput(raw))
}

// apply carries out an intent. It returns true when the player quits.
func (e *EbitenRenderer) apply(g *state.Game, intent engineinput.Intent) bool {
	switch intent.Action {
	case engineinput.ActionQuit:
		return true
	case engineinput.ActionTogglePause:
		e.paused = !e.paused
	case engineinput.ActionSpawn:
		if g.Base != nil {
			a := g.SpawnActor(*g.Base)
			if e.selected == 0 {
				e.selected = a.ID
			}
		}
	case engineinput.ActionNextActor:
		e.selectNext(g)
	case engineinput.ActionMove:
		if p, ok := e.cursorCell(g); ok && e.selected != 0 {
			if _, err := g.RequestMove(e.selected, p); err != nil {
				log.Printf("Move: %v", err)
			}
		}
	case engineinput.ActionDig:
		if p, ok := e.cursorCell(g); ok {
			if err := g.Dig(p); err != nil {
				g.AddMessage(err.Error())
			}
		}
	case engineinput.ActionDumpMap:
		if path, err := devtools.DumpMapToFile(g, e); err != nil {
			log.Printf("Map dump failed: %v", err)
		} else {
			log.Printf("Map dumped to %s", path)
		}
	case engineinput.ActionZoomIn:
		if e.tileSize < maxTileSize {
			e.tileSize += tileSizeStep
			e.invalidateFontCache()
		}
	case engineinput.ActionZoomOut:
		if e.tileSize > minTileSize {
			e.tileSize -= tileSizeStep
			e.invalidateFontCache()
		}
	}
	return false
}

// selectNext cycles the selected colonist
func (e *EbitenRenderer) selectNext(g *state.Game) {
	if len(g.Actors) == 0 {
		return
	}
	for i, a := range g.Actors {
		if a.ID == e.selected {
			e.selected = g.Actors[(i+1)%len(g.Actors)].ID
			return
		}
	}
	e.selected = g.Actors[0].ID
}

// cursorCell returns the grid cell under the mouse cursor
func (e *EbitenRenderer) cursorCell(g *state.Game) (world.Point, bool) {
	mx, my := ebiten.CursorPosition()
	if mx < 0 || my < 0 {
		return world.Point{}, false
	}
	p := world.Pt(my/e.tileSize, mx/e.tileSize)
	return p, g.Grid.Contains(p)
}

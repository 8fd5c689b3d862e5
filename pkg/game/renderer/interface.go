package renderer

import (
	"cavern/pkg/engine/reveal"
	"cavern/pkg/game/state"
)

// Renderer defines the interface for game rendering backends.
// A renderer is the reveal notifier of the game it draws: descriptor
// updates arrive through TileChanged as the cave is uncovered.
type Renderer interface {
	reveal.Notifier

	// Init initializes the renderer (colors, fonts, window, etc.)
	Init()

	// RenderFrame renders a complete game frame
	// This includes the map, colonists, status bar and messages
	RenderFrame(g *state.Game)

	// Close releases the display
	Close()
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Init initializes the current renderer
func Init() {
	if Current != nil {
		Current.Init()
	}
}

// RenderFrame renders a complete game frame
func RenderFrame(g *state.Game) {
	if Current != nil {
		Current.RenderFrame(g)
	}
}

// Close closes the current renderer
func Close() {
	if Current != nil {
		Current.Close()
	}
}

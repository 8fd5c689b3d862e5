package ebiten

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"cavern/pkg/game/renderer"
	"cavern/pkg/game/state"
)

// EbitenRenderer draws the cave in a window and drives the game clock from
// Ebiten's update loop
type EbitenRenderer struct {
	*renderer.Cache

	gameMutex sync.RWMutex
	game      *state.Game

	tileSize int
	paused   bool

	// mapLayer holds the drawn cells; only cells drained from the cache
	// are repainted each frame
	mapLayer      *ebiten.Image
	layerGame     *state.Game
	layerTileSize int

	selected int // ID of the colonist that receives move orders
	err      error

	fontSource     *text.GoTextFaceSource
	cachedFace     *text.GoTextFace
	cachedFontSize float64

	windowOpenedLogged bool
}

// New creates a new Ebiten renderer
func New() *EbitenRenderer {
	return &EbitenRenderer{
		Cache:    renderer.NewCache(),
		tileSize: defaultTileSize,
	}
}

// Init sets up the window and loads the font
func (e *EbitenRenderer) Init() {
	ebiten.SetWindowTitle("Cavern")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	src, err := loadFont()
	if err != nil {
		log.Printf("Text disabled: %v", err)
		return
	}
	e.fontSource = src
}

// RenderFrame attaches the game to draw. Ebiten redraws on its own schedule,
// so later calls only swap the game.
func (e *EbitenRenderer) RenderFrame(g *state.Game) {
	e.gameMutex.Lock()
	defer e.gameMutex.Unlock()
	e.game = g
	if e.selected == 0 && len(g.Actors) > 0 {
		e.selected = g.Actors[0].ID
	}
}

// Close is a no-op; the window closes when Run returns
func (e *EbitenRenderer) Close() {}

// Run sizes the window to the attached game and blocks until it is closed.
// It returns the first error the game reported from Tick.
func (e *EbitenRenderer) Run() error {
	e.gameMutex.RLock()
	g := e.game
	e.gameMutex.RUnlock()
	if g == nil {
		return errors.New("ebiten: RenderFrame must be called before Run")
	}

	w, h := e.Layout(0, 0)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(e); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return e.err
}

// Layout returns the game's logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.gameMutex.RLock()
	g := e.game
	e.gameMutex.RUnlock()
	if g == nil {
		return 640, 480
	}
	return g.Grid.MaxRowLen() * e.tileSize, g.Grid.Width()*e.tileSize + e.panelHeight()
}

// panelHeight is the height of the status panel under the map
func (e *EbitenRenderer) panelHeight() int {
	return int(e.getUIFontSize()*1.4) * panelLines
}

var (
	_ renderer.Renderer = (*EbitenRenderer)(nil)
	_ ebiten.Game       = (*EbitenRenderer)(nil)
)

// tickStep is the game time that passes per Ebiten update
func tickStep() time.Duration {
	return time.Second / time.Duration(ebiten.TPS())
}

// Package ebiten provides an Ebiten-based 2D graphical renderer for the cave.
package ebiten

import "image/color"

// Color palette for the cave
var (
	colorBackground    = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorConcealed     = color.RGBA{15, 15, 26, 255}    // Unexplored rock
	colorGround        = color.RGBA{100, 90, 80, 255}   // Cave floor
	colorWall          = color.RGBA{140, 130, 120, 255} // Breakable rock
	colorWallSolid     = color.RGBA{70, 65, 60, 255}    // Unbreakable rock
	colorOre           = color.RGBA{255, 200, 100, 255} // Ore seams
	colorWallMark      = color.RGBA{60, 60, 80, 255}    // Rotation tick on walls
	colorActor         = color.RGBA{0, 255, 0, 255}     // Bright green
	colorActorSelected = color.RGBA{200, 255, 200, 255} // Selected colonist
	colorBase          = color.RGBA{100, 150, 255, 255} // Bright blue
	colorText          = color.RGBA{200, 210, 245, 255} // Soft off-white with blue-purple tint
	colorSubtle        = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
	colorPanel         = color.RGBA{30, 30, 50, 220}    // Semi-transparent dark
)

// Tile sizing
const (
	defaultTileSize = 24
	minTileSize     = 8
	maxTileSize     = 48
	tileSizeStep    = 4

	baseFontSize = 16.0
	panelLines   = 7 // status line + 5 messages + padding
)

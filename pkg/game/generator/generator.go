// Package generator builds random cave layouts.
package generator

import (
	"math/rand"

	"github.com/ojrac/opensimplex-go"

	"cavern/pkg/engine/tile"
	"cavern/pkg/engine/world"
	"cavern/pkg/game/level"
)

// CaveGenerator is an interface for cave generation algorithms
type CaveGenerator interface {
	Generate(depth int, rng *rand.Rand) *level.Level
	Name() string
}

// Available generators
var (
	Tunnels  = &TunnelGenerator{}
	Chambers = &ChamberGenerator{}
)

// DefaultGenerator is the default cave generator
var DefaultGenerator CaveGenerator = Chambers

// ByName returns the generator with the given name
func ByName(name string) (CaveGenerator, bool) {
	for _, g := range []CaveGenerator{Tunnels, Chambers} {
		if g.Name() == name {
			return g, true
		}
	}
	return nil, false
}

// oreScale stretches the noise field over the grid; smaller is wider seams
const oreScale = 0.35

// canvas is the tile buffer a generator carves into.
// The outermost ring is unbreakable rock; everything inside starts as
// breakable rock with scattered ore seams.
type canvas struct {
	tiles [][]tile.Tile
	rows  int
	cols  int
}

func newCanvas(rows, cols, depth int, rng *rand.Rand) *canvas {
	c := &canvas{rows: rows, cols: cols}

	// Ore follows noise ridges so it comes in seams rather than specks.
	// Deeper caves hold more and richer ore.
	noise := opensimplex.New(rng.Int63())
	threshold := 0.6 - float64(depth)*0.03
	if threshold < 0.3 {
		threshold = 0.3
	}
	maxOre := 3 + depth/3
	if maxOre > 9 {
		maxOre = 9
	}

	c.tiles = make([][]tile.Tile, rows)
	for x := range c.tiles {
		c.tiles[x] = make([]tile.Tile, cols)
		for y := range c.tiles[x] {
			if !c.isPlayable(x, y) {
				c.tiles[x][y] = tile.Wall(false, 0)
				continue
			}
			c.tiles[x][y] = tile.Wall(true, oreAt(noise, x, y, threshold, maxOre))
		}
	}
	return c
}

// oreAt returns the ore held by the rock at x, y
func oreAt(noise opensimplex.Noise, x, y int, threshold float64, maxOre int) uint8 {
	n := noise.Eval2(float64(x)*oreScale, float64(y)*oreScale)
	if n <= threshold {
		return 0
	}
	ore := 1 + int((n-threshold)/(1-threshold)*float64(maxOre))
	if ore > maxOre {
		ore = maxOre
	}
	return uint8(ore)
}

// isPlayable checks if a position is inside the unbreakable border
func (c *canvas) isPlayable(x, y int) bool {
	return x >= 1 && x < c.rows-1 && y >= 1 && y < c.cols-1
}

// carve turns a playable cell into concealed ground
func (c *canvas) carve(x, y int) bool {
	if !c.isPlayable(x, y) {
		return false
	}
	c.tiles[x][y] = tile.Ground(true)
	return true
}

// carveLine carves a straight run from a towards b, X first then Y
func (c *canvas) carveLine(a, b world.Point) {
	x, y := a.X, a.Y
	for x != b.X {
		c.carve(x, y)
		x += sign(b.X - x)
	}
	for y != b.Y {
		c.carve(x, y)
		y += sign(b.Y - y)
	}
	c.carve(x, y)
}

func (c *canvas) level(name string, base world.Point) *level.Level {
	return &level.Level{Name: name, Tiles: c.tiles, Base: &base}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

package generator

import (
	"math/rand"

	"cavern/pkg/engine/world"
	"cavern/pkg/game/level"
)

// TunnelGenerator carves caves by walking lines in random directions
// with branching probability
type TunnelGenerator struct{}

// Name returns the name of this generator
func (g *TunnelGenerator) Name() string {
	return "tunnels"
}

// Generate creates a new cave for the given depth
func (g *TunnelGenerator) Generate(depth int, rng *rand.Rand) *level.Level {
	// Scale cave size with depth (add 2 extra for the border)
	// Depth 1: 12x22, Depth 10: 30x58
	rows := 10 + depth*2
	cols := 18 + depth*4

	c := newCanvas(rows, cols, depth, rng)

	// Start in the center (which is always in the playable area)
	base := world.Pt(rows/2, cols/2)
	c.carve(base.X, base.Y)

	// Scale branch probability with depth (more complex layouts)
	// Depth 1: 0.28, Depth 10: 0.55
	branchProb := float32(0.25) + float32(depth)*0.03
	if branchProb > 0.65 {
		branchProb = 0.65
	}

	// Depth 1: 2-4, Depth 10: 4-9
	minDist := 2 + depth/4
	maxDist := 4 + depth/2

	for _, dir := range world.DirectDirections() {
		g.walk(c, rng, base, dir, branchProb, minDist, maxDist)
	}

	return c.level("tunnels", base)
}

// walk carves a line of tunnel starting at p in the given direction.
// Only cells inside the border are carved.
func (g *TunnelGenerator) walk(c *canvas, rng *rand.Rand, p world.Point, dir world.Direction, branchProb float32, minDist, maxDist int) {
	dx, dy := dir.Delta()
	distance := minDist + rng.Intn(maxDist-minDist+1)

	for segment := 0; segment < distance; segment++ {
		c.carve(p.X, p.Y)

		// If the next cell would be outside the playable area, stop here
		if !c.isPlayable(p.X+dx, p.Y+dy) {
			return
		}

		if branchProb > 0 && rng.Float32() < branchProb {
			// Branches never double back over the tunnel just carved
			branch := world.DirectDirections()[rng.Intn(4)]
			if branch == dir.Opposite() {
				branch = dir
			}
			g.walk(c, rng, p, branch, branchProb-.1, minDist, maxDist)
		}

		p = p.Add(dx, dy)
	}

	c.carve(p.X, p.Y)
}

package generator

import (
	"math/rand"

	"cavern/pkg/engine/world"
	"cavern/pkg/game/level"
)

// ChamberGenerator carves caverns using Binary Space Partitioning:
// one chamber per leaf, sibling chambers joined by tunnels
type ChamberGenerator struct{}

// Name returns the name of this generator
func (g *ChamberGenerator) Name() string {
	return "chambers"
}

// bspNode represents a node in the BSP tree
type bspNode struct {
	x, y, width, height int
	left, right         *bspNode
	chamber             *chamber
}

// chamber is the open area carved inside a leaf
type chamber struct {
	x, y, width, height int
}

func (c *chamber) center() world.Point {
	return world.Pt(c.x+c.width/2, c.y+c.height/2)
}

// Constants for BSP generation
const (
	minNodeSize    = 7 // Minimum size of a BSP node
	minChamberSize = 3 // Minimum size of a chamber
	chamberPadding = 1 // Rock left between chamber and node edge
)

// Generate creates a new cave using the BSP algorithm
func (g *ChamberGenerator) Generate(depth int, rng *rand.Rand) *level.Level {
	// Depth 1: 16x30, capped at 48x90
	rows := 12 + depth*4
	cols := 24 + depth*6
	if rows > 48 {
		rows = 48
	}
	if cols > 90 {
		cols = 90
	}

	c := newCanvas(rows, cols, depth, rng)

	// Leave the border out of the tree
	root := &bspNode{x: 1, y: 1, width: rows - 2, height: cols - 2}
	g.split(root, rng)
	g.carveChambers(c, root, rng)
	g.connect(c, root)

	base := firstChamber(root).center()
	return c.level("chambers", base)
}

// split recursively divides a node until it is too small to hold two chambers
func (g *ChamberGenerator) split(node *bspNode, rng *rand.Rand) {
	canSplitX := node.width >= 2*minNodeSize
	canSplitY := node.height >= 2*minNodeSize
	if !canSplitX && !canSplitY {
		return
	}

	splitX := canSplitX
	if canSplitX && canSplitY {
		// Prefer cutting the longer side
		splitX = node.width > node.height || (node.width == node.height && rng.Intn(2) == 0)
	}

	if splitX {
		at := minNodeSize + rng.Intn(node.width-2*minNodeSize+1)
		node.left = &bspNode{x: node.x, y: node.y, width: at, height: node.height}
		node.right = &bspNode{x: node.x + at, y: node.y, width: node.width - at, height: node.height}
	} else {
		at := minNodeSize + rng.Intn(node.height-2*minNodeSize+1)
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: at}
		node.right = &bspNode{x: node.x, y: node.y + at, width: node.width, height: node.height - at}
	}

	g.split(node.left, rng)
	g.split(node.right, rng)
}

// carveChambers opens a randomly sized chamber in every leaf
func (g *ChamberGenerator) carveChambers(c *canvas, node *bspNode, rng *rand.Rand) {
	if node.left != nil {
		g.carveChambers(c, node.left, rng)
		g.carveChambers(c, node.right, rng)
		return
	}

	maxW := node.width - 2*chamberPadding
	maxH := node.height - 2*chamberPadding
	w := minChamberSize + rng.Intn(maxW-minChamberSize+1)
	h := minChamberSize + rng.Intn(maxH-minChamberSize+1)
	ch := &chamber{
		x:      node.x + chamberPadding + rng.Intn(maxW-w+1),
		y:      node.y + chamberPadding + rng.Intn(maxH-h+1),
		width:  w,
		height: h,
	}
	node.chamber = ch

	for x := ch.x; x < ch.x+ch.width; x++ {
		for y := ch.y; y < ch.y+ch.height; y++ {
			c.carve(x, y)
		}
	}
}

// connect joins the two halves of every inner node with a tunnel
func (g *ChamberGenerator) connect(c *canvas, node *bspNode) {
	if node.left == nil {
		return
	}
	g.connect(c, node.left)
	g.connect(c, node.right)
	c.carveLine(firstChamber(node.left).center(), firstChamber(node.right).center())
}

func firstChamber(node *bspNode) *chamber {
	for node.chamber == nil {
		node = node.left
	}
	return node.chamber
}

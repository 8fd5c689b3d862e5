package renderer

import (
	"sort"
	"strings"
	"sync"

	"github.com/zyedidia/generic/mapset"

	"cavern/pkg/engine/autotile"
	"cavern/pkg/engine/reveal"
	"cavern/pkg/engine/world"
)

// Family groups descriptors that are drawn alike
type Family int

const (
	FamilyUnknown Family = iota
	FamilyConcealed
	FamilyGround
	FamilyWall
)

// FamilyOf classifies a descriptor by its name
func FamilyOf(d autotile.Descriptor) Family {
	switch {
	case d.Name == "":
		return FamilyUnknown
	case d.Name == autotile.Concealed:
		return FamilyConcealed
	case strings.HasPrefix(d.Name, "ground"):
		return FamilyGround
	default:
		return FamilyWall
	}
}

// Cache records the latest descriptor of every cell it has been told about
// and which cells changed since the last Drain. It is safe for concurrent
// use, so a game loop and a draw loop may share it.
type Cache struct {
	mu          sync.Mutex
	descriptors map[world.Point]autotile.Descriptor
	dirty       mapset.Set[world.Point]
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{
		descriptors: make(map[world.Point]autotile.Descriptor),
		dirty:       mapset.New[world.Point](),
	}
}

// TileChanged stores the update
func (c *Cache) TileChanged(u reveal.Update) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.descriptors[u.Cell] = u.Descriptor
	c.dirty.Put(u.Cell)
}

// Descriptor returns the last descriptor seen for p
func (c *Cache) Descriptor(p world.Point) (autotile.Descriptor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.descriptors[p]
	return d, ok
}

// Len returns the number of cells with a descriptor
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.descriptors)
}

// Drain returns the cells changed since the previous call, in row order,
// and forgets them
func (c *Cache) Drain() []world.Point {
	c.mu.Lock()
	defer c.mu.Unlock()

	cells := make([]world.Point, 0, c.dirty.Size())
	c.dirty.Each(func(p world.Point) {
		cells = append(cells, p)
	})
	c.dirty = mapset.New[world.Point]()

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].X != cells[j].X {
			return cells[i].X < cells[j].X
		}
		return cells[i].Y < cells[j].Y
	})
	return cells
}

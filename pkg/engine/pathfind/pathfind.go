// Package pathfind finds routes for actors over the walkable part of the cave.
package pathfind

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"cavern/pkg/engine/world"
)

// Path is the sequence of cells from start to destination, both inclusive
type Path []world.Point

// WalkableNeighbors returns the direct neighbours of p that are revealed ground.
// Diagonal steps are never part of a path.
func WalkableNeighbors(g *world.Grid, p world.Point) []world.Point {
	neighbors := g.DirectNeighbors(p)
	result := neighbors[:0]
	for _, n := range neighbors {
		if g.IsWalkable(n) {
			result = append(result, n)
		}
	}
	return result
}

// FindPath runs a breadth-first search from start to dest.
// It returns false when dest is not reachable over walkable cells; that is
// a normal outcome the caller recovers from by dropping the move.
// The start cell itself does not need to be walkable.
func FindPath(g *world.Grid, start, dest world.Point) (Path, bool) {
	if !g.Contains(start) || !g.Contains(dest) {
		return nil, false
	}
	if start == dest {
		return Path{start}, true
	}

	parents := make(map[world.Point]world.Point)
	visited := mapset.New[world.Point]()
	visited.Put(start)

	frontier := queue.New[world.Point]()
	frontier.Enqueue(start)

	for !frontier.Empty() {
		current := frontier.Dequeue()

		for _, n := range WalkableNeighbors(g, current) {
			if visited.Has(n) {
				continue
			}
			visited.Put(n)
			parents[n] = current

			if n == dest {
				return buildPath(parents, start, dest), true
			}
			frontier.Enqueue(n)
		}
	}

	return nil, false
}

// FindPathChecked is FindPath for callers that need to tell an invalid
// request apart from an unreachable destination.
func FindPathChecked(g *world.Grid, start, dest world.Point) (Path, bool, error) {
	if !g.Contains(start) {
		return nil, false, fmt.Errorf("path start %v: %w", start, world.ErrOutOfBounds)
	}
	if !g.Contains(dest) {
		return nil, false, fmt.Errorf("path destination %v: %w", dest, world.ErrOutOfBounds)
	}
	path, ok := FindPath(g, start, dest)
	return path, ok, nil
}

func buildPath(parents map[world.Point]world.Point, start, dest world.Point) Path {
	var reversed Path
	for p := dest; p != start; p = parents[p] {
		reversed = append(reversed, p)
	}
	reversed = append(reversed, start)

	path := make(Path, len(reversed))
	for i, p := range reversed {
		path[len(reversed)-1-i] = p
	}
	return path
}

// Reachable returns every walkable cell connected to start
func Reachable(g *world.Grid, start world.Point) []world.Point {
	if !g.Contains(start) {
		return nil
	}
	visited := mapset.New[world.Point]()
	visited.Put(start)
	result := []world.Point{start}

	frontier := queue.New[world.Point]()
	frontier.Enqueue(start)
	for !frontier.Empty() {
		current := frontier.Dequeue()
		for _, n := range WalkableNeighbors(g, current) {
			if !visited.Has(n) {
				visited.Put(n)
				result = append(result, n)
				frontier.Enqueue(n)
			}
		}
	}
	return result
}

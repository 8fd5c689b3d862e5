// Package movement advances actors along the paths found for them.
package movement

import (
	"math"
	"time"

	"cavern/pkg/engine/pathfind"
	"cavern/pkg/engine/world"
)

// DefaultSpeed is the walking speed of a new actor in cells per second
const DefaultSpeed = 1.0

// Vec2 is a continuous position in cell units
type Vec2 struct {
	X float64
	Y float64
}

// FromPoint converts a cell coordinate to the position of the cell's centre
func FromPoint(p world.Point) Vec2 {
	return Vec2{X: float64(p.X), Y: float64(p.Y)}
}

// Cell returns the cell the position lies in
func (v Vec2) Cell() world.Point {
	return world.Pt(int(math.Round(v.X)), int(math.Round(v.Y)))
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Len returns the length of v
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Path is the FIFO list of waypoints an actor still has to reach
type Path struct {
	waypoints []Vec2
}

// NewPath converts a found route into waypoints
func NewPath(route pathfind.Path) *Path {
	p := &Path{waypoints: make([]Vec2, 0, len(route))}
	for _, cell := range route {
		p.waypoints = append(p.waypoints, FromPoint(cell))
	}
	return p
}

// Len returns the number of remaining waypoints
func (p *Path) Len() int {
	return len(p.waypoints)
}

// Empty returns true once every waypoint has been reached
func (p *Path) Empty() bool {
	return len(p.waypoints) == 0
}

// Front returns the next waypoint
func (p *Path) Front() (Vec2, bool) {
	if p.Empty() {
		return Vec2{}, false
	}
	return p.waypoints[0], true
}

// PopFront drops the next waypoint
func (p *Path) PopFront() {
	if !p.Empty() {
		p.waypoints = p.waypoints[1:]
	}
}

// Waypoints returns a copy of the remaining waypoints
func (p *Path) Waypoints() []Vec2 {
	return append([]Vec2(nil), p.waypoints...)
}

// Actor is a mobile unit of the colony
type Actor struct {
	ID       int
	Position Vec2
	Heading  float64 // radians, atan2(dy, dx)
	Speed    float64 // cells per second
	Path     *Path
}

// NewActor creates an idle actor standing on cell p
func NewActor(id int, p world.Point) *Actor {
	return &Actor{
		ID:       id,
		Position: FromPoint(p),
		Speed:    DefaultSpeed,
	}
}

// Idle returns true if the actor has no path to follow
func (a *Actor) Idle() bool {
	return a.Path == nil
}

// Follow attaches a path to the actor, replacing any previous one
func (a *Actor) Follow(route pathfind.Path) {
	if len(route) == 0 {
		a.Path = nil
		return
	}
	a.Path = NewPath(route)
}

// Step advances the actor by one tick of length dt. It returns true if
// the actor's path was used up and detached during this step.
func (a *Actor) Step(dt time.Duration) bool {
	if a.Path == nil {
		return false
	}

	target, ok := a.Path.Front()
	if !ok {
		a.Path = nil
		return true
	}

	toTarget := target.Sub(a.Position)
	distance := toTarget.Len()
	stride := a.Speed * dt.Seconds()

	if distance > 0 {
		a.Heading = math.Atan2(toTarget.Y, toTarget.X)
	}

	// Advance first, then pop once the rest is shorter than a stride.
	// The actor lands exactly on the waypoint.
	if remaining := distance - stride; remaining <= 0 || remaining < stride {
		a.Position = target
		a.Path.PopFront()
	} else {
		a.Position.X += math.Cos(a.Heading) * stride
		a.Position.Y += math.Sin(a.Heading) * stride
	}

	if a.Path.Empty() {
		a.Path = nil
		return true
	}
	return false
}

// Executor moves every actor holding a path once per tick
type Executor struct{}

// Tick advances all actors and returns the IDs of those that became idle
func (Executor) Tick(actors []*Actor, dt time.Duration) []int {
	var arrived []int
	for _, a := range actors {
		if a.Step(dt) {
			arrived = append(arrived, a.ID)
		}
	}
	return arrived
}

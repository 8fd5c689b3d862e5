// Package state holds a running cave: the grid, its reveal cascade and the
// colonists walking through it.
package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/leonelquinteros/gotext"

	"cavern/pkg/engine/autotile"
	"cavern/pkg/engine/pathfind"
	"cavern/pkg/engine/reveal"
	"cavern/pkg/engine/world"
	"cavern/pkg/game/movement"
)

var (
	// ErrNotGround is returned when the base is placed on a wall
	ErrNotGround = errors.New("base must be placed on ground")
	// ErrUnknownActor is returned for an actor ID that was never spawned
	ErrUnknownActor = errors.New("unknown actor")
	// ErrNotBreakable is returned when digging anything but a breakable wall
	ErrNotBreakable = errors.New("not a breakable wall")
)

const maxMessages = 5

// Game represents the state of one cave
type Game struct {
	Grid      *world.Grid
	Patterns  autotile.PatternMap
	Scheduler *reveal.Scheduler

	Actors []*movement.Actor

	// Now is the game clock, advanced by Tick
	Now time.Duration

	Messages []string

	// Ore is the amount mined so far
	Ore int

	Base *world.Point

	notifier reveal.Notifier
	executor movement.Executor
	nextID   int
}

// NewGame creates a game over grid. Descriptor updates go to notifier,
// which may be nil.
func NewGame(grid *world.Grid, patterns autotile.PatternMap, notifier reveal.Notifier) *Game {
	if notifier == nil {
		notifier = reveal.Discard
	}
	return &Game{
		Grid:      grid,
		Patterns:  patterns,
		Scheduler: reveal.New(grid, patterns, notifier),
		Messages:  make([]string, 0),
		notifier:  notifier,
		nextID:    1,
	}
}

// Load assigns a descriptor to every cell and pushes them to the notifier
func (g *Game) Load() error {
	return autotile.Refresh(g.Grid, g.Patterns, func(p world.Point, d autotile.Descriptor) {
		g.notifier.TileChanged(reveal.Update{Cell: p, Descriptor: d})
	})
}

// PlaceBase puts the base on ground at p and starts revealing the cave from there
func (g *Game) PlaceBase(p world.Point) error {
	t, ok := g.Grid.Get(p)
	if !ok {
		return fmt.Errorf("base at %v: %w", p, world.ErrOutOfBounds)
	}
	if !t.IsGround() {
		return fmt.Errorf("base at %v: %w", p, ErrNotGround)
	}

	base := p
	g.Base = &base
	g.Scheduler.Schedule(p, g.Now)
	return nil
}

// SpawnActor creates an idle actor standing on p
func (g *Game) SpawnActor(p world.Point) *movement.Actor {
	a := movement.NewActor(g.nextID, p)
	g.nextID++
	g.Actors = append(g.Actors, a)
	return a
}

// Actor returns the actor with the given ID
func (g *Game) Actor(id int) (*movement.Actor, error) {
	for _, a := range g.Actors {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("actor %d: %w", id, ErrUnknownActor)
}

// RequestMove sends actor id to dest. It returns false when no path exists,
// in which case the request is dropped and the actor keeps its current path.
// A destination outside the grid is an error wrapping world.ErrOutOfBounds.
func (g *Game) RequestMove(id int, dest world.Point) (bool, error) {
	a, err := g.Actor(id)
	if err != nil {
		return false, err
	}

	route, ok, err := pathfind.FindPathChecked(g.Grid, a.Position.Cell(), dest)
	if err != nil {
		return false, fmt.Errorf("move colonist %d: %w", id, err)
	}
	if !ok {
		g.AddMessage(gotext.Get("Colonist %d cannot reach %v", id, dest))
		return false, nil
	}
	a.Follow(route)
	return true, nil
}

// Dig breaks the wall at p, credits its ore and lets the cascade flow into
// any concealed ground behind it
func (g *Game) Dig(p world.Point) error {
	t, err := g.Grid.At(p)
	if err != nil {
		return fmt.Errorf("dig: %w", err)
	}
	ore, ok := t.Dig()
	if !ok {
		return fmt.Errorf("dig %v: %w", p, ErrNotBreakable)
	}
	if ore > 0 {
		g.Ore += int(ore)
		g.AddMessage(gotext.Get("Mined %d ore", int(ore)))
	}

	decision := reveal.Plan(g.Grid, p)
	for _, n := range decision.Schedule {
		g.Scheduler.Schedule(n, g.Now)
	}
	return g.Scheduler.Refresh(decision.Refresh...)
}

// Tick advances the game clock to now: due reveals first, then movement
func (g *Game) Tick(now time.Duration) error {
	dt := now - g.Now
	if dt < 0 {
		dt = 0
	}
	g.Now = now

	if err := g.Scheduler.Tick(now); err != nil {
		return err
	}

	for _, id := range g.executor.Tick(g.Actors, dt) {
		a, _ := g.Actor(id)
		g.AddMessage(gotext.Get("Colonist %d arrived at %v", id, a.Position.Cell()))
	}
	return nil
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = make([]string, 0)
}

// Package reveal drives the timed cascade that uncovers concealed ground.
//
// A reveal flips one concealed cell, schedules its concealed direct
// neighbours one delay later and re-derives the descriptor of every other
// cell around it. Repeated over ticks this floods outward ring by ring.
package reveal

import (
	"fmt"
	"time"

	"cavern/pkg/engine/autotile"
	"cavern/pkg/engine/world"
)

// FixedDelay is the time between two rings of a reveal cascade
const FixedDelay = 50 * time.Millisecond

// Update is a descriptor change pushed to the rendering collaborator
type Update struct {
	Cell       world.Point
	Descriptor autotile.Descriptor
}

// Notifier receives descriptor updates. Implementations must not block.
type Notifier interface {
	TileChanged(u Update)
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(u Update)

// TileChanged calls f(u)
func (f NotifierFunc) TileChanged(u Update) {
	f(u)
}

// Discard is a Notifier that drops every update
var Discard Notifier = NotifierFunc(func(Update) {})

// Decision is the outcome of revealing a cell: which neighbours join the
// cascade and which cells need a new descriptor.
type Decision struct {
	Schedule []world.Point
	Refresh  []world.Point
}

// Plan decides the follow-up of a reveal at cell from the current neighbour
// states. Concealed direct neighbours are scheduled; the other direct
// neighbours, the diagonals and the cell itself are refreshed unless they
// are still concealed.
func Plan(g *world.Grid, cell world.Point) Decision {
	var d Decision
	for _, n := range g.DirectNeighbors(cell) {
		if g.IsConcealed(n) {
			d.Schedule = append(d.Schedule, n)
		} else {
			d.Refresh = append(d.Refresh, n)
		}
	}
	for _, n := range g.DiagonalNeighbors(cell) {
		if !g.IsConcealed(n) {
			d.Refresh = append(d.Refresh, n)
		}
	}
	if !g.IsConcealed(cell) {
		d.Refresh = append(d.Refresh, cell)
	}
	return d
}

// Scheduler owns the reveal queue and mutates the grid while it ticks
type Scheduler struct {
	grid     *world.Grid
	patterns autotile.PatternMap
	notifier Notifier
	delay    time.Duration

	queue    *Queue
	revealed int
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithDelay overrides FixedDelay
func WithDelay(d time.Duration) Option {
	return func(s *Scheduler) {
		s.delay = d
	}
}

// New creates a scheduler with an empty queue
func New(g *world.Grid, patterns autotile.PatternMap, notifier Notifier, opts ...Option) *Scheduler {
	if notifier == nil {
		notifier = Discard
	}
	s := &Scheduler{
		grid:     g,
		patterns: patterns,
		notifier: notifier,
		delay:    FixedDelay,
		queue:    NewQueue(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule queues a reveal of cell at the given game time
func (s *Scheduler) Schedule(cell world.Point, at time.Duration) {
	s.queue.Push(cell, at)
}

// Pending returns the number of queued reveals
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// Next returns the time of the earliest queued reveal
func (s *Scheduler) Next() (time.Duration, bool) {
	e, ok := s.queue.Peek()
	return e.At, ok
}

// Revealed returns how many cells the scheduler has flipped so far
func (s *Scheduler) Revealed() int {
	return s.revealed
}

// Delay returns the ring delay in use
func (s *Scheduler) Delay() time.Duration {
	return s.delay
}

// Tick drains every reveal due at or before now. A queued cell that is a
// wall or already revealed ends its branch of the cascade without touching
// its neighbours. An incomplete pattern dictionary aborts the tick.
func (s *Scheduler) Tick(now time.Duration) error {
	for {
		next, ok := s.queue.Peek()
		if !ok || next.At > now {
			return nil
		}
		s.queue.Pop()

		cell, err := s.grid.At(next.Cell)
		if err != nil {
			return fmt.Errorf("reveal: %w", err)
		}
		if !cell.Reveal() {
			continue
		}
		s.revealed++

		decision := Plan(s.grid, next.Cell)
		for _, n := range decision.Schedule {
			s.Schedule(n, now+s.delay)
		}
		if err := s.refresh(decision.Refresh); err != nil {
			return err
		}
	}
}

func (s *Scheduler) refresh(cells []world.Point) error {
	for _, p := range cells {
		d, err := autotile.DetermineDescriptor(s.grid, p, s.patterns)
		if err != nil {
			return fmt.Errorf("reveal: refresh %v: %w", p, err)
		}
		s.notifier.TileChanged(Update{Cell: p, Descriptor: d})
	}
	return nil
}

// Refresh re-derives and publishes the descriptors of the given cells,
// skipping concealed ones. Used after grid changes made outside a cascade.
func (s *Scheduler) Refresh(cells ...world.Point) error {
	var visible []world.Point
	for _, p := range cells {
		if s.grid.Contains(p) && !s.grid.IsConcealed(p) {
			visible = append(visible, p)
		}
	}
	return s.refresh(visible)
}

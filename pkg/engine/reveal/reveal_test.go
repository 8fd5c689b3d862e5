package reveal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cavern/pkg/engine/autotile"
	"cavern/pkg/engine/tile"
	"cavern/pkg/engine/world"
)

func simplePatterns() autotile.PatternMap {
	return autotile.PatternMap{
		{Pattern: autotile.MustParsePattern("???", "?.?", "???"), Descriptor: "ground"},
		{Pattern: autotile.MustParsePattern("???", "?#?", "???"), Descriptor: "wall"},
	}
}

// corridor returns a single row of n concealed cells
func corridor(n int) *world.Grid {
	return world.NewFilledGrid(1, n, tile.Ground(true))
}

type recorder struct {
	updates []Update
}

func (r *recorder) TileChanged(u Update) {
	r.updates = append(r.updates, u)
}

func (r *recorder) cells() []world.Point {
	var out []world.Point
	for _, u := range r.updates {
		out = append(out, u.Cell)
	}
	return out
}

func TestCascadeOneRingPerDelay(t *testing.T) {
	const n = 5
	g := corridor(n)
	s := New(g, simplePatterns(), nil)

	t0 := 200 * time.Millisecond
	s.Schedule(world.Pt(0, 0), t0)

	revealedAt := map[int]time.Duration{}
	for now := t0; now <= t0+time.Duration(n)*FixedDelay; now += FixedDelay {
		require.NoError(t, s.Tick(now))
		for y := 0; y < n; y++ {
			if _, seen := revealedAt[y]; !seen && g.IsWalkable(world.Pt(0, y)) {
				revealedAt[y] = now
			}
		}
	}

	require.Len(t, revealedAt, n)
	for y := 0; y < n; y++ {
		assert.Equal(t, t0+time.Duration(y)*FixedDelay, revealedAt[y], "cell %d", y)
	}
	assert.Equal(t, n, s.Revealed())
	assert.Equal(t, 0, s.Pending())
}

func TestTickOnlyDrainsDueEntries(t *testing.T) {
	g := corridor(3)
	s := New(g, simplePatterns(), nil)
	s.Schedule(world.Pt(0, 0), 100*time.Millisecond)

	require.NoError(t, s.Tick(99*time.Millisecond))
	assert.True(t, g.IsConcealed(world.Pt(0, 0)))
	assert.Equal(t, 1, s.Pending())

	require.NoError(t, s.Tick(100*time.Millisecond))
	assert.True(t, g.IsWalkable(world.Pt(0, 0)))
	assert.True(t, g.IsConcealed(world.Pt(0, 1)), "next ring waits a delay")

	next, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, 150*time.Millisecond, next)
}

func TestNoOpRevealContinuesWithNextEntry(t *testing.T) {
	g := world.NewGrid([][]tile.Tile{
		{tile.Wall(false, 0), tile.Ground(false), tile.Ground(true)},
	})
	rec := &recorder{}
	s := New(g, simplePatterns(), rec)

	s.Schedule(world.Pt(0, 0), 0) // wall
	s.Schedule(world.Pt(0, 1), 0) // already revealed
	s.Schedule(world.Pt(0, 2), 0) // concealed

	require.NoError(t, s.Tick(0))
	assert.True(t, g.IsWalkable(world.Pt(0, 2)), "later due entries still run")
	assert.Equal(t, 1, s.Revealed())

	// only the successful reveal refreshed anything: (0,1) and (0,2) itself
	assert.ElementsMatch(t, []world.Point{world.Pt(0, 1), world.Pt(0, 2)}, rec.cells())
}

func TestRevealedCellDoesNotCascadeTwice(t *testing.T) {
	g := corridor(2)
	s := New(g, simplePatterns(), nil)
	s.Schedule(world.Pt(0, 0), 0)
	s.Schedule(world.Pt(0, 0), 0)

	require.NoError(t, s.Tick(0))
	assert.Equal(t, 1, s.Revealed())
	assert.Equal(t, 1, s.Pending(), "neighbour queued once")
}

func TestRefreshSetAndNotifications(t *testing.T) {
	wall := tile.Wall(true, 1)
	g := world.NewGrid([][]tile.Tile{
		{wall, tile.Ground(true), wall},
		{wall, tile.Ground(true), wall},
		{wall, wall, wall},
	})
	rec := &recorder{}
	s := New(g, simplePatterns(), rec)
	s.Schedule(world.Pt(1, 1), time.Second)

	require.NoError(t, s.Tick(time.Second))

	want := []world.Point{
		world.Pt(1, 2), world.Pt(1, 0), world.Pt(2, 1), // direct, not concealed
		world.Pt(2, 0), world.Pt(2, 2), world.Pt(0, 2), world.Pt(0, 0), // diagonals
		world.Pt(1, 1), // the cell itself
	}
	assert.ElementsMatch(t, want, rec.cells())
	assert.NotContains(t, rec.cells(), world.Pt(0, 1), "concealed neighbour is scheduled, not refreshed")

	for _, u := range rec.updates {
		if u.Cell == world.Pt(1, 1) {
			assert.Equal(t, autotile.Descriptor{Name: "ground"}, u.Descriptor)
		} else {
			assert.Equal(t, "wall", u.Descriptor.Name)
		}
	}

	next, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, time.Second+FixedDelay, next)
}

func TestPlan(t *testing.T) {
	g := world.NewGrid([][]tile.Tile{
		{tile.Ground(true), tile.Ground(true), tile.Ground(false)},
		{tile.Wall(false, 0), tile.Ground(false), tile.Ground(true)},
	})

	d := Plan(g, world.Pt(1, 1))
	assert.ElementsMatch(t, []world.Point{world.Pt(0, 1), world.Pt(1, 2)}, d.Schedule)
	assert.ElementsMatch(t, []world.Point{world.Pt(1, 0), world.Pt(0, 2), world.Pt(1, 1)}, d.Refresh,
		"concealed diagonal (0,0) is skipped")
}

func TestIncompleteDictionaryAbortsTick(t *testing.T) {
	g := corridor(2)
	patterns := autotile.PatternMap{
		{Pattern: autotile.MustParsePattern("???", "?.?", "???"), Descriptor: "ground"},
	}
	s := New(g, patterns, nil)
	s.Schedule(world.Pt(0, 0), 0)
	s.Schedule(world.Pt(0, 1), 0)

	// (0,0) refreshes only ground cells; revealing (0,1) refreshes (0,0) and itself, both ground
	require.NoError(t, s.Tick(0))

	walls := world.NewGrid([][]tile.Tile{{tile.Ground(true), tile.Wall(false, 0)}})
	s = New(walls, patterns, nil)
	s.Schedule(world.Pt(0, 0), 0)
	err := s.Tick(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, autotile.ErrIncompletePatternMap))
}

func TestScheduleOutOfBounds(t *testing.T) {
	s := New(corridor(1), simplePatterns(), nil)
	s.Schedule(world.Pt(4, 4), 0)
	err := s.Tick(0)
	assert.True(t, errors.Is(err, world.ErrOutOfBounds))
}

func TestWithDelay(t *testing.T) {
	g := corridor(2)
	s := New(g, simplePatterns(), nil, WithDelay(time.Second))
	assert.Equal(t, time.Second, s.Delay())
	s.Schedule(world.Pt(0, 0), 0)
	require.NoError(t, s.Tick(0))

	next, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, time.Second, next)
}

func TestExplicitRefreshSkipsConcealed(t *testing.T) {
	g := world.NewGrid([][]tile.Tile{{tile.Ground(true), tile.Ground(false)}})
	rec := &recorder{}
	s := New(g, simplePatterns(), rec)

	require.NoError(t, s.Refresh(world.Pt(0, 0), world.Pt(0, 1), world.Pt(9, 9)))
	assert.Equal(t, []world.Point{world.Pt(0, 1)}, rec.cells())
}

func TestQueueOrdersByTimeThenInsertion(t *testing.T) {
	q := NewQueue()
	q.Push(world.Pt(0, 3), 30)
	q.Push(world.Pt(0, 1), 10)
	q.Push(world.Pt(0, 2), 10)
	q.Push(world.Pt(0, 0), 5)

	var got []world.Point
	for q.Len() > 0 {
		e, ok := q.Pop()
		require.True(t, ok)
		got = append(got, e.Cell)
	}
	assert.Equal(t, []world.Point{world.Pt(0, 0), world.Pt(0, 1), world.Pt(0, 2), world.Pt(0, 3)}, got)

	_, ok := q.Pop()
	assert.False(t, ok)
}

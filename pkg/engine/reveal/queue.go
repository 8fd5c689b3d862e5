package reveal

import (
	"time"

	"github.com/zyedidia/generic/heap"

	"cavern/pkg/engine/world"
)

// Entry is a pending reveal of a cell at a game time
type Entry struct {
	At   time.Duration
	Cell world.Point

	seq uint64
}

// Queue orders pending reveals by time. Entries with the same time come out
// in insertion order.
type Queue struct {
	heap *heap.Heap[Entry]
	seq  uint64
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{
		heap: heap.New[Entry](func(a, b Entry) bool {
			if a.At != b.At {
				return a.At < b.At
			}
			return a.seq < b.seq
		}),
	}
}

// Push inserts a reveal of cell at the given time
func (q *Queue) Push(cell world.Point, at time.Duration) {
	q.seq++
	q.heap.Push(Entry{At: at, Cell: cell, seq: q.seq})
}

// Peek returns the earliest entry without removing it
func (q *Queue) Peek() (Entry, bool) {
	return q.heap.Peek()
}

// Pop removes and returns the earliest entry
func (q *Queue) Pop() (Entry, bool) {
	return q.heap.Pop()
}

// Len returns the number of pending entries
func (q *Queue) Len() int {
	return q.heap.Size()
}

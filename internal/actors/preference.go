package actors

import (
	"container/heap"

	"github.com/talgya/praxis/internal/economy"
)

// RankedEntry adapts a GoalRecord for ordered storage by binding it to the
// hierarchy rank its goal held at the moment of insertion. The rank is
// resolved once and never updated: entries queued before a hierarchy change
// keep comparing by the ranking as it existed when they were added. Only
// entries added afterwards see the new ranking.
type RankedEntry struct {
	Record *GoalRecord
	rank   int
}

// Rank returns the hierarchy rank this entry was inserted under.
func (e *RankedEntry) Rank() int { return e.rank }

// entryHeap orders entries most-preferred-first: rank 0 beats rank 1.
type entryHeap []*RankedEntry

func (h entryHeap) Len() int           { return len(h) }
func (h entryHeap) Less(i, j int) bool { return h[i].rank < h[j].rank }
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any)        { *h = append(*h, x.(*RankedEntry)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// Queue is a max-ordered queue of ranked entries for a single item. The top
// is always the most valuable goal the item is currently earmarked for, so
// use and valuing only ever touch the root.
type Queue struct {
	entries entryHeap
}

// Push inserts an entry in rank order.
func (q *Queue) Push(e *RankedEntry) {
	heap.Push(&q.entries, e)
}

// Peek returns the most preferred entry without removing it, or nil if the
// queue is empty.
func (q *Queue) Peek() *RankedEntry {
	if len(q.entries) == 0 {
		return nil
	}
	return q.entries[0]
}

// Len returns the number of queued entries.
func (q *Queue) Len() int {
	return len(q.entries)
}

// RemoveGoal rebuilds the queue with every entry for the given goal
// excluded and returns how many entries were dropped. This is the designed
// expensive path: a full linear scan plus re-heapify.
func (q *Queue) RemoveGoal(goal economy.Goal) int {
	kept := q.entries[:0]
	removed := 0
	for _, e := range q.entries {
		if e.Record.Goal == goal {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	if removed > 0 {
		q.entries = kept
		heap.Init(&q.entries)
	}
	return removed
}

// Entries returns a copy of the queued entries in heap (not sorted) order,
// for inspection and persistence.
func (q *Queue) Entries() []*RankedEntry {
	out := make([]*RankedEntry, len(q.entries))
	copy(out, q.entries)
	return out
}

// PreferenceList maps each item to the queue of goals it is earmarked for.
type PreferenceList map[economy.Item]*Queue

package actors

import (
	"github.com/talgya/praxis/internal/economy"
)

// SatisfactionPair declares, at construction time, which items can satisfy
// a goal.
type SatisfactionPair struct {
	Goal  economy.Goal
	Items []economy.Item
}

// Actor is an individual acting, valuing, satisfying economic agent. It is
// a synchronous in-memory index: not thread-safe, driven by one external
// loop. Every query that might fail returns an absent result rather than an
// error.
type Actor struct {
	// Name for printouts and persistence keys.
	Name string

	// Preferences maps each item to a max-ordered queue of the goals it
	// can serve, most valued on top.
	Preferences PreferenceList

	// Hierarchy maps each known goal to its ordinal rank. Rank 0 is the
	// most preferred. Assumed strictly ordinal; not enforced.
	Hierarchy map[economy.Goal]int

	// satisfactions maps each goal to the items able to satisfy it.
	// Items may repeat; absence means "cannot satisfy this goal".
	satisfactions map[economy.Goal][]economy.Item

	// recurring caches periodic records so an external time driver can
	// advance their timers and re-register them.
	recurring map[economy.Goal]*GoalRecord
}

// NewActor builds an actor from an ordered goal hierarchy and the
// goal→items satisfaction pairs. Later pairs for the same goal append;
// duplicates are allowed. Each hierarchy record is then added under the
// rank equal to its list position, so position 0 is the most preferred end.
func NewActor(name string, hierarchy []*GoalRecord, satisfactions []SatisfactionPair) *Actor {
	a := &Actor{
		Name:          name,
		Preferences:   make(PreferenceList),
		Hierarchy:     make(map[economy.Goal]int),
		satisfactions: make(map[economy.Goal][]economy.Item),
		recurring:     make(map[economy.Goal]*GoalRecord),
	}
	for _, p := range satisfactions {
		a.satisfactions[p.Goal] = append(a.satisfactions[p.Goal], p.Items...)
	}
	for i, rec := range hierarchy {
		a.Add(rec, i)
	}
	return a
}

// Add inserts the record into the queue of every item registered as able to
// satisfy its goal, binding each entry to the given rank. Periodic records
// are also cached for the recurrence driver. The hierarchy entry for the
// goal is overwritten unconditionally; entries already queued under an
// older ranking are not re-ranked.
func (a *Actor) Add(rec *GoalRecord, rank int) {
	for _, item := range a.satisfactions[rec.Goal] {
		q := a.Preferences[item]
		if q == nil {
			q = &Queue{}
			a.Preferences[item] = q
		}
		q.Push(&RankedEntry{Record: rec, rank: rank})
	}
	if rec.Recurring {
		a.recurring[rec.Goal] = rec
	}
	a.Hierarchy[rec.Goal] = rank
}

// Remove retires a goal completely: every queue of every item registered
// for it is rebuilt with that goal's entries excluded, and the goal is
// dropped from the recurrence cache and the hierarchy. A future record for
// the same goal needs a fresh rank. This is a linear scan per affected item
// and should be used sparingly.
func (a *Actor) Remove(goal economy.Goal) {
	for _, item := range a.satisfactions[goal] {
		if q := a.Preferences[item]; q != nil {
			q.RemoveGoal(goal)
		}
	}
	delete(a.recurring, goal)
	delete(a.Hierarchy, goal)
}

// Consume applies one unit of the item toward the most valued goal it can
// satisfy. Progress persists on the shared record. When the increment
// satisfies the goal, the goal is purged from every queue that held it (not
// only this item's) and the pre-increment record is returned as the
// satisfying snapshot. Otherwise, or when the item has no queued goals, the
// result is absent.
func (a *Actor) Consume(item economy.Item) (GoalRecord, bool) {
	q := a.Preferences[item]
	if q == nil {
		return GoalRecord{}, false
	}
	top := q.Peek()
	if top == nil {
		return GoalRecord{}, false
	}
	rec := top.Record
	snapshot := *rec
	rec.Units++
	if rec.Satisfied() {
		a.Remove(rec.Goal)
		return snapshot, true
	}
	return GoalRecord{}, false
}

// RegisterSatisfaction appends the item to the list of items able to
// satisfy the goal. It does not retroactively queue the goal under the
// item; a subsequent Add is required for that.
func (a *Actor) RegisterSatisfaction(goal economy.Goal, item economy.Item) {
	a.satisfactions[goal] = append(a.satisfactions[goal], item)
}

// BestGoal returns the goal of the item's queue top, or absent if the item
// is unknown or its queue is empty.
func (a *Actor) BestGoal(item economy.Item) (economy.Goal, bool) {
	q := a.Preferences[item]
	if q == nil {
		return "", false
	}
	top := q.Peek()
	if top == nil {
		return "", false
	}
	return top.Record.Goal, true
}

// CompareItemValues compares two items by the intrinsic ordering of their
// best goals (not by hierarchy rank): negative if x's best goal orders
// before y's, zero if equal, positive otherwise. Absent if either item has
// no queued goal.
func (a *Actor) CompareItemValues(x, y economy.Item) (int, bool) {
	gx, ok := a.BestGoal(x)
	if !ok {
		return 0, false
	}
	gy, ok := a.BestGoal(y)
	if !ok {
		return 0, false
	}
	return gx.Compare(gy), true
}

// Satisfactions returns the items registered as able to satisfy the goal.
// The returned slice is the live index; callers must not mutate it.
func (a *Actor) Satisfactions(goal economy.Goal) []economy.Item {
	return a.satisfactions[goal]
}

// Satisfiable returns every goal with at least one registered satisfying
// item, including goals not currently in the hierarchy.
func (a *Actor) Satisfiable() []economy.Goal {
	goals := make([]economy.Goal, 0, len(a.satisfactions))
	for goal := range a.satisfactions {
		goals = append(goals, goal)
	}
	return goals
}

// Items returns every item with a (possibly empty) preference queue.
func (a *Actor) Items() []economy.Item {
	items := make([]economy.Item, 0, len(a.Preferences))
	for item := range a.Preferences {
		items = append(items, item)
	}
	return items
}

// RecurrenceCache exposes the periodic records so the external time driver
// can advance their elapsed time and trigger re-registration via Add. The
// returned map is live.
func (a *Actor) RecurrenceCache() map[economy.Goal]*GoalRecord {
	return a.recurring
}

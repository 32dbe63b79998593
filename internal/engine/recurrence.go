// Recurrence driver — the time-advancing collaborator the preference engine
// expects. It advances elapsed time on cached periodic records and brings
// satisfied periodic goals back into circulation once their interval
// elapses.
package engine

import (
	"github.com/talgya/praxis/internal/actors"
	"github.com/talgya/praxis/internal/economy"
)

// DormantGoal is a satisfied periodic goal waiting out its recurrence
// interval before being re-registered.
type DormantGoal struct {
	Goal          economy.Goal
	UnitsRequired int
	TimeRequired  uint64
	Rank          int
	Elapsed       uint64
}

// advanceRecurrence runs one tick of recurrence bookkeeping for an actor:
// every cached periodic record's elapsed time grows, and every dormant goal
// whose interval has passed is re-added under its former rank with fresh
// progress. Returns the goals that recurred this tick.
func (s *ActorState) advanceRecurrence() []economy.Goal {
	for _, rec := range s.Actor.RecurrenceCache() {
		rec.Time++
	}

	var recurred []economy.Goal
	remaining := s.Dormant[:0]
	for _, d := range s.Dormant {
		d.Elapsed++
		if d.Elapsed < d.TimeRequired {
			remaining = append(remaining, d)
			continue
		}
		s.Actor.Add(actors.NewPeriodicGoalRecord(d.Goal, d.UnitsRequired, d.TimeRequired), d.Rank)
		recurred = append(recurred, d.Goal)
	}
	s.Dormant = remaining
	return recurred
}

// dismiss parks a just-satisfied periodic goal until it comes due again.
// rank is the hierarchy position the goal held when satisfied; it is reused
// verbatim on re-registration.
func (s *ActorState) dismiss(rec actors.GoalRecord, rank int) {
	s.Dormant = append(s.Dormant, &DormantGoal{
		Goal:          rec.Goal,
		UnitsRequired: rec.UnitsRequired,
		TimeRequired:  rec.TimeRequired,
		Rank:          rank,
	})
}

// Package actors implements the goal/preference-list engine: per-item ranked
// queues of candidate goals, kept consistent as goals are registered,
// consumed, or retired, and as the actor's value ranking evolves.
package actors

import (
	"github.com/google/uuid"

	"github.com/talgya/praxis/internal/economy"
)

// GoalRecord is a pending claim on a goal. It carries everything needed to
// satisfy the goal properly: progress (Units toward UnitsRequired) and, for
// periodic goals, the recurrence interval. The same record is shared by
// pointer across every item queue that indexes its goal, so progress made
// through one item counts toward the goal everywhere.
type GoalRecord struct {
	Goal          economy.Goal `json:"goal"`
	UnitsRequired int          `json:"units_required"` // Units needed to satisfy
	Units         int          `json:"units"`          // Units diverted so far
	ID            uuid.UUID    `json:"id"`

	// Periodic goals only.
	Recurring    bool   `json:"recurring"`
	TimeRequired uint64 `json:"time_required,omitempty"` // Ticks before recurrence
	Time         uint64 `json:"time,omitempty"`          // Ticks since last dismissal
}

// NewGoalRecord creates a one-shot record with no progress.
func NewGoalRecord(goal economy.Goal, unitsRequired int) *GoalRecord {
	return &GoalRecord{
		Goal:          goal,
		UnitsRequired: unitsRequired,
		ID:            uuid.New(),
	}
}

// NewPeriodicGoalRecord creates a recurring record. timeRequired is the
// number of ticks after dismissal before the goal comes due again.
func NewPeriodicGoalRecord(goal economy.Goal, unitsRequired int, timeRequired uint64) *GoalRecord {
	return &GoalRecord{
		Goal:          goal,
		UnitsRequired: unitsRequired,
		ID:            uuid.New(),
		Recurring:     true,
		TimeRequired:  timeRequired,
	}
}

// Satisfied reports whether enough units have been diverted to this goal.
// A satisfied record must not remain indexed anywhere.
func (r *GoalRecord) Satisfied() bool {
	return r.Units >= r.UnitsRequired
}

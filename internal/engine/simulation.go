// Simulation ties actors, demand, and recurrence together and runs them
// each tick.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/praxis/internal/actors"
	"github.com/talgya/praxis/internal/economy"
)

// ActorState couples an actor with its scenario-declared means and the
// dormant periodic goals waiting to recur.
type ActorState struct {
	Actor *actors.Actor
	Items []economy.Item // In scenario order; consumption rotates through these.

	Dormant []*DormantGoal
}

// Event is a notable occurrence in the simulation.
type Event struct {
	Tick        uint64 `json:"tick" db:"tick"`
	Actor       string `json:"actor" db:"actor"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"` // "satisfied", "recurred"
}

// SimStats tracks aggregate simulation statistics.
type SimStats struct {
	Actors      int `json:"actors"`
	Outstanding int `json:"outstanding"` // Goals currently in some hierarchy
	Dormant     int `json:"dormant"`     // Periodic goals waiting to recur
	Satisfied   int `json:"satisfied"`   // Satisfactions since start
}

// Simulation holds the complete state and wires the systems together.
type Simulation struct {
	Actors   []*ActorState
	Demand   *economy.DemandField // nil = one application per actor per tick
	Events   []Event
	LastTick uint64
	Stats    SimStats
}

// NewSimulation creates a simulation over the given actor states.
func NewSimulation(states []*ActorState, demand *economy.DemandField) *Simulation {
	sim := &Simulation{Actors: states, Demand: demand}
	sim.updateStats()
	return sim
}

// CurrentTick returns the most recently processed tick number.
func (s *Simulation) CurrentTick() uint64 {
	return s.LastTick
}

// TickMinute runs every tick: recurrence bookkeeping, then item
// consumption at the demand-driven intensity.
func (s *Simulation) TickMinute(tick uint64) {
	s.LastTick = tick

	for i, state := range s.Actors {
		for _, goal := range state.advanceRecurrence() {
			s.record(tick, state, fmt.Sprintf("%s comes due again for %s", goal, state.Actor.Name), "recurred")
		}

		if len(state.Items) == 0 {
			continue
		}

		applications := 1
		if s.Demand != nil {
			applications = s.Demand.Applications(tick, i)
		}
		for n := 0; n < applications; n++ {
			item := state.Items[(tick+uint64(n))%uint64(len(state.Items))]
			s.consume(tick, state, item)
		}
	}
}

// consume applies one item use and records the outcome.
func (s *Simulation) consume(tick uint64, state *ActorState, item economy.Item) {
	// The rank must be captured before consumption: a satisfying consume
	// drops the goal from the hierarchy, and recurrence reuses that rank.
	var rank int
	if goal, ok := state.Actor.BestGoal(item); ok {
		rank = state.Actor.Hierarchy[goal]
	}

	rec, ok := state.Actor.Consume(item)
	if !ok {
		return
	}

	s.Stats.Satisfied++
	s.record(tick, state,
		fmt.Sprintf("%s satisfies %s with %s", state.Actor.Name, rec.Goal, item), "satisfied")

	if rec.Recurring {
		state.dismiss(rec, rank)
	}
}

func (s *Simulation) record(tick uint64, state *ActorState, desc, category string) {
	s.Events = append(s.Events, Event{
		Tick:        tick,
		Actor:       state.Actor.Name,
		Description: desc,
		Category:    category,
	})
}

// TickDay runs every sim-day: statistics and the daily report.
func (s *Simulation) TickDay(tick uint64) {
	s.updateStats()

	eventCounts := make(map[string]int)
	for _, e := range s.Events {
		eventCounts[e.Category]++
	}

	slog.Info("daily report",
		"tick", tick,
		"time", SimTime(tick),
		"actors", s.Stats.Actors,
		"outstanding", s.Stats.Outstanding,
		"dormant", s.Stats.Dormant,
		"satisfied_total", s.Stats.Satisfied,
		"events_satisfied", eventCounts["satisfied"],
		"events_recurred", eventCounts["recurred"],
	)

	// Trim old events to prevent unbounded growth (keep last 1000).
	if len(s.Events) > 1000 {
		s.Events = s.Events[len(s.Events)-1000:]
	}
}

// Snapshot refreshes and returns the aggregate statistics.
func (s *Simulation) Snapshot() SimStats {
	s.updateStats()
	return s.Stats
}

func (s *Simulation) updateStats() {
	outstanding := 0
	dormant := 0
	for _, state := range s.Actors {
		outstanding += len(state.Actor.Hierarchy)
		dormant += len(state.Dormant)
	}
	s.Stats.Actors = len(s.Actors)
	s.Stats.Outstanding = outstanding
	s.Stats.Dormant = dormant
}

package cli

import (
	"github.com/talgya/praxis/internal/actors"
	"github.com/talgya/praxis/internal/config"
	"github.com/talgya/praxis/internal/economy"
	"github.com/talgya/praxis/internal/engine"
)

// buildState constructs an actor state from its scenario declaration. Goal
// listing order becomes the hierarchy; the actor's item list is the distinct
// items across its goals, in first-appearance order.
func buildState(ac config.ActorConfig) *engine.ActorState {
	var records []*actors.GoalRecord
	var pairs []actors.SatisfactionPair
	var items []economy.Item
	seen := make(map[economy.Item]bool)

	for _, g := range ac.Goals {
		goal := economy.Goal(g.Name)
		if g.Recurring {
			records = append(records, actors.NewPeriodicGoalRecord(goal, g.UnitsRequired, g.RecurTicks))
		} else {
			records = append(records, actors.NewGoalRecord(goal, g.UnitsRequired))
		}

		goalItems := make([]economy.Item, 0, len(g.Items))
		for _, it := range g.Items {
			item := economy.Item(it)
			goalItems = append(goalItems, item)
			if !seen[item] {
				seen[item] = true
				items = append(items, item)
			}
		}
		pairs = append(pairs, actors.SatisfactionPair{Goal: goal, Items: goalItems})
	}

	return &engine.ActorState{
		Actor: actors.NewActor(ac.Name, records, pairs),
		Items: items,
	}
}

// scenarioItems returns the distinct items an actor's scenario declares, in
// first-appearance order. Used to re-attach item lists to restored actors.
func scenarioItems(ac config.ActorConfig) []economy.Item {
	var items []economy.Item
	seen := make(map[economy.Item]bool)
	for _, g := range ac.Goals {
		for _, it := range g.Items {
			item := economy.Item(it)
			if !seen[item] {
				seen[item] = true
				items = append(items, item)
			}
		}
	}
	return items
}

package actors

import (
	"testing"

	"github.com/talgya/praxis/internal/economy"
)

const (
	itemX = economy.Item("x")
	itemY = economy.Item("y")
	goalA = economy.Goal("a")
	goalB = economy.Goal("b")
	goalC = economy.Goal("c")
)

func newTestActor() *Actor {
	return NewActor("crusoe",
		[]*GoalRecord{
			NewGoalRecord(goalA, 2),
			NewGoalRecord(goalB, 1),
		},
		[]SatisfactionPair{
			{Goal: goalA, Items: []economy.Item{itemX}},
			{Goal: goalB, Items: []economy.Item{itemX, itemY}},
		},
	)
}

func TestConstructionRankDirection(t *testing.T) {
	a := newTestActor()

	// Position 0 in the hierarchy list is the most preferred end.
	best, ok := a.BestGoal(itemX)
	if !ok {
		t.Fatal("expected a best goal for x")
	}
	if best != goalA {
		t.Errorf("expected best goal a, got %s", best)
	}
	if a.Hierarchy[goalA] != 0 || a.Hierarchy[goalB] != 1 {
		t.Errorf("unexpected hierarchy ranks: %v", a.Hierarchy)
	}
}

func TestConsumePersistsProgressAndPurges(t *testing.T) {
	a := newTestActor()

	// First consume: a needs 2 units, so no satisfaction yet — but the
	// unit sticks and a stays queued.
	if _, ok := a.Consume(itemX); ok {
		t.Fatal("first consume should not satisfy")
	}
	if best, _ := a.BestGoal(itemX); best != goalA {
		t.Errorf("goal a should still top x's queue, got %s", best)
	}

	// Second consume crosses the threshold. The satisfying snapshot is
	// the pre-increment record.
	rec, ok := a.Consume(itemX)
	if !ok {
		t.Fatal("second consume should satisfy goal a")
	}
	if rec.Goal != goalA {
		t.Errorf("expected satisfied goal a, got %s", rec.Goal)
	}
	if rec.Units != 1 {
		t.Errorf("expected pre-increment snapshot with 1 unit, got %d", rec.Units)
	}

	// a is purged everywhere; b takes over.
	if best, _ := a.BestGoal(itemX); best != goalB {
		t.Errorf("expected best goal b after purge, got %s", best)
	}
	if _, known := a.Hierarchy[goalA]; known {
		t.Error("satisfied goal should leave the hierarchy")
	}
}

func TestConsumeEmptyQueueIsNoOp(t *testing.T) {
	a := newTestActor()

	if _, ok := a.Consume(economy.Item("unknown")); ok {
		t.Error("unknown item should be absent")
	}

	// Drain y's single goal, then consume again.
	if _, ok := a.Consume(itemY); !ok {
		t.Fatal("b needs one unit, consume should satisfy")
	}
	if _, ok := a.Consume(itemY); ok {
		t.Error("empty queue should be absent")
	}
	if a.Preferences[itemY].Len() != 0 {
		t.Errorf("expected empty queue, got %d entries", a.Preferences[itemY].Len())
	}
}

func TestSatisfactionPurgesEveryItem(t *testing.T) {
	// b is satisfiable by both x and y; satisfying it through y must also
	// clear it from x's queue.
	a := newTestActor()

	if _, ok := a.Consume(itemY); !ok {
		t.Fatal("expected y to satisfy b")
	}
	if a.Preferences[itemX].Len() != 1 {
		t.Errorf("x should keep only goal a, got %d entries", a.Preferences[itemX].Len())
	}
	if best, _ := a.BestGoal(itemX); best != goalA {
		t.Errorf("x's best goal should be a, got %s", best)
	}
}

func TestRemoveClearsAllQueuesAndBookkeeping(t *testing.T) {
	a := NewActor("shared",
		[]*GoalRecord{
			NewGoalRecord(goalA, 3),
			NewGoalRecord(goalB, 1),
		},
		[]SatisfactionPair{
			{Goal: goalA, Items: []economy.Item{itemX, itemY}},
			{Goal: goalB, Items: []economy.Item{itemX}},
		},
	)

	xBefore := a.Preferences[itemX].Len()
	yBefore := a.Preferences[itemY].Len()

	a.Remove(goalA)

	if got := a.Preferences[itemX].Len(); got != xBefore-1 {
		t.Errorf("x queue: expected %d entries, got %d", xBefore-1, got)
	}
	if got := a.Preferences[itemY].Len(); got != yBefore-1 {
		t.Errorf("y queue: expected %d entries, got %d", yBefore-1, got)
	}
	if best, _ := a.BestGoal(itemX); best != goalB {
		t.Errorf("unrelated goal b should survive in x, got %s", best)
	}
	if _, known := a.Hierarchy[goalA]; known {
		t.Error("removed goal should leave the hierarchy")
	}
}

func TestRemoveUnknownGoalIsNoOp(t *testing.T) {
	a := newTestActor()
	a.Remove(goalC)

	if a.Preferences[itemX].Len() != 2 {
		t.Errorf("queues should be untouched, x has %d entries", a.Preferences[itemX].Len())
	}
}

func TestRegisterSatisfactionIsNotRetroactive(t *testing.T) {
	a := newTestActor()

	a.RegisterSatisfaction(goalC, itemY)
	if a.Preferences[itemY].Len() != 1 {
		t.Errorf("registration alone must not queue anything, y has %d entries", a.Preferences[itemY].Len())
	}

	// An explicit add after registration queues it.
	a.Add(NewGoalRecord(goalC, 1), 2)
	if a.Preferences[itemY].Len() != 2 {
		t.Errorf("expected 2 entries in y after add, got %d", a.Preferences[itemY].Len())
	}
}

func TestAddWithNoSatisfyingItemsStillTracked(t *testing.T) {
	a := newTestActor()

	rec := NewPeriodicGoalRecord(goalC, 1, 100)
	a.Add(rec, 2)

	if a.Hierarchy[goalC] != 2 {
		t.Error("hierarchy should track a goal with no satisfying items")
	}
	if a.RecurrenceCache()[goalC] != rec {
		t.Error("periodic record should be cached")
	}
	for _, item := range []economy.Item{itemX, itemY} {
		if best, _ := a.BestGoal(item); best == goalC {
			t.Errorf("goal c must not appear in %s's queue", item)
		}
	}
}

func TestRankSnapshotAtInsertion(t *testing.T) {
	// Entries keep the rank their goal held when they were inserted.
	// Re-adding a goal under a better rank outranks older entries, but
	// older entries for other goals are not re-ranked.
	a := NewActor("snapshot",
		[]*GoalRecord{
			NewGoalRecord(goalA, 5),
			NewGoalRecord(goalB, 5),
		},
		[]SatisfactionPair{
			{Goal: goalA, Items: []economy.Item{itemX}},
			{Goal: goalB, Items: []economy.Item{itemX}},
		},
	)

	if best, _ := a.BestGoal(itemX); best != goalA {
		t.Fatalf("expected a on top, got %s", best)
	}

	// A fresh record for b needs a rank strictly better than a's 0 to win.
	// Ranks are not validated, so a negative rank is accepted.
	a.Add(NewGoalRecord(goalB, 5), -1)
	if best, _ := a.BestGoal(itemX); best != goalB {
		t.Errorf("newer b entry at rank -1 should top the queue, got %s", best)
	}

	// The hierarchy now says b is ranked -1, but b's original entry still
	// carries rank 1: purge-and-inspect shows both entries coexist.
	if got := a.Preferences[itemX].Len(); got != 3 {
		t.Errorf("expected 3 entries (a, old b, new b), got %d", got)
	}
}

func TestCompareItemValues(t *testing.T) {
	a := newTestActor()

	// x's best goal is "a", y's best is "b": intrinsic string order.
	cmp, ok := a.CompareItemValues(itemX, itemY)
	if !ok {
		t.Fatal("both items have queued goals")
	}
	if cmp >= 0 {
		t.Errorf("expected a < b, got %d", cmp)
	}

	if _, ok := a.CompareItemValues(itemX, economy.Item("unknown")); ok {
		t.Error("comparison with an unknown item should be absent")
	}
}

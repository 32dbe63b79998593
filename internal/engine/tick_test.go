package engine

import (
	"testing"
)

func TestStepCadence(t *testing.T) {
	e := NewEngine()

	ticks, hours, days := 0, 0, 0
	e.OnTick = func(uint64) { ticks++ }
	e.OnHour = func(uint64) { hours++ }
	e.OnDay = func(uint64) { days++ }

	for i := 0; i < TicksPerSimDay; i++ {
		e.Step()
	}

	if ticks != TicksPerSimDay {
		t.Errorf("ticks = %d", ticks)
	}
	if hours != TicksPerSimDay/TicksPerSimHour {
		t.Errorf("hours = %d", hours)
	}
	if days != 1 {
		t.Errorf("days = %d", days)
	}
	if e.Tick != TicksPerSimDay {
		t.Errorf("tick counter = %d", e.Tick)
	}
}

func TestStepResumesFromRestoredTick(t *testing.T) {
	e := NewEngine()
	e.Tick = TicksPerSimHour - 1

	hours := 0
	e.OnHour = func(uint64) { hours++ }
	e.Step()

	if hours != 1 {
		t.Errorf("hour boundary after restore not hit, hours = %d", hours)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

const validScenario = `
[sim]
seed = 42
tick_interval = "250ms"
api_port = 8080

[[actor]]
name = "Crusoe"

  [[actor.goal]]
  name = "hunger"
  units_required = 2
  items = ["berries", "fish"]

  [[actor.goal]]
  name = "warmth"
  units_required = 1
  recurring = true
  recur_ticks = 120
  items = ["firewood"]
`

func TestLoadValidScenario(t *testing.T) {
	cfg, err := Load(writeScenario(t, validScenario))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Sim.Seed != 42 {
		t.Errorf("seed = %d", cfg.Sim.Seed)
	}
	if cfg.Sim.TickInterval.Duration != 250*time.Millisecond {
		t.Errorf("tick_interval = %v", cfg.Sim.TickInterval.Duration)
	}
	if cfg.Sim.DBPath == "" {
		t.Error("db_path default not applied")
	}

	if len(cfg.Actors) != 1 {
		t.Fatalf("expected 1 actor, got %d", len(cfg.Actors))
	}
	a := cfg.Actors[0]
	if len(a.Goals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(a.Goals))
	}
	// Listing order is the hierarchy.
	if a.Goals[0].Name != "hunger" || a.Goals[1].Name != "warmth" {
		t.Errorf("goal order = %q, %q", a.Goals[0].Name, a.Goals[1].Name)
	}
	if !a.Goals[1].Recurring || a.Goals[1].RecurTicks != 120 {
		t.Errorf("warmth recurrence not parsed: %+v", a.Goals[1])
	}
}

func TestLoadRejectsBadScenarios(t *testing.T) {
	cases := map[string]string{
		"no actors": `[sim]` + "\n" + `seed = 1`,
		"empty actor name": `
[[actor]]
name = ""
`,
		"duplicate actor": `
[[actor]]
name = "A"
[[actor]]
name = "A"
`,
		"zero units": `
[[actor]]
name = "A"
  [[actor.goal]]
  name = "g"
  units_required = 0
`,
		"recurring without interval": `
[[actor]]
name = "A"
  [[actor.goal]]
  name = "g"
  units_required = 1
  recurring = true
`,
	}

	for name, body := range cases {
		if _, err := Load(writeScenario(t, body)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

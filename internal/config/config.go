// Package config loads simulation scenarios from TOML files.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is a full scenario: simulation settings plus the actors, each with
// an ordered goal hierarchy and the items able to satisfy each goal.
type Config struct {
	Sim    SimConfig     `toml:"sim"`
	Actors []ActorConfig `toml:"actor"`
}

// SimConfig contains engine and harness settings.
type SimConfig struct {
	// Seed drives the demand field. Same seed, same demand history.
	Seed int64 `toml:"seed"`

	// DBPath is where the SQLite state database lives.
	DBPath string `toml:"db_path"`

	// TickInterval is the real-time duration of one tick.
	TickInterval Duration `toml:"tick_interval"`

	// APIPort serves the read-only HTTP API. 0 disables it.
	APIPort int `toml:"api_port"`
}

// ActorConfig declares one actor. Goal listing order is the actor's value
// hierarchy: the first goal is the most preferred end.
type ActorConfig struct {
	Name  string       `toml:"name"`
	Goals []GoalConfig `toml:"goal"`
}

// GoalConfig declares one goal and the items that can satisfy it.
type GoalConfig struct {
	Name          string   `toml:"name"`
	UnitsRequired int      `toml:"units_required"`
	Recurring     bool     `toml:"recurring"`
	RecurTicks    uint64   `toml:"recur_ticks"` // Ticks before a satisfied recurring goal comes due again
	Items         []string `toml:"items"`
}

// Duration is a wrapper for time.Duration that supports TOML unmarshaling.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for Duration.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// Load reads and validates a scenario file.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Sim.DBPath == "" {
		c.Sim.DBPath = "data/praxis.db"
	}
	if c.Sim.TickInterval.Duration == 0 {
		c.Sim.TickInterval.Duration = time.Second
	}
}

func (c *Config) validate() error {
	if len(c.Actors) == 0 {
		return fmt.Errorf("scenario declares no actors")
	}
	seen := make(map[string]bool, len(c.Actors))
	for _, a := range c.Actors {
		if a.Name == "" {
			return fmt.Errorf("actor with empty name")
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate actor %q", a.Name)
		}
		seen[a.Name] = true

		for _, g := range a.Goals {
			if g.Name == "" {
				return fmt.Errorf("actor %q: goal with empty name", a.Name)
			}
			if g.UnitsRequired <= 0 {
				return fmt.Errorf("actor %q, goal %q: units_required must be positive", a.Name, g.Name)
			}
			if g.Recurring && g.RecurTicks == 0 {
				return fmt.Errorf("actor %q, goal %q: recurring goals need recur_ticks", a.Name, g.Name)
			}
		}
	}
	return nil
}

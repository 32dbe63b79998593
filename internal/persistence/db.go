// Package persistence provides SQLite-based simulation state storage.
package persistence

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/praxis/internal/actors"
	"github.com/talgya/praxis/internal/economy"
	"github.com/talgya/praxis/internal/engine"
)

// DB wraps a SQLite connection for simulation state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS actors (
		name TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS goal_records (
		actor TEXT NOT NULL,
		id TEXT NOT NULL,
		goal TEXT NOT NULL,
		units_required INTEGER NOT NULL,
		units INTEGER NOT NULL,
		recurring INTEGER NOT NULL,
		time_required INTEGER NOT NULL,
		time INTEGER NOT NULL,
		rank INTEGER NOT NULL,
		PRIMARY KEY (actor, id)
	);

	CREATE TABLE IF NOT EXISTS hierarchy (
		actor TEXT NOT NULL,
		goal TEXT NOT NULL,
		rank INTEGER NOT NULL,
		PRIMARY KEY (actor, goal)
	);

	CREATE TABLE IF NOT EXISTS satisfactions (
		actor TEXT NOT NULL,
		goal TEXT NOT NULL,
		item TEXT NOT NULL,
		position INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS dormant_goals (
		actor TEXT NOT NULL,
		goal TEXT NOT NULL,
		units_required INTEGER NOT NULL,
		time_required INTEGER NOT NULL,
		rank INTEGER NOT NULL,
		elapsed INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		actor TEXT NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sim_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_tick ON events(tick);
	CREATE INDEX IF NOT EXISTS idx_satisfactions_actor ON satisfactions(actor);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// HasState reports whether a previous simulation saved any actors.
func (db *DB) HasState() bool {
	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM actors"); err != nil {
		return false
	}
	return count > 0
}

// SaveActors writes all actor state to the database (full replace): the
// queued goal records with their progress and insertion ranks, the live
// hierarchy, the satisfaction index, and dormant periodic goals.
func (db *DB) SaveActors(states []*engine.ActorState) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"actors", "goal_records", "hierarchy", "satisfactions", "dormant_goals"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	for _, state := range states {
		a := state.Actor
		if _, err := tx.Exec("INSERT INTO actors (name) VALUES (?)", a.Name); err != nil {
			return fmt.Errorf("insert actor %s: %w", a.Name, err)
		}

		if err := saveRecords(tx, a); err != nil {
			return fmt.Errorf("save records for %s: %w", a.Name, err)
		}
		if err := saveHierarchy(tx, a); err != nil {
			return fmt.Errorf("save hierarchy for %s: %w", a.Name, err)
		}
		if err := saveSatisfactions(tx, a); err != nil {
			return fmt.Errorf("save satisfactions for %s: %w", a.Name, err)
		}

		for _, d := range state.Dormant {
			_, err := tx.Exec(`INSERT INTO dormant_goals
				(actor, goal, units_required, time_required, rank, elapsed)
				VALUES (?, ?, ?, ?, ?, ?)`,
				a.Name, string(d.Goal), d.UnitsRequired, d.TimeRequired, d.Rank, d.Elapsed)
			if err != nil {
				return fmt.Errorf("save dormant goals for %s: %w", a.Name, err)
			}
		}
	}

	return tx.Commit()
}

// saveRecords persists every distinct record reachable from the actor's
// queues or recurrence cache, with the rank its queue entry was bound to.
func saveRecords(tx *sqlx.Tx, a *actors.Actor) error {
	type ranked struct {
		rec  *actors.GoalRecord
		rank int
	}
	seen := make(map[uuid.UUID]ranked)
	for _, q := range a.Preferences {
		for _, e := range q.Entries() {
			if _, ok := seen[e.Record.ID]; !ok {
				seen[e.Record.ID] = ranked{rec: e.Record, rank: e.Rank()}
			}
		}
	}
	for _, rec := range a.RecurrenceCache() {
		if _, ok := seen[rec.ID]; !ok {
			seen[rec.ID] = ranked{rec: rec, rank: a.Hierarchy[rec.Goal]}
		}
	}

	for _, r := range seen {
		recurring := 0
		if r.rec.Recurring {
			recurring = 1
		}
		_, err := tx.Exec(`INSERT INTO goal_records
			(actor, id, goal, units_required, units, recurring, time_required, time, rank)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.Name, r.rec.ID.String(), string(r.rec.Goal),
			r.rec.UnitsRequired, r.rec.Units, recurring,
			r.rec.TimeRequired, r.rec.Time, r.rank)
		if err != nil {
			return err
		}
	}
	return nil
}

func saveHierarchy(tx *sqlx.Tx, a *actors.Actor) error {
	for goal, rank := range a.Hierarchy {
		if _, err := tx.Exec(
			"INSERT INTO hierarchy (actor, goal, rank) VALUES (?, ?, ?)",
			a.Name, string(goal), rank); err != nil {
			return err
		}
	}
	return nil
}

func saveSatisfactions(tx *sqlx.Tx, a *actors.Actor) error {
	for _, goal := range a.Satisfiable() {
		for pos, item := range a.Satisfactions(goal) {
			if _, err := tx.Exec(
				"INSERT INTO satisfactions (actor, goal, item, position) VALUES (?, ?, ?, ?)",
				a.Name, string(goal), string(item), pos); err != nil {
				return err
			}
		}
	}
	return nil
}

// recordRow mirrors the goal_records table.
type recordRow struct {
	Actor         string `db:"actor"`
	ID            string `db:"id"`
	Goal          string `db:"goal"`
	UnitsRequired int    `db:"units_required"`
	Units         int    `db:"units"`
	Recurring     int    `db:"recurring"`
	TimeRequired  uint64 `db:"time_required"`
	Time          uint64 `db:"time"`
	Rank          int    `db:"rank"`
}

// LoadActors rebuilds actor states from a previous save. Item lists on the
// returned states are left empty; the scenario config supplies them.
func (db *DB) LoadActors() ([]*engine.ActorState, error) {
	var names []string
	if err := db.conn.Select(&names, "SELECT name FROM actors ORDER BY name"); err != nil {
		return nil, fmt.Errorf("load actors: %w", err)
	}

	var states []*engine.ActorState
	for _, name := range names {
		state, err := db.loadActor(name)
		if err != nil {
			return nil, fmt.Errorf("load actor %s: %w", name, err)
		}
		states = append(states, state)
	}
	return states, nil
}

func (db *DB) loadActor(name string) (*engine.ActorState, error) {
	// Satisfaction index first, so Add can route records into queues.
	type satRow struct {
		Goal     string `db:"goal"`
		Item     string `db:"item"`
		Position int    `db:"position"`
	}
	var sats []satRow
	err := db.conn.Select(&sats,
		"SELECT goal, item, position FROM satisfactions WHERE actor = ? ORDER BY goal, position", name)
	if err != nil {
		return nil, err
	}

	a := actors.NewActor(name, nil, nil)
	for _, s := range sats {
		a.RegisterSatisfaction(economy.Goal(s.Goal), economy.Item(s.Item))
	}

	var rows []recordRow
	err = db.conn.Select(&rows,
		"SELECT actor, id, goal, units_required, units, recurring, time_required, time, rank FROM goal_records WHERE actor = ?", name)
	if err != nil {
		return nil, err
	}
	// Most preferred first, so queue contents rebuild in a stable order.
	sort.Slice(rows, func(i, j int) bool { return rows[i].Rank < rows[j].Rank })

	for _, r := range rows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("record id %q: %w", r.ID, err)
		}
		rec := &actors.GoalRecord{
			Goal:          economy.Goal(r.Goal),
			UnitsRequired: r.UnitsRequired,
			Units:         r.Units,
			ID:            id,
			Recurring:     r.Recurring != 0,
			TimeRequired:  r.TimeRequired,
			Time:          r.Time,
		}
		a.Add(rec, r.Rank)
	}

	// Hierarchy rows win over whatever Add left behind: they carry the
	// live ranks, including goals with no queued records.
	type hierRow struct {
		Goal string `db:"goal"`
		Rank int    `db:"rank"`
	}
	var hier []hierRow
	if err := db.conn.Select(&hier, "SELECT goal, rank FROM hierarchy WHERE actor = ?", name); err != nil {
		return nil, err
	}
	for _, h := range hier {
		a.Hierarchy[economy.Goal(h.Goal)] = h.Rank
	}

	state := &engine.ActorState{Actor: a}
	var dormant []*engine.DormantGoal
	type dormRow struct {
		Goal          string `db:"goal"`
		UnitsRequired int    `db:"units_required"`
		TimeRequired  uint64 `db:"time_required"`
		Rank          int    `db:"rank"`
		Elapsed       uint64 `db:"elapsed"`
	}
	var dorm []dormRow
	if err := db.conn.Select(&dorm, "SELECT goal, units_required, time_required, rank, elapsed FROM dormant_goals WHERE actor = ?", name); err != nil {
		return nil, err
	}
	for _, d := range dorm {
		dormant = append(dormant, &engine.DormantGoal{
			Goal:          economy.Goal(d.Goal),
			UnitsRequired: d.UnitsRequired,
			TimeRequired:  d.TimeRequired,
			Rank:          d.Rank,
			Elapsed:       d.Elapsed,
		})
	}
	state.Dormant = dormant
	return state, nil
}

// SaveEvents appends events to the database.
func (db *DB) SaveEvents(events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (tick, actor, description, category) VALUES (?, ?, ?, ?)",
			e.Tick, e.Actor, e.Description, e.Category,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentEvents returns the most recent N events.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT tick, actor, description, category FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}

// SaveMeta stores a key-value pair in simulation metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO sim_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM sim_meta WHERE key = ?", key)
	return value, err
}

// SaveState performs a full save: actors, pending events, tick metadata.
// The simulation's event buffer is drained on success.
func (db *DB) SaveState(sim *engine.Simulation) error {
	slog.Info("saving state", "actors", len(sim.Actors), "events", len(sim.Events))

	if err := db.SaveActors(sim.Actors); err != nil {
		return fmt.Errorf("save actors: %w", err)
	}
	if err := db.SaveEvents(sim.Events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	sim.Events = sim.Events[:0]
	if err := db.SaveMeta("last_tick", fmt.Sprintf("%d", sim.CurrentTick())); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	return nil
}

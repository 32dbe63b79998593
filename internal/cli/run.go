package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/talgya/praxis/internal/api"
	"github.com/talgya/praxis/internal/config"
	"github.com/talgya/praxis/internal/economy"
	"github.com/talgya/praxis/internal/engine"
	"github.com/talgya/praxis/internal/persistence"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation described by the scenario file",
	Run: func(cmd *cobra.Command, args []string) {
		runSimulation()
	},
}

func init() {
	RootCmd.AddCommand(runCmd)
}

func runSimulation() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load scenario", err)
	}

	os.MkdirAll(filepath.Dir(cfg.Sim.DBPath), 0755)
	db, err := persistence.Open(cfg.Sim.DBPath)
	if err != nil {
		exitErr("open database", err)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.Sim.DBPath)

	// ── Load or Build Actors ─────────────────────────────────────────
	var states []*engine.ActorState
	var startTick uint64

	if db.HasState() {
		slog.Info("found saved state, loading...")
		states, err = db.LoadActors()
		if err != nil {
			exitErr("load actors", err)
		}

		// Item lists are scenario-owned; re-attach them by actor name.
		itemsByName := make(map[string][]economy.Item, len(cfg.Actors))
		for _, ac := range cfg.Actors {
			itemsByName[ac.Name] = scenarioItems(ac)
		}
		for _, state := range states {
			state.Items = itemsByName[state.Actor.Name]
		}

		if tickStr, err := db.GetMeta("last_tick"); err == nil {
			if t, err := strconv.ParseUint(tickStr, 10, 64); err == nil {
				startTick = t
			}
		}
		slog.Info("state restored", "actors", len(states), "tick", startTick, "sim_time", engine.SimTime(startTick))
	} else {
		slog.Info("no saved state, building actors from scenario...")
		for _, ac := range cfg.Actors {
			state := buildState(ac)
			states = append(states, state)
			slog.Info("actor ready",
				"name", ac.Name,
				"goals", len(ac.Goals),
				"items", len(state.Items),
			)
		}
	}

	// ── Simulation ───────────────────────────────────────────────────
	demand := economy.NewDemandField(cfg.Sim.Seed)
	sim := engine.NewSimulation(states, demand)
	sim.LastTick = startTick

	eng := engine.NewEngine()
	eng.Tick = startTick
	eng.Interval = cfg.Sim.TickInterval.Duration

	eng.OnTick = sim.TickMinute
	eng.OnDay = func(tick uint64) {
		sim.TickDay(tick)
		// Auto-save daily.
		if err := db.SaveState(sim); err != nil {
			slog.Error("daily save failed", "error", err)
		}
	}

	// Save on fresh start only (restored state is already saved).
	if startTick == 0 {
		if err := db.SaveState(sim); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	// ── HTTP API ─────────────────────────────────────────────────────
	if cfg.Sim.APIPort > 0 {
		apiServer := &api.Server{Sim: sim, Eng: eng, DB: db, Port: cfg.Sim.APIPort}
		apiServer.Start()
	}

	// ── Start ────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	eng.Run()

	// Final save on shutdown.
	if err := db.SaveState(sim); err != nil {
		slog.Error("final save failed", "error", err)
	}
	slog.Info("simulation stopped, state saved", "tick", eng.Tick)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talgya/praxis/internal/config"
	"github.com/talgya/praxis/internal/engine"
	"github.com/talgya/praxis/internal/persistence"
)

var eventsLimit int

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent simulation events from the state database",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			exitErr("load scenario", err)
		}

		db, err := persistence.Open(cfg.Sim.DBPath)
		if err != nil {
			exitErr("open database", err)
		}
		defer db.Close()

		events, err := db.RecentEvents(eventsLimit)
		if err != nil {
			exitErr("query events", err)
		}

		for _, e := range events {
			fmt.Printf("%-16s tick %-8d [%s] %s\n", engine.SimTime(e.Tick), e.Tick, e.Category, e.Description)
		}
	},
}

func init() {
	eventsCmd.Flags().IntVarP(&eventsLimit, "limit", "n", 25, "Maximum events to show")
	RootCmd.AddCommand(eventsCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talgya/praxis/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a scenario file and summarize it",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			exitErr("invalid scenario", err)
		}

		fmt.Printf("%s: ok (%d actors)\n", configPath, len(cfg.Actors))
		for _, ac := range cfg.Actors {
			fmt.Printf("  %s: %d goals, %d items\n", ac.Name, len(ac.Goals), len(scenarioItems(ac)))
			for rank, g := range ac.Goals {
				kind := "one-shot"
				if g.Recurring {
					kind = fmt.Sprintf("recurring every %d ticks", g.RecurTicks)
				}
				fmt.Printf("    %d. %s — %d units, %s, items %v\n", rank, g.Name, g.UnitsRequired, kind, g.Items)
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}

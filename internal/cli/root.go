// Package cli implements the econsim CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "econsim",
	Short: "Economic actor simulation",
	Long:  "Runs a simulation of economic actors applying their means (items) toward their ranked ends (goals). Scenario-driven, SQLite-backed.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "scenario.toml", "Scenario file")
}

// Execute runs the CLI.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

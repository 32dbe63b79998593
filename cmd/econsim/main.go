// Command econsim runs the scenario-driven economic actor simulation.
package main

import (
	"github.com/talgya/praxis/internal/cli"
)

func main() {
	cli.Execute()
}

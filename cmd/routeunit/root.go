// Package main provides the command-line interface for routeunit.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "routeunit",
	Short: "Routeunit drives routing-decision experiments on mesh networks.",
	Long: `Routeunit builds a mesh of routing units and replays packets through ` +
		`them hop by hop, recording every routing decision. It supports ` +
		`table-based, dimension-order, and adaptive shortcut-overlay routing.`,
}

func init() {
	// Runs before the subcommands read their environment-backed defaults.
	// Missing .env files are fine; flags keep their built-in defaults.
	_ = godotenv.Load()
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

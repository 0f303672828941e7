// Maestro — multi-agent AI orchestration streaming simulator.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "maestro",
	Short: "Maestro — multi-agent AI orchestration streaming simulator.",
	Long: `Maestro simulates a multi-agent AI orchestration: a conductor classifies an
engineering problem, routes it to specialist personas, and synthesizes their
responses. The run is served as an ordered, typed event stream over SSE or
WebSocket, consumable by the bundled CLI client.`,
	RunE:          runServe, // Default to serve mode.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, askCmd, versionCmd)
	_ = godotenv.Load()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

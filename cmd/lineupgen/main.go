// Package main provides the lineupgen command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lineupgen",
	Short: "Randomized DFS lineup generator with liked-player exposure targets",
	Long: "lineupgen samples distinct, salary-valid daily fantasy lineups from a player pool, " +
		"biasing selection towards liked players and capping how many lineups each one appears in.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

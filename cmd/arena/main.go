// arena runs the paddle arena simulation headlessly from the command line.
//
// Usage:
//
//	arena run                - Simulate a session and record its summary
//	arena runs               - Show recorded runs
//	arena config             - Print the effective configuration
//	arena inputs             - List available input drivers
//
// Global flags:
//
//	--tps <rate>         - Set tick rate (default: from config, 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.arena/runs.db)
//	--config <path>      - Use a specific YAML or TOML config file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagTPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Paddle Arena - a headless paddle-and-ball simulation",
	Long: `Paddle Arena simulates a walled arena with one paddle on the left wall
and a ball, at a fixed tick rate, driven by a scripted or automatic input.

Available commands:
  run      - Simulate a session and record its summary
  runs     - Show recorded runs and per-driver statistics
  config   - Print the effective configuration
  inputs   - List available input drivers

Examples:
  arena run --input autopilot --ticks 36000
  arena run --input script --script ./serve-and-climb.yaml --seed 42
  arena run --realtime --duration 30s --log-level debug
  arena runs --stats
  arena config --format toml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagTPS, "tps", 0, "Tick rate (ticks per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arena/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to arena config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(inputsCmd)
}

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/paddle-arena/internal/storage"
)

var (
	flagRunsDriver string
	flagRunsLimit  int
	flagRunsStats  bool
	flagRunsSeed   int64
	flagRunsClear  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded runs",
	Long: `Display the most recent recorded runs, or per-driver statistics.

Runs that share a seed, driver, difficulty and tick count should also share a
final hash; --run-seed lists every run of one seed so that can be checked.

Examples:
  arena runs
  arena runs --driver autopilot --limit 5
  arena runs --run-seed 42
  arena runs --stats`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&flagRunsDriver, "driver", "", "Only show runs of this input driver")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsStats, "stats", false, "Show per-driver statistics instead")
	runsCmd.Flags().Int64Var(&flagRunsSeed, "run-seed", 0, "Show all runs recorded with this seed")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete all recorded runs")
}

func runRuns(cmd *cobra.Command, args []string) error {
	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open runs database: %w", err)
	}
	defer store.Close()

	switch {
	case flagRunsClear:
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("All runs deleted.")
		return nil
	case flagRunsStats:
		return printDriverStats(store)
	}

	var runs []storage.RunRecord
	if cmd.Flags().Changed("run-seed") {
		runs, err = store.RunsBySeed(flagRunsSeed)
	} else {
		runs, err = store.RecentRuns(flagRunsDriver, flagRunsLimit)
	}
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'arena run' to record the first one.")
		return nil
	}

	// Print header
	fmt.Printf("  %-5s  %-10s  %-6s  %-20s  %-8s  %-5s  %-6s  %-16s  %s\n",
		"ID", "Driver", "Diff", "Seed", "Ticks", "Hits", "Misses", "Hash", "Date")
	fmt.Printf("  %-5s  %-10s  %-6s  %-20s  %-8s  %-5s  %-6s  %-16s  %s\n",
		"--", "------", "----", "----", "-----", "----", "------", "----", "----")

	// Print runs
	for _, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-5d  %-10s  %-6s  %-20d  %-8d  %-5d  %-6d  %016x  %s\n",
			r.ID, r.Driver, r.Preset, r.Seed, r.Ticks, r.PaddleHits, r.Misses, r.FinalHash, dateStr)
	}
	return nil
}

func printDriverStats(store *storage.Store) error {
	stats, err := store.AllDriverStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	drivers := make([]string, 0, len(stats))
	for d := range stats {
		drivers = append(drivers, d)
	}
	sort.Strings(drivers)

	fmt.Printf("  %-10s  %-5s  %-10s  %-6s  %-6s  %-7s  %s\n", "Driver", "Runs", "Ticks", "Hits", "Misses", "Ratio", "Last run")
	fmt.Printf("  %-10s  %-5s  %-10s  %-6s  %-6s  %-7s  %s\n", "------", "----", "-----", "----", "------", "-----", "--------")
	for _, d := range drivers {
		s := stats[d]
		fmt.Printf("  %-10s  %-5d  %-10d  %-6d  %-6d  %-7s  %s\n",
			s.Driver, s.Runs, s.TotalTicks, s.PaddleHits, s.Misses,
			fmt.Sprintf("%.1f%%", s.HitRatio()*100),
			s.LastRun.Format("2006-01-02 15:04"))
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/paddle-arena/internal/config"
	"github.com/vovakirdan/paddle-arena/internal/host"
	"github.com/vovakirdan/paddle-arena/internal/input"
	"github.com/vovakirdan/paddle-arena/internal/storage"
)

var (
	flagInput      string
	flagScript     string
	flagDeadZone   float64
	flagTicks      uint64
	flagRealtime   bool
	flagDuration   time.Duration
	flagNoSave     bool
	flagProfile    string
	flagProfileDir string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a session",
	Long: `Run the simulation with the chosen input driver and record a summary.

By default the run is as fast as possible for --ticks steps, which makes it
fully reproducible for a given --seed. With --realtime the simulation is paced
by the wall clock at the tick rate and transforms are logged periodically.

Input drivers (see 'arena inputs'):
  idle       - Never moves the paddle
  script     - Replays a YAML script of key holds (--script)
  autopilot  - Follows the ball while it approaches

Examples:
  arena run --input autopilot --ticks 36000 --seed 7
  arena run --input script --script configs/scripts/climb.yaml
  arena run --realtime --duration 1m --difficulty hard
  arena run --profile cpu --profile-dir ./prof`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagInput, "input", "autopilot", "Input driver: idle, script, autopilot")
	runCmd.Flags().StringVar(&flagScript, "script", "", "Path to input script YAML (script driver)")
	runCmd.Flags().Float64Var(&flagDeadZone, "dead-zone", 0, "Autopilot dead zone in arena units (0 = default)")
	runCmd.Flags().Uint64Var(&flagTicks, "ticks", 3600, "Number of ticks to simulate (script driver defaults to script length)")
	runCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace the simulation by the wall clock")
	runCmd.Flags().DurationVar(&flagDuration, "duration", 0, "Realtime run length (0 = until interrupted)")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run in the database")
	runCmd.Flags().StringVar(&flagProfile, "profile", "", "Profile the run: cpu, mem, trace")
	runCmd.Flags().StringVar(&flagProfileDir, "profile-dir", ".", "Directory for profile output")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr, flagLogLevel)
	if err != nil {
		return err
	}

	cfg, preset, err := effectiveConfig(logger)
	if err != nil {
		return err
	}

	driver, err := input.Create(flagInput, input.Options{ScriptPath: flagScript, DeadZone: flagDeadZone})
	if err != nil {
		if errors.Is(err, input.ErrUnknownDriver) {
			return fmt.Errorf("%w (run 'arena inputs' to see available drivers)", err)
		}
		return err
	}

	ticks := flagTicks
	if s, ok := driver.(*input.Script); ok && !cmd.Flags().Changed("ticks") && s.Len() > 0 {
		ticks = s.Len()
	}

	// Use time-based seed if not specified
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := host.Options{
		Preset:       string(preset),
		ServeDelay:   cfg.Host.ServeDelay,
		MaxCatchUp:   cfg.Host.MaxCatchUp,
		ObserveEvery: cfg.Host.ObserveEvery,
		Logger:       logger,
	}

	// Open run storage, continue without it on failure
	if !flagNoSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open runs database", "error", err)
		} else {
			defer store.Close()
			opts.Saver = store
		}
	}

	if flagProfile != "" {
		mode, err := profileMode(flagProfile)
		if err != nil {
			return err
		}
		defer profile.Start(mode, profile.ProfilePath(flagProfileDir), profile.NoShutdownHook, profile.Quiet).Stop()
		logger.Info("profiling", "mode", flagProfile, "dir", flagProfileDir)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := host.New(cfg.Settings(), cfg.Runtime(seed), driver, opts)

	var sum host.Summary
	if flagRealtime {
		sum, err = runner.RunRealtime(ctx, flagDuration)
	} else {
		sum, err = runner.Run(ctx, ticks)
	}
	if errors.Is(err, context.Canceled) {
		logger.Warn("interrupted", "tick", sum.Ticks)
	} else if err != nil {
		return err
	}

	printSummary(sum)
	return nil
}

// effectiveConfig loads the config and applies the difficulty and tick rate flags.
func effectiveConfig(logger *log.Logger) (config.Config, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Config{}, "", err
	}

	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return cfg, preset, err
	}
	logger.Debug("config loaded", "source", source, "difficulty", preset)

	config.ApplyPreset(&cfg, preset)
	if flagTPS > 0 {
		cfg.Host.TickRate = flagTPS
	}
	if err := cfg.Validate(); err != nil {
		return cfg, preset, err
	}
	return cfg, preset, nil
}

func profileMode(name string) (func(*profile.Profile), error) {
	switch name {
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfileAllocs, nil
	case "trace":
		return profile.TraceProfile, nil
	default:
		return nil, fmt.Errorf("unknown profile mode %q (want cpu, mem or trace)", name)
	}
}

func printSummary(sum host.Summary) {
	mode := "fixed-step"
	if sum.Realtime {
		mode = "realtime"
	}

	fmt.Printf("Run summary (%s)\n", mode)
	fmt.Println()
	fmt.Printf("  %-12s  %s\n", "Driver", sum.Driver)
	fmt.Printf("  %-12s  %s\n", "Difficulty", sum.Preset)
	fmt.Printf("  %-12s  %d\n", "Seed", sum.Seed)
	fmt.Printf("  %-12s  %d (%s simulated at %d tps)\n", "Ticks", sum.Ticks, sum.SimulatedTime(), sum.TickRate)
	if sum.Dropped > 0 {
		fmt.Printf("  %-12s  %d\n", "Dropped", sum.Dropped)
	}
	fmt.Printf("  %-12s  %d\n", "Paddle hits", sum.Counters.PaddleHits)
	fmt.Printf("  %-12s  %d\n", "Wall hits", sum.Counters.WallHits)
	fmt.Printf("  %-12s  %d\n", "Misses", sum.Counters.Misses)
	fmt.Printf("  %-12s  %d\n", "Serves", sum.Counters.Serves)
	fmt.Printf("  %-12s  %016x\n", "Final hash", sum.FinalHash)
	fmt.Printf("  %-12s  %s\n", "Wall time", sum.Elapsed.Round(time.Millisecond))

	fmt.Println()
	fmt.Printf("Replay with: arena run --input %s --seed %d --ticks %d\n", sum.Driver, sum.Seed, sum.Ticks)
}

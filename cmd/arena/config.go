package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/paddle-arena/internal/config"
)

var (
	flagConfigFormat   string
	flagConfigDefaults bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration 'arena run' would use, after applying the
--config file, --difficulty preset and --tps override.

Config files are searched in this order:
  --config <path>
  ~/.arena/arena.yaml, ~/.arena/arena.toml
  ./configs/arena.yaml, ./configs/arena.toml
  built-in defaults

Examples:
  arena config
  arena config --difficulty hard
  arena config --format toml > ~/.arena/arena.toml
  arena config --defaults`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigFormat, "format", "yaml", "Output format: yaml or toml")
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in default file unchanged")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if flagConfigDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	format, err := config.ParseFormat(flagConfigFormat)
	if err != nil {
		return err
	}

	logger, err := newLogger(os.Stderr, flagLogLevel)
	if err != nil {
		return err
	}

	cfg, _, err := effectiveConfig(logger)
	if err != nil {
		return err
	}

	if err := config.Encode(os.Stdout, cfg, format); err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	return nil
}

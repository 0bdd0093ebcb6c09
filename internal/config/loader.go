package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// SourceEmbedded is reported by Load when no file was found.
const SourceEmbedded = "embedded"

// FormatFor returns the format implied by a file extension. Anything that is
// not .toml is read as YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// ParseFormat parses a format name given on the command line.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatTOML:
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown config format %q (want yaml or toml)", name)
	}
}

// Load loads the arena configuration and reports where it came from.
// Search order: customPath -> ~/.arena/arena.{yaml,toml} -> ./configs/arena.{yaml,toml} -> embedded default
//
// Values missing from a file keep their defaults. A custom path that cannot
// be read or parsed is an error; broken files found by the search are skipped.
func Load(customPath string) (Config, string, error) {
	return load(customPath, searchPaths())
}

func load(customPath string, candidates []string) (Config, string, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, customPath, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := decode(data, FormatFor(customPath), &cfg); err != nil {
			return cfg, customPath, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, cfg.Validate()
	}

	// Try user and local configs directories
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fileCfg := DefaultConfig()
		if err := decode(data, FormatFor(path), &fileCfg); err == nil {
			return fileCfg, path, fileCfg.Validate()
		}
	}

	// Use embedded default YAML
	if err := decode(defaultArenaYAML, FormatYAML, &cfg); err != nil {
		return DefaultConfig(), SourceEmbedded, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, cfg.Validate()
}

// searchPaths returns the config files Load looks for, in order.
func searchPaths() []string {
	var paths []string
	if dir := userConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "arena.yaml"), filepath.Join(dir, "arena.toml"))
	}
	return append(paths, filepath.Join("configs", "arena.yaml"), filepath.Join("configs", "arena.toml"))
}

// userConfigDir returns ~/.arena, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arena")
}

func decode(data []byte, format Format, cfg *Config) error {
	if format == FormatTOML {
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown key %q", undecoded[0].String())
		}
		return nil
	}
	return yaml.Unmarshal(data, cfg)
}

// Encode writes cfg to w in the given format.
func Encode(w io.Writer, cfg Config, format Format) error {
	if format == FormatTOML {
		return toml.NewEncoder(w).Encode(cfg)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

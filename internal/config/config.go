// Package config loads user configuration from ~/.config/deckgen/config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Environment variable fallbacks, applied when the config file leaves a
// field empty.
const (
	EnvOutputDir = "DECKGEN_OUTPUT_DIR"
	EnvModel     = "DECKGEN_MODEL"
)

// Config holds user configuration.
//
// OrphanLookback and StrictFences tune the diagram-block normalizer; zero
// values mean "use the normalizer defaults".
type Config struct {
	OutputDir      string `toml:"output_dir"`
	Model          string `toml:"model"`
	OrphanLookback int    `toml:"orphan_lookback"`
	StrictFences   bool   `toml:"strict_fences"`
}

// dir returns the configuration directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/deckgen.
func dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "deckgen"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "deckgen"), nil
}

// path returns the full path to the config file.
func path() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config.toml"), nil
}

// Load reads the configuration file and environment variables.
// Precedence: config file values, then environment variable fallbacks.
// Returns an empty Config if the file doesn't exist (not an error).
func Load() (Config, error) {
	var cfg Config

	p, err := path()
	if err != nil {
		return cfg, err
	}

	if _, err := toml.DecodeFile(p, &cfg); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	// Environment variable fallbacks (only if not set in config).
	if cfg.OutputDir == "" {
		cfg.OutputDir = os.Getenv(EnvOutputDir)
	}
	if cfg.Model == "" {
		cfg.Model = os.Getenv(EnvModel)
	}

	return cfg, nil
}

// Save writes the whole config back to the config file.
// Creates the config directory if it doesn't exist.
func Save(cfg Config) error {
	p, err := path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil { // #nosec G301 -- user config dir
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	// #nosec G302 G304 -- config file with standard permissions, path from home dir
	f, err := os.OpenFile(p, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(p string) string {
	if strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, p[2:])
	}
	return p
}

// ValidOutputDir checks if a directory path is valid for use as an output
// directory, creating it if necessary. Returns nil if valid.
func ValidOutputDir(d string) error {
	if d == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	d = ExpandPath(d)

	info, err := os.Stat(d)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(d, 0750); err != nil { // #nosec G301 -- user output dir
				return fmt.Errorf("cannot create directory: %w", err)
			}
			return nil
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", d)
	}
	return nil
}

// Dir returns the configuration directory path (exported for testing).
func Dir() (string, error) {
	return dir()
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alnah/go-deckgen/internal/config"
)

// Config keys accepted by `deckgen config set`.
const (
	keyOutputDir      = "output-dir"
	keyModel          = "model"
	keyOrphanLookback = "orphan-lookback"
	keyStrictFences   = "strict-fences"
)

// ConfigCmd creates the config command with subcommands.
func ConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage persistent configuration settings.

Configuration is stored in ~/.config/deckgen/config.toml.
Settings can also be overridden via environment variables.

Supported settings:
  output-dir       Default directory for session output (env: DECKGEN_OUTPUT_DIR)
  model            Default model for generation calls (env: DECKGEN_MODEL)
  orphan-lookback  Look-back window for stray fence cleanup (lines)
  strict-fences    Strip stray fences inside unterminated diagram blocks`,
		Example: `  deckgen config set output-dir ~/Documents/decks
  deckgen config set model gpt-4o
  deckgen config get model
  deckgen config list`,
	}

	cmd.AddCommand(configSetCmd(env))
	cmd.AddCommand(configGetCmd(env))
	cmd.AddCommand(configListCmd(env))

	return cmd
}

// configSetCmd creates the "config set" subcommand.
func configSetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Example: `  deckgen config set output-dir ~/Documents/decks
  deckgen config set strict-fences true`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(env, args[0], args[1])
		},
	}
}

// configGetCmd creates the "config get" subcommand.
func configGetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a single configuration value",
		Long: `Get a single effective configuration value.

The value reflects the config file with environment variable fallbacks
applied, exactly as the generate command would see it.`,
		Example: `  deckgen config get output-dir
  deckgen config get strict-fences`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd, env, args[0])
		},
	}
}

// configListCmd creates the "config list" subcommand.
func configListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List effective configuration values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigList(cmd, env)
		},
	}
}

// runConfigSet validates and persists a single setting.
func runConfigSet(env *Env, key, value string) error {
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		return err
	}

	switch key {
	case keyOutputDir:
		if err := config.ValidOutputDir(value); err != nil {
			return err
		}
		cfg.OutputDir = value
	case keyModel:
		cfg.Model = value
	case keyOrphanLookback:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("orphan-lookback must be a non-negative integer, got %q", value)
		}
		cfg.OrphanLookback = n
	case keyStrictFences:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("strict-fences must be true or false, got %q", value)
		}
		cfg.StrictFences = b
	default:
		return fmt.Errorf("unknown config key %q (valid: %s, %s, %s, %s)",
			key, keyOutputDir, keyModel, keyOrphanLookback, keyStrictFences)
	}

	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintf(env.Stderr, "Set %s = %s\n", key, value)
	return nil
}

// runConfigGet prints one effective configuration value.
func runConfigGet(cmd *cobra.Command, env *Env, key string) error {
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch key {
	case keyOutputDir:
		fmt.Fprintln(out, cfg.OutputDir)
	case keyModel:
		fmt.Fprintln(out, cfg.Model)
	case keyOrphanLookback:
		fmt.Fprintln(out, cfg.OrphanLookback)
	case keyStrictFences:
		fmt.Fprintln(out, cfg.StrictFences)
	default:
		return fmt.Errorf("unknown config key %q (valid: %s, %s, %s, %s)",
			key, keyOutputDir, keyModel, keyOrphanLookback, keyStrictFences)
	}
	return nil
}

// runConfigList prints the effective configuration.
func runConfigList(cmd *cobra.Command, env *Env) error {
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s = %s\n", keyOutputDir, cfg.OutputDir)
	fmt.Fprintf(out, "%s = %s\n", keyModel, cfg.Model)
	fmt.Fprintf(out, "%s = %d\n", keyOrphanLookback, cfg.OrphanLookback)
	fmt.Fprintf(out, "%s = %t\n", keyStrictFences, cfg.StrictFences)
	return nil
}

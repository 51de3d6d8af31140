package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/substrate/internal/cli"
	"github.com/aretw0/substrate/internal/config"
	"github.com/spf13/cobra"
)

var (
	appConfig config.Config
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "substrate",
	Short: "Substrate is an interactive HyperNEAT substrate designer",
	Long: `Substrate edits a two-dimensional grid of input, output and hidden points
connected by undirected edges. Hidden points are derived from the connections.

Without a subcommand it starts the interactive editor.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runEdit,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "substrate.yaml", "Config file (.yaml, .json, .toml or .ini)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().Int("grid-size", 0, "Grid side length (odd); overrides the config file")
	addEditFlags(rootCmd)
}

// loadConfig reads the config file, applies flag overrides and builds the logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("grid-size") {
		cfg.GridSize, _ = cmd.Flags().GetInt("grid-size")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	debug, _ := cmd.Flags().GetBool("debug")
	l, err := cli.NewLogger(cfg.Log, debug)
	if err != nil {
		return err
	}

	appConfig = cfg
	logger = l
	logger.Debug("Config loaded", "path", path, "grid_size", cfg.GridSize)
	return nil
}

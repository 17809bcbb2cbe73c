package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/hypinv/config"
)

var (
	configPath string
	logLevel   string

	// cfg is loaded by the root PersistentPreRunE before any subcommand runs.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "hypinv",
	Short: "Arithmetic invariants of hyperbolic 3-manifolds",
	Long: `hypinv drives the adaptive-precision search for the trace field, the
invariant trace field, their quaternion algebras and the denominators of a
hyperbolic 3-manifold, and compares them between manifolds.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file (default: built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level: debug, info, warn or error")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg = config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cfg.LogLevel(),
		TimeFormat: time.TimeOnly,
	})))
	return nil
}

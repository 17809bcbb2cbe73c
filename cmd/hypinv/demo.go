package main

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hypinv/batch"
	"github.com/katalvlaran/hypinv/classes"
	"github.com/katalvlaran/hypinv/engine"
	"github.com/katalvlaran/hypinv/hypinvtest"
	"github.com/katalvlaran/hypinv/metrics"
)

var demoWorkers int

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Resolve and compare the invariants of three in-memory manifolds",
	Long: `Run the engine end-to-end against deterministic in-memory collaborators:
two manifolds over the same fields and a third over a different quartic field.
Prints one report per manifold, the pairwise comparisons and the candidate
commensurability classes.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().IntVarP(&demoWorkers, "workers", "w", 0, "Parallel manifolds (default: batch.workers from config)")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	workers := cfg.Batch.Workers
	if demoWorkers > 0 {
		workers = demoWorkers
	}

	quartic := hypinvtest.NewField("quartic-275", "x^4 - x - 1", 4)
	fixtures := []*hypinvtest.Fixture{
		hypinvtest.NewFixture("m003(-3,1)"),
		hypinvtest.NewFixture("m003(-2,3)"),
		hypinvtest.NewFixtureOver("m004(1,2)", quartic, quartic),
	}

	reg := prometheus.NewRegistry()
	collector := metrics.New(reg, metrics.WithMaxEpsilonRounds(cfg.Hilbert.MaxEpsilonRounds))

	manifolds := make([]*engine.Manifold, len(fixtures))
	for i, fx := range fixtures {
		deps := engine.Dependencies{Fields: fx.Fields, Algebras: fx.Algebras, Words: fx.Words}
		opts := append(cfg.EngineOptions(), engine.WithLogger(slog.Default()), engine.WithObserver(collector))
		m, err := engine.New(fx.Manifold, deps, opts...)
		if err != nil {
			return err
		}
		manifolds[i] = m
	}

	if err := batch.ResolveAll(ctx, manifolds, workers); err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()
	if err := enc.Encode(batch.Reports(manifolds)); err != nil {
		return err
	}

	for i := 0; i < len(manifolds); i++ {
		for j := i + 1; j < len(manifolds); j++ {
			res, err := manifolds[i].Compare(ctx, manifolds[j])
			if err != nil {
				slog.Warn("comparison skipped", "a", manifolds[i].Name(), "b", manifolds[j].Name(), "error", err)
				continue
			}
			if err = enc.Encode(map[string]any{
				"compare": fmt.Sprintf("%s vs %s", manifolds[i].Name(), manifolds[j].Name()),
				"result":  res,
				"same":    res.Same(),
			}); err != nil {
				return err
			}
		}
	}

	cs, err := classes.Partition(ctx, manifolds)
	if err != nil {
		return err
	}
	if err = enc.Encode(map[string]any{"commensurability_classes": cs}); err != nil {
		return err
	}

	families, err := reg.Gather()
	if err != nil {
		return err
	}
	slog.Info("demo finished", "manifolds", len(manifolds), "metric_families", len(families))
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hypinv/invariant"
	"github.com/katalvlaran/hypinv/planner"
)

var planKind string

var planCmd = &cobra.Command{
	Use:   "plan <history.yaml>",
	Short: "Replay an attempt history and print the next search coordinates",
	Long: `Replay a recorded attempt history through the planner and print where the
next search for each invariant would run.

History file:
  mod_two_homology_sphere: false
  trace_field:
    degree: 0          # degree once found, 0 while unresolved
    attempts:
      - {precision: 1000, degree: 20, found: false}
  invariant_trace_field:
    degree: 4
    attempts:
      - {precision: 1000, degree: 20, found: true}
  quaternion_algebra:
    - {precision: 1000, found: false}`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planKind, "kind", "k", "", "Only this invariant (tf, itf, qa, iqa or a long name)")
	rootCmd.AddCommand(planCmd)
}

// planned is one output row.
type planned struct {
	Kind       invariant.Kind       `yaml:"kind"`
	Coordinate invariant.Coordinate `yaml:"next"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	var log planner.Log
	if err = yaml.Unmarshal(data, &log); err != nil {
		return fmt.Errorf("decode history %s: %w", args[0], err)
	}

	kinds := invariant.Kinds[:]
	if planKind != "" {
		k, err := invariant.ParseKind(planKind)
		if err != nil {
			return err
		}
		kinds = []invariant.Kind{k}
	}

	p := planner.New(cfg.PlannerOptions()...)
	out := make([]planned, 0, len(kinds))
	for _, k := range kinds {
		at, err := p.Next(k, &log)
		if err != nil {
			return err
		}
		out = append(out, planned{Kind: k, Coordinate: at})
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(out)
}

// Command hypinv inspects the adaptive-precision planner and configuration
// of the hypinv engine, and runs the engine end-to-end on built-in fixtures.
//
// Usage:
//
//	hypinv plan history.yaml            # next coordinate of every invariant
//	hypinv plan history.yaml --kind itf # one invariant
//	hypinv config validate hypinv.yaml
//	hypinv config default
//	hypinv demo --workers 2
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

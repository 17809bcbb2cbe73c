// Package config loads engine settings from YAML.
//
// A file only needs the keys it changes; everything else keeps the values of
// Default. Example:
//
//	planner:
//	  start_precision: 2000
//	hilbert:
//	  max_epsilon_rounds: 12
//	  epsilon_budget: 30s
//	compare:
//	  denominators: transport
//	batch:
//	  workers: 8
//	log:
//	  level: debug
package config

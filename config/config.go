package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hypinv/compare"
	"github.com/katalvlaran/hypinv/engine"
	"github.com/katalvlaran/hypinv/planner"
	"github.com/katalvlaran/hypinv/resolve"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Planner mirrors planner.Options.
type Planner struct {
	StartPrecision     int `yaml:"start_precision" validate:"gt=0"`
	StartDegree        int `yaml:"start_degree" validate:"gt=0"`
	PrecisionIncrement int `yaml:"precision_increment" validate:"gt=0"`
	DegreeIncrement    int `yaml:"degree_increment" validate:"gt=0"`
}

// Resolve mirrors the field resolution part of resolve.Options.
type Resolve struct {
	PropagateTraceField bool `yaml:"propagate_trace_field"`
}

// Hilbert mirrors the Hilbert symbol part of resolve.Options.
type Hilbert struct {
	WordSearchPrecision int           `yaml:"word_search_precision" validate:"gt=0"`
	InitialEpsilon      float64       `yaml:"initial_epsilon" validate:"gt=0"`
	EpsilonFactor       float64       `yaml:"epsilon_factor" validate:"gt=1"`
	MaxEpsilonRounds    int           `yaml:"max_epsilon_rounds" validate:"gt=0,lte=64"`
	EpsilonBudget       time.Duration `yaml:"epsilon_budget" validate:"gte=0"`
}

// Compare selects the comparator policy.
type Compare struct {
	Denominators string `yaml:"denominators" validate:"oneof=strict transport"`
}

// Batch bounds parallel resolution.
type Batch struct {
	Workers int `yaml:"workers" validate:"gte=1,lte=256"`
}

// Log selects the log level.
type Log struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Config is the whole file.
type Config struct {
	Planner Planner `yaml:"planner"`
	Resolve Resolve `yaml:"resolve"`
	Hilbert Hilbert `yaml:"hilbert"`
	Compare Compare `yaml:"compare"`
	Batch   Batch   `yaml:"batch"`
	Log     Log     `yaml:"log"`
}

// Default returns the built-in defaults of every component.
func Default() Config {
	return Config{
		Planner: Planner{
			StartPrecision:     planner.DefaultStartPrecision,
			StartDegree:        planner.DefaultStartDegree,
			PrecisionIncrement: planner.DefaultPrecisionIncrement,
			DegreeIncrement:    planner.DefaultDegreeIncrement,
		},
		Resolve: Resolve{PropagateTraceField: true},
		Hilbert: Hilbert{
			WordSearchPrecision: resolve.DefaultWordSearchPrecision,
			InitialEpsilon:      resolve.DefaultInitialEpsilon,
			EpsilonFactor:       resolve.DefaultEpsilonFactor,
			MaxEpsilonRounds:    resolve.DefaultMaxEpsilonRounds,
		},
		Compare: Compare{Denominators: compare.DenominatorsStrict.String()},
		Batch:   Batch{Workers: 4},
		Log:     Log{Level: "info"},
	}
}

// Parse decodes data over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field constraint.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// LogLevel maps Log.Level onto slog.
func (c Config) LogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DenominatorPolicy maps Compare.Denominators onto compare.
func (c Config) DenominatorPolicy() compare.DenominatorPolicy {
	if c.Compare.Denominators == compare.DenominatorsTransport.String() {
		return compare.DenominatorsTransport
	}
	return compare.DenominatorsStrict
}

// PlannerOptions converts the planner section. c must be valid.
func (c Config) PlannerOptions() []planner.Option {
	return []planner.Option{
		planner.WithStartPrecision(c.Planner.StartPrecision),
		planner.WithStartDegree(c.Planner.StartDegree),
		planner.WithPrecisionIncrement(c.Planner.PrecisionIncrement),
		planner.WithDegreeIncrement(c.Planner.DegreeIncrement),
	}
}

// ResolveOptions converts the resolve and hilbert sections. c must be valid.
func (c Config) ResolveOptions() []resolve.Option {
	return []resolve.Option{
		resolve.WithTraceFieldPropagation(c.Resolve.PropagateTraceField),
		resolve.WithWordSearchPrecision(c.Hilbert.WordSearchPrecision),
		resolve.WithEpsilon(c.Hilbert.InitialEpsilon, c.Hilbert.EpsilonFactor),
		resolve.WithMaxEpsilonRounds(c.Hilbert.MaxEpsilonRounds),
		resolve.WithEpsilonBudget(c.Hilbert.EpsilonBudget),
	}
}

// EngineOptions converts the whole configuration. c must be valid.
func (c Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithPlanner(c.PlannerOptions()...),
		engine.WithResolve(c.ResolveOptions()...),
		engine.WithCompare(compare.WithDenominatorPolicy(c.DenominatorPolicy())),
	}
}

// Package experiment describes estimator runs in YAML and executes them.
package experiment

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Estimator names.
const (
	EstimatorExpectation        = "expectation"
	EstimatorImportance         = "importance"
	EstimatorImportanceLogspace = "importance-logspace"
)

// Distribution kinds.
const (
	KindNormal  = "normal"
	KindMVNDiag = "mvn-diag"
)

// Common errors.
var (
	ErrInvalidConfig    = errors.New("invalid experiment config")
	ErrUnknownEstimator = errors.New("unknown estimator")
	ErrUnknownFunction  = errors.New("unknown function")
)

// DistributionSpec describes a distribution by kind and parameters.
//
// For "normal", mu and sigma are broadcast to the batch shape (a
// single-element list broadcasts against the other). For "mvn-diag",
// mu and sigma are the mean vector and the per-component stddev.
type DistributionSpec struct {
	Kind  string    `yaml:"kind"`
	Mu    []float64 `yaml:"mu"`
	Sigma []float64 `yaml:"sigma"`
}

// ParallelSpec overrides the default parallel reduction config.
type ParallelSpec struct {
	Workers   int `yaml:"workers"`
	ChunkSize int `yaml:"chunk_size"`
}

// Config is a single estimator run.
type Config struct {
	Estimator string            `yaml:"estimator"`
	Function  string            `yaml:"function"`
	N         int               `yaml:"n"`
	Seed      *uint64           `yaml:"seed,omitempty"`
	Target    DistributionSpec  `yaml:"target"`
	Proposal  *DistributionSpec `yaml:"proposal,omitempty"`
	Parallel  *ParallelSpec     `yaml:"parallel,omitempty"`
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML config. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the config describes a runnable experiment.
func (c *Config) Validate() error {
	switch c.Estimator {
	case EstimatorExpectation:
	case EstimatorImportance, EstimatorImportanceLogspace:
		if c.Proposal == nil {
			return fmt.Errorf("%w: estimator %q requires a proposal distribution", ErrInvalidConfig, c.Estimator)
		}
		if err := c.Proposal.validate("proposal"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEstimator, c.Estimator)
	}

	if _, ok := functions[c.Function]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFunction, c.Function)
	}
	if c.Function == "positive-product" && c.Target.Kind != KindMVNDiag {
		return fmt.Errorf("%w: function %q needs a %q target with an event axis", ErrInvalidConfig, c.Function, KindMVNDiag)
	}
	if c.N <= 0 {
		return fmt.Errorf("%w: n = %d (must be > 0)", ErrInvalidConfig, c.N)
	}
	if c.Parallel != nil && (c.Parallel.Workers < 0 || c.Parallel.ChunkSize < 0) {
		return fmt.Errorf("%w: parallel workers and chunk_size must not be negative", ErrInvalidConfig)
	}
	return c.Target.validate("target")
}

func (s *DistributionSpec) validate(field string) error {
	switch s.Kind {
	case KindNormal:
		if len(s.Mu) == 0 || len(s.Sigma) == 0 {
			return fmt.Errorf("%w: %s: mu and sigma are required", ErrInvalidConfig, field)
		}
	case KindMVNDiag:
		if len(s.Mu) == 0 || len(s.Mu) != len(s.Sigma) {
			return fmt.Errorf("%w: %s: mu and sigma must be non-empty and of equal length", ErrInvalidConfig, field)
		}
	default:
		return fmt.Errorf("%w: %s: unknown distribution kind %q", ErrInvalidConfig, field, s.Kind)
	}
	return nil
}

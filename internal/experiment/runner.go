package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/born-ml/bayesflow/internal/distributions"
	"github.com/born-ml/bayesflow/internal/montecarlo"
	"github.com/born-ml/bayesflow/internal/parallel"
	"github.com/born-ml/bayesflow/internal/tensor"
)

// Result is the outcome of a run.
type Result struct {
	Estimator string
	Function  string
	N         int

	// Estimate is the estimator output. For importance-logspace it is the
	// log of the expectation.
	Estimate *tensor.Dense

	// Reference is the analytic value on the same scale as Estimate, or
	// nil when there is no closed form.
	Reference *tensor.Dense

	Elapsed time.Duration
}

// RelativeError returns |estimate - reference| / |reference| per element,
// or nil without a reference. Elements whose reference is zero report the
// absolute error instead.
func (r *Result) RelativeError() []float64 {
	if r.Reference == nil || !r.Reference.Shape().Equal(r.Estimate.Shape()) {
		return nil
	}
	out := make([]float64, r.Estimate.NumElements())
	for i, want := range r.Reference.Data() {
		diff := math.Abs(r.Estimate.Data()[i] - want)
		if want == 0 {
			out[i] = diff
			continue
		}
		out[i] = diff / math.Abs(want)
	}
	return out
}

// Runner executes experiment configs.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a runner. A nil logger uses slog.Default().
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Run builds the distributions in cfg and runs its estimator. Estimation
// itself is not interruptible; a cancelled ctx makes Run return ctx.Err()
// without waiting for it.
func (r *Runner) Run(ctx context.Context, cfg *Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fn := functions[cfg.Function]
	target, err := buildDistribution(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	var proposal distributions.Distribution
	if cfg.Proposal != nil {
		proposal, err = buildDistribution(*cfg.Proposal)
		if err != nil {
			return nil, fmt.Errorf("proposal: %w", err)
		}
	}

	logspaceEstimator := cfg.Estimator == EstimatorImportanceLogspace
	if fn.logspace != logspaceEstimator {
		r.logger.Warn("function scale does not match estimator, no reference value",
			"function", cfg.Function, "estimator", cfg.Estimator)
	}

	opts := []montecarlo.Option{montecarlo.WithN(cfg.N), montecarlo.WithParallel(parallelConfig(cfg.Parallel))}
	if cfg.Seed != nil {
		opts = append(opts, montecarlo.WithSeed(*cfg.Seed))
	}

	r.logger.Info("running estimator",
		"estimator", cfg.Estimator,
		"function", cfg.Function,
		"n", cfg.N,
		"target", cfg.Target.Kind,
		"batch_shape", []int(target.BatchShape()))

	type outcome struct {
		estimate *tensor.Dense
		err      error
	}
	done := make(chan outcome, 1)
	start := time.Now()
	go func() {
		est, err := estimate(cfg.Estimator, fn, target, proposal, opts)
		done <- outcome{est, err}
	}()

	var out outcome
	select {
	case <-ctx.Done():
		r.logger.Warn("estimation cancelled", "err", ctx.Err())
		return nil, ctx.Err()
	case out = <-done:
	}
	if out.err != nil {
		return nil, out.err
	}

	res := &Result{
		Estimator: cfg.Estimator,
		Function:  cfg.Function,
		N:         cfg.N,
		Estimate:  out.estimate,
		Elapsed:   time.Since(start),
	}
	if fn.logspace == logspaceEstimator && fn.moment != nil {
		if ref := fn.moment(target); ref != nil {
			if logspaceEstimator {
				ref = ref.Log()
			}
			res.Reference = ref
		}
	}

	r.logger.Debug("estimation finished",
		"elapsed", res.Elapsed,
		"estimate", res.Estimate.Data(),
		"has_reference", res.Reference != nil)
	return res, nil
}

func estimate(name string, fn function, p, q distributions.Distribution, opts []montecarlo.Option) (*tensor.Dense, error) {
	switch name {
	case EstimatorExpectation:
		return montecarlo.Expectation(fn.apply, p, opts...)
	case EstimatorImportance:
		return montecarlo.ExpectationImportanceSampler(fn.apply, p.LogProb, q, opts...)
	case EstimatorImportanceLogspace:
		return montecarlo.ExpectationImportanceSamplerLogspace(fn.apply, p.LogProb, q, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEstimator, name)
	}
}

func buildDistribution(spec DistributionSpec) (distributions.Distribution, error) {
	switch spec.Kind {
	case KindNormal:
		return distributions.NewNormal(tensor.Vector(spec.Mu...), tensor.Vector(spec.Sigma...))
	case KindMVNDiag:
		return distributions.NewMultivariateNormalDiag(spec.Mu, spec.Sigma)
	default:
		return nil, fmt.Errorf("%w: unknown distribution kind %q", ErrInvalidConfig, spec.Kind)
	}
}

func parallelConfig(spec *ParallelSpec) parallel.Config {
	cfg := parallel.DefaultConfig()
	if spec == nil {
		return cfg
	}
	if spec.Workers > 0 {
		cfg.NumWorkers = spec.Workers
		cfg.Enabled = spec.Workers > 1
	}
	if spec.ChunkSize > 0 {
		cfg.MinChunkSize = spec.ChunkSize
	}
	return cfg
}

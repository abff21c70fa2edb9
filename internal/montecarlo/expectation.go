// Package montecarlo implements Monte Carlo estimators of expectations
// under probability distributions: plain sample averages and importance
// sampling in linear and log space.
//
// All estimators take their samples either from WithSamples or by drawing
// WithN fresh samples; exactly one of the two must be given. The first
// axis of every sample tensor is the sample axis and is reduced away in
// the result.
package montecarlo

import (
	"errors"
	"fmt"

	"github.com/born-ml/bayesflow/internal/distributions"
	"github.com/born-ml/bayesflow/internal/tensor"
)

// Func maps samples z, shape [n, ...], to values whose first axis is
// still the sample axis.
type Func func(z *tensor.Dense) *tensor.Dense

// LogDensity evaluates a log-density at samples z. A distribution's
// LogProb method satisfies it.
type LogDensity func(z *tensor.Dense) (*tensor.Dense, error)

// Expectation estimates E_p[f(Z)] by the sample mean of f over draws of p.
//
// Example:
//
//	p, _ := distributions.NewNormal(tensor.Vector(1, -1), tensor.Vector(0.3, 0.5))
//	mean, err := montecarlo.Expectation(identity, p, montecarlo.WithN(10000), montecarlo.WithSeed(42))
func Expectation(f Func, p distributions.Distribution, opts ...Option) (*tensor.Dense, error) {
	o := newOptions(opts)

	z, err := getSamples(p, o.z, o.n, o.seed)
	if err != nil {
		return nil, fmt.Errorf("expectation: %w", err)
	}

	fz, err := evaluate(f, z)
	if err != nil {
		return nil, fmt.Errorf("expectation: %w", err)
	}
	return sampleMean(fz, o.parallel)
}

// ExpectationImportanceSampler estimates E_p[f(Z)] with samples drawn from q:
//
//	E_p[f(Z)] = E_q[f(Z) p(Z) / q(Z)]
//
// f is split into f⁺ = max(f, 0) and f⁻ = max(-f, 0) so that both parts
// can be averaged in log space:
//
//	E_p[f] = E_p[f⁺ + 1] - E_p[f⁻ + 1]
//
// The +1 keeps the logarithms finite where f⁺ or f⁻ vanish.
func ExpectationImportanceSampler(f Func, logP LogDensity, q distributions.Distribution, opts ...Option) (*tensor.Dense, error) {
	o := newOptions(opts)

	z, logWeights, err := importanceWeights(logP, q, o)
	if err != nil {
		return nil, fmt.Errorf("importance sampler: %w", err)
	}

	fz, err := evaluate(f, z)
	if err != nil {
		return nil, fmt.Errorf("importance sampler: %w", err)
	}

	logFPlus := fz.Relu().AddScalar(1).Log()
	logFMinus := fz.Neg().Relu().AddScalar(1).Log()

	plus, err := weightedLogMean(logFPlus, logWeights, o)
	if err != nil {
		return nil, fmt.Errorf("importance sampler: %w", err)
	}
	minus, err := weightedLogMean(logFMinus, logWeights, o)
	if err != nil {
		return nil, fmt.Errorf("importance sampler: %w", err)
	}
	return plus.Exp().Sub(minus.Exp()), nil
}

// ExpectationImportanceSamplerLogspace estimates log E_p[exp(logF(Z))]
// with samples drawn from q, never leaving log space:
//
//	log E_p[f] = log mean_i exp(logF(z_i) + logP(z_i) - logQ(z_i))
//
// Use it when f or the importance weights may overflow or underflow.
func ExpectationImportanceSamplerLogspace(logF Func, logP LogDensity, q distributions.Distribution, opts ...Option) (*tensor.Dense, error) {
	o := newOptions(opts)

	z, logWeights, err := importanceWeights(logP, q, o)
	if err != nil {
		return nil, fmt.Errorf("importance sampler logspace: %w", err)
	}

	logFz, err := evaluate(logF, z)
	if err != nil {
		return nil, fmt.Errorf("importance sampler logspace: %w", err)
	}

	out, err := weightedLogMean(logFz, logWeights, o)
	if err != nil {
		return nil, fmt.Errorf("importance sampler logspace: %w", err)
	}
	return out, nil
}

// importanceWeights draws (or takes) z from q and returns it together with
// logP(z) - logQ(z).
func importanceWeights(logP LogDensity, q distributions.Distribution, o *options) (*tensor.Dense, *tensor.Dense, error) {
	if logP == nil {
		return nil, nil, errors.New("log density of target is nil")
	}
	if q == nil {
		return nil, nil, errors.New("sampling distribution is nil")
	}

	z, err := getSamples(q, o.z, o.n, o.seed)
	if err != nil {
		return nil, nil, err
	}

	logPz, err := logP(z)
	if err != nil {
		return nil, nil, fmt.Errorf("target log density: %w", err)
	}
	if err := checkSampleAxis(logPz, z.Shape()[0]); err != nil {
		return nil, nil, fmt.Errorf("target log density: %w", err)
	}
	logQz, err := q.LogProb(z)
	if err != nil {
		return nil, nil, fmt.Errorf("proposal log density: %w", err)
	}
	if !logPz.Shape().Equal(logQz.Shape()) {
		return nil, nil, fmt.Errorf("%w: target log density has shape %v, proposal %v",
			ErrShapeMismatch, logPz.Shape(), logQz.Shape())
	}

	logWeights, err := tensor.Binary(logPz, logQz, func(a, b float64) float64 { return a - b })
	if err != nil {
		return nil, nil, err
	}
	return z, logWeights, nil
}

// weightedLogMean returns log mean_i exp(logValues_i + logWeights_i).
func weightedLogMean(logValues, logWeights *tensor.Dense, o *options) (*tensor.Dense, error) {
	if err := checkSampleAxis(logValues, logWeights.Shape()[0]); err != nil {
		return nil, err
	}
	combined, err := tensor.Binary(logValues, logWeights, func(a, b float64) float64 { return a + b })
	if err != nil {
		return nil, err
	}
	if err := checkSampleAxis(combined, logWeights.Shape()[0]); err != nil {
		return nil, err
	}
	return sampleLogMeanExp(combined, o.parallel)
}

func evaluate(f Func, z *tensor.Dense) (*tensor.Dense, error) {
	if f == nil {
		return nil, errors.New("function is nil")
	}
	fz := f(z)
	if fz == nil {
		return nil, errors.New("function returned nil")
	}
	if err := checkSampleAxis(fz, z.Shape()[0]); err != nil {
		return nil, fmt.Errorf("function value: %w", err)
	}
	return fz, nil
}

func checkSampleAxis(x *tensor.Dense, n int) error {
	if x.Rank() == 0 || x.Shape()[0] != n {
		return fmt.Errorf("%w: expected leading sample axis of size %d, got shape %v", ErrShapeMismatch, n, x.Shape())
	}
	return nil
}

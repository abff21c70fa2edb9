// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package montecarlo provides Monte Carlo expectation estimators.
//
// Components:
//   - Expectation: plain sample average of f under p
//   - ExpectationImportanceSampler: E_p[f] from samples of a proposal q
//   - ExpectationImportanceSamplerLogspace: log E_p[exp(log f)] from samples of q
//
// Every estimator takes exactly one of WithN (draw fresh samples) and
// WithSamples (reuse samples). WithSeed makes the draw reproducible.
//
// Example usage:
//
//	p, _ := distributions.NewNormal(tensor.Vector(-1, 1), tensor.Vector(0.5, 0.5))
//	q, _ := distributions.NewNormal(tensor.Vector(0, 0), tensor.Vector(1, 1))
//
//	identity := func(x *tensor.Dense) *tensor.Dense { return x }
//	mean, err := montecarlo.ExpectationImportanceSampler(
//	    identity, p.LogProb, q,
//	    montecarlo.WithN(1_000_000), montecarlo.WithSeed(42),
//	)
package montecarlo

import (
	"github.com/born-ml/bayesflow/distributions"
	"github.com/born-ml/bayesflow/internal/montecarlo"
	"github.com/born-ml/bayesflow/internal/parallel"
	"github.com/born-ml/bayesflow/tensor"
)

// Func maps samples, shape [n, ...], to values that keep the sample axis.
type Func = montecarlo.Func

// LogDensity evaluates a log-density at samples. Distribution.LogProb
// satisfies it.
type LogDensity = montecarlo.LogDensity

// Option configures an estimator call.
type Option = montecarlo.Option

// ParallelConfig controls how sample-axis reductions are split.
type ParallelConfig = parallel.Config

// Common errors.
var (
	ErrSampleSource       = montecarlo.ErrSampleSource
	ErrInvalidSampleCount = montecarlo.ErrInvalidSampleCount
	ErrShapeMismatch      = montecarlo.ErrShapeMismatch
)

// WithSamples supplies precomputed samples.
func WithSamples(z *tensor.Dense) Option { return montecarlo.WithSamples(z) }

// WithN draws n fresh samples.
func WithN(n int) Option { return montecarlo.WithN(n) }

// WithSeed makes the draw deterministic.
func WithSeed(seed uint64) Option { return montecarlo.WithSeed(seed) }

// WithParallel sets the parallel reduction config.
func WithParallel(cfg ParallelConfig) Option { return montecarlo.WithParallel(cfg) }

// DefaultParallelConfig returns the CPU-count based default.
func DefaultParallelConfig() ParallelConfig { return parallel.DefaultConfig() }

// Expectation estimates E_p[f(Z)] by the sample mean of f over draws of p.
func Expectation(f Func, p distributions.Distribution, opts ...Option) (*tensor.Dense, error) {
	return montecarlo.Expectation(f, p, opts...)
}

// ExpectationImportanceSampler estimates E_p[f(Z)] with samples drawn from q.
func ExpectationImportanceSampler(f Func, logP LogDensity, q distributions.Distribution, opts ...Option) (*tensor.Dense, error) {
	return montecarlo.ExpectationImportanceSampler(f, logP, q, opts...)
}

// ExpectationImportanceSamplerLogspace estimates log E_p[exp(logF(Z))]
// with samples drawn from q.
func ExpectationImportanceSamplerLogspace(logF Func, logP LogDensity, q distributions.Distribution, opts ...Option) (*tensor.Dense, error) {
	return montecarlo.ExpectationImportanceSamplerLogspace(logF, logP, q, opts...)
}

// LogMeanExp computes log(mean(exp(x))) along axis without overflow.
func LogMeanExp(x *tensor.Dense, axis int) (*tensor.Dense, error) {
	return montecarlo.LogMeanExp(x, axis)
}

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package distributions provides the probability distributions that
// bayesflow estimators sample from and reweight by.
//
// Components:
//   - Normal: a batch of univariate normal distributions
//   - MultivariateNormalDiag: a normal distribution with diagonal covariance
//
// Example usage:
//
//	import (
//	    "github.com/born-ml/bayesflow/distributions"
//	    "github.com/born-ml/bayesflow/tensor"
//	)
//
//	p, err := distributions.NewNormal(tensor.Vector(-1, 1), tensor.Vector(0.5, 0.5))
//	z, err := p.SampleN(1000, distributions.NewSource(42)) // Shape: [1000, 2]
//	logP, err := p.LogProb(z)                               // Shape: [1000, 2]
package distributions

import (
	"math/rand/v2"

	"github.com/born-ml/bayesflow/internal/distributions"
	"github.com/born-ml/bayesflow/tensor"
)

// Distribution is a batch of probability distributions over float64 tensors.
//
// Samples have shape [n] ++ BatchShape ++ EventShape; LogProb drops the
// event dimensions of its input.
type Distribution = distributions.Distribution

// Normal is a batch of univariate normal distributions.
type Normal = distributions.Normal

// MultivariateNormalDiag is a normal distribution with diagonal covariance.
type MultivariateNormalDiag = distributions.MultivariateNormalDiag

// Common errors.
var (
	ErrInvalidParameter   = distributions.ErrInvalidParameter
	ErrInvalidSampleCount = distributions.ErrInvalidSampleCount
)

// NewNormal creates a batch of normal distributions. mu and sigma are
// broadcast against each other to form the batch shape.
func NewNormal(mu, sigma *tensor.Dense) (*Normal, error) {
	return distributions.NewNormal(mu, sigma)
}

// NewStandardNormal returns N(0, 1) with a scalar batch shape.
func NewStandardNormal() *Normal {
	return distributions.NewStandardNormal()
}

// NewMultivariateNormalDiag creates a k-dimensional normal distribution
// from its mean and per-component standard deviations.
func NewMultivariateNormalDiag(mu, diagStddev []float64) (*MultivariateNormalDiag, error) {
	return distributions.NewMultivariateNormalDiag(mu, diagStddev)
}

// NewSource returns a deterministic random source derived from seed.
func NewSource(seed uint64) rand.Source {
	return distributions.NewSource(seed)
}

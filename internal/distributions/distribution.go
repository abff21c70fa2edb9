// Package distributions provides the probability distributions that Monte
// Carlo estimators sample from and reweight by.
//
// Every distribution has a batch shape (independent parameterisations
// evaluated side by side) and an event shape (the dimensions of a single
// draw). Samples of size n have shape [n] ++ batch ++ event, and LogProb
// drops the event dimensions.
package distributions

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/bayesflow/internal/tensor"
)

// Common errors.
var (
	ErrInvalidParameter   = errors.New("invalid distribution parameter")
	ErrInvalidSampleCount = errors.New("invalid sample count")
)

// Distribution is a batch of probability distributions over float64 tensors.
type Distribution interface {
	// BatchShape returns the shape of the batch of independent distributions.
	BatchShape() tensor.Shape
	// EventShape returns the shape of a single draw.
	EventShape() tensor.Shape
	// SampleN draws n samples using src. The result has shape
	// [n] ++ BatchShape ++ EventShape.
	SampleN(n int, src rand.Source) (*tensor.Dense, error)
	// LogProb evaluates the log-density of x. The trailing dimensions of x
	// must equal BatchShape ++ EventShape; leading dimensions are kept.
	LogProb(x *tensor.Dense) (*tensor.Dense, error)
	// Mean returns the analytic mean, shape BatchShape ++ EventShape.
	Mean() *tensor.Dense
	// Variance returns the analytic variance, shape BatchShape ++ EventShape.
	Variance() *tensor.Dense
	// Stddev returns the analytic standard deviation.
	Stddev() *tensor.Dense
}

// NewSource returns a deterministic PCG source derived from seed.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// RandomSource returns a PCG source with a random seed.
func RandomSource() rand.Source {
	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}

func checkSampleCount(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: n = %d (must be > 0)", ErrInvalidSampleCount, n)
	}
	return nil
}

// sampleShapeOf splits x's shape into sample dims and the distribution's
// full batch ++ event shape.
func sampleShapeOf(x *tensor.Dense, batch, event tensor.Shape) (tensor.Shape, error) {
	full := batch.Concat(event)
	if !x.Shape().HasSuffix(full) {
		return nil, fmt.Errorf("%w: input shape %v does not end with batch ++ event shape %v",
			tensor.ErrShapeMismatch, x.Shape(), full)
	}
	return x.Shape()[:x.Rank()-len(full)].Clone(), nil
}

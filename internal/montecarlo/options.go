package montecarlo

import (
	"github.com/born-ml/bayesflow/internal/parallel"
	"github.com/born-ml/bayesflow/internal/tensor"
)

// Option configures an estimator call.
type Option func(*options)

type options struct {
	z        *tensor.Dense
	n        int
	seed     *uint64
	parallel parallel.Config
}

func newOptions(opts []Option) *options {
	o := &options{parallel: parallel.DefaultConfig()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSamples supplies precomputed samples z instead of drawing new ones.
// The first axis of z is the sample axis.
func WithSamples(z *tensor.Dense) Option {
	return func(o *options) {
		o.z = z
	}
}

// WithN draws n fresh samples from the sampling distribution.
func WithN(n int) Option {
	return func(o *options) {
		o.n = n
	}
}

// WithSeed makes the draw deterministic. Without it a random seed is used.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithParallel sets how sample-axis reductions are split across goroutines.
func WithParallel(cfg parallel.Config) Option {
	return func(o *options) {
		o.parallel = cfg
	}
}

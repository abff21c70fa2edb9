package montecarlo

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/born-ml/bayesflow/internal/distributions"
	"github.com/born-ml/bayesflow/internal/tensor"
)

// Common errors.
var (
	ErrSampleSource       = errors.New(`must specify exactly one of arguments "n" and "z"`)
	ErrInvalidSampleCount = distributions.ErrInvalidSampleCount
	ErrShapeMismatch      = tensor.ErrShapeMismatch
)

// getSamples returns z when it is given, or n fresh samples from dist.
// Exactly one of z and n must be provided; n == 0 means "not provided".
func getSamples(dist distributions.Distribution, z *tensor.Dense, n int, seed *uint64) (*tensor.Dense, error) {
	hasN := n != 0
	hasZ := z != nil
	if hasN == hasZ {
		return nil, fmt.Errorf("%w. Found: n = %s, z = %s", ErrSampleSource, describeN(n), describeZ(z))
	}

	if hasZ {
		if z.Rank() == 0 {
			return nil, fmt.Errorf("%w: samples must have a leading sample axis, got scalar", ErrShapeMismatch)
		}
		return z, nil
	}

	if n < 0 {
		return nil, fmt.Errorf("%w: n = %d (must be > 0)", ErrInvalidSampleCount, n)
	}
	if dist == nil {
		return nil, errors.New("get samples: sampling distribution is nil")
	}

	src := distributions.RandomSource()
	if seed != nil {
		src = distributions.NewSource(*seed)
	}
	samples, err := dist.SampleN(n, src)
	if err != nil {
		return nil, fmt.Errorf("get samples: %w", err)
	}
	return samples, nil
}

func describeN(n int) string {
	if n == 0 {
		return "none"
	}
	return strconv.Itoa(n)
}

func describeZ(z *tensor.Dense) string {
	if z == nil {
		return "none"
	}
	return fmt.Sprintf("tensor of shape %v", []int(z.Shape()))
}

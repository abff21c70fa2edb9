package distributions

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/born-ml/bayesflow/internal/tensor"
)

// MultivariateNormalDiag is a k-dimensional normal distribution with a
// diagonal covariance diag(stddev²). Its batch shape is scalar and its
// event shape is [k].
type MultivariateNormalDiag struct {
	mu     []float64
	stddev []float64
	cov    *mat.DiagDense
	dist   *distmv.Normal
}

// NewMultivariateNormalDiag creates the distribution from a mean vector
// and the per-component standard deviations.
func NewMultivariateNormalDiag(mu, diagStddev []float64) (*MultivariateNormalDiag, error) {
	if len(mu) == 0 {
		return nil, fmt.Errorf("%w: mu must not be empty", ErrInvalidParameter)
	}
	if len(mu) != len(diagStddev) {
		return nil, fmt.Errorf("%w: mu has %d components but diag stddev has %d",
			ErrInvalidParameter, len(mu), len(diagStddev))
	}

	variances := make([]float64, len(diagStddev))
	for i, s := range diagStddev {
		if !(s > 0) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("%w: diag stddev[%d] = %v (must be finite and > 0)", ErrInvalidParameter, i, s)
		}
		variances[i] = s * s
	}

	d := &MultivariateNormalDiag{
		mu:     append([]float64(nil), mu...),
		stddev: append([]float64(nil), diagStddev...),
		cov:    mat.NewDiagDense(len(variances), variances),
	}

	dist, ok := distmv.NewNormal(d.mu, d.cov, nil)
	if !ok {
		return nil, fmt.Errorf("%w: covariance is not positive definite", ErrInvalidParameter)
	}
	d.dist = dist
	return d, nil
}

// Dim returns the event dimension k.
func (d *MultivariateNormalDiag) Dim() int { return len(d.mu) }

// BatchShape is always scalar.
func (d *MultivariateNormalDiag) BatchShape() tensor.Shape { return tensor.Shape{} }

// EventShape returns [k].
func (d *MultivariateNormalDiag) EventShape() tensor.Shape { return tensor.Shape{len(d.mu)} }

// SampleN draws n vectors. Output shape: [n, k].
func (d *MultivariateNormalDiag) SampleN(n int, src rand.Source) (*tensor.Dense, error) {
	if err := checkSampleCount(n); err != nil {
		return nil, err
	}

	// distmv.Normal binds its source at construction.
	gen, ok := distmv.NewNormal(d.mu, d.cov, src)
	if !ok {
		return nil, fmt.Errorf("%w: covariance is not positive definite", ErrInvalidParameter)
	}

	k := len(d.mu)
	out := make([]float64, n*k)
	for i := 0; i < n; i++ {
		gen.Rand(out[i*k : (i+1)*k])
	}
	return tensor.New(out, tensor.Shape{n, k})
}

// LogProb evaluates the log-density of each trailing k-vector of x.
// Output shape: x.Shape()[:rank-1].
func (d *MultivariateNormalDiag) LogProb(x *tensor.Dense) (*tensor.Dense, error) {
	lead, err := sampleShapeOf(x, nil, d.EventShape())
	if err != nil {
		return nil, fmt.Errorf("multivariate normal log prob: %w", err)
	}

	k := len(d.mu)
	in := x.Data()
	out := make([]float64, len(in)/k)
	for i := range out {
		out[i] = d.dist.LogProb(in[i*k : (i+1)*k])
	}
	return tensor.New(out, lead)
}

// Mean returns mu.
func (d *MultivariateNormalDiag) Mean() *tensor.Dense {
	return tensor.Vector(d.mu...)
}

// Variance returns the covariance diagonal.
func (d *MultivariateNormalDiag) Variance() *tensor.Dense {
	v := make([]float64, len(d.mu))
	for i := range v {
		v[i] = d.cov.At(i, i)
	}
	return tensor.Vector(v...)
}

// Stddev returns the per-component standard deviations.
func (d *MultivariateNormalDiag) Stddev() *tensor.Dense {
	return tensor.Vector(d.stddev...)
}

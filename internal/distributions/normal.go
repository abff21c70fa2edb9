package distributions

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/bayesflow/internal/tensor"
)

// Normal is a batch of univariate normal distributions N(mu, sigma²).
//
// Example:
//
//	p, _ := distributions.NewNormal(tensor.Vector(-1, 1), tensor.Vector(0.5, 0.5))
//	z, _ := p.SampleN(1000, distributions.NewSource(42)) // Shape: [1000, 2]
type Normal struct {
	batch  tensor.Shape
	params []distuv.Normal
}

// NewNormal creates a batch of normal distributions. mu and sigma are
// broadcast against each other to form the batch shape. Every sigma must
// be finite and strictly positive.
func NewNormal(mu, sigma *tensor.Dense) (*Normal, error) {
	if mu == nil || sigma == nil {
		return nil, fmt.Errorf("%w: mu and sigma are required", ErrInvalidParameter)
	}

	batch, _, err := tensor.BroadcastShapes(mu.Shape(), sigma.Shape())
	if err != nil {
		return nil, fmt.Errorf("normal: %w", err)
	}
	mus, err := mu.BroadcastTo(batch)
	if err != nil {
		return nil, fmt.Errorf("normal: %w", err)
	}
	sigmas, err := sigma.BroadcastTo(batch)
	if err != nil {
		return nil, fmt.Errorf("normal: %w", err)
	}

	pairs := make([]distuv.Normal, batch.NumElements())
	for i := range pairs {
		pairs[i] = distuv.Normal{Mu: mus.Data()[i], Sigma: sigmas.Data()[i]}
	}

	for i, p := range pairs {
		if !(p.Sigma > 0) || math.IsInf(p.Sigma, 0) {
			return nil, fmt.Errorf("%w: sigma[%d] = %v (must be finite and > 0)", ErrInvalidParameter, i, p.Sigma)
		}
		if math.IsNaN(p.Mu) || math.IsInf(p.Mu, 0) {
			return nil, fmt.Errorf("%w: mu[%d] = %v (must be finite)", ErrInvalidParameter, i, p.Mu)
		}
	}

	return &Normal{batch: batch, params: pairs}, nil
}

// NewStandardNormal returns N(0, 1) with a scalar batch shape.
func NewStandardNormal() *Normal {
	return &Normal{batch: tensor.Shape{}, params: []distuv.Normal{distuv.UnitNormal}}
}

// BatchShape returns the shape of the batch of independent distributions.
func (d *Normal) BatchShape() tensor.Shape { return d.batch }

// EventShape is always scalar for a univariate normal.
func (d *Normal) EventShape() tensor.Shape { return tensor.Shape{} }

// SampleN draws n samples per batch member. Output shape: [n] ++ batch.
func (d *Normal) SampleN(n int, src rand.Source) (*tensor.Dense, error) {
	if err := checkSampleCount(n); err != nil {
		return nil, err
	}

	gens := make([]distuv.Normal, len(d.params))
	for j, p := range d.params {
		gens[j] = distuv.Normal{Mu: p.Mu, Sigma: p.Sigma, Src: src}
	}

	out := make([]float64, n*len(gens))
	for i := 0; i < n; i++ {
		row := out[i*len(gens) : (i+1)*len(gens)]
		for j := range gens {
			row[j] = gens[j].Rand()
		}
	}
	return tensor.New(out, tensor.Shape{n}.Concat(d.batch))
}

// LogProb evaluates log N(x; mu, sigma²) elementwise. The trailing
// dimensions of x must equal the batch shape.
func (d *Normal) LogProb(x *tensor.Dense) (*tensor.Dense, error) {
	if _, err := sampleShapeOf(x, d.batch, nil); err != nil {
		return nil, fmt.Errorf("normal log prob: %w", err)
	}

	in := x.Data()
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = d.params[i%len(d.params)].LogProb(v)
	}
	return tensor.New(out, x.Shape().Clone())
}

// Mean returns mu.
func (d *Normal) Mean() *tensor.Dense {
	return d.collect(distuv.Normal.Mean)
}

// Variance returns sigma².
func (d *Normal) Variance() *tensor.Dense {
	return d.collect(distuv.Normal.Variance)
}

// Stddev returns sigma.
func (d *Normal) Stddev() *tensor.Dense {
	return d.collect(distuv.Normal.StdDev)
}

func (d *Normal) collect(fn func(distuv.Normal) float64) *tensor.Dense {
	out := make([]float64, len(d.params))
	for i, p := range d.params {
		out[i] = fn(p)
	}
	t, _ := tensor.New(out, d.batch.Clone())
	return t
}

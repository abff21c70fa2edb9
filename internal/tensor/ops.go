package tensor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Map applies fn to every element.
func (t *Dense) Map(fn func(float64) float64) *Dense {
	out := make([]float64, len(t.data))
	for i, v := range t.data {
		out[i] = fn(v)
	}
	return &Dense{shape: t.shape.Clone(), strides: t.strides, data: out}
}

// Square returns x².
func (t *Dense) Square() *Dense { return t.Map(func(v float64) float64 { return v * v }) }

// Exp returns eˣ.
func (t *Dense) Exp() *Dense { return t.Map(math.Exp) }

// Log returns the natural logarithm. log(0) is -Inf.
func (t *Dense) Log() *Dense { return t.Map(math.Log) }

// Sqrt returns √x.
func (t *Dense) Sqrt() *Dense { return t.Map(math.Sqrt) }

// Neg returns -x.
func (t *Dense) Neg() *Dense { return t.MulScalar(-1) }

// Relu returns max(x, 0).
func (t *Dense) Relu() *Dense {
	return t.Map(func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Sign returns -1, 0 or 1 per element. NaN stays NaN.
func (t *Dense) Sign() *Dense {
	return t.Map(func(v float64) float64 {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		default:
			return v
		}
	})
}

// AddScalar returns x + s.
func (t *Dense) AddScalar(s float64) *Dense {
	return t.Map(func(v float64) float64 { return v + s })
}

// MulScalar returns x * s.
func (t *Dense) MulScalar(s float64) *Dense {
	return t.Map(func(v float64) float64 { return v * s })
}

// Add performs element-wise addition with broadcasting.
// Panics if the shapes cannot be broadcast.
func (t *Dense) Add(other *Dense) *Dense {
	return mustBinary(t, other, func(a, b float64) float64 { return a + b })
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Dense) Sub(other *Dense) *Dense {
	return mustBinary(t, other, func(a, b float64) float64 { return a - b })
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Dense) Mul(other *Dense) *Dense {
	return mustBinary(t, other, func(a, b float64) float64 { return a * b })
}

// Div performs element-wise division with broadcasting.
func (t *Dense) Div(other *Dense) *Dense {
	return mustBinary(t, other, func(a, b float64) float64 { return a / b })
}

func mustBinary(a, b *Dense, fn func(a, b float64) float64) *Dense {
	out, err := Binary(a, b, fn)
	if err != nil {
		panic(err)
	}
	return out
}

// Binary applies fn element-wise over the broadcast of a and b.
func Binary(a, b *Dense, fn func(a, b float64) float64) (*Dense, error) {
	shape, needsBroadcast, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, err
	}

	out := make([]float64, shape.NumElements())
	if !needsBroadcast {
		for i := range out {
			out[i] = fn(a.data[i], b.data[i])
		}
		return New(out, shape)
	}

	strides := shape.ComputeStrides()
	for i := range out {
		ai := broadcastIndex(i, shape, strides, a.shape, a.strides)
		bi := broadcastIndex(i, shape, strides, b.shape, b.strides)
		out[i] = fn(a.data[ai], b.data[bi])
	}
	return New(out, shape)
}

// BroadcastTo expands t to shape following broadcasting rules.
func (t *Dense) BroadcastTo(shape Shape) (*Dense, error) {
	got, _, err := BroadcastShapes(t.shape, shape)
	if err != nil {
		return nil, err
	}
	if !got.Equal(shape) {
		return nil, fmt.Errorf("%w: cannot broadcast %v to %v", ErrShapeMismatch, t.shape, shape)
	}
	if t.shape.Equal(shape) {
		return t.Clone(), nil
	}

	out := make([]float64, shape.NumElements())
	strides := shape.ComputeStrides()
	for i := range out {
		out[i] = t.data[broadcastIndex(i, shape, strides, t.shape, t.strides)]
	}
	return New(out, shape)
}

// Reduce collapses axis by applying fn to each fiber along it.
// The fiber slice passed to fn is reused between calls.
func (t *Dense) Reduce(axis int, fn func(fiber []float64) float64) (*Dense, error) {
	axis, err := NormalizeAxis(axis, len(t.shape))
	if err != nil {
		return nil, err
	}

	outerSize := 1
	for i := 0; i < axis; i++ {
		outerSize *= t.shape[i]
	}
	axisSize := t.shape[axis]
	innerSize := 1
	for i := axis + 1; i < len(t.shape); i++ {
		innerSize *= t.shape[i]
	}

	out := make([]float64, outerSize*innerSize)
	fiber := make([]float64, axisSize)
	for outer := 0; outer < outerSize; outer++ {
		for inner := 0; inner < innerSize; inner++ {
			for a := 0; a < axisSize; a++ {
				fiber[a] = t.data[outer*axisSize*innerSize+a*innerSize+inner]
			}
			out[outer*innerSize+inner] = fn(fiber)
		}
	}

	shape := make(Shape, 0, len(t.shape)-1)
	shape = append(shape, t.shape[:axis]...)
	shape = append(shape, t.shape[axis+1:]...)
	return New(out, shape)
}

func (t *Dense) mustReduce(axis int, fn func([]float64) float64) *Dense {
	out, err := t.Reduce(axis, fn)
	if err != nil {
		panic(err)
	}
	return out
}

// ReduceSum sums along axis.
func (t *Dense) ReduceSum(axis int) *Dense {
	return t.mustReduce(axis, floats.Sum)
}

// ReduceProd multiplies along axis.
func (t *Dense) ReduceProd(axis int) *Dense {
	return t.mustReduce(axis, floats.Prod)
}

// Mean averages along axis.
func (t *Dense) Mean(axis int) *Dense {
	return t.mustReduce(axis, func(f []float64) float64 {
		return floats.Sum(f) / float64(len(f))
	})
}

// Max takes the maximum along axis.
func (t *Dense) Max(axis int) *Dense {
	return t.mustReduce(axis, floats.Max)
}

// AllClose reports whether a and b have equal shapes and every element
// satisfies |a-b| <= atol + rtol*|b|.
func AllClose(a, b *Dense, rtol, atol float64) bool {
	if !a.shape.Equal(b.shape) {
		return false
	}
	for i := range a.data {
		if !floats.EqualWithinAbsOrRel(a.data[i], b.data[i], atol+rtol*math.Abs(b.data[i]), 0) {
			return false
		}
	}
	return true
}

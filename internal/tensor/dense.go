// Package tensor implements the dense float64 tensors that samples,
// log-densities and estimates are carried in.
package tensor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrShapeMismatch is returned when tensor shapes are incompatible.
var ErrShapeMismatch = errors.New("shape mismatch")

// Dense is a row-major float64 tensor.
//
// Operations never modify their receiver; each returns a new tensor.
//
// Example:
//
//	x, _ := tensor.New([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	y := x.Square().ReduceSum(-1) // Shape: [2]
type Dense struct {
	shape   Shape
	strides []int
	data    []float64
}

// New creates a tensor that takes ownership of data.
func New(data []float64, shape Shape) (*Dense, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	return &Dense{
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(),
		data:    data,
	}, nil
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice(data []float64, shape Shape) (*Dense, error) {
	buf := make([]float64, len(data))
	copy(buf, data)
	return New(buf, shape)
}

// Vector creates a 1-D tensor holding a copy of values.
func Vector(values ...float64) *Dense {
	buf := make([]float64, len(values))
	copy(buf, values)
	return &Dense{shape: Shape{len(values)}, strides: []int{1}, data: buf}
}

// Scalar creates a 0-D tensor.
func Scalar(v float64) *Dense {
	return &Dense{shape: Shape{}, strides: []int{}, data: []float64{v}}
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Dense {
	return Full(shape, 0)
}

// Full creates a tensor filled with v.
// Panics if shape is invalid.
func Full(shape Shape, v float64) *Dense {
	if err := shape.Validate(); err != nil {
		panic(err)
	}
	data := make([]float64, shape.NumElements())
	if v != 0 {
		for i := range data {
			data[i] = v
		}
	}
	return &Dense{shape: shape.Clone(), strides: shape.ComputeStrides(), data: data}
}

// Shape returns the tensor's shape.
func (t *Dense) Shape() Shape {
	return t.shape
}

// Rank returns the number of dimensions.
func (t *Dense) Rank() int {
	return len(t.shape)
}

// NumElements returns the total number of elements.
func (t *Dense) NumElements() int {
	return len(t.data)
}

// Data returns the underlying row-major buffer. Callers must not modify it.
func (t *Dense) Data() []float64 {
	return t.data
}

// Item returns the scalar value of a single-element tensor.
// Panics if the tensor holds more than one element.
func (t *Dense) Item() float64 {
	if len(t.data) != 1 {
		panic(fmt.Sprintf("Item() only works for single-element tensors, got shape %v", t.shape))
	}
	return t.data[0]
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (t *Dense) At(indices ...int) float64 {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(t.shape), len(indices)))
	}

	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, t.shape[i]))
		}
		offset += idx * t.strides[i]
	}
	return t.data[offset]
}

// Clone returns a deep copy.
func (t *Dense) Clone() *Dense {
	out, _ := FromSlice(t.data, t.shape)
	return out
}

// Reshape returns a tensor sharing no memory with t and carrying shape.
func (t *Dense) Reshape(shape Shape) (*Dense, error) {
	if shape.NumElements() != len(t.data) {
		return nil, fmt.Errorf("%w: cannot reshape %v into %v", ErrShapeMismatch, t.shape, shape)
	}
	return FromSlice(t.data, shape)
}

// String returns a human-readable representation of the tensor.
func (t *Dense) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Dense%v[", []int(t.shape))
	const limit = 8
	for i, v := range t.data {
		if i == limit {
			fmt.Fprintf(&sb, " ...(%d more)", len(t.data)-limit)
			break
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%g", v)
	}
	sb.WriteByte(']')
	return sb.String()
}

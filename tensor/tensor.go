// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/bayesflow/internal/tensor"
)

// Shape represents the dimensions of a tensor. The empty shape is a scalar.
type Shape = tensor.Shape

// Dense is a row-major float64 tensor.
type Dense = tensor.Dense

// ErrShapeMismatch is returned when tensor shapes are incompatible.
var ErrShapeMismatch = tensor.ErrShapeMismatch

// New creates a tensor that takes ownership of data.
func New(data []float64, shape Shape) (*Dense, error) {
	return tensor.New(data, shape)
}

// FromSlice creates a tensor from a copy of data.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
func FromSlice(data []float64, shape Shape) (*Dense, error) {
	return tensor.FromSlice(data, shape)
}

// Vector creates a 1-D tensor.
func Vector(values ...float64) *Dense {
	return tensor.Vector(values...)
}

// Scalar creates a 0-D tensor.
func Scalar(v float64) *Dense {
	return tensor.Scalar(v)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Dense {
	return tensor.Zeros(shape)
}

// Full creates a tensor filled with v.
func Full(shape Shape, v float64) *Dense {
	return tensor.Full(shape, v)
}

// Binary applies fn element-wise over the broadcast of a and b.
func Binary(a, b *Dense, fn func(a, b float64) float64) (*Dense, error) {
	return tensor.Binary(a, b, fn)
}

// BroadcastShapes returns the NumPy-style broadcast of a and b.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}

// AllClose reports whether every element satisfies |a-b| <= atol + rtol*|b|.
func AllClose(a, b *Dense, rtol, atol float64) bool {
	return tensor.AllClose(a, b, rtol, atol)
}

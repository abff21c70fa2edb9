// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 tensors used throughout bayesflow.
//
// # Overview
//
// A Dense tensor is a row-major []float64 with a Shape. Samples drawn from
// a distribution are tensors whose first axis is the sample axis:
//
//	z, _ := p.SampleN(1000, distributions.NewSource(42)) // Shape: [1000, 2]
//	m := z.Mean(0)                                         // Shape: [2]
//
// # Broadcasting
//
// Binary operations follow NumPy broadcasting rules:
//
//	a := tensor.Zeros(tensor.Shape{3, 1})  // (3, 1)
//	b := tensor.Vector(1, 2, 4, 8)         // (4,)
//	c := a.Add(b)                          // (3, 4)
//
// Incompatible shapes panic in the method form (Add, Sub, Mul, Div) and
// return ErrShapeMismatch from Binary and BroadcastTo.
//
// # Available Operations
//
// Elementwise:
//
//	y := x.Square()
//	y := x.Exp()
//	y := x.Log()
//	y := x.Sqrt()
//	y := x.Sign()
//	y := x.Relu()
//	y := x.AddScalar(1).MulScalar(0.5)
//
// Reductions (negative axes count from the end):
//
//	y := x.ReduceSum(0)
//	y := x.ReduceProd(-1)
//	y := x.Mean(0)
//	y := x.Max(-1)
package tensor

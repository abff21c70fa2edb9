// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"errors"
	"testing"

	"github.com/born-ml/bayesflow/tensor"
)

// TestDenseAPI verifies the Dense alias exposes the expected API.
func TestDenseAPI(t *testing.T) {
	x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	if !x.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", x.Shape())
	}
	if n := x.NumElements(); n != 6 {
		t.Errorf("NumElements() = %d, want 6", n)
	}
	if v := x.At(1, 0); v != 4 {
		t.Errorf("At(1, 0) = %v, want 4", v)
	}

	sum := x.ReduceSum(-1)
	if !tensor.AllClose(sum, tensor.Vector(6, 15), 0, 1e-12) {
		t.Errorf("ReduceSum(-1) = %v, want [6 15]", sum)
	}
}

// TestBroadcastAPI verifies broadcasting through the public API.
func TestBroadcastAPI(t *testing.T) {
	a := tensor.Zeros(tensor.Shape{3, 1})
	b := tensor.Vector(1, 2, 4, 8)

	c := a.Add(b)
	if !c.Shape().Equal(tensor.Shape{3, 4}) {
		t.Errorf("Add shape = %v, want [3 4]", c.Shape())
	}

	if _, err := tensor.Binary(tensor.Vector(1, 2), tensor.Vector(1, 2, 3), func(x, y float64) float64 { return x + y }); !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

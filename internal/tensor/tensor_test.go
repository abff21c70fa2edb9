package tensor

import (
	"errors"
	"math"
	"testing"
)

// Test helpers

func assertEqualFloat64(t *testing.T, expected, actual float64, msg string) {
	t.Helper()
	if math.Abs(expected-actual) > 1e-12 {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func assertEqualShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

func mustNew(t *testing.T, data []float64, shape Shape) *Dense {
	t.Helper()
	x, err := FromSlice(data, shape)
	if err != nil {
		t.Fatalf("FromSlice(%v, %v): %v", data, shape, err)
	}
	return x
}

// Shape Tests

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeValidation(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("zero dimension accepted")
	}
	if err := (Shape{-1}).Validate(); err == nil {
		t.Error("negative dimension accepted")
	}
}

func TestShapeHasSuffix(t *testing.T) {
	s := Shape{10, 2, 3}
	if !s.HasSuffix(Shape{2, 3}) {
		t.Error("expected suffix [2 3]")
	}
	if !s.HasSuffix(Shape{}) {
		t.Error("empty shape is a suffix of every shape")
	}
	if s.HasSuffix(Shape{3, 2}) {
		t.Error("unexpected suffix [3 2]")
	}
	if s.HasSuffix(Shape{1, 10, 2, 3}) {
		t.Error("longer shape cannot be a suffix")
	}
}

func TestComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("stride[%d] = %d, want %d", i, strides[i], want[i])
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b      Shape
		want      Shape
		broadcast bool
		wantErr   bool
	}{
		{Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, false},
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, false},
		{Shape{5}, Shape{3, 5}, Shape{3, 5}, true, false},
		{Shape{}, Shape{2}, Shape{2}, true, false},
		{Shape{3, 4}, Shape{3, 5}, nil, false, true},
	}

	for _, tt := range tests {
		got, broadcast, err := BroadcastShapes(tt.a, tt.b)
		if tt.wantErr {
			if !errors.Is(err, ErrShapeMismatch) {
				t.Errorf("BroadcastShapes(%v, %v): expected ErrShapeMismatch, got %v", tt.a, tt.b, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("BroadcastShapes(%v, %v): %v", tt.a, tt.b, err)
			continue
		}
		assertEqualShape(t, tt.want, got, "broadcast result")
		if broadcast != tt.broadcast {
			t.Errorf("BroadcastShapes(%v, %v) broadcast = %v, want %v", tt.a, tt.b, broadcast, tt.broadcast)
		}
	}
}

func TestNormalizeAxis(t *testing.T) {
	if got, err := NormalizeAxis(-1, 3); err != nil || got != 2 {
		t.Errorf("NormalizeAxis(-1, 3) = %d, %v", got, err)
	}
	if _, err := NormalizeAxis(3, 3); err == nil {
		t.Error("axis 3 accepted for rank 3")
	}
	if _, err := NormalizeAxis(0, 0); err == nil {
		t.Error("axis 0 accepted for scalar")
	}
}

// Dense Tests

func TestNewRejectsWrongLength(t *testing.T) {
	if _, err := New([]float64{1, 2, 3}, Shape{2, 2}); err == nil {
		t.Error("expected error for mismatched data length")
	}
}

func TestScalarAndItem(t *testing.T) {
	s := Scalar(3.5)
	assertEqualShape(t, Shape{}, s.Shape(), "scalar shape")
	assertEqualFloat64(t, 3.5, s.Item(), "scalar item")
}

func TestAt(t *testing.T) {
	x := mustNew(t, []float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	assertEqualFloat64(t, 6, x.At(1, 2), "At(1, 2)")
	assertEqualFloat64(t, 2, x.At(0, 1), "At(0, 1)")

	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-bounds index")
		}
	}()
	x.At(2, 0)
}

func TestElementwise(t *testing.T) {
	x := Vector(-2, 0, 3)

	sq := x.Square().Data()
	for i, want := range []float64{4, 0, 9} {
		assertEqualFloat64(t, want, sq[i], "Square")
	}

	relu := x.Relu().Data()
	for i, want := range []float64{0, 0, 3} {
		assertEqualFloat64(t, want, relu[i], "Relu")
	}

	sign := x.Sign().Data()
	for i, want := range []float64{-1, 0, 1} {
		assertEqualFloat64(t, want, sign[i], "Sign")
	}

	if got := x.Data()[0]; got != -2 {
		t.Errorf("receiver modified: %v", got)
	}
}

func TestAddBroadcast(t *testing.T) {
	a := mustNew(t, []float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	b := Vector(10, 20, 30)

	c := a.Add(b)
	assertEqualShape(t, Shape{2, 3}, c.Shape(), "Add shape")
	want := []float64{11, 22, 33, 14, 25, 36}
	for i := range want {
		assertEqualFloat64(t, want[i], c.Data()[i], "Add")
	}

	d := a.Sub(Scalar(1))
	assertEqualFloat64(t, 5, d.At(1, 2), "Sub scalar")
}

func TestAddIncompatiblePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for incompatible shapes")
		}
	}()
	Vector(1, 2).Add(Vector(1, 2, 3))
}

func TestReductions(t *testing.T) {
	x := mustNew(t, []float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})

	sum0 := x.ReduceSum(0)
	assertEqualShape(t, Shape{3}, sum0.Shape(), "ReduceSum(0) shape")
	for i, want := range []float64{5, 7, 9} {
		assertEqualFloat64(t, want, sum0.Data()[i], "ReduceSum(0)")
	}

	prod := x.ReduceProd(-1)
	assertEqualShape(t, Shape{2}, prod.Shape(), "ReduceProd shape")
	assertEqualFloat64(t, 6, prod.Data()[0], "ReduceProd row 0")
	assertEqualFloat64(t, 120, prod.Data()[1], "ReduceProd row 1")

	mean := x.Mean(0)
	assertEqualFloat64(t, 2.5, mean.Data()[0], "Mean(0)")

	m := x.Max(1)
	assertEqualFloat64(t, 3, m.Data()[0], "Max row 0")
	assertEqualFloat64(t, 6, m.Data()[1], "Max row 1")

	// Reducing a vector yields a scalar.
	s := Vector(1, 2, 3).ReduceSum(0)
	assertEqualShape(t, Shape{}, s.Shape(), "vector reduction shape")
	assertEqualFloat64(t, 6, s.Item(), "vector reduction")
}

func TestReduceBadAxis(t *testing.T) {
	if _, err := Vector(1, 2).Reduce(1, func([]float64) float64 { return 0 }); err == nil {
		t.Error("expected error for out-of-range axis")
	}
}

func TestAllClose(t *testing.T) {
	a := Vector(1, 2, 3)
	if !AllClose(a, Vector(1.005, 2, 3), 0.01, 0) {
		t.Error("expected close within rtol")
	}
	if AllClose(a, Vector(1.1, 2, 3), 0.01, 0) {
		t.Error("expected not close")
	}
	if AllClose(a, Vector(1, 2), 1, 1) {
		t.Error("different shapes reported close")
	}
}

func TestReshape(t *testing.T) {
	x := Vector(1, 2, 3, 4)
	y, err := x.Reshape(Shape{2, 2})
	if err != nil {
		t.Fatal(err)
	}
	assertEqualFloat64(t, 3, y.At(1, 0), "reshaped At")
	if _, err := x.Reshape(Shape{3}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

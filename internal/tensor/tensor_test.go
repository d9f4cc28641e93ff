package tensor

import "testing"

func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
		{Shape{10, 0}, 0},
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("NumElements(%v) = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShape_Validate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Validate({2,3}) = %v, want nil", err)
	}

	// Zero-size dimensions are legal (empty batch, zero columns).
	if err := (Shape{4, 0}).Validate(); err != nil {
		t.Errorf("Validate({4,0}) = %v, want nil", err)
	}

	if err := (Shape{2, -1}).Validate(); err == nil {
		t.Error("Validate({2,-1}) = nil, want error")
	}
}

func TestShape_ComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("ComputeStrides({2,3,4}) = %v, want %v", strides, want)
			break
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
		{Shape{1, 5}, Shape{3, 5}, Shape{3, 5}, true, false},
		{Shape{5}, Shape{3, 5}, Shape{3, 5}, true, false},
		{Shape{1, 1}, Shape{4, 2}, Shape{4, 2}, true, false},
		{Shape{1, 4, 1}, Shape{4, 2}, Shape{1, 4, 2}, true, false},
		{Shape{3, 4}, Shape{3, 5}, nil, false, true},
	}

	for _, tt := range tests {
		got, broadcast, err := BroadcastShapes(tt.a, tt.b)
		if tt.wantErr {
			if err == nil {
				t.Errorf("BroadcastShapes(%v, %v) = %v, want error", tt.a, tt.b, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("BroadcastShapes(%v, %v) unexpected error: %v", tt.a, tt.b, err)
			continue
		}
		if !got.Equal(tt.want) || broadcast != tt.broadcast {
			t.Errorf("BroadcastShapes(%v, %v) = %v, %v, want %v, %v",
				tt.a, tt.b, got, broadcast, tt.want, tt.broadcast)
		}
	}
}

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float64, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	if !raw.Shape().Equal(Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", raw.Shape())
	}
	if raw.DType() != Float64 {
		t.Errorf("DType() = %v, want Float64", raw.DType())
	}
	if raw.NumElements() != 6 {
		t.Errorf("NumElements() = %d, want 6", raw.NumElements())
	}
	if raw.ByteSize() != 6*8 {
		t.Errorf("ByteSize() = %d, want 48", raw.ByteSize())
	}

	// Freshly allocated memory is zeroed.
	for i, v := range raw.AsFloat64() {
		if v != 0 {
			t.Errorf("element %d = %v, want 0", i, v)
		}
	}
}

func TestNewRaw_InvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{2, -3}, Float32, CPU); err == nil {
		t.Error("NewRaw with negative dimension: want error, got nil")
	}
}

func TestRawTensor_EmptyDataAccess(t *testing.T) {
	raw, err := NewRaw(Shape{4, 0}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	if got := raw.AsFloat32(); got != nil {
		t.Errorf("AsFloat32() on empty tensor = %v, want nil", got)
	}
}

func TestRawTensor_Clone(t *testing.T) {
	raw, err := NewRaw(Shape{2, 2}, Float64, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	raw.AsFloat64()[0] = 42

	clone := raw.Clone()
	if clone == raw {
		t.Fatal("Clone() returned the same tensor")
	}
	if clone.AsFloat64()[0] != 42 {
		t.Errorf("clone[0] = %v, want 42", clone.AsFloat64()[0])
	}

	// Deep copy: the clone has its own buffer.
	clone.AsFloat64()[0] = 7
	if raw.AsFloat64()[0] != 42 {
		t.Errorf("original[0] = %v after clone mutation, want 42", raw.AsFloat64()[0])
	}
}

func TestDataType(t *testing.T) {
	if Float32.Size() != 4 || Float64.Size() != 8 {
		t.Errorf("Size() = %d, %d, want 4, 8", Float32.Size(), Float64.Size())
	}
	if Float32.String() != "float32" || Float64.String() != "float64" {
		t.Errorf("String() = %q, %q", Float32.String(), Float64.String())
	}
}

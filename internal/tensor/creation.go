package tensor

import "fmt"

// newFilled creates a tensor filled with a constant value.
func newFilled[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), b.Device())
	if err != nil {
		panic(fmt.Sprintf("tensor creation: %v", err))
	}

	t := New[T, B](raw, b)
	if value != 0 {
		data := t.Data()
		for i := range data {
			data[i] = value
		}
	}
	return t
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return newFilled(shape, T(0), b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return newFilled(shape, T(1), b)
}

// Full creates a tensor filled with a specific value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return newFilled(shape, value, b)
}

// Arange creates a 1D tensor with values from start to end (exclusive), step 1.
func Arange[T DType, B Backend](start, end T, b B) *Tensor[T, B] {
	n := int(end - start)
	if n < 0 {
		n = 0
	}
	t := newFilled(Shape{n}, T(0), b)
	data := t.Data()
	for i := range data {
		data[i] = start + T(i)
	}
	return t
}

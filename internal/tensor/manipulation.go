package tensor

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same shape except along the concatenation
// dimension. Supports negative dim indexing (-1 = last dimension).
//
// Example:
//
//	a := tensor.Ones[float32](Shape{2, 3}, backend)
//	b := tensor.Zeros[float32](Shape{2, 5}, backend)
//	c := tensor.Cat([]*Tensor[float32, B]{a, b}, 1) // Shape: [2, 8]
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	rawTensors := make([]*RawTensor, len(tensors))
	backend := tensors[0].backend
	for i, t := range tensors {
		rawTensors[i] = t.raw
	}

	result := backend.Cat(rawTensors, dim)
	return New[T, B](result, backend)
}

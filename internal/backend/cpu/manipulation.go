package cpu

import (
	"fmt"

	"github.com/pinn-ml/pinn/internal/tensor"
)

// Cat concatenates tensors along the specified dimension.
// All tensors must agree on every dimension except dim.
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	first := tensors[0]
	shape := first.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("cat: invalid dimension %d for shape %v", dim, shape))
	}

	outShape := shape.Clone()
	for _, t := range tensors[1:] {
		ts := t.Shape()
		if len(ts) != ndim {
			panic(fmt.Sprintf("cat: rank mismatch: %v vs %v", shape, ts))
		}
		for d := 0; d < ndim; d++ {
			if d == dim {
				continue
			}
			if ts[d] != shape[d] {
				panic(fmt.Sprintf("cat: shape mismatch along dimension %d: %v vs %v", d, shape, ts))
			}
		}
		if t.DType() != first.DType() {
			panic(fmt.Sprintf("cat: dtype mismatch: %s vs %s", first.DType(), t.DType()))
		}
		outShape[dim] += ts[dim]
	}

	result, err := tensor.NewRaw(outShape, first.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cat: failed to create result tensor: %v", err))
	}

	offset := 0
	for _, t := range tensors {
		switch t.DType() {
		case tensor.Float32:
			scatterConcat(result.AsFloat32(), t.AsFloat32(), outShape, t.Shape(), dim, offset)
		case tensor.Float64:
			scatterConcat(result.AsFloat64(), t.AsFloat64(), outShape, t.Shape(), dim, offset)
		default:
			panic(fmt.Sprintf("cat: unsupported dtype %s", t.DType()))
		}
		offset += t.Shape()[dim]
	}

	return result
}

// IndexSelect gathers slices along a dimension, in index order.
// Repeated indices are allowed.
func (cpu *CPUBackend) IndexSelect(t *tensor.RawTensor, dim int, indices []int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("indexselect: invalid dimension %d for shape %v", dim, shape))
	}
	for _, idx := range indices {
		if idx < 0 || idx >= shape[dim] {
			panic(fmt.Sprintf("indexselect: index %d out of range for dimension %d of shape %v", idx, dim, shape))
		}
	}

	outShape := shape.Clone()
	outShape[dim] = len(indices)

	result, err := tensor.NewRaw(outShape, t.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("indexselect: failed to create result tensor: %v", err))
	}

	switch t.DType() {
	case tensor.Float32:
		gatherAlongDim(result.AsFloat32(), t.AsFloat32(), shape, dim, indices)
	case tensor.Float64:
		gatherAlongDim(result.AsFloat64(), t.AsFloat64(), shape, dim, indices)
	default:
		panic(fmt.Sprintf("indexselect: unsupported dtype %s", t.DType()))
	}

	return result
}

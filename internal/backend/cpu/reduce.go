package cpu

import (
	"fmt"

	"github.com/pinn-ml/pinn/internal/tensor"
)

// SumDim sums the tensor along a dimension.
//
// With keepDim the reduced dimension is kept with size 1, otherwise it is
// removed from the shape. Supports negative dim indexing.
func (cpu *CPUBackend) SumDim(t *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("sumdim: invalid dimension %d for shape %v", dim, shape))
	}

	// Accumulate into the keep-dim layout; the linear order matches the
	// squeezed layout, so dropping the dimension is a reshape.
	keepShape := shape.Clone()
	keepShape[dim] = 1

	result, err := tensor.NewRaw(keepShape, t.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sumdim: failed to create result tensor: %v", err))
	}

	switch t.DType() {
	case tensor.Float32:
		sumAlongDim(result.AsFloat32(), t.AsFloat32(), shape, dim)
	case tensor.Float64:
		sumAlongDim(result.AsFloat64(), t.AsFloat64(), shape, dim)
	default:
		panic(fmt.Sprintf("sumdim: unsupported dtype %s", t.DType()))
	}

	if !keepDim {
		squeezed := make(tensor.Shape, 0, ndim-1)
		for d, size := range keepShape {
			if d != dim {
				squeezed = append(squeezed, size)
			}
		}
		return cpu.Reshape(result, squeezed)
	}

	return result
}

package ops

import (
	"fmt"

	"github.com/pinn-ml/pinn/internal/tensor"
)

// zerosLike creates a zero tensor with the given shape. The result is a
// graph leaf: it carries no history and contributes nothing to gradients.
func zerosLike(shape tensor.Shape, dtype tensor.DataType, device tensor.Device) *tensor.RawTensor {
	z, err := tensor.NewRaw(shape, dtype, device)
	if err != nil {
		panic(fmt.Sprintf("ops: failed to create zero tensor: %v", err))
	}
	return z
}

// negate returns -grad, computed through the backend so it stays on the graph.
func negate(grad *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	zeros := zerosLike(grad.Shape(), grad.DType(), backend.Device())
	return backend.Sub(zeros, grad)
}

// reduceBroadcast reduces a gradient tensor to match the target shape.
// This is necessary when broadcasting was used in the forward pass.
//
// Example:
//
//	Forward: a[3,1] * b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
//
// Reductions go through the backend so they are recorded like any other
// operation. When the shapes already match, the gradient is returned as-is:
// its identity must survive, it may be the output of an earlier recorded
// operation that a second-order pass will walk through.
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()
	if gradShape.Equal(targetShape) {
		return grad
	}

	// Sum away leading dimensions the target does not have.
	result := grad
	for len(result.Shape()) > len(targetShape) {
		result = backend.SumDim(result, 0, false)
	}

	// Sum along dimensions where the target is 1.
	for d := 0; d < len(targetShape); d++ {
		if targetShape[d] == 1 && result.Shape()[d] > 1 {
			result = backend.SumDim(result, d, true)
		}
	}

	if !result.Shape().Equal(targetShape) {
		result = backend.Reshape(result, targetShape)
	}

	return result
}

// expandTo broadcasts a gradient up to the target shape by adding a zero
// tensor of that shape. The addition is a recorded backend operation, so the
// expansion stays differentiable.
func expandTo(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if grad.Shape().Equal(targetShape) {
		return grad
	}
	zeros := zerosLike(targetShape, grad.DType(), backend.Device())
	return backend.Add(zeros, grad)
}

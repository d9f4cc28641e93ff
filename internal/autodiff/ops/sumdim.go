package ops

import "github.com/pinn-ml/pinn/internal/tensor"

// SumDimOp represents a reduction sum along a dimension: output = sum(x, dim).
//
// Forward:
//
//	y = sum(x, dim, keepDim)
//
// Backward:
//
//	grad_x = broadcast(grad_y, x.shape)
//
// Each input element contributes 1.0 to its output element, so the gradient
// is the output gradient broadcast back over the reduced dimension.
type SumDimOp struct {
	inputs  []*tensor.RawTensor // [x]
	output  *tensor.RawTensor   // sum(x, dim)
	dim     int                 // dimension that was reduced (normalized)
	keepDim bool                // whether the reduced dimension was kept
}

// NewSumDimOp creates a new SumDimOp.
func NewSumDimOp(x, output *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{
		inputs:  []*tensor.RawTensor{x},
		output:  output,
		dim:     dim,
		keepDim: keepDim,
	}
}

// Backward computes input gradients for sum reduction.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	grad := outputGrad

	// Restore the reduced dimension as size 1 so broadcasting lines up.
	if !op.keepDim {
		keepShape := x.Shape().Clone()
		dim := op.dim
		if dim < 0 {
			dim = len(keepShape) + dim
		}
		keepShape[dim] = 1
		grad = backend.Reshape(grad, keepShape)
	}

	gradX := expandTo(grad, x.Shape(), backend)

	return []*tensor.RawTensor{gradX}
}

// Inputs returns the input tensors [x].
func (op *SumDimOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor sum(x, dim).
func (op *SumDimOp) Output() *tensor.RawTensor {
	return op.output
}

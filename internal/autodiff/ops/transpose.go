package ops

import "github.com/pinn-ml/pinn/internal/tensor"

// TransposeOp represents a dimension permutation.
//
// Backward pass: apply the inverse permutation to the output gradient.
type TransposeOp struct {
	inputs []*tensor.RawTensor // [x]
	output *tensor.RawTensor   // transposed x
	axes   []int               // permutation applied in the forward pass
}

// NewTransposeOp creates a new TransposeOp. axes must be normalized
// (one entry per dimension).
func NewTransposeOp(x, output *tensor.RawTensor, axes []int) *TransposeOp {
	return &TransposeOp{
		inputs: []*tensor.RawTensor{x},
		output: output,
		axes:   axes,
	}
}

// Backward computes input gradients for transpose.
func (op *TransposeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	// Inverse permutation: if forward moved axis a to position i,
	// backward moves axis i back to position a.
	inverse := make([]int, len(op.axes))
	for i, ax := range op.axes {
		inverse[ax] = i
	}

	return []*tensor.RawTensor{backend.Transpose(outputGrad, inverse...)}
}

// Inputs returns the input tensors [x].
func (op *TransposeOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the transposed output tensor.
func (op *TransposeOp) Output() *tensor.RawTensor {
	return op.output
}

package ops

import "github.com/pinn-ml/pinn/internal/tensor"

// ReshapeOp represents a reshape operation.
//
// Reshape is element-order preserving, so the backward pass just reshapes
// the output gradient back to the input's shape.
type ReshapeOp struct {
	inputs []*tensor.RawTensor // [x]
	output *tensor.RawTensor   // reshaped x
}

// NewReshapeOp creates a new ReshapeOp.
func NewReshapeOp(x, output *tensor.RawTensor) *ReshapeOp {
	return &ReshapeOp{
		inputs: []*tensor.RawTensor{x},
		output: output,
	}
}

// Backward computes input gradients for reshape.
func (op *ReshapeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	return []*tensor.RawTensor{backend.Reshape(outputGrad, x.Shape())}
}

// Inputs returns the input tensors [x].
func (op *ReshapeOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the reshaped output tensor.
func (op *ReshapeOp) Output() *tensor.RawTensor {
	return op.output
}

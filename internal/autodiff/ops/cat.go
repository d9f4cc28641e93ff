package ops

import "github.com/pinn-ml/pinn/internal/tensor"

// CatOp represents a concatenation operation along a dimension.
//
// Forward: output = Cat([input1, input2, ...], dim)
//
// Backward: split the output gradient along dim at the input boundaries;
// each input receives the slice corresponding to its contribution. The
// split is an IndexSelect through the backend, so it stays on the graph.
type CatOp struct {
	inputs []*tensor.RawTensor // tensors that were concatenated
	dim    int                 // concatenation dimension (normalized)
	sizes  []int               // size of each input along dim
	output *tensor.RawTensor   // concatenated output
}

// NewCatOp creates a new CatOp.
func NewCatOp(inputs []*tensor.RawTensor, dim int, sizes []int, output *tensor.RawTensor) *CatOp {
	return &CatOp{
		inputs: inputs,
		dim:    dim,
		sizes:  sizes,
		output: output,
	}
}

// Backward computes gradients for the input tensors.
func (op *CatOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grads := make([]*tensor.RawTensor, len(op.inputs))

	offset := 0
	for i, size := range op.sizes {
		indices := make([]int, size)
		for j := range indices {
			indices[j] = offset + j
		}
		grads[i] = backend.IndexSelect(outputGrad, op.dim, indices)
		offset += size
	}

	return grads
}

// Inputs returns the input tensors.
func (op *CatOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor.
func (op *CatOp) Output() *tensor.RawTensor {
	return op.output
}

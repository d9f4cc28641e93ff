package ops

import "github.com/pinn-ml/pinn/internal/tensor"

// IndexSelectOp represents a gather of slices along a dimension.
//
// Forward: output = IndexSelect(x, dim, indices)
//
// Backward: scatter the output gradient back into the input's shape.
// Positions along dim that were not selected receive zero; positions
// selected more than once accumulate their slices. The scatter is built
// from IndexSelect, Add, and Cat backend calls so that gradients of
// gradients flow through extraction (column selection by label is the
// entry point of every differentiation in the operator layer).
type IndexSelectOp struct {
	inputs  []*tensor.RawTensor // [x]
	output  *tensor.RawTensor   // gathered slices
	dim     int                 // gather dimension (normalized)
	indices []int               // selected positions along dim
}

// NewIndexSelectOp creates a new IndexSelectOp.
func NewIndexSelectOp(x, output *tensor.RawTensor, dim int, indices []int) *IndexSelectOp {
	return &IndexSelectOp{
		inputs:  []*tensor.RawTensor{x},
		output:  output,
		dim:     dim,
		indices: indices,
	}
}

// Backward computes input gradients for index selection.
func (op *IndexSelectOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	xShape := x.Shape()

	sliceShape := xShape.Clone()
	sliceShape[op.dim] = 1

	parts := make([]*tensor.RawTensor, xShape[op.dim])
	for p := range parts {
		var part *tensor.RawTensor
		for j, idx := range op.indices {
			if idx != p {
				continue
			}
			slice := backend.IndexSelect(outputGrad, op.dim, []int{j})
			if part == nil {
				part = slice
			} else {
				part = backend.Add(part, slice)
			}
		}
		if part == nil {
			part = zerosLike(sliceShape, outputGrad.DType(), backend.Device())
		}
		parts[p] = part
	}

	return []*tensor.RawTensor{backend.Cat(parts, op.dim)}
}

// Inputs returns the input tensors [x].
func (op *IndexSelectOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the gathered output tensor.
func (op *IndexSelectOp) Output() *tensor.RawTensor {
	return op.output
}

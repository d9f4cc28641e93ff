// Package ops defines operation records for automatic differentiation.
//
// Each operation implements the Operation interface: the forward pass is
// computed by the backend, the backward pass computes input gradients from
// the output gradient.
//
// Every Backward implementation is expressed through backend calls rather
// than private kernels. When the tape keeps recording during a backward pass,
// the gradient computation is therefore itself part of the graph, which is
// what makes second-order differentiation (gradient of a gradient) exact.
package ops

import "github.com/pinn-ml/pinn/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
// Each operation records its inputs and output during the forward pass,
// and computes input gradients during the backward pass.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor.
	//
	// Example for AddOp:
	//   inputs: [a, b]
	//   outputGrad: dL/d(a+b)
	//   returns: [dL/d(a+b), dL/d(a+b)] (gradient flows equally to both inputs)
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}

// Copyright 2026 Pinn ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// This package implements backpropagation using a gradient tape. It wraps
// any backend to add gradient tracking; the tape can keep recording during
// a backward pass so that gradients can themselves be differentiated
// (second-order derivatives).
//
// Example:
//
//	import (
//	    "github.com/pinn-ml/pinn/autodiff"
//	    "github.com/pinn-ml/pinn/backend/cpu"
//	    "github.com/pinn-ml/pinn/tensor"
//	)
//
//	func main() {
//	    // Wrap CPU backend with autodiff
//	    backend := autodiff.New(cpu.New())
//	    backend.Tape().StartRecording()
//
//	    x, _ := tensor.FromSlice([]float64{3}, tensor.Shape{1, 1}, backend)
//	    y := x.Mul(x) // y = x², recorded on tape
//
//	    // Compute dy/dx = 2x = 6
//	    ones := tensor.Ones[float64](tensor.Shape{1, 1}, backend)
//	    dydx, _ := autodiff.Differentiate(y, x, ones, false)
//	}
package autodiff

import (
	"github.com/pinn-ml/pinn/internal/autodiff"
	"github.com/pinn-ml/pinn/internal/tensor"
)

// Backend is the autodiff-enabled backend.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New creates a new autodiff backend wrapping the given backend.
//
// Example:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// BackwardCapable is the interface for backends that support backward
// passes. Backend[B] implements it.
type BackwardCapable = autodiff.BackwardCapable

// Differentiate computes d(output)/d(input), weighting each output element
// by the corresponding element of weights.
//
// output must be graph-connected to input: computed from it with operations
// recorded on the backend's tape. With retain the graph is kept and the
// backward pass is itself recorded, so the result can be differentiated
// again; without retain the tape is cleared after the pass.
//
// If output does not depend on input, the result is a zero tensor of
// input's shape.
func Differentiate[T tensor.DType, B BackwardCapable](
	output, input, weights *tensor.Tensor[T, B],
	retain bool,
) (*tensor.Tensor[T, B], error) {
	return autodiff.Differentiate(output, input, weights, retain)
}

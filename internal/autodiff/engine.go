package autodiff

import (
	"fmt"

	"github.com/pinn-ml/pinn/internal/tensor"
)

// BackwardCapable is an interface for backends that support backward passes.
// AutodiffBackend implements this interface.
type BackwardCapable interface {
	tensor.Backend
	// GetTape returns the gradient tape for backward computation.
	GetTape() *GradientTape
}

// GetTape returns the gradient tape (implements BackwardCapable interface).
func (b *AutodiffBackend[B]) GetTape() *GradientTape {
	return b.tape
}

// Differentiate computes d(output)/d(input), weighting each output element
// by the corresponding element of weights.
//
// output must have been computed from input with operations recorded on the
// backend's tape (graph-connected). weights must match output's shape; for
// the plain sum-of-rows derivative used by differential operators, pass an
// all-ones tensor.
//
// With retain the graph is kept alive and the backward pass is itself
// recorded, so the returned tensor can be differentiated again (this is how
// second-order operators work). Without retain, the tape is cleared after
// the pass; use that on the final differentiation of a training step.
//
// If output does not depend on input at all, the result is a zero tensor of
// input's shape rather than an error ("allow unused" policy): a component
// that ignores a coordinate has derivative zero with respect to it.
func Differentiate[T tensor.DType, B BackwardCapable](
	output, input, weights *tensor.Tensor[T, B],
	retain bool,
) (*tensor.Tensor[T, B], error) {
	if output == nil || input == nil || weights == nil {
		return nil, fmt.Errorf("differentiate: nil tensor argument")
	}
	if !weights.Shape().Equal(output.Shape()) {
		return nil, fmt.Errorf("differentiate: weights shape %v does not match output shape %v",
			weights.Shape(), output.Shape())
	}

	backend := output.Backend()
	tape := backend.GetTape()
	if tape.NumOps() == 0 {
		return nil, fmt.Errorf("differentiate: no operations recorded (did you forget to call Tape().StartRecording()?)")
	}

	grads := tape.BackwardFrom(output.Raw(), weights.Raw(), backend, retain)
	if !retain {
		tape.Clear()
	}

	grad, ok := grads[input.Raw()]
	if !ok {
		// Output does not depend on input: zero derivative.
		zero, err := tensor.NewRaw(input.Shape(), input.DType(), backend.Device())
		if err != nil {
			return nil, fmt.Errorf("differentiate: %w", err)
		}
		grad = zero
	}

	return tensor.New[T, B](grad, backend), nil
}

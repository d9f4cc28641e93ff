package autodiff

import (
	"github.com/pinn-ml/pinn/internal/autodiff/ops"
	"github.com/pinn-ml/pinn/internal/tensor"
)

// GradientTape records operations during the forward pass and computes
// gradients during the backward pass using reverse-mode automatic
// differentiation.
//
// Usage:
//
//	tape := NewGradientTape()
//	tape.StartRecording()
//	// ... perform operations ...
//	gradients := tape.BackwardFrom(output, seed, backend, false)
type GradientTape struct {
	operations []ops.Operation // Recorded operations (in execution order)
	recording  bool            // Whether tape is currently recording
}

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{
		operations: make([]ops.Operation, 0, 64), // Pre-allocate for common case
		recording:  false,
	}
}

// StartRecording enables operation recording.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// StopRecording disables operation recording.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// IsRecording returns true if the tape is currently recording operations.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// Record adds an operation to the tape.
// Only records if the tape is currently recording.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// Clear resets the tape, removing all recorded operations.
// Recording state is preserved.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
}

// NumOps returns the number of recorded operations.
func (t *GradientTape) NumOps() int {
	return len(t.operations)
}

// BackwardFrom computes gradients of output with respect to every tensor it
// depends on, seeding the walk with the given output gradient.
//
// Algorithm:
//  1. Attach the seed gradient to the output tensor (any tensor on the
//     graph, not necessarily the last operation's result)
//  2. Walk the recorded operations in reverse order
//  3. For each operation whose output has a gradient, compute input
//     gradients via the chain rule
//  4. Accumulate gradients when the same tensor is used multiple times
//
// With createGraph the tape keeps recording while the backward pass runs:
// every gradient computation becomes part of the graph, so the returned
// gradients can themselves be differentiated (second-order derivatives).
// Without createGraph, recording is paused for the duration of the walk.
//
// Only the operations recorded before the call are walked; operations the
// backward pass itself records are left for a future walk.
//
// Returns a map from RawTensor to its accumulated gradient.
func (t *GradientTape) BackwardFrom(
	output *tensor.RawTensor,
	seed *tensor.RawTensor,
	backend tensor.Backend,
	createGraph bool,
) map[*tensor.RawTensor]*tensor.RawTensor {
	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	grads[output] = seed

	if !createGraph {
		wasRecording := t.recording
		t.recording = false
		defer func() {
			t.recording = wasRecording
		}()
	}

	// Snapshot the length: ops appended during a createGraph walk belong
	// to the next differentiation, not this one.
	numOps := len(t.operations)
	for i := numOps - 1; i >= 0; i-- {
		op := t.operations[i]

		outputGrad, ok := grads[op.Output()]
		if !ok {
			// No gradient flows through this operation.
			continue
		}

		inputGrads := op.Backward(outputGrad, backend)
		t.accumulateGrads(op, inputGrads, grads, backend)
	}

	return grads
}

// accumulateGrads accumulates gradients for each input tensor.
func (t *GradientTape) accumulateGrads(
	op ops.Operation,
	inputGrads []*tensor.RawTensor,
	grads map[*tensor.RawTensor]*tensor.RawTensor,
	backend tensor.Backend,
) {
	inputs := op.Inputs()
	for j, input := range inputs {
		if j >= len(inputGrads) {
			break
		}
		inputGrad := inputGrads[j]
		if inputGrad == nil {
			continue
		}
		if existing, ok := grads[input]; ok {
			grads[input] = backend.Add(existing, inputGrad)
		} else {
			grads[input] = inputGrad
		}
	}
}

// Package autodiff implements automatic differentiation using the decorator pattern.
//
// AutodiffBackend wraps any Backend implementation and adds gradient tracking
// through a GradientTape.
//
// Architecture:
//   - Decorator pattern: AutodiffBackend[B] wraps any Backend implementation
//   - GradientTape: records operations during the forward pass
//   - Operation records: each op implements its own backward pass
//   - Reverse-mode AD: gradients computed by walking the tape in reverse
//
// The tape can keep recording during a backward pass, in which case the
// gradient computation joins the graph and can be differentiated again.
// That is how the operator layer obtains second derivatives for Laplacian
// terms.
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	x, _ := tensor.FromSlice([]float64{2}, tensor.Shape{1, 1}, backend)
//	y := x.Mul(x) // y = x², recorded on tape
//
//	ones := tensor.Ones[float64](tensor.Shape{1, 1}, backend)
//	dydx, _ := autodiff.Differentiate(y, x, ones, true) // dy/dx = 2x = 4
package autodiff

import (
	"github.com/pinn-ml/pinn/internal/autodiff/ops"
	"github.com/pinn-ml/pinn/internal/tensor"
)

// AutodiffBackend wraps a Backend and adds automatic differentiation.
// It implements the tensor.Backend interface and records operations in a
// GradientTape.
//
// Not safe for concurrent use: the tape is shared mutable state.
type AutodiffBackend[B tensor.Backend] struct {
	inner B             // Wrapped backend (CPU, GPU, etc.)
	tape  *GradientTape // Records operations for backpropagation
}

// New creates a new AutodiffBackend wrapping the given backend.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control.
// Useful for:
//   - Starting/stopping recording
//   - Clearing the tape between training steps
//   - Inspecting recorded operations
func (b *AutodiffBackend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend for direct access.
func (b *AutodiffBackend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Device returns the compute device.
func (b *AutodiffBackend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// Add performs element-wise addition and records the operation.
func (b *AutodiffBackend[B]) Add(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Add(a, c)
	b.tape.Record(ops.NewAddOp(a, c, result))
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *AutodiffBackend[B]) Sub(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sub(a, c)
	b.tape.Record(ops.NewSubOp(a, c, result))
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *AutodiffBackend[B]) Mul(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mul(a, c)
	b.tape.Record(ops.NewMulOp(a, c, result))
	return result
}

// Div performs element-wise division and records the operation.
func (b *AutodiffBackend[B]) Div(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Div(a, c)
	b.tape.Record(ops.NewDivOp(a, c, result))
	return result
}

// SumDim reduces along a dimension and records the operation.
func (b *AutodiffBackend[B]) SumDim(t *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	result := b.inner.SumDim(t, dim, keepDim)

	if dim < 0 {
		dim = len(t.Shape()) + dim
	}
	b.tape.Record(ops.NewSumDimOp(t, result, dim, keepDim))
	return result
}

// Reshape reshapes a tensor and records the operation.
//
// Reshape must be recorded: without it, gradients would stop at the
// reshaped tensor instead of flowing back to the original.
func (b *AutodiffBackend[B]) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result := b.inner.Reshape(t, newShape)
	b.tape.Record(ops.NewReshapeOp(t, result))
	return result
}

// Transpose permutes dimensions and records the operation.
//
// Even though conceptually a view, the backend allocates a new tensor,
// so the permutation must be recorded for gradients to reach the original.
func (b *AutodiffBackend[B]) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	// Normalize default axes (reverse all dimensions) so the op record
	// can invert the permutation.
	ndim := len(t.Shape())
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	result := b.inner.Transpose(t, axes...)
	b.tape.Record(ops.NewTransposeOp(t, result, axes))
	return result
}

// Cat concatenates tensors along a dimension and records the operation.
func (b *AutodiffBackend[B]) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	result := b.inner.Cat(tensors, dim)

	if dim < 0 {
		dim = len(result.Shape()) + dim
	}
	sizes := make([]int, len(tensors))
	for i, t := range tensors {
		sizes[i] = t.Shape()[dim]
	}
	b.tape.Record(ops.NewCatOp(tensors, dim, sizes, result))
	return result
}

// IndexSelect gathers slices along a dimension and records the operation.
//
// Label-based column extraction goes through here, so gradients flow
// through every Extract call in the operator layer.
func (b *AutodiffBackend[B]) IndexSelect(t *tensor.RawTensor, dim int, indices []int) *tensor.RawTensor {
	result := b.inner.IndexSelect(t, dim, indices)

	if dim < 0 {
		dim = len(t.Shape()) + dim
	}
	idx := append([]int(nil), indices...)
	b.tape.Record(ops.NewIndexSelectOp(t, result, dim, idx))
	return result
}

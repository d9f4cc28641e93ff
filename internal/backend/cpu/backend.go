// Package cpu implements the CPU backend for the Pinn tensor stack.
package cpu

import (
	"fmt"

	"github.com/pinn-ml/pinn/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
//
// Every operation allocates a fresh result tensor and leaves its operands
// untouched; the autodiff layer depends on operand identity staying valid
// across backward passes.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b,
		func(x, y float32) float32 { return x / y },
		func(x, y float64) float64 { return x / y })
}

// binary applies an element-wise binary operation with broadcasting.
func (cpu *CPUBackend) binary(
	name string,
	a, b *tensor.RawTensor,
	opF32 func(float32, float32) float32,
	opF64 func(float64, float64) float64,
) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	switch a.DType() {
	case tensor.Float32:
		if needsBroadcast {
			binaryBroadcast(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, opF32)
		} else {
			binarySame(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), opF32)
		}
	case tensor.Float64:
		if needsBroadcast {
			binaryBroadcast(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, opF64)
		} else {
			binarySame(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), opF64)
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}

	return result
}

// Copyright 2026 Pinn ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor operations in the Pinn framework.
//
// The package defines the core types for type-safe tensor computation:
//   - Tensor[T, B]: High-level generic tensor with type safety
//   - RawTensor: Low-level tensor representation
//   - Backend: Interface for device-specific compute implementations
//   - Shape, DataType, Device: Core type definitions
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float64](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float64](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // Element-wise addition
package tensor

import (
	"github.com/pinn-ml/pinn/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor data types.
// Supported types: float32, float64.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Vulkan Device = tensor.Vulkan
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{100, 3} represents 100 rows of 3 columns.
type Shape = tensor.Shape

// Backend is defined in backend.go as a proper interface.

// Tensor is a generic type-safe tensor.
//
// T is the data type (float32 or float64).
// B is the backend implementation.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	x := tensor.Zeros[float64](tensor.Shape{2, 3}, backend)
//	y := x.Add(x)
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// Creation functions

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float64](tensor.Shape{2, 3}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, b)
}

// Ones creates a tensor filled with ones.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Ones[float64](tensor.Shape{2, 3}, backend)
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Ones[T, B](shape, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Full[float64](tensor.Shape{2, 3}, 3.14, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, b)
}

// Arange creates a 1D tensor with values from start to end (exclusive).
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Arange[float64](0, 10, backend)  // [0, 1, 2, ..., 9]
func Arange[T DType, B Backend](start, end T, b B) *Tensor[T, B] {
	return tensor.Arange[T, B](start, end, b)
}

// FromSlice creates a tensor from a Go slice.
//
// Example:
//
//	backend := cpu.New()
//	data := []float64{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3}, backend)
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, b)
}

// New creates a tensor from a raw tensor.
//
// This is a low-level function. Most users should use creation functions like
// Zeros, Ones, or FromSlice instead.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T, B](raw, b)
}

// NewRaw creates a new raw tensor with the given shape, dtype, and device.
//
// This is a low-level function. Most users should use high-level creation
// functions instead.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Manipulation functions

// Cat concatenates tensors along a dimension.
//
// Example:
//
//	backend := cpu.New()
//	a := tensor.Ones[float64](tensor.Shape{2, 3}, backend)
//	b := tensor.Zeros[float64](tensor.Shape{2, 3}, backend)
//	c := tensor.Cat([]*tensor.Tensor[float64, B]{a, b}, 1)  // Shape: [2, 6]
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	return tensor.Cat(tensors, dim)
}

// Copyright 2026 Pinn ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package operators provides vectorized differential operators over labeled
// tensors: gradient, divergence, Laplacian (nabla) and advection.
//
// The operators consume the labeled output of a function approximator and
// the labeled input it was evaluated at, both living on an autodiff
// backend, and produce labeled tensors whose column names encode which
// derivative was taken (dudx, dudx+dvdy, ddu, ...).
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	pts, _ := label.FromSlice(coords, n, []string{"x", "y"}, backend)
//	out := model(pts) // labeled output with components {"u"}
//
//	du, _ := operators.Grad(out, pts, nil, nil)           // dudx, dudy
//	lap, _ := operators.Nabla(out, pts, nil, nil, operators.MethodStd) // ddu
//
// Failures wrap one of the sentinel errors ErrType, ErrValue, ErrRuntime,
// ErrNotImplemented; match with errors.Is.
package operators

import (
	"github.com/pinn-ml/pinn/internal/autodiff"
	"github.com/pinn-ml/pinn/internal/label"
	"github.com/pinn-ml/pinn/internal/operators"
	"github.com/pinn-ml/pinn/internal/tensor"
)

// Sentinel error kinds. Every operator failure wraps exactly one of these.
var (
	ErrType           = operators.ErrType
	ErrValue          = operators.ErrValue
	ErrRuntime        = operators.ErrRuntime
	ErrNotImplemented = operators.ErrNotImplemented
)

// Method selects the algorithm used by Nabla.
type Method = operators.Method

// Recognized Nabla methods.
const (
	MethodStd     Method = operators.MethodStd
	MethodDivGrad Method = operators.MethodDivGrad
)

// Grad computes the first partial derivative of every requested output
// component with respect to every requested input coordinate. Nil
// components or d default to all labels of output and input respectively.
//
// The result has one column per (component, coordinate) pair,
// component-major, labeled d{component}d{coordinate}.
func Grad[T tensor.DType, B autodiff.BackwardCapable](
	output, input *label.Tensor[T, B],
	components, d []string,
) (*label.Tensor[T, B], error) {
	return operators.Grad(output, input, components, d)
}

// Div computes the divergence of a vector field: the sum over i of
// d(components[i])/d(d[i]). components and d must pair one-to-one with
// length at least two. The single result column is labeled with the
// +-joined per-term labels, e.g. dudx+dvdy.
func Div[T tensor.DType, B autodiff.BackwardCapable](
	output, input *label.Tensor[T, B],
	components, d []string,
) (*label.Tensor[T, B], error) {
	return operators.Div(output, input, components, d)
}

// Nabla computes the Laplacian-like second derivative of a field. For a
// scalar field (one component) the result is the sum of unmixed second
// derivatives over the coordinates d, labeled dd{component}; for a vector
// field components and d pair one-to-one and each pair yields one column.
//
// MethodDivGrad is recognized but unsupported and fails with
// ErrNotImplemented.
func Nabla[T tensor.DType, B autodiff.BackwardCapable](
	output, input *label.Tensor[T, B],
	components, d []string,
	method Method,
) (*label.Tensor[T, B], error) {
	return operators.Nabla(output, input, components, d, method)
}

// Advection computes the convective term (velocity · ∇) field: for each
// component, the sum over coordinates of velocity times the component's
// derivative. velocityField names the output column(s) holding the
// velocity values. The result has one column per component, labeled with
// the component names.
func Advection[T tensor.DType, B autodiff.BackwardCapable](
	output, input *label.Tensor[T, B],
	velocityField, components, d []string,
) (*label.Tensor[T, B], error) {
	return operators.Advection(output, input, velocityField, components, d)
}

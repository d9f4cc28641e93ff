// Copyright 2026 Pinn ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package label provides the labeled tensor: a 2-D tensor whose columns
// carry unique string labels.
//
// Rows are a batch of evaluation points; columns are named quantities
// (coordinates of a domain, or components of a field). Column extraction by
// label goes through the backend, so with an autodiff backend it is
// recorded on the gradient tape and derivatives flow through it.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	pts, _ := label.FromSlice([]float64{
//	    0.0, 0.5,
//	    1.0, 1.5,
//	}, 2, []string{"x", "y"}, backend)
//
//	x, _ := pts.Extract("x") // single column, recorded for differentiation
package label

import (
	"github.com/pinn-ml/pinn/internal/label"
	"github.com/pinn-ml/pinn/internal/tensor"
)

// Tensor is a 2-D tensor with one unique string label per column.
type Tensor[T tensor.DType, B tensor.Backend] = label.Tensor[T, B]

// New creates a labeled tensor over data. data must be 2-D with exactly one
// label per column; labels must be unique.
func New[T tensor.DType, B tensor.Backend](data *tensor.Tensor[T, B], labels []string) (*Tensor[T, B], error) {
	return label.New(data, labels)
}

// FromSlice creates a labeled tensor from row-major data with the given
// number of rows and one column per label.
func FromSlice[T tensor.DType, B tensor.Backend](data []T, rows int, labels []string, b B) (*Tensor[T, B], error) {
	return label.FromSlice(data, rows, labels, b)
}

// Copyright 2026 Pinn ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/pinn-ml/pinn/internal/tensor"

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - backend/cpu: Pure Go CPU implementation
//
// Decorator backends for additional functionality:
//   - autodiff: Automatic differentiation (wraps any backend)
//
// Example:
//
//	import (
//	    "github.com/pinn-ml/pinn/tensor"
//	    "github.com/pinn-ml/pinn/backend/cpu"
//	)
//
//	backend := cpu.New()
//	x := tensor.Zeros[float64](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float64](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // Uses backend.Add under the hood
type Backend = tensor.Backend

// Copyright 2026 Pinn ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Float32 and Float64 support
//   - NumPy-compatible broadcasting
//
// # Basic Usage
//
//	import (
//	    "github.com/pinn-ml/pinn/backend/cpu"
//	    "github.com/pinn-ml/pinn/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float64](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float64](tensor.Shape{2, 3}, backend)
//	    z := x.Add(y)
//	}
//
// For differentiation, wrap the backend with autodiff.New; the CPU backend
// alone performs no gradient tracking.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation is
// isolated and does not share mutable state. The autodiff decorator is not:
// its gradient tape is shared mutable state.
package cpu

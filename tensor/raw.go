// Copyright 2026 Pinn ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/pinn-ml/pinn/internal/tensor"
)

// RawTensor is the low-level tensor representation.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Type-safe data access via AsFloat32() and AsFloat64()
//   - Deep copies via Clone()
//
// Backend operations allocate a fresh RawTensor per result and never mutate
// their operands; the autodiff engine keys its computational graph by
// RawTensor identity.
//
// Most users should use the high-level Tensor[T, B] type instead.
type RawTensor = tensor.RawTensor

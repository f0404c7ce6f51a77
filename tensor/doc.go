// Copyright 2025 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for the Ember ML
// library.
//
// # Overview
//
// Tensors are the fundamental data structure in Ember. This package
// provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting for element-wise operations
//   - A Backend interface for pluggable compute implementations
//
// # Basic Usage
//
//	import (
//	    "github.com/ember-ml/ember/tensor"
//	    "github.com/ember-ml/ember/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//
//	    z := x.Add(y)
//	    result := z.MatMul(y.T())
//	}
//
// # Supported Data Types
//
// The DType constraint admits float32 for values and gradients, and
// int32 for class labels.
//
// # Error Handling
//
// Construction functions return errors for invalid shapes or mismatched
// data. Compute kernels panic with typed errors (*ShapeError,
// *IndexError) on invariant violations; callers validating inputs ahead
// of time never see these panics.
package tensor

// Copyright 2025 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// RawTensor is the untyped tensor representation backends operate on.
// Its identity (pointer) is what the gradient map is keyed by.
type RawTensor = tensor.RawTensor

// NewRaw allocates a zeroed RawTensor with the given shape and dtype.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// Typed errors reported by tensor operations.

// ShapeError reports incompatible or invalid tensor shapes.
type ShapeError = tensor.ShapeError

// IndexError reports an out-of-range index, such as a class label outside
// [0, num_classes).
type IndexError = tensor.IndexError

// NumericalError reports a non-finite value where a finite one is
// required.
type NumericalError = tensor.NumericalError

// Copyright 2025 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// The package wraps any backend with gradient tracking: operations run
// during the forward pass are recorded on a tape, and Backward walks the
// tape in reverse to compute gradients via the chain rule.
//
// Example:
//
//	import (
//	    "github.com/ember-ml/ember/autodiff"
//	    "github.com/ember-ml/ember/backend/cpu"
//	    "github.com/ember-ml/ember/tensor"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    backend.Tape().StartRecording()
//
//	    x, _ := tensor.FromSlice([]float32{3}, tensor.Shape{1}, backend)
//	    y := x.Mul(x) // y = x²
//
//	    grads, _ := autodiff.Backward(y, backend)
//	    _ = grads[x.Raw()] // dy/dx = 2x = 6
//	}
package autodiff

import (
	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/tensor"
)

// Backend is the autodiff-enabled backend decorator.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New creates an autodiff backend wrapping the given backend.
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations during the forward pass and drives the
// reverse walk that computes gradients.
type GradientTape = autodiff.GradientTape

// BackwardCapable is the interface Backward requires of a backend: a
// tensor.Backend that carries a gradient tape.
type BackwardCapable = autodiff.BackwardCapable

// Backward computes gradients of the scalar root with respect to every
// tensor recorded on the backend's tape. The returned map is keyed by
// raw tensor identity; look up a tensor's gradient with grads[t.Raw()].
func Backward[T tensor.DType, B autodiff.BackwardCapable](root *tensor.Tensor[T, B], backend B) (map[*tensor.RawTensor]*tensor.RawTensor, error) {
	return autodiff.Backward(root, backend)
}

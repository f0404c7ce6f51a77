package nn

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
//
// A Parameter is a leaf of the computation graph that persists across
// training steps: its tensor is created once at layer construction and the
// optimizer overwrites its data in place. It is never replaced by a new
// tensor, which is what lets the gradient map (keyed by RawTensor identity)
// find it step after step.
type Parameter[B tensor.Backend] struct {
	name   string                     // e.g. "weight", "bias"
	tensor *tensor.Tensor[float32, B] // the parameter values
	grad   *tensor.RawTensor          // last computed gradient, nil before backward
}

// NewParameter creates a new trainable parameter.
// The tensor should be initialized before creating the Parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Grad returns the gradient accumulated by the most recent backward pass,
// or nil if none has been set since the last ZeroGrad.
func (p *Parameter[B]) Grad() *tensor.RawTensor {
	return p.grad
}

// SetGrad stores the gradient for this parameter.
// Called by the optimizer when it consumes a backward pass result.
func (p *Parameter[B]) SetGrad(grad *tensor.RawTensor) {
	p.grad = grad
}

// ZeroGrad clears the stored gradient.
//
// Must be called before every training step: gradients accumulate
// additively across backward passes, so skipping ZeroGrad mixes the
// previous step's gradient into the current one.
func (p *Parameter[B]) ZeroGrad() {
	p.grad = nil
}

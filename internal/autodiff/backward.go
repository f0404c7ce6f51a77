package autodiff

import (
	"fmt"
	"log"

	"github.com/ember-ml/ember/internal/tensor"
)

// BackwardCapable is an interface for backends that support backward pass.
// AutodiffBackend implements this interface.
type BackwardCapable interface {
	tensor.Backend
	// GetTape returns the gradient tape for backward computation.
	GetTape() *GradientTape
}

// GetTape returns the gradient tape (implements BackwardCapable).
func (b *AutodiffBackend[B]) GetTape() *GradientTape {
	return b.tape
}

// Backward computes gradients of a scalar output with respect to every
// tensor recorded on the backend's tape.
//
// The root must be a scalar (a single-element tensor): differentiation
// starts from one loss value. A non-scalar root returns a *tensor.ShapeError.
// A root with no recorded path to any tensor is not an error: gradients
// simply remain zero, so an empty tape yields an empty gradient map.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	x, _ := tensor.FromSlice([]float32{3}, tensor.Shape{1}, backend)
//	y := x.Mul(x) // y = x²
//	grads, err := autodiff.Backward(y, backend)
//	// grads[x.Raw()] = 2x = 6
func Backward[T tensor.DType, B BackwardCapable](root *tensor.Tensor[T, B], backend B) (map[*tensor.RawTensor]*tensor.RawTensor, error) {
	if !root.Shape().IsScalar() {
		return nil, &tensor.ShapeError{Op: "backward", Got: root.Shape().Clone(), Reason: "root must be a scalar"}
	}

	tape := backend.GetTape()
	if tape.NumOps() == 0 {
		// Nothing recorded, nothing to differentiate. Usually a sign that
		// StartRecording was never called, so leave a trace.
		log.Printf("autodiff: backward on an empty tape; all gradients stay zero")
		return map[*tensor.RawTensor]*tensor.RawTensor{}, nil
	}

	// Seed gradient: d(root)/d(root) = 1.
	outputGrad, err := tensor.NewRaw(root.Shape(), tensor.Float32)
	if err != nil {
		return nil, fmt.Errorf("backward: failed to create output gradient: %w", err)
	}
	outputGrad.AsFloat32()[0] = 1.0

	return tape.Backward(root.Raw(), outputGrad, backend), nil
}

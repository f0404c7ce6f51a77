// Package nn implements neural network modules for the Ember framework.
//
// This package provides the building blocks for feed-forward networks:
//   - Module interface: base interface for all NN components
//   - Parameter: trainable leaf tensors with gradient tracking
//   - Linear: fully connected layer
//   - ReLU: activation
//   - CrossEntropyLoss: classification loss
//   - Sequential: container for stacking layers
package nn

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules compose to build architectures:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128, rng, backend),
//	    nn.NewReLU[B](),
//	    nn.NewLinear(128, 10, rng, backend),
//	)
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	// Linear expects [batch_size, in_features].
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module in a
	// stable order. Modules without parameters (activations) return an
	// empty slice.
	Parameters() []*Parameter[B]
}

// Package optim implements optimization algorithms for training neural
// networks.
//
// Example usage:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})
//
//	for step := range steps {
//	    optimizer.ZeroGrad()
//	    backend.Tape().Clear()
//	    logits := model.Forward(input)
//	    loss := criterion.Forward(logits, targets)
//	    grads, err := autodiff.Backward(loss, backend)
//	    ...
//	    optimizer.Step(grads)
//	}
package optim

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
//
// Optimizers consume the gradient map produced by a backward pass and
// update parameter values in place to reduce the loss.
type Optimizer interface {
	// Step applies gradient updates to all parameters.
	//
	// Takes the gradient map from Backward (RawTensor → gradient) and
	// mutates parameter data in place. Parameters without an entry in the
	// map are skipped: they did not participate in the forward pass and
	// their values must not change.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// ZeroGrad clears all parameter gradients.
	//
	// Must be called before each step: gradient accumulators sum
	// contributions additively, so stale gradients from a previous step
	// would otherwise leak into the next update.
	ZeroGrad()

	// LR returns the current learning rate.
	LR() float32
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float32 // learning rate
}

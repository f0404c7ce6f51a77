package optim

import (
	"github.com/ember-ml/ember/internal/nn"
	"github.com/ember-ml/ember/internal/tensor"
)

// SGDConfig configures the SGD optimizer.
type SGDConfig struct {
	Config
	Momentum float32 // momentum coefficient, 0 disables momentum
}

// SGD implements stochastic gradient descent, optionally with classical
// momentum.
//
// Without momentum the update is:
//
//	param = param - lr * grad
//
// With momentum:
//
//	velocity = momentum * velocity + grad
//	param = param - lr * velocity
//
// Updates mutate parameter buffers in place; they are the only writes to
// tensor data after creation.
type SGD[B tensor.Backend] struct {
	params     []*nn.Parameter[B]
	lr         float32
	momentum   float32
	velocities map[*tensor.RawTensor][]float32
}

// NewSGD creates an SGD optimizer over the given parameters.
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], config SGDConfig) *SGD[B] {
	s := &SGD[B]{
		params:   params,
		lr:       config.LR,
		momentum: config.Momentum,
	}
	if config.Momentum != 0 {
		s.velocities = make(map[*tensor.RawTensor][]float32, len(params))
	}
	return s
}

// Step applies one SGD update to every parameter that has a gradient in
// the map. With lr = 0 parameter values are left bitwise unchanged.
func (s *SGD[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	for _, param := range s.params {
		raw := param.Tensor().Raw()
		grad, ok := grads[raw]
		if !ok {
			continue
		}
		param.SetGrad(grad)

		data := raw.AsFloat32()
		gradData := grad.AsFloat32()

		if s.momentum == 0 {
			for i := range data {
				data[i] -= s.lr * gradData[i]
			}
			continue
		}

		vel, ok := s.velocities[raw]
		if !ok {
			vel = make([]float32, len(data))
			s.velocities[raw] = vel
		}
		for i := range data {
			vel[i] = s.momentum*vel[i] + gradData[i]
			data[i] -= s.lr * vel[i]
		}
	}
}

// ZeroGrad clears the gradient of every parameter.
func (s *SGD[B]) ZeroGrad() {
	for _, param := range s.params {
		param.ZeroGrad()
	}
}

// LR returns the current learning rate.
func (s *SGD[B]) LR() float32 {
	return s.lr
}

// SetLR updates the learning rate. Useful for manual schedules.
func (s *SGD[B]) SetLR(lr float32) {
	s.lr = lr
}

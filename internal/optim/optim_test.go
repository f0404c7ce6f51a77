package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/backend/cpu"
	"github.com/ember-ml/ember/internal/nn"
	"github.com/ember-ml/ember/internal/optim"
	"github.com/ember-ml/ember/internal/tensor"
)

type Backend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func newParam(t *testing.T, backend Backend, values []float32) *nn.Parameter[Backend] {
	t.Helper()
	tens, err := tensor.FromSlice(values, tensor.Shape{len(values)}, backend)
	require.NoError(t, err)
	return nn.NewParameter("w", tens)
}

func gradFor(t *testing.T, p *nn.Parameter[Backend], values []float32) map[*tensor.RawTensor]*tensor.RawTensor {
	t.Helper()
	grad, err := tensor.NewRaw(p.Tensor().Shape(), tensor.Float32)
	require.NoError(t, err)
	copy(grad.AsFloat32(), values)
	return map[*tensor.RawTensor]*tensor.RawTensor{p.Tensor().Raw(): grad}
}

func TestSGD_Step(t *testing.T) {
	backend := autodiff.New(cpu.New())
	p := newParam(t, backend, []float32{1, 2, 3})

	opt := optim.NewSGD([]*nn.Parameter[Backend]{p}, optim.SGDConfig{
		Config: optim.Config{LR: 0.1},
	})
	opt.Step(gradFor(t, p, []float32{10, 20, 30}))

	// param -= lr * grad
	assert.InDeltaSlice(t, []float32{0, 0, 0}, p.Tensor().Data(), 1e-6)
}

func TestSGD_ZeroLearningRateIsNoOp(t *testing.T) {
	backend := autodiff.New(cpu.New())
	p := newParam(t, backend, []float32{1.5, -2.25})

	opt := optim.NewSGD([]*nn.Parameter[Backend]{p}, optim.SGDConfig{
		Config: optim.Config{LR: 0},
	})
	opt.Step(gradFor(t, p, []float32{100, -100}))

	// Values must be bitwise unchanged.
	assert.Equal(t, []float32{1.5, -2.25}, p.Tensor().Data())
}

func TestSGD_SkipsParamsWithoutGradient(t *testing.T) {
	backend := autodiff.New(cpu.New())
	p1 := newParam(t, backend, []float32{1})
	p2 := newParam(t, backend, []float32{5})

	opt := optim.NewSGD([]*nn.Parameter[Backend]{p1, p2}, optim.SGDConfig{
		Config: optim.Config{LR: 1},
	})
	opt.Step(gradFor(t, p1, []float32{1}))

	assert.Equal(t, float32(0), p1.Tensor().Data()[0])
	assert.Equal(t, float32(5), p2.Tensor().Data()[0], "param without gradient must not change")
	assert.Nil(t, p2.Grad())
}

func TestSGD_UpdatesInPlace(t *testing.T) {
	backend := autodiff.New(cpu.New())
	p := newParam(t, backend, []float32{1})
	raw := p.Tensor().Raw()

	opt := optim.NewSGD([]*nn.Parameter[Backend]{p}, optim.SGDConfig{
		Config: optim.Config{LR: 0.5},
	})
	opt.Step(gradFor(t, p, []float32{2}))

	// The raw tensor identity must survive the update so the next step's
	// gradient map still finds it.
	assert.Same(t, raw, p.Tensor().Raw())
	assert.InDelta(t, 0, p.Tensor().Data()[0], 1e-6)
}

func TestSGD_Momentum(t *testing.T) {
	backend := autodiff.New(cpu.New())
	p := newParam(t, backend, []float32{0})

	opt := optim.NewSGD([]*nn.Parameter[Backend]{p}, optim.SGDConfig{
		Config:   optim.Config{LR: 1},
		Momentum: 0.5,
	})

	// Step 1: v = 0.5*0 + 1 = 1, param = 0 - 1 = -1
	opt.Step(gradFor(t, p, []float32{1}))
	assert.InDelta(t, -1, p.Tensor().Data()[0], 1e-6)

	// Step 2: v = 0.5*1 + 1 = 1.5, param = -1 - 1.5 = -2.5
	opt.Step(gradFor(t, p, []float32{1}))
	assert.InDelta(t, -2.5, p.Tensor().Data()[0], 1e-6)
}

func TestSGD_ZeroGrad(t *testing.T) {
	backend := autodiff.New(cpu.New())
	p := newParam(t, backend, []float32{1})

	opt := optim.NewSGD([]*nn.Parameter[Backend]{p}, optim.SGDConfig{
		Config: optim.Config{LR: 0.1},
	})
	opt.Step(gradFor(t, p, []float32{1}))
	require.NotNil(t, p.Grad())

	opt.ZeroGrad()
	assert.Nil(t, p.Grad())
}

func TestSGD_SetLR(t *testing.T) {
	backend := autodiff.New(cpu.New())
	p := newParam(t, backend, []float32{1})

	opt := optim.NewSGD([]*nn.Parameter[Backend]{p}, optim.SGDConfig{
		Config: optim.Config{LR: 0.1},
	})
	assert.Equal(t, float32(0.1), opt.LR())

	opt.SetLR(0.01)
	assert.Equal(t, float32(0.01), opt.LR())
}

func TestSGD_TrainsThroughBackward(t *testing.T) {
	// One real gradient step on y = w² must move w toward zero.
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	w, err := tensor.FromSlice([]float32{4}, tensor.Shape{1}, backend)
	require.NoError(t, err)
	p := nn.NewParameter("w", w)

	opt := optim.NewSGD([]*nn.Parameter[Backend]{p}, optim.SGDConfig{
		Config: optim.Config{LR: 0.1},
	})

	y := w.Mul(w)
	grads, err := autodiff.Backward(y, backend)
	require.NoError(t, err)
	opt.Step(grads)

	// w = 4 - 0.1 * (2*4) = 3.2
	assert.InDelta(t, 3.2, w.Data()[0], 1e-6)
}

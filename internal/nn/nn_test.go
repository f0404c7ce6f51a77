package nn_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/backend/cpu"
	"github.com/ember-ml/ember/internal/nn"
	"github.com/ember-ml/ember/internal/tensor"
)

type Backend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func newBackend() Backend {
	return autodiff.New(cpu.New())
}

func TestLinear_ForwardShape(t *testing.T) {
	backend := newBackend()
	rng := rand.New(rand.NewSource(1))

	layer := nn.NewLinear(4, 3, rng, backend)

	input := tensor.Zeros[float32](tensor.Shape{5, 4}, backend)
	output := layer.Forward(input)

	assert.Equal(t, tensor.Shape{5, 3}, output.Shape())
}

func TestLinear_ZeroBiasAtInit(t *testing.T) {
	backend := newBackend()
	rng := rand.New(rand.NewSource(1))

	layer := nn.NewLinear(4, 3, rng, backend)

	for _, v := range layer.Bias().Tensor().Data() {
		assert.Equal(t, float32(0), v)
	}
}

func TestLinear_XavierBound(t *testing.T) {
	backend := newBackend()
	rng := rand.New(rand.NewSource(1))

	fanIn, fanOut := 16, 8
	layer := nn.NewLinear(fanIn, fanOut, rng, backend)

	bound := float32(math.Sqrt(6.0 / float64(fanIn+fanOut)))
	for _, v := range layer.Weight().Tensor().Data() {
		if v < -bound || v >= bound {
			t.Fatalf("weight %f outside Xavier bound ±%f", v, bound)
		}
	}
}

func TestLinear_DeterministicInit(t *testing.T) {
	backend := newBackend()

	a := nn.NewLinear(4, 3, rand.New(rand.NewSource(42)), backend)
	b := nn.NewLinear(4, 3, rand.New(rand.NewSource(42)), backend)

	assert.Equal(t, a.Weight().Tensor().Data(), b.Weight().Tensor().Data())
}

func TestLinear_KnownValues(t *testing.T) {
	backend := newBackend()
	rng := rand.New(rand.NewSource(1))

	layer := nn.NewLinear(2, 2, rng, backend)

	// Overwrite parameters with known values.
	// W = [[1, 2], [3, 4]], b = [10, 20]
	copy(layer.Weight().Tensor().Data(), []float32{1, 2, 3, 4})
	copy(layer.Bias().Tensor().Data(), []float32{10, 20})

	input, err := tensor.FromSlice([]float32{1, 1}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)

	output := layer.Forward(input)

	// y = x @ Wᵀ + b = [1+2, 3+4] + [10, 20] = [13, 27]
	assert.InDeltaSlice(t, []float32{13, 27}, output.Data(), 1e-6)
}

func TestLinear_InputWidthMismatch(t *testing.T) {
	backend := newBackend()
	layer := nn.NewLinear(4, 3, rand.New(rand.NewSource(1)), backend)

	input := tensor.Zeros[float32](tensor.Shape{2, 5}, backend)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*tensor.ShapeError)
		assert.True(t, ok, "expected *tensor.ShapeError, got %T", r)
	}()
	layer.Forward(input)
}

func TestLinear_Parameters(t *testing.T) {
	backend := newBackend()
	layer := nn.NewLinear(4, 3, rand.New(rand.NewSource(1)), backend)

	params := layer.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "weight", params[0].Name())
	assert.Equal(t, "bias", params[1].Name())
	assert.Equal(t, tensor.Shape{3, 4}, params[0].Tensor().Shape())
	assert.Equal(t, tensor.Shape{3}, params[1].Tensor().Shape())
}

func TestReLUModule(t *testing.T) {
	backend := newBackend()
	relu := nn.NewReLU[Backend]()

	input, _ := tensor.FromSlice([]float32{-1, 0, 2}, tensor.Shape{1, 3}, backend)
	output := relu.Forward(input)

	assert.Equal(t, []float32{0, 0, 2}, output.Data())
	assert.Empty(t, relu.Parameters())
}

func TestSequential_ForwardAndParameters(t *testing.T) {
	backend := newBackend()
	rng := rand.New(rand.NewSource(3))

	model := nn.NewSequential[Backend](
		nn.NewLinear(4, 3, rng, backend),
		nn.NewReLU[Backend](),
		nn.NewLinear(3, 2, rng, backend),
	)

	input := tensor.Zeros[float32](tensor.Shape{6, 4}, backend)
	output := model.Forward(input)

	assert.Equal(t, tensor.Shape{6, 2}, output.Shape())

	// Two linear layers contribute weight+bias each; ReLU contributes none.
	params := model.Parameters()
	require.Len(t, params, 4)
	assert.Equal(t, tensor.Shape{3, 4}, params[0].Tensor().Shape())
	assert.Equal(t, tensor.Shape{2, 3}, params[2].Tensor().Shape())
}

func TestSequential_ParameterOrderStable(t *testing.T) {
	backend := newBackend()
	rng := rand.New(rand.NewSource(3))

	model := nn.NewSequential[Backend](
		nn.NewLinear(4, 3, rng, backend),
		nn.NewLinear(3, 2, rng, backend),
	)

	first := model.Parameters()
	second := model.Parameters()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Same(t, first[i], second[i])
	}
}

func TestParameter_ZeroGrad(t *testing.T) {
	backend := newBackend()

	p := nn.NewParameter("w", tensor.Ones[float32](tensor.Shape{2}, backend))
	grad, _ := tensor.NewRaw(tensor.Shape{2}, tensor.Float32)
	p.SetGrad(grad)
	require.NotNil(t, p.Grad())

	p.ZeroGrad()
	assert.Nil(t, p.Grad())
}

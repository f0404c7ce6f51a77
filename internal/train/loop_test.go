package train_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/backend/cpu"
	"github.com/ember-ml/ember/internal/data"
	"github.com/ember-ml/ember/internal/tensor"
	"github.com/ember-ml/ember/internal/train"
)

// lossRecorder captures every reported loss for assertions.
type lossRecorder struct {
	losses []float32
}

func (r *lossRecorder) Report(epoch, step int, avgLoss float32) {
	r.losses = append(r.losses, avgLoss)
}

func smallConfig() train.Config {
	return train.Config{
		InputSize:    4,
		HiddenSizes:  []int{3},
		OutputSize:   2,
		LearningRate: 0.1,
		Epochs:       25,
		BatchSize:    16,
		PrintEvery:   10,
		Seed:         42,
	}
}

func TestBuildMLP(t *testing.T) {
	cfg := train.Config{InputSize: 4, HiddenSizes: []int{8, 6}, OutputSize: 2}
	backend := cpu.New()

	model := train.BuildMLP(cfg, rand.New(rand.NewSource(1)), backend)

	// Linear(4,8), ReLU, Linear(8,6), ReLU, Linear(6,2)
	assert.Equal(t, 5, model.Len())
	assert.Len(t, model.Parameters(), 6)

	input := tensor.Zeros[float32](tensor.Shape{3, 4}, backend)
	output := model.Forward(input)
	assert.Equal(t, tensor.Shape{3, 2}, output.Shape())
}

func TestTrainer_Converges(t *testing.T) {
	// A 4 → 3 → 2 network on linearly separable data must reach low loss
	// and perfect accuracy within a modest number of steps.
	cfg := smallConfig()
	dataset := data.Synthetic(64, cfg.InputSize, cfg.OutputSize, cfg.Seed)

	trainer, err := train.NewTrainer(cfg, cpu.New())
	require.NoError(t, err)

	rec := &lossRecorder{}
	trainer.SetReporter(rec)

	require.NoError(t, trainer.Run(dataset))

	loss, accuracy, err := trainer.Evaluate(dataset)
	require.NoError(t, err)

	assert.Less(t, loss, float32(0.1), "final loss")
	assert.Equal(t, float32(1.0), accuracy, "final accuracy")
	assert.NotEmpty(t, rec.losses, "reporter should have been called")
}

func TestTrainer_LossDecreases(t *testing.T) {
	cfg := smallConfig()
	dataset := data.Synthetic(64, cfg.InputSize, cfg.OutputSize, cfg.Seed)

	trainer, err := train.NewTrainer(cfg, cpu.New())
	require.NoError(t, err)

	rec := &lossRecorder{}
	trainer.SetReporter(rec)

	require.NoError(t, trainer.Run(dataset))

	require.GreaterOrEqual(t, len(rec.losses), 2)
	first := rec.losses[0]
	last := rec.losses[len(rec.losses)-1]
	assert.Less(t, last, first, "loss should decrease over training")
}

func TestTrainer_Deterministic(t *testing.T) {
	cfg := smallConfig()
	dataset := data.Synthetic(64, cfg.InputSize, cfg.OutputSize, cfg.Seed)

	run := func() []float32 {
		trainer, err := train.NewTrainer(cfg, cpu.New())
		require.NoError(t, err)
		rec := &lossRecorder{}
		trainer.SetReporter(rec)
		require.NoError(t, trainer.Run(dataset))
		return rec.losses
	}

	// Identical seeds must give bit-identical loss trajectories.
	assert.Equal(t, run(), run())
}

func TestTrainer_SeedChangesTrajectory(t *testing.T) {
	cfg := smallConfig()
	dataset := data.Synthetic(64, cfg.InputSize, cfg.OutputSize, cfg.Seed)

	trainerA, err := train.NewTrainer(cfg, cpu.New())
	require.NoError(t, err)
	recA := &lossRecorder{}
	trainerA.SetReporter(recA)
	require.NoError(t, trainerA.Run(dataset))

	cfg.Seed = 43
	trainerB, err := train.NewTrainer(cfg, cpu.New())
	require.NoError(t, err)
	recB := &lossRecorder{}
	trainerB.SetReporter(recB)
	require.NoError(t, trainerB.Run(dataset))

	assert.NotEqual(t, recA.losses, recB.losses)
}

func TestTrainer_ZeroLearningRateFreezesParameters(t *testing.T) {
	cfg := smallConfig()
	cfg.LearningRate = 0
	cfg.Epochs = 3
	dataset := data.Synthetic(32, cfg.InputSize, cfg.OutputSize, cfg.Seed)

	trainer, err := train.NewTrainer(cfg, cpu.New())
	require.NoError(t, err)
	trainer.SetReporter(nil)

	var before [][]float32
	for _, p := range trainer.Model().Parameters() {
		before = append(before, append([]float32(nil), p.Tensor().Data()...))
	}

	require.NoError(t, trainer.Run(dataset))

	for i, p := range trainer.Model().Parameters() {
		assert.Equal(t, before[i], p.Tensor().Data(), "parameter %d changed with lr=0", i)
	}
}

func TestTrainer_NonFiniteLossAborts(t *testing.T) {
	cfg := smallConfig()
	dataset := data.Synthetic(32, cfg.InputSize, cfg.OutputSize, cfg.Seed)

	trainer, err := train.NewTrainer(cfg, cpu.New())
	require.NoError(t, err)
	trainer.SetReporter(nil)

	// Poison the output layer's bias so the first forward pass produces a
	// NaN loss. The output layer feeds the logits directly, with no ReLU
	// in between to mask the NaN.
	params := trainer.Model().Parameters()
	last := len(params) - 1
	params[last].Tensor().Data()[0] = float32(math.NaN())

	var before [][]float32
	for _, p := range params[:last] {
		before = append(before, append([]float32(nil), p.Tensor().Data()...))
	}

	err = trainer.Run(dataset)
	require.Error(t, err)
	var numErr *tensor.NumericalError
	require.ErrorAs(t, err, &numErr)

	// The abort happens before the optimizer step, so no parameter was
	// updated. The poisoned entry itself must still be NaN, untouched.
	assert.True(t, math.IsNaN(float64(params[last].Tensor().Data()[0])))
	for i, p := range params[:last] {
		assert.Equal(t, before[i], p.Tensor().Data(), "parameter %d changed after aborted step", i)
	}
}

func TestTrainer_DatasetWidthMismatch(t *testing.T) {
	cfg := smallConfig()
	dataset := data.Synthetic(32, cfg.InputSize+1, cfg.OutputSize, cfg.Seed)

	trainer, err := train.NewTrainer(cfg, cpu.New())
	require.NoError(t, err)

	assert.Error(t, trainer.Run(dataset))
}

func TestTrainer_InvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Epochs = 0

	_, err := train.NewTrainer(cfg, cpu.New())
	assert.Error(t, err)
}

func TestTrainer_EvaluateDoesNotRecord(t *testing.T) {
	cfg := smallConfig()
	cfg.Epochs = 1
	dataset := data.Synthetic(32, cfg.InputSize, cfg.OutputSize, cfg.Seed)

	trainer, err := train.NewTrainer(cfg, cpu.New())
	require.NoError(t, err)
	trainer.SetReporter(nil)
	require.NoError(t, trainer.Run(dataset))

	tape := trainer.Backend().Tape()
	opsAfterRun := tape.NumOps()
	wasRecording := tape.IsRecording()

	_, _, err = trainer.Evaluate(dataset)
	require.NoError(t, err)

	assert.Equal(t, opsAfterRun, tape.NumOps(), "Evaluate must not record on the tape")
	assert.Equal(t, wasRecording, tape.IsRecording(), "Evaluate must restore recording state")
}

func TestTrainer_GraphExport(t *testing.T) {
	cfg := smallConfig()
	cfg.Epochs = 1
	dataset := data.Synthetic(16, cfg.InputSize, cfg.OutputSize, cfg.Seed)

	trainer, err := train.NewTrainer(cfg, cpu.New())
	require.NoError(t, err)
	trainer.SetReporter(nil)
	require.NoError(t, trainer.Run(dataset))

	out := trainer.Backend().Tape().DOT()
	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, "cross_entropy")
	assert.Contains(t, out, "matmul")
}

func TestTrainer_MomentumConverges(t *testing.T) {
	cfg := smallConfig()
	cfg.Momentum = 0.9
	cfg.LearningRate = 0.05
	dataset := data.Synthetic(64, cfg.InputSize, cfg.OutputSize, cfg.Seed)

	trainer, err := train.NewTrainer(cfg, cpu.New())
	require.NoError(t, err)
	trainer.SetReporter(nil)
	require.NoError(t, trainer.Run(dataset))

	loss, accuracy, err := trainer.Evaluate(dataset)
	require.NoError(t, err)
	assert.Less(t, loss, float32(0.2))
	assert.Greater(t, accuracy, float32(0.9))
}

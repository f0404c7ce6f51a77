package train

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/data"
	"github.com/ember-ml/ember/internal/nn"
	"github.com/ember-ml/ember/internal/optim"
	"github.com/ember-ml/ember/internal/tensor"
)

// Reporter receives periodic progress reports during training.
type Reporter interface {
	// Report is called every PrintEvery steps with the global step number
	// and the mean loss over the steps since the previous report.
	Report(epoch, step int, avgLoss float32)
}

// LogReporter writes progress to the standard logger.
type LogReporter struct{}

func (LogReporter) Report(epoch, step int, avgLoss float32) {
	log.Printf("epoch %d step %d: loss %.4f", epoch, step, avgLoss)
}

// BuildMLP constructs a feed-forward network from the configured layer
// sizes: a Linear layer between each consecutive pair of widths, with
// ReLU after every layer except the last. The output layer emits raw
// logits for the cross-entropy loss.
func BuildMLP[B tensor.Backend](cfg Config, rng *rand.Rand, backend B) *nn.Sequential[B] {
	sizes := cfg.LayerSizes()
	model := nn.NewSequential[B]()
	for i := 0; i < len(sizes)-1; i++ {
		model.Add(nn.NewLinear(sizes[i], sizes[i+1], rng, backend))
		if i < len(sizes)-2 {
			model.Add(nn.NewReLU[B]())
		}
	}
	return model
}

// Trainer runs mini-batch gradient descent over a classification
// dataset. It owns the model, loss, and optimizer, all built from the
// config, and drives the record/forward/backward/step cycle.
//
// B is the underlying compute backend; the trainer wraps it in an
// autodiff backend so every forward pass is recorded on the tape.
type Trainer[B tensor.Backend] struct {
	cfg       Config
	backend   *autodiff.AutodiffBackend[B]
	model     *nn.Sequential[*autodiff.AutodiffBackend[B]]
	criterion *nn.CrossEntropyLoss[*autodiff.AutodiffBackend[B]]
	optimizer *optim.SGD[*autodiff.AutodiffBackend[B]]
	reporter  Reporter
}

// NewTrainer builds a trainer from the config. Model initialization is
// fully determined by cfg.Seed.
func NewTrainer[B tensor.Backend](cfg Config, inner B) (*Trainer[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	backend := autodiff.New(inner)
	rng := rand.New(rand.NewSource(cfg.Seed))

	model := BuildMLP(cfg, rng, backend)

	return &Trainer[B]{
		cfg:       cfg,
		backend:   backend,
		model:     model,
		criterion: nn.NewCrossEntropyLoss[*autodiff.AutodiffBackend[B]](backend),
		optimizer: optim.NewSGD(model.Parameters(), optim.SGDConfig{
			Config:   optim.Config{LR: cfg.LearningRate},
			Momentum: cfg.Momentum,
		}),
		reporter: LogReporter{},
	}, nil
}

// SetReporter replaces the progress reporter. Passing nil silences
// reporting.
func (t *Trainer[B]) SetReporter(r Reporter) {
	t.reporter = r
}

// Backend returns the autodiff backend the trainer records on.
func (t *Trainer[B]) Backend() *autodiff.AutodiffBackend[B] {
	return t.backend
}

// Model returns the trained network.
func (t *Trainer[B]) Model() *nn.Sequential[*autodiff.AutodiffBackend[B]] {
	return t.model
}

// Run trains the model on the dataset for the configured number of
// epochs. Batches are reshuffled every epoch using a permutation derived
// from cfg.Seed and the epoch number.
//
// Returns *tensor.NumericalError if the loss becomes NaN or infinite.
func (t *Trainer[B]) Run(dataset *data.Dataset) error {
	loader, err := data.NewLoader(dataset, t.cfg.BatchSize, t.cfg.Seed, t.backend)
	if err != nil {
		return err
	}
	if w := len(dataset.Features[0]); w != t.cfg.InputSize {
		return fmt.Errorf("dataset feature width %d does not match input_size %d", w, t.cfg.InputSize)
	}

	tape := t.backend.Tape()
	step := 0
	var lossSum float32
	var lossCount int

	for epoch := 1; epoch <= t.cfg.Epochs; epoch++ {
		for _, batch := range loader.Epoch(epoch) {
			t.optimizer.ZeroGrad()
			tape.Clear()
			tape.StartRecording()

			logits := t.model.Forward(batch.Features)
			loss := t.criterion.Forward(logits, batch.Labels)

			lossValue := loss.Item()
			if math.IsNaN(float64(lossValue)) || math.IsInf(float64(lossValue), 0) {
				return &tensor.NumericalError{Op: "train", Value: float64(lossValue)}
			}

			grads, err := autodiff.Backward(loss, t.backend)
			if err != nil {
				return err
			}
			t.optimizer.Step(grads)

			step++
			lossSum += lossValue
			lossCount++
			if step%t.cfg.PrintEvery == 0 {
				if t.reporter != nil {
					t.reporter.Report(epoch, step, lossSum/float32(lossCount))
				}
				lossSum, lossCount = 0, 0
			}
		}
	}
	return nil
}

// Evaluate computes mean loss and accuracy over the dataset without
// recording on the tape, so evaluation leaves no trace in training
// state.
func (t *Trainer[B]) Evaluate(dataset *data.Dataset) (loss, accuracy float32, err error) {
	loader, err := data.NewLoader(dataset, t.cfg.BatchSize, t.cfg.Seed, t.backend)
	if err != nil {
		return 0, 0, err
	}

	tape := t.backend.Tape()
	wasRecording := tape.IsRecording()
	tape.StopRecording()
	defer func() {
		if wasRecording {
			tape.StartRecording()
		}
	}()

	var lossSum, accSum float32
	var samples int
	for _, batch := range loader.Epoch(0) {
		logits := t.model.Forward(batch.Features)
		batchLoss := t.criterion.Forward(logits, batch.Labels)

		size := batch.Labels.NumElements()
		lossSum += batchLoss.Item() * float32(size)
		accSum += nn.Accuracy(logits, batch.Labels) * float32(size)
		samples += size
	}
	if samples == 0 {
		return 0, 0, fmt.Errorf("dataset is empty")
	}
	return lossSum / float32(samples), accSum / float32(samples), nil
}

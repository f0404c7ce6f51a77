package nn

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// CrossEntropyLoss computes cross-entropy loss for multi-class
// classification.
//
// Mathematical formulation:
//
//	Loss = mean_b(-log_softmax(logits[b])[targets[b]])
//
// The computation is delegated to the backend's fused softmax +
// cross-entropy operation, which uses the log-sum-exp trick internally.
// When the backend is autodiff-aware the operation lands on the tape and
// the fused gradient rule (softmax - one_hot)/batch applies during
// backward.
//
// Key properties:
//   - expects raw logits (unnormalized scores), not probabilities
//   - loss on uniform logits over k classes equals ln(k)
//   - loss approaches zero as the correct-class logit dominates
type CrossEntropyLoss[B tensor.Backend] struct {
	backend B
}

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss[B tensor.Backend](backend B) *CrossEntropyLoss[B] {
	return &CrossEntropyLoss[B]{
		backend: backend,
	}
}

// Forward computes the mean cross-entropy loss over a batch.
//
// Parameters:
//   - logits: [batch_size, num_classes] float32
//   - targets: [batch_size] int32 class indices in [0, num_classes)
//
// Returns a scalar loss tensor. A target outside the valid range panics
// with *tensor.IndexError; mismatched shapes panic with *tensor.ShapeError.
func (c *CrossEntropyLoss[B]) Forward(
	logits *tensor.Tensor[float32, B],
	targets *tensor.Tensor[int32, B],
) *tensor.Tensor[float32, B] {
	result := c.backend.CrossEntropy(logits.Raw(), targets.Raw())
	return tensor.New[float32, B](result, c.backend)
}

// Parameters returns an empty slice; loss functions have no parameters.
func (c *CrossEntropyLoss[B]) Parameters() []*Parameter[B] {
	return nil
}

// Accuracy computes classification accuracy for a batch: the fraction of
// rows whose argmax logit equals the target label.
func Accuracy[B tensor.Backend](
	logits *tensor.Tensor[float32, B],
	targets *tensor.Tensor[int32, B],
) float32 {
	shape := logits.Shape()
	batchSize := shape[0]
	numClasses := shape[1]

	logitsData := logits.Raw().AsFloat32()
	targetsData := targets.Raw().AsInt32()

	correct := 0
	for b := 0; b < batchSize; b++ {
		row := logitsData[b*numClasses : (b+1)*numClasses]
		if argmax(row) == int(targetsData[b]) {
			correct++
		}
	}

	return float32(correct) / float32(batchSize)
}

// argmax returns the index of the maximum value in the slice.
func argmax(z []float32) int {
	maxIdx := 0
	maxVal := z[0]
	for i, v := range z[1:] {
		if v > maxVal {
			maxVal = v
			maxIdx = i + 1
		}
	}
	return maxIdx
}

package ops

import (
	"math"

	"github.com/ember-ml/ember/internal/tensor"
)

// CrossEntropyOp represents the fused softmax + cross-entropy loss.
//
// Forward:
//
//	Loss = mean_b(-log_softmax(logits[b])[targets[b]])
//
// Backward:
//
//	∂L/∂logits[b,i] = (softmax(logits[b])[i] - one_hot[b,i]) / batch_size
//
// The fused gradient rule is the reason softmax and cross-entropy are a
// single operation here: the naive softmax-then-log composition is
// numerically unstable, while the fused rule needs only the (stable)
// softmax probabilities.
//
// The targets tensor is a leaf of integer class indices and is not
// differentiated; only the logits receive a gradient.
type CrossEntropyOp struct {
	logits  *tensor.RawTensor // [batch, classes]
	targets *tensor.RawTensor // [batch] int32
	output  *tensor.RawTensor // [1] scalar loss
}

// NewCrossEntropyOp creates a new cross-entropy operation.
func NewCrossEntropyOp(logits, targets, output *tensor.RawTensor) *CrossEntropyOp {
	return &CrossEntropyOp{
		logits:  logits,
		targets: targets,
		output:  output,
	}
}

// Backward computes the gradient with respect to the logits.
func (op *CrossEntropyOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	logitsShape := op.logits.Shape()
	batchSize := logitsShape[0]
	numClasses := logitsShape[1]

	gradScale := outputGrad.AsFloat32()[0] // usually 1, but respect upstream gradient

	logitsGrad := newFloat32(logitsShape)
	gradData := logitsGrad.AsFloat32()
	logitsData := op.logits.AsFloat32()
	targetsData := op.targets.AsInt32()

	for b := 0; b < batchSize; b++ {
		row := logitsData[b*numClasses : (b+1)*numClasses]
		probs := softmax(row)

		target := int(targetsData[b])
		for i := 0; i < numClasses; i++ {
			grad := probs[i]
			if i == target {
				grad -= 1.0
			}
			gradData[b*numClasses+i] = gradScale * grad / float32(batchSize)
		}
	}

	return []*tensor.RawTensor{logitsGrad}
}

// Inputs returns the differentiable input tensors [logits].
func (op *CrossEntropyOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.logits}
}

// Output returns the scalar loss tensor.
func (op *CrossEntropyOp) Output() *tensor.RawTensor {
	return op.output
}

// Name returns the operation label.
func (op *CrossEntropyOp) Name() string {
	return "cross_entropy"
}

// softmax computes softmax probabilities for a single row, shifting by the
// row maximum for numerical stability.
func softmax(z []float32) []float32 {
	probs := make([]float32, len(z))

	maxZ := z[0]
	for _, v := range z[1:] {
		if v > maxZ {
			maxZ = v
		}
	}

	sumExp := float32(0.0)
	for i, v := range z {
		probs[i] = float32(math.Exp(float64(v - maxZ)))
		sumExp += probs[i]
	}

	for i := range probs {
		probs[i] /= sumExp
	}

	return probs
}

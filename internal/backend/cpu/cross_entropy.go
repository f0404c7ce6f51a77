package cpu

import (
	"math"

	"github.com/ember-ml/ember/internal/tensor"
)

// CrossEntropy computes softmax cross-entropy loss, averaged over the batch.
//
// Forward:
//
//	Loss = mean_b(-log_softmax(logits[b])[targets[b]])
//
// log_softmax uses the log-sum-exp trick for numerical stability:
//
//	log_softmax(z) = z - (max(z) + log(Σ exp(z - max(z))))
//
// Softmax and cross-entropy are fused into a single operation: computing
// softmax followed by log would overflow for large logits and lose precision
// for confident predictions, and the fused backward rule
// (softmax - one_hot)/batch is both simpler and more stable.
//
// Parameters:
//   - logits: [batch_size, num_classes] float32
//   - targets: [batch_size] int32 class indices
//
// Returns a [1] scalar loss tensor.
func (cpu *CPUBackend) CrossEntropy(logits, targets *tensor.RawTensor) *tensor.RawTensor {
	logitsShape := logits.Shape()
	if len(logitsShape) != 2 {
		panic(&tensor.ShapeError{Op: "cross_entropy", Got: logitsShape.Clone(), Reason: "logits must be 2D [batch, classes]"})
	}

	targetsShape := targets.Shape()
	if len(targetsShape) != 1 || targetsShape[0] != logitsShape[0] {
		panic(&tensor.ShapeError{Op: "cross_entropy", Got: targetsShape.Clone(), Want: tensor.Shape{logitsShape[0]}, Reason: "targets must be 1D [batch]"})
	}

	batchSize := logitsShape[0]
	numClasses := logitsShape[1]

	logitsData := logits.AsFloat32()
	targetsData := targets.AsInt32()

	totalLoss := float32(0.0)
	for b := 0; b < batchSize; b++ {
		target := int(targetsData[b])
		if target < 0 || target >= numClasses {
			panic(&tensor.IndexError{Op: "cross_entropy", Index: target, Limit: numClasses})
		}

		row := logitsData[b*numClasses : (b+1)*numClasses]
		totalLoss += -logSoftmax(row)[target]
	}

	result := mustNewRaw(tensor.Shape{1}, tensor.Float32)
	result.AsFloat32()[0] = totalLoss / float32(batchSize)
	return result
}

// logSoftmax computes log(softmax(z)) in a numerically stable way.
func logSoftmax(z []float32) []float32 {
	result := make([]float32, len(z))

	maxZ := z[0]
	for _, v := range z[1:] {
		if v > maxZ {
			maxZ = v
		}
	}

	sumExp := float32(0.0)
	for _, v := range z {
		sumExp += float32(math.Exp(float64(v - maxZ)))
	}
	logSumExp := maxZ + float32(math.Log(float64(sumExp)))

	for i, v := range z {
		result[i] = v - logSumExp
	}

	return result
}

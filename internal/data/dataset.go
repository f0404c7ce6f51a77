// Package data provides in-memory datasets and mini-batch loading for
// training.
package data

import (
	"fmt"
	"math/rand"

	"github.com/ember-ml/ember/internal/tensor"
)

// Dataset holds a classification dataset in memory: one feature row and
// one integer label per sample.
type Dataset struct {
	Features [][]float32
	Labels   []int32
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Features)
}

// Validate checks structural consistency of the dataset.
func (d *Dataset) Validate() error {
	if len(d.Features) == 0 {
		return fmt.Errorf("dataset is empty")
	}
	if len(d.Features) != len(d.Labels) {
		return fmt.Errorf("dataset has %d feature rows but %d labels", len(d.Features), len(d.Labels))
	}
	width := len(d.Features[0])
	for i, row := range d.Features {
		if len(row) != width {
			return fmt.Errorf("feature row %d has width %d, expected %d", i, len(row), width)
		}
	}
	return nil
}

// Synthetic generates a linearly separable classification dataset with
// numClasses clusters in featureDim dimensions.
//
// Each class gets a random unit-ish center drawn in [-1, 1) per
// coordinate, scaled by 3 so clusters are well separated relative to the
// per-sample noise in [-0.5, 0.5). Generation is fully determined by the
// seed.
func Synthetic(numSamples, featureDim, numClasses int, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed))

	centers := make([][]float32, numClasses)
	for c := range centers {
		center := make([]float32, featureDim)
		for j := range center {
			center[j] = float32(rng.Float64()*2-1) * 3
		}
		centers[c] = center
	}

	features := make([][]float32, numSamples)
	labels := make([]int32, numSamples)
	for i := 0; i < numSamples; i++ {
		class := i % numClasses
		row := make([]float32, featureDim)
		for j := range row {
			row[j] = centers[class][j] + float32(rng.Float64()-0.5)
		}
		features[i] = row
		labels[i] = int32(class)
	}

	return &Dataset{Features: features, Labels: labels}
}

// Batch is one mini-batch of training data materialized as tensors.
type Batch[B tensor.Backend] struct {
	Features *tensor.Tensor[float32, B] // [batch_size, feature_dim]
	Labels   *tensor.Tensor[int32, B]   // [batch_size]
}

package data

import (
	"math/rand"

	"github.com/ember-ml/ember/internal/tensor"
)

// Loader slices a Dataset into mini-batches, reshuffling the sample order
// every epoch.
//
// Shuffling derives its source from seed + epoch, so a given (seed,
// epoch) pair always yields the same permutation regardless of how many
// times or in what order epochs are requested.
type Loader[B tensor.Backend] struct {
	dataset   *Dataset
	batchSize int
	seed      int64
	backend   B
}

// NewLoader creates a loader over dataset. The final batch of an epoch
// may be smaller than batchSize when the dataset size is not a multiple
// of it.
func NewLoader[B tensor.Backend](dataset *Dataset, batchSize int, seed int64, backend B) (*Loader[B], error) {
	if err := dataset.Validate(); err != nil {
		return nil, err
	}
	if batchSize <= 0 {
		batchSize = dataset.Len()
	}
	return &Loader[B]{
		dataset:   dataset,
		batchSize: batchSize,
		seed:      seed,
		backend:   backend,
	}, nil
}

// Epoch returns the mini-batches for the given epoch number, in shuffled
// order. Every sample appears exactly once across the returned batches.
func (l *Loader[B]) Epoch(epoch int) []*Batch[B] {
	n := l.dataset.Len()
	perm := rand.New(rand.NewSource(l.seed + int64(epoch))).Perm(n)

	featureDim := len(l.dataset.Features[0])
	var batches []*Batch[B]
	for start := 0; start < n; start += l.batchSize {
		end := start + l.batchSize
		if end > n {
			end = n
		}
		size := end - start

		features := make([]float32, 0, size*featureDim)
		labels := make([]int32, 0, size)
		for _, idx := range perm[start:end] {
			features = append(features, l.dataset.Features[idx]...)
			labels = append(labels, l.dataset.Labels[idx])
		}

		featureTensor, err := tensor.FromSlice[float32, B](features, tensor.Shape{size, featureDim}, l.backend)
		if err != nil {
			panic(err)
		}
		labelTensor, err := tensor.FromSlice[int32, B](labels, tensor.Shape{size}, l.backend)
		if err != nil {
			panic(err)
		}

		batches = append(batches, &Batch[B]{Features: featureTensor, Labels: labelTensor})
	}
	return batches
}

// NumBatches returns the number of batches per epoch.
func (l *Loader[B]) NumBatches() int {
	return (l.dataset.Len() + l.batchSize - 1) / l.batchSize
}

// BatchSize returns the configured batch size.
func (l *Loader[B]) BatchSize() int {
	return l.batchSize
}

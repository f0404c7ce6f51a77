package cpu

import (
	"github.com/ember-ml/ember/internal/parallel"
	"github.com/ember-ml/ember/internal/tensor"
)

// MatMul performs matrix multiplication.
// For 2D tensors: (M, K) @ (K, N) -> (M, N).
// Rows of the result are computed in parallel for large matrices.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(&tensor.ShapeError{Op: "matmul", Got: aShape.Clone(), Want: bShape.Clone(), Reason: "only 2D tensors supported"})
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]

	if k != kAlt {
		panic(&tensor.ShapeError{Op: "matmul", Got: aShape.Clone(), Want: bShape.Clone(), Reason: "inner dimensions must match"})
	}

	result := mustNewRaw(tensor.Shape{m, n}, tensor.Float32)
	c := result.AsFloat32()
	aData := a.AsFloat32()
	bData := b.AsFloat32()

	// C[i,j] = sum_k A[i,k] * B[k,j], one output row per task.
	parallel.For(m, func(i int) {
		row := c[i*n : (i+1)*n]
		for kIdx := 0; kIdx < k; kIdx++ {
			aik := aData[i*k+kIdx]
			bRow := bData[kIdx*n : (kIdx+1)*n]
			for j := range row {
				row[j] += aik * bRow[j]
			}
		}
	}, cpu.par)

	return result
}

// Transpose performs a 2D transpose.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor) *tensor.RawTensor {
	shape := t.Shape()
	if len(shape) != 2 {
		panic(&tensor.ShapeError{Op: "transpose", Got: shape.Clone(), Reason: "only 2D tensors supported"})
	}

	rows, cols := shape[0], shape[1]
	result := mustNewRaw(tensor.Shape{cols, rows}, tensor.Float32)

	in := t.AsFloat32()
	out := result.AsFloat32()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[j*rows+i] = in[i*cols+j]
		}
	}

	return result
}

// Reshape returns a view of t under a new shape.
// The element count must not change.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result, err := t.View(newShape)
	if err != nil {
		panic(err)
	}
	return result
}

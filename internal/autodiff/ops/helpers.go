package ops

import "github.com/ember-ml/ember/internal/tensor"

// reduceBroadcast reduces a gradient tensor to match the target shape,
// undoing any broadcasting applied in the forward pass: gradients flowing
// into a broadcast dimension are summed, because the broadcast value
// contributed to every element along that dimension.
//
// Example:
//
//	Forward:  bias[1,4] + x[3,4] -> y[3,4]   (bias broadcast along dim 0)
//	Backward: grad_y[3,4] -> grad_bias[1,4]  (sum along dim 0)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()

	// Clone when shapes already match so accumulation never aliases a
	// gradient shared with another consumer.
	if gradShape.Equal(targetShape) {
		return grad.Clone()
	}

	gradData := grad.AsFloat32()

	// Sum every grad element into the target position it broadcast from.
	flat := tensor.Shape{targetShape.NumElements()}
	reduced := newFloat32(flat)
	out := reduced.AsFloat32()

	gradStrides := gradShape.ComputeStrides()
	targetStrides := targetShape.ComputeStrides()
	offset := len(gradShape) - len(targetShape)

	for i, v := range gradData {
		idx := 0
		for d := 0; d < len(gradShape); d++ {
			coord := i / gradStrides[d] % gradShape[d]
			tDim := d - offset
			if tDim < 0 || targetShape[tDim] == 1 {
				continue
			}
			idx += coord * targetStrides[tDim]
		}
		out[idx] += v
	}

	return backend.Reshape(reduced, targetShape)
}

// negate returns -x.
func negate(x *tensor.RawTensor) *tensor.RawTensor {
	result := newFloat32(x.Shape())
	in := x.AsFloat32()
	out := result.AsFloat32()
	for i, v := range in {
		out[i] = -v
	}
	return result
}

// newFloat32 allocates a zeroed float32 tensor; the shapes passed here come
// from existing tensors and are always valid.
func newFloat32(shape tensor.Shape) *tensor.RawTensor {
	raw, err := tensor.NewRaw(shape, tensor.Float32)
	if err != nil {
		panic(err)
	}
	return raw
}

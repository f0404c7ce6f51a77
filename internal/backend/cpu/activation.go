package cpu

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// ReLU applies max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	result := mustNewRaw(x.Shape(), tensor.Float32)

	in := x.AsFloat32()
	out := result.AsFloat32()
	for i, v := range in {
		if v > 0 {
			out[i] = v
		}
	}

	return result
}

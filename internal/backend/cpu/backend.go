// Package cpu implements the CPU compute backend with pure Go kernels.
package cpu

import (
	"github.com/ember-ml/ember/internal/parallel"
	"github.com/ember-ml/ember/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
//
// Kernels never modify their inputs: every operation allocates a fresh
// result tensor. Coarse row parallelism in MatMul is the only concurrency,
// and it is invisible to callers.
type CPUBackend struct {
	par parallel.Config
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		par: parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("add", a, b, func(x, y float32) float32 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("sub", a, b, func(x, y float32) float32 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("mul", a, b, func(x, y float32) float32 { return x * y })
}

// binaryOp applies fn element-wise, broadcasting the operands as needed.
func (cpu *CPUBackend) binaryOp(op string, a, b *tensor.RawTensor, fn func(x, y float32) float32) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(&tensor.ShapeError{Op: op, Got: a.Shape().Clone(), Want: b.Shape().Clone(), Reason: "operands not broadcastable"})
	}

	result := mustNewRaw(outShape, tensor.Float32)
	out := result.AsFloat32()
	aData := a.AsFloat32()
	bData := b.AsFloat32()

	if !needsBroadcast {
		for i := range out {
			out[i] = fn(aData[i], bData[i])
		}
		return result
	}

	// Broadcast path: map each output index back to the operand indices,
	// treating size-1 dimensions as stride 0.
	aIdx := broadcastIndexer(outShape, a.Shape())
	bIdx := broadcastIndexer(outShape, b.Shape())
	for i := range out {
		out[i] = fn(aData[aIdx(i)], bData[bIdx(i)])
	}
	return result
}

// broadcastIndexer returns a function mapping a flat index in the output
// shape to the corresponding flat index in the (possibly smaller) input
// shape, following right-aligned broadcasting rules.
func broadcastIndexer(out, in tensor.Shape) func(int) int {
	outStrides := out.ComputeStrides()
	inStrides := in.ComputeStrides()
	offset := len(out) - len(in)

	return func(flat int) int {
		idx := 0
		for d := 0; d < len(out); d++ {
			coord := flat / outStrides[d] % out[d]
			inDim := d - offset
			if inDim < 0 {
				continue
			}
			if in[inDim] == 1 {
				continue // broadcast dimension, stride 0
			}
			idx += coord * inStrides[inDim]
		}
		return idx
	}
}

// mustNewRaw allocates a result tensor; allocation only fails on an invalid
// shape, which kernel callers have already validated.
func mustNewRaw(shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	raw, err := tensor.NewRaw(shape, dtype)
	if err != nil {
		panic(err)
	}
	return raw
}

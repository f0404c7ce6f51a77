package ops

import "github.com/ember-ml/ember/internal/tensor"

// TransposeOp represents a 2D transpose.
//
// Even though transpose is conceptually a view, the backend produces a new
// tensor. The operation must be recorded so gradients flow back to the
// original tensor: Linear computes input @ Wᵀ, and without TransposeOp the
// backward pass would deliver the weight gradient to the transposed copy
// instead of the parameter the optimizer knows about.
//
// Backward pass: grad_input = outputGradᵀ.
type TransposeOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewTransposeOp creates a new TransposeOp.
func NewTransposeOp(input, output *tensor.RawTensor) *TransposeOp {
	return &TransposeOp{
		input:  input,
		output: output,
	}
}

// Backward transposes the output gradient back to the input orientation.
func (op *TransposeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Transpose(outputGrad)}
}

// Inputs returns the input tensor.
func (op *TransposeOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the transposed tensor.
func (op *TransposeOp) Output() *tensor.RawTensor {
	return op.output
}

// Name returns the operation label.
func (op *TransposeOp) Name() string {
	return "transpose"
}

package ops

import "github.com/ember-ml/ember/internal/tensor"

// ReshapeOp represents a shape change with identical data.
//
// Recorded so gradients propagate back to the pre-reshape tensor. The Linear
// bias is reshaped [out] → [1, out] for broadcasting; without ReshapeOp its
// gradient would stop at the reshaped copy and the bias parameter would
// never update.
//
// Backward pass: grad_input = reshape(outputGrad, input.Shape()).
type ReshapeOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewReshapeOp creates a new ReshapeOp.
func NewReshapeOp(input, output *tensor.RawTensor) *ReshapeOp {
	return &ReshapeOp{
		input:  input,
		output: output,
	}
}

// Backward reshapes the output gradient back to the input shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Reshape(outputGrad, op.input.Shape())}
}

// Inputs returns the input tensor.
func (op *ReshapeOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the reshaped tensor.
func (op *ReshapeOp) Output() *tensor.RawTensor {
	return op.output
}

// Name returns the operation label.
func (op *ReshapeOp) Name() string {
	return "reshape"
}

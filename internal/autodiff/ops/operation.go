// Package ops defines the differentiable operations recorded on the
// gradient tape.
//
// The operation set is closed: each op implements the Operation interface
// with its local derivative rule, and the backward traversal dispatches
// exhaustively over these concrete types.
//
// Supported operations:
//   - AddOp: element-wise addition (d(a+b)/da = 1, d(a+b)/db = 1)
//   - SubOp: element-wise subtraction
//   - MulOp: element-wise multiplication (d(a*b)/da = b, d(a*b)/db = a)
//   - MatMulOp: matrix multiplication (d(A@B)/dA = grad@Bᵀ, d(A@B)/dB = Aᵀ@grad)
//   - ReLUOp: rectified linear unit (1 where input > 0, else 0)
//   - CrossEntropyOp: fused softmax + cross-entropy ((softmax - one_hot)/batch)
//   - TransposeOp, ReshapeOp: shape bookkeeping so gradients reach parameters
package ops

import "github.com/ember-ml/ember/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
// Each operation records its inputs and output during the forward pass,
// and computes input gradients during the backward pass.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor.
	//
	// Example for AddOp:
	//   inputs: [a, b]
	//   outputGrad: dL/d(a+b)
	//   returns: [dL/d(a+b), dL/d(a+b)]
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor

	// Name returns a short operation label, used for graph export.
	Name() string
}

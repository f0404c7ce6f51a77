package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// The operation set is deliberately closed: it is exactly the set of
// differentiable operations the autodiff engine knows local derivative rules
// for, so the backward traversal is an exhaustive dispatch over these ops.
//
// Implementations:
//   - backend/cpu: pure Go kernels with coarse row parallelism
//
// Decorator backends for additional functionality:
//   - autodiff: gradient tape recording (wraps any Backend)
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// Matrix operations (2D).
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor) *RawTensor // 2D transpose

	// Activation.
	ReLU(x *RawTensor) *RawTensor

	// Fused softmax + cross-entropy loss (mean over batch).
	// logits: [batch, classes] float32, targets: [batch] int32.
	CrossEntropy(logits, targets *RawTensor) *RawTensor

	// Metadata.
	Name() string
}

package tensor

import "fmt"

// The training core has three unrecoverable failure classes. All of them
// abort the current step before any parameter mutation happens, since the
// optimizer update is strictly the last phase of a step.

// ShapeError reports a dimension mismatch in a forward operation, or a
// backward pass started from a non-scalar root.
type ShapeError struct {
	Op     string // operation that detected the mismatch, e.g. "matmul"
	Got    Shape
	Want   Shape  // may be nil when Reason says it all
	Reason string // may be empty
}

func (e *ShapeError) Error() string {
	switch {
	case e.Reason != "" && e.Want != nil:
		return fmt.Sprintf("%s: %s (got %v, want %v)", e.Op, e.Reason, e.Got, e.Want)
	case e.Reason != "":
		return fmt.Sprintf("%s: %s (got %v)", e.Op, e.Reason, e.Got)
	default:
		return fmt.Sprintf("%s: shape mismatch: got %v, want %v", e.Op, e.Got, e.Want)
	}
}

// IndexError reports a class label outside the valid [0, limit) range.
type IndexError struct {
	Op    string
	Index int
	Limit int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0, %d)", e.Op, e.Index, e.Limit)
}

// NumericalError reports a non-finite value detected in a loss or gradient.
type NumericalError struct {
	Op    string
	Value float64
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("%s: non-finite value %v", e.Op, e.Value)
}

package matrix

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is wrapped by every error (and panic value) raised when
// two shapes that must agree do not.
var ErrShapeMismatch = errors.New("shape mismatch")

// Shape is the (rows, cols) extent of a matrix.
type Shape struct {
	Rows int
	Cols int
}

// NumElements returns Rows*Cols.
func (s Shape) NumElements() int {
	return s.Rows * s.Cols
}

// Validate checks that both dimensions are positive.
func (s Shape) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return fmt.Errorf("invalid shape %v: dimensions must be > 0", s)
	}
	return nil
}

// Equal reports whether two shapes have the same extent.
func (s Shape) Equal(other Shape) bool {
	return s.Rows == other.Rows && s.Cols == other.Cols
}

// Transpose returns the shape with rows and columns swapped.
func (s Shape) Transpose() Shape {
	return Shape{Rows: s.Cols, Cols: s.Rows}
}

// String formats the shape as "(rows, cols)".
func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d)", s.Rows, s.Cols)
}

// mismatch builds the panic value for a binary op whose operands disagree.
func mismatch(op string, a, b Shape) error {
	return fmt.Errorf("matrix.%s: %w: %v vs %v", op, ErrShapeMismatch, a, b)
}

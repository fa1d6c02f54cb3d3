// Package matrix implements the dense float32 matrix the trainer is built on.
//
// A Matrix is a fixed-shape, row-major grid: element (r, c) lives at flat
// index r*Cols + c. Every matrix owns its buffer exclusively. Algebra
// methods never mutate their operands; they allocate and return a fresh
// matrix. The only mutators are Set and SubScaledInPlace.
//
// Shape violations are programmer errors and panic with an error wrapping
// ErrShapeMismatch. Constructors that take caller data return the error
// instead.
//
// Example:
//
//	a := matrix.MustNew(matrix.Shape{Rows: 2, Cols: 2}, []float32{1, 2, 3, 4})
//	b := matrix.MustNew(matrix.Shape{Rows: 2, Cols: 2}, []float32{5, 6, 7, 8})
//	c := a.Dot(b) // [[19 22] [43 50]]
package matrix

import (
	"fmt"
	"iter"
	"strings"
)

// Matrix is a row-major R×C grid of float32 values. The zero value is an
// empty 0×0 matrix and is not usable; build matrices with New, Zeros or
// Default.
type Matrix struct {
	shape Shape
	data  []float32
}

// New creates a matrix of the given shape holding a copy of data.
//
// Returns an error wrapping ErrShapeMismatch if len(data) != Rows*Cols or
// the shape has a non-positive dimension.
func New(shape Shape, data []float32) (*Matrix, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("matrix.New: %w: %w", ErrShapeMismatch, err)
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("matrix.New: %w: shape %v requires %d elements, got %d",
			ErrShapeMismatch, shape, shape.NumElements(), len(data))
	}
	buf := make([]float32, len(data))
	copy(buf, data)
	return &Matrix{shape: shape, data: buf}, nil
}

// MustNew is like New but panics on error.
func MustNew(shape Shape, data []float32) *Matrix {
	m, err := New(shape, data)
	if err != nil {
		panic(err)
	}
	return m
}

// FromRows builds a matrix from a slice of equal-length rows.
func FromRows(rows [][]float32) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("matrix.FromRows: %w: no rows", ErrShapeMismatch)
	}
	cols := len(rows[0])
	data := make([]float32, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("matrix.FromRows: %w: row %d has %d columns, want %d",
				ErrShapeMismatch, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return New(Shape{Rows: len(rows), Cols: cols}, data)
}

// Zeros creates a matrix filled with zeros.
func Zeros(shape Shape) *Matrix {
	if err := shape.Validate(); err != nil {
		panic(fmt.Errorf("matrix.Zeros: %w: %w", ErrShapeMismatch, err))
	}
	return &Matrix{shape: shape, data: make([]float32, shape.NumElements())}
}

// Ones creates a matrix filled with ones.
func Ones(shape Shape) *Matrix {
	return Full(shape, 1)
}

// Full creates a matrix with every element set to v.
func Full(shape Shape, v float32) *Matrix {
	m := Zeros(shape)
	for i := range m.data {
		m.data[i] = v
	}
	return m
}

// Default returns a 1×1 matrix holding 0.
func Default() *Matrix {
	return Zeros(Shape{Rows: 1, Cols: 1})
}

// Shape returns the matrix shape.
func (m *Matrix) Shape() Shape {
	return m.shape
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return m.shape.Rows
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	return m.shape.Cols
}

// Len returns the number of elements.
func (m *Matrix) Len() int {
	return len(m.data)
}

// Data returns a copy of the row-major buffer.
func (m *Matrix) Data() []float32 {
	out := make([]float32, len(m.data))
	copy(out, m.data)
	return out
}

// At returns element (r, c).
func (m *Matrix) At(r, c int) float32 {
	return m.data[m.index(r, c)]
}

// Set stores v at (r, c).
func (m *Matrix) Set(r, c int, v float32) {
	m.data[m.index(r, c)] = v
}

func (m *Matrix) index(r, c int) int {
	if r < 0 || r >= m.shape.Rows || c < 0 || c >= m.shape.Cols {
		panic(fmt.Sprintf("matrix: index (%d, %d) out of range for shape %v", r, c, m.shape))
	}
	return r*m.shape.Cols + c
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{shape: m.shape, data: m.Data()}
}

// Equal reports whether both matrices have the same shape and elements.
func (m *Matrix) Equal(other *Matrix) bool {
	if !m.shape.Equal(other.shape) {
		return false
	}
	for i, v := range m.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// RowView returns row i as a slice aliasing the matrix buffer.
//
// The slice is borrowed: writes through it change the matrix, and its
// capacity is clipped so appends cannot spill into the next row.
func (m *Matrix) RowView(i int) []float32 {
	if i < 0 || i >= m.shape.Rows {
		panic(fmt.Sprintf("matrix: row %d out of range for shape %v", i, m.shape))
	}
	start := i * m.shape.Cols
	end := start + m.shape.Cols
	return m.data[start:end:end]
}

// Row returns a newly allocated 1×C matrix holding a copy of row i.
func (m *Matrix) Row(i int) *Matrix {
	view := m.RowView(i)
	out := Zeros(Shape{Rows: 1, Cols: m.shape.Cols})
	copy(out.data, view)
	return out
}

// SliceRows returns a copy of rows [start, end) as a new matrix.
func (m *Matrix) SliceRows(start, end int) *Matrix {
	if start < 0 || end > m.shape.Rows || start >= end {
		panic(fmt.Sprintf("matrix: row range [%d, %d) invalid for shape %v", start, end, m.shape))
	}
	cols := m.shape.Cols
	out := Zeros(Shape{Rows: end - start, Cols: cols})
	copy(out.data, m.data[start*cols:end*cols])
	return out
}

// RowIterator yields the rows of a matrix one at a time as 1×C copies.
// It is finite and cannot be restarted once consumed.
type RowIterator struct {
	m    *Matrix
	next int
}

// RowIter returns an iterator over the rows of m in order.
func (m *Matrix) RowIter() *RowIterator {
	return &RowIterator{m: m}
}

// Next returns the next row and true, or nil and false when exhausted.
func (it *RowIterator) Next() (*Matrix, bool) {
	if it.next >= it.m.shape.Rows {
		return nil, false
	}
	row := it.m.Row(it.next)
	it.next++
	return row, true
}

// Remaining returns how many rows are left.
func (it *RowIterator) Remaining() int {
	return it.m.shape.Rows - it.next
}

// All ranges over (index, row copy) pairs.
func (m *Matrix) All() iter.Seq2[int, *Matrix] {
	return func(yield func(int, *Matrix) bool) {
		for i := 0; i < m.shape.Rows; i++ {
			if !yield(i, m.Row(i)) {
				return
			}
		}
	}
}

// String renders the matrix one row per line followed by its shape.
func (m *Matrix) String() string {
	var sb strings.Builder
	sb.WriteString("Matrix[\n")
	for r := 0; r < m.shape.Rows; r++ {
		sb.WriteString(" [")
		for _, v := range m.RowView(r) {
			fmt.Fprintf(&sb, " %g", v)
		}
		sb.WriteString(" ],\n")
	}
	fmt.Fprintf(&sb, "], Shape=%v", m.shape)
	return sb.String()
}

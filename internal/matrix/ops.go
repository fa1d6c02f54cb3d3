package matrix

import (
	"github.com/chewxy/math32"
)

// Transpose returns the C×R matrix with out[j,i] = m[i,j].
func (m *Matrix) Transpose() *Matrix {
	rows, cols := m.shape.Rows, m.shape.Cols
	out := Zeros(m.shape.Transpose())
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.data[j*rows+i] = m.data[i*cols+j]
		}
	}
	return out
}

// Add returns m + other element-wise.
func (m *Matrix) Add(other *Matrix) *Matrix {
	return m.zip("Add", other, func(a, b float32) float32 { return a + b })
}

// Sub returns m - other element-wise.
func (m *Matrix) Sub(other *Matrix) *Matrix {
	return m.zip("Sub", other, func(a, b float32) float32 { return a - b })
}

// Mul returns the Hadamard product m ⊙ other.
func (m *Matrix) Mul(other *Matrix) *Matrix {
	return m.zip("Mul", other, func(a, b float32) float32 { return a * b })
}

// Div returns m / other element-wise. Division by zero yields ±Inf or NaN.
func (m *Matrix) Div(other *Matrix) *Matrix {
	return m.zip("Div", other, func(a, b float32) float32 { return a / b })
}

// Scale multiplies every element by s.
func (m *Matrix) Scale(s float32) *Matrix {
	return m.apply(func(v float32) float32 { return v * s })
}

// DivScalar divides every element by s.
func (m *Matrix) DivScalar(s float32) *Matrix {
	return m.apply(func(v float32) float32 { return v / s })
}

// SubScalar subtracts s from every element.
func (m *Matrix) SubScalar(s float32) *Matrix {
	return m.apply(func(v float32) float32 { return v - s })
}

// AddScalar adds s to every element.
func (m *Matrix) AddScalar(s float32) *Matrix {
	return m.apply(func(v float32) float32 { return v + s })
}

// Exp returns e^v for every element. Large inputs overflow to +Inf.
func (m *Matrix) Exp() *Matrix {
	return m.apply(math32.Exp)
}

// Log returns the natural logarithm of every element.
func (m *Matrix) Log() *Matrix {
	return m.apply(math32.Log)
}

// Clamp limits every element to [lo, hi].
func (m *Matrix) Clamp(lo, hi float32) *Matrix {
	return m.apply(func(v float32) float32 {
		return math32.Min(math32.Max(v, lo), hi)
	})
}

// SubScaledInPlace performs m ← m − s·g without allocating.
//
// This is the one in-place algebra operation; it exists for the SGD
// weight update.
func (m *Matrix) SubScaledInPlace(g *Matrix, s float32) {
	if !m.shape.Equal(g.shape) {
		panic(mismatch("SubScaledInPlace", m.shape, g.shape))
	}
	for i, v := range g.data {
		m.data[i] -= s * v
	}
}

func (m *Matrix) zip(op string, other *Matrix, f func(a, b float32) float32) *Matrix {
	if !m.shape.Equal(other.shape) {
		panic(mismatch(op, m.shape, other.shape))
	}
	out := &Matrix{shape: m.shape, data: make([]float32, len(m.data))}
	for i, v := range m.data {
		out.data[i] = f(v, other.data[i])
	}
	return out
}

func (m *Matrix) apply(f func(float32) float32) *Matrix {
	out := &Matrix{shape: m.shape, data: make([]float32, len(m.data))}
	for i, v := range m.data {
		out.data[i] = f(v)
	}
	return out
}

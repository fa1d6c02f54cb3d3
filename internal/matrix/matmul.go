package matrix

// Dot performs matrix multiplication: (R, K) · (K, C) -> (R, C).
// Panics with ErrShapeMismatch when the inner dimensions differ.
func (m *Matrix) Dot(other *Matrix) *Matrix {
	r, k := m.shape.Rows, m.shape.Cols
	kAlt, c := other.shape.Rows, other.shape.Cols
	if k != kAlt {
		panic(mismatch("Dot", m.shape, other.shape))
	}

	out := Zeros(Shape{Rows: r, Cols: c})
	matmulFloat32(out.data, m.data, other.data, r, k, c)
	return out
}

// matmulFloat32 computes C[i,j] = sum_k A[i,k] * B[k,j] with the naive
// triple loop. The accumulation order over k is fixed so results are
// reproducible across runs.
func matmulFloat32(c, a, b []float32, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			sum := float32(0)
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += a[i*k+kIdx] * b[kIdx*n+j]
			}
			c[i*n+j] = sum
		}
	}
}

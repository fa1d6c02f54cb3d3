package matrix

import (
	"github.com/chewxy/math32"
)

// Sum folds all elements with + in row-major order.
func (m *Matrix) Sum() float32 {
	var sum float32
	for _, v := range m.data {
		sum += v
	}
	return sum
}

// Mean returns Sum() / Len().
func (m *Matrix) Mean() float32 {
	return m.Sum() / float32(len(m.data))
}

// Max returns the largest element. The fold is seeded with -Inf.
func (m *Matrix) Max() float32 {
	maxV := math32.Inf(-1)
	for _, v := range m.data {
		maxV = math32.Max(maxV, v)
	}
	return maxV
}

// MaxIndex returns the row-major index of the largest element.
// Ties resolve to the lowest index. An empty matrix panics.
func (m *Matrix) MaxIndex() int {
	if len(m.data) == 0 {
		panic(mismatch("MaxIndex", m.shape, Shape{Rows: 1, Cols: 1}))
	}
	maxIdx := 0
	maxVal := m.data[0]
	for i := 1; i < len(m.data); i++ {
		if m.data[i] > maxVal {
			maxVal = m.data[i]
			maxIdx = i
		}
	}
	return maxIdx
}

package dataset

import (
	"github.com/born-ml/digits/internal/matrix"
)

// OneHot encodes label as a 1×numClasses row with 1 at the label index.
// Labels outside [0, numClasses) are clamped to class 1.
func OneHot(label float32, numClasses int) *matrix.Matrix {
	idx := int(label)
	if label < 0 || idx >= numClasses {
		idx = 1
	}
	row := matrix.Zeros(matrix.Shape{Rows: 1, Cols: numClasses})
	row.Set(0, idx, 1)
	return row
}

// OneHotAll encodes every label with OneHot.
func OneHotAll(labels []float32, numClasses int) []*matrix.Matrix {
	out := make([]*matrix.Matrix, len(labels))
	for i, l := range labels {
		out[i] = OneHot(l, numClasses)
	}
	return out
}

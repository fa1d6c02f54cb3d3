package nn

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/born-ml/digits/internal/matrix"
)

// DefaultSeed seeds the weight generator when no *rand.Rand is supplied,
// so two runs with the same configuration start from the same weights.
const DefaultSeed int64 = 42

// Initializer produces a fanIn×fanOut weight matrix.
type Initializer func(fanIn, fanOut int, rng *rand.Rand) *matrix.Matrix

// Xavier draws weights uniformly from [0, sqrt(6/(fan_in + fan_out))).
//
// Only the non-negative half of the usual Glorot range is used, so every
// initial weight is >= 0.
func Xavier(fanIn, fanOut int, rng *rand.Rand) *matrix.Matrix {
	bound := math32.Sqrt(6.0 / float32(fanIn+fanOut))

	w := matrix.Zeros(matrix.Shape{Rows: fanIn, Cols: fanOut})
	for i := 0; i < fanIn; i++ {
		row := w.RowView(i)
		for j := range row {
			row[j] = rng.Float32() * bound
		}
	}
	return w
}

// Constant returns an Initializer that fills every weight with v.
func Constant(v float32) Initializer {
	return func(fanIn, fanOut int, _ *rand.Rand) *matrix.Matrix {
		return matrix.Full(matrix.Shape{Rows: fanIn, Cols: fanOut}, v)
	}
}

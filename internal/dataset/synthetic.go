package dataset

import (
	"math/rand"

	"github.com/born-ml/digits/internal/matrix"
)

// Synthetic creates a small deterministic dataset for testing the
// pipeline without MNIST files.
//
// Sample i belongs to class i % numClasses, so classes are interleaved in
// stored order. Feature j of a class-c sample is bright (0.8) when
// j % numClasses == c and dark otherwise, plus uniform noise in [0, 0.1).
// This is NOT realistic MNIST data; the classes are linearly separable.
func Synthetic(numSamples, numClasses, numFeatures int, seed int64) *Dataset {
	//nolint:gosec // Using math/rand for reproducible test data
	rng := rand.New(rand.NewSource(seed))

	data := make([]float32, numSamples*numFeatures)
	labels := make([]float32, numSamples)

	for i := 0; i < numSamples; i++ {
		class := i % numClasses
		labels[i] = float32(class)
		for j := 0; j < numFeatures; j++ {
			v := rng.Float32() * 0.1
			if j%numClasses == class {
				v += 0.8
			}
			data[i*numFeatures+j] = v
		}
	}

	return &Dataset{
		Images:     matrix.MustNew(matrix.Shape{Rows: numSamples, Cols: numFeatures}, data),
		Labels:     labels,
		NumClasses: numClasses,
	}
}

// Package nn implements the layers the digit classifier is built from.
//
// This package provides:
//   - Linear: dense layer without bias, trained with SGD
//   - Softmax: flat softmax over a whole matrix
//   - CrossEntropyLoss: clamped cross-entropy against one-hot targets
//   - SoftmaxCrossEntropy: fused softmax + cross-entropy
//   - Initializers: Xavier (half range) and constant
//
// Every layer caches what it needs from Forward so that Backward can be
// called with only the upstream gradient. Layers are not safe for concurrent
// use.
package nn

import (
	"github.com/born-ml/digits/internal/matrix"
)

// Layer is a differentiable transformation of a single matrix.
type Layer interface {
	// Forward computes the output and caches what Backward needs.
	Forward(x *matrix.Matrix) *matrix.Matrix
}

// Gradients is the result of a backward pass through a Linear layer.
type Gradients struct {
	// WeightGrads is ∂L/∂W, shaped like the weights (I×O).
	WeightGrads *matrix.Matrix

	// InputGrads is ∂L/∂x, shaped like the last input.
	InputGrads *matrix.Matrix
}

package nn

import (
	"github.com/born-ml/digits/internal/matrix"
)

// Loss scores a prediction against a one-hot target.
//
// Both CrossEntropyLoss and SoftmaxCrossEntropy satisfy it; they differ in
// whether the prediction is a probability row or raw logits.
type Loss interface {
	// Forward computes and stores the loss for one prediction.
	Forward(predicted, target *matrix.Matrix) float32

	// Value returns the loss stored by the last Forward.
	Value() float32
}

var (
	_ Loss  = (*CrossEntropyLoss)(nil)
	_ Loss  = (*SoftmaxCrossEntropy)(nil)
	_ Layer = (*Linear)(nil)
	_ Layer = (*Softmax)(nil)
)

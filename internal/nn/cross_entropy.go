package nn

import (
	"fmt"

	"github.com/born-ml/digits/internal/matrix"
)

// Epsilon bounds predictions away from 0 and 1 before taking logs.
const Epsilon float32 = 1e-8

// CrossEntropyLoss compares a prediction row against a one-hot target.
//
// Mathematical formulation:
//
//	p'   = clamp(p, ε, 1-ε)
//	Loss = -Σ y · ln(p')
//
// Gradient:
//
//	∂L/∂p = p' - y
//
// This is the softmax-fused gradient formula applied to whatever the
// previous layer produced; it is not the exact derivative of -y·ln(p).
type CrossEntropyLoss struct {
	// Loss is a 1×1 matrix holding the last loss value.
	Loss *matrix.Matrix

	// InputGrads is ∂L/∂p for the last Forward, shaped like the prediction.
	InputGrads *matrix.Matrix
}

// NewCrossEntropyLoss creates a loss whose state is the 1×1 zero matrix.
func NewCrossEntropyLoss() *CrossEntropyLoss {
	return &CrossEntropyLoss{
		Loss:       matrix.Default(),
		InputGrads: matrix.Default(),
	}
}

// Forward computes the loss and gradient for one prediction.
// predicted and target must have the same shape.
func (c *CrossEntropyLoss) Forward(predicted, target *matrix.Matrix) float32 {
	checkTarget("CrossEntropyLoss.Forward", predicted, target)

	clamped := predicted.Clamp(Epsilon, 1-Epsilon)
	loss := crossEntropy(clamped, target)

	c.Loss = matrix.Full(matrix.Shape{Rows: 1, Cols: 1}, loss)
	c.InputGrads = clamped.Sub(target)
	return loss
}

// Value returns the last loss as a scalar.
func (c *CrossEntropyLoss) Value() float32 {
	return c.Loss.At(0, 0)
}

// SoftmaxCrossEntropy fuses a softmax with cross-entropy.
//
// Forward takes raw logits. Backward returns p - y, the exact gradient of
// the composed function with respect to the logits.
type SoftmaxCrossEntropy struct {
	softmax *Softmax
	target  *matrix.Matrix
	loss    float32
}

// NewSoftmaxCrossEntropy creates a fused softmax + cross-entropy loss.
func NewSoftmaxCrossEntropy() *SoftmaxCrossEntropy {
	return &SoftmaxCrossEntropy{
		softmax: NewSoftmax(),
		target:  matrix.Default(),
	}
}

// Forward computes softmax(logits) and its cross-entropy against target.
func (f *SoftmaxCrossEntropy) Forward(logits, target *matrix.Matrix) float32 {
	checkTarget("SoftmaxCrossEntropy.Forward", logits, target)

	probs := f.softmax.Forward(logits)
	f.target = target.Clone()
	f.loss = crossEntropy(probs.Clamp(Epsilon, 1-Epsilon), target)
	return f.loss
}

// Backward returns ∂L/∂logits = p - y for the last Forward.
func (f *SoftmaxCrossEntropy) Backward() *matrix.Matrix {
	return f.softmax.Output().Sub(f.target)
}

// Probabilities returns the softmax output of the last Forward.
func (f *SoftmaxCrossEntropy) Probabilities() *matrix.Matrix {
	return f.softmax.Output()
}

// Value returns the last loss.
func (f *SoftmaxCrossEntropy) Value() float32 {
	return f.loss
}

func crossEntropy(p, target *matrix.Matrix) float32 {
	return target.Mul(p.Log()).Scale(-1).Sum()
}

func checkTarget(op string, predicted, target *matrix.Matrix) {
	if !predicted.Shape().Equal(target.Shape()) {
		panic(fmt.Errorf("%s: %w: prediction %v vs target %v",
			op, matrix.ErrShapeMismatch, predicted.Shape(), target.Shape()))
	}
}

// Package optim implements the parameter update rule used during training.
//
// Only plain stochastic gradient descent is provided:
//
//	param = param - lr * gradient
//
// Example usage:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 9e-4})
//	grads := layer.Backward(upstream)
//	sgd.Update(weights, grads.WeightGrads)
package optim

import (
	"github.com/born-ml/digits/internal/matrix"
)

// DefaultLR is the learning rate used when none is configured.
const DefaultLR float32 = 9e-4

// Optimizer updates a parameter matrix in place from its gradient.
type Optimizer interface {
	// Update applies one step to param using grad. Both must have the same
	// shape; a mismatch panics with matrix.ErrShapeMismatch.
	Update(param, grad *matrix.Matrix)

	// GetLR returns the current learning rate.
	GetLR() float32
}

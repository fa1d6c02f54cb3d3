package optim

import (
	"github.com/born-ml/digits/internal/matrix"
)

// SGD implements Stochastic Gradient Descent without momentum or decay.
//
// Update rule:
//
//	param = param - lr * gradient
//
// The update is applied in place; no intermediate matrix is allocated.
type SGD struct {
	lr float32
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR float32 // Learning rate (default: DefaultLR)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = DefaultLR
	}
	return &SGD{lr: config.LR}
}

// Update performs param -= lr * grad in place.
func (s *SGD) Update(param, grad *matrix.Matrix) {
	param.SubScaledInPlace(grad, s.lr)
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float32 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float32) {
	s.lr = lr
}

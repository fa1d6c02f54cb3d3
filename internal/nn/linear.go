package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/digits/internal/matrix"
	"github.com/born-ml/digits/internal/optim"
)

// DefaultLearningRate is the SGD step size used by NewLinear.
const DefaultLearningRate = optim.DefaultLR

// Linear implements a fully connected layer without bias.
//
// Performs the transformation: y = x · W
// where:
//   - x is the input matrix with shape [rows, in]
//   - W is the weight matrix with shape [in, out]
//   - y is the output matrix with shape [rows, out]
//
// Example:
//
//	layer := nn.NewLinear(784, 100, nn.WithLearningRate(9e-4))
//	out := layer.Forward(x)              // [1, 100]
//	grads := layer.Backward(upstream)    // upstream: [1, 100]
//	layer.ApplyGradient(grads.WeightGrads)
type Linear struct {
	in        int
	out       int
	weights   *matrix.Matrix
	lastInput *matrix.Matrix
	optimizer optim.Optimizer
}

type linearConfig struct {
	rng       *rand.Rand
	init      Initializer
	optimizer optim.Optimizer
	lr        float32
}

// LinearOption configures NewLinear.
type LinearOption func(*linearConfig)

// WithRand sets the random source used by the initializer.
func WithRand(rng *rand.Rand) LinearOption {
	return func(c *linearConfig) { c.rng = rng }
}

// WithInitializer replaces the default Xavier initializer.
func WithInitializer(fn Initializer) LinearOption {
	return func(c *linearConfig) { c.init = fn }
}

// WithConstantInit fills every weight with v.
func WithConstantInit(v float32) LinearOption {
	return WithInitializer(Constant(v))
}

// WithLearningRate sets the SGD learning rate.
func WithLearningRate(lr float32) LinearOption {
	return func(c *linearConfig) { c.lr = lr }
}

// WithOptimizer replaces the default SGD optimizer. WithLearningRate is
// ignored when an optimizer is supplied.
func WithOptimizer(opt optim.Optimizer) LinearOption {
	return func(c *linearConfig) { c.optimizer = opt }
}

// NewLinear creates a Linear layer mapping in features to out features.
//
// Weights use Xavier initialization from a generator seeded with
// DefaultSeed unless overridden. The input cache starts as an in×out zero
// matrix.
func NewLinear(in, out int, opts ...LinearOption) *Linear {
	cfg := linearConfig{
		init: Xavier,
		lr:   DefaultLearningRate,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		cfg.rng = rand.New(rand.NewSource(DefaultSeed))
	}
	if cfg.optimizer == nil {
		cfg.optimizer = optim.NewSGD(optim.SGDConfig{LR: cfg.lr})
	}

	weights := cfg.init(in, out, cfg.rng)
	if weights.Rows() != in || weights.Cols() != out {
		panic(fmt.Sprintf("NewLinear: initializer returned %v, want (%d, %d)", weights.Shape(), in, out))
	}

	return &Linear{
		in:        in,
		out:       out,
		weights:   weights,
		lastInput: matrix.Zeros(matrix.Shape{Rows: in, Cols: out}),
		optimizer: cfg.optimizer,
	}
}

// Forward returns x · W and caches a copy of x.
func (l *Linear) Forward(x *matrix.Matrix) *matrix.Matrix {
	if x.Cols() != l.in {
		panic(fmt.Errorf("Linear.Forward: %w: expected input with %d features, got %v",
			matrix.ErrShapeMismatch, l.in, x.Shape()))
	}
	l.lastInput = x.Clone()
	return x.Dot(l.weights)
}

// Backward computes weight and input gradients from the upstream gradient.
//
//	WeightGrads = lastInputᵀ · grad
//	InputGrads  = grad · Wᵀ
//
// grad must be shaped (lastInput.Rows, out). Nothing is mutated.
func (l *Linear) Backward(grad *matrix.Matrix) Gradients {
	want := matrix.Shape{Rows: l.lastInput.Rows(), Cols: l.out}
	if !grad.Shape().Equal(want) {
		panic(fmt.Errorf("Linear.Backward: %w: expected gradient %v, got %v",
			matrix.ErrShapeMismatch, want, grad.Shape()))
	}
	return Gradients{
		WeightGrads: l.lastInput.Transpose().Dot(grad),
		InputGrads:  grad.Dot(l.weights.Transpose()),
	}
}

// ApplyGradient updates the weights in place: W ← W − η·G.
func (l *Linear) ApplyGradient(weightGrads *matrix.Matrix) {
	want := matrix.Shape{Rows: l.in, Cols: l.out}
	if !weightGrads.Shape().Equal(want) {
		panic(fmt.Errorf("Linear.ApplyGradient: %w: expected %v, got %v",
			matrix.ErrShapeMismatch, want, weightGrads.Shape()))
	}
	l.optimizer.Update(l.weights, weightGrads)
}

// Weights returns a copy of the weight matrix.
func (l *Linear) Weights() *matrix.Matrix {
	return l.weights.Clone()
}

// LearningRate returns the optimizer's learning rate.
func (l *Linear) LearningRate() float32 {
	return l.optimizer.GetLR()
}

// Shape returns (in, out).
func (l *Linear) Shape() (in, out int) {
	return l.in, l.out
}

// String returns a short description of the layer.
func (l *Linear) String() string {
	return fmt.Sprintf("Linear(in=%d, out=%d)", l.in, l.out)
}

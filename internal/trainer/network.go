// Package trainer wires the layers into the two-layer digit classifier and
// drives per-sample SGD training over a dataset.
package trainer

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/born-ml/digits/internal/matrix"
	"github.com/born-ml/digits/internal/nn"
)

// Architecture selects where the softmax sits in the network.
type Architecture string

const (
	// HiddenSoftmax applies the softmax between the two linear layers and
	// scores the raw output of the second layer with cross-entropy.
	HiddenSoftmax Architecture = "hidden-softmax"

	// OutputSoftmax feeds the second layer's logits to a fused
	// softmax + cross-entropy loss.
	OutputSoftmax Architecture = "output-softmax"
)

// Default network dimensions.
const (
	DefaultInputDim  = 28 * 28
	DefaultHiddenDim = 100
	DefaultOutputDim = 10
)

// ErrInvalidNetwork is returned by NewNetwork for unusable configurations.
var ErrInvalidNetwork = errors.New("trainer: invalid network config")

// NetworkConfig describes a Network.
type NetworkConfig struct {
	InputDim     int
	HiddenDim    int
	OutputDim    int
	LearningRate float32
	Seed         int64
	Architecture Architecture

	// Init overrides Xavier initialization for both layers.
	Init nn.Initializer
}

// DefaultNetworkConfig returns the 784→100→10 hidden-softmax network.
func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		InputDim:     DefaultInputDim,
		HiddenDim:    DefaultHiddenDim,
		OutputDim:    DefaultOutputDim,
		LearningRate: nn.DefaultLearningRate,
		Seed:         nn.DefaultSeed,
		Architecture: HiddenSoftmax,
	}
}

// Network is L₁ (in→hidden), L₂ (hidden→out) and a loss, composed according
// to Architecture.
type Network struct {
	arch    Architecture
	l1      *nn.Linear
	l2      *nn.Linear
	softmax *nn.Softmax
	ce      *nn.CrossEntropyLoss
	fused   *nn.SoftmaxCrossEntropy
}

// NewNetwork builds a Network from cfg.
func NewNetwork(cfg NetworkConfig) (*Network, error) {
	if cfg.InputDim <= 0 || cfg.HiddenDim <= 0 || cfg.OutputDim <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %d→%d→%d",
			ErrInvalidNetwork, cfg.InputDim, cfg.HiddenDim, cfg.OutputDim)
	}
	if cfg.LearningRate <= 0 {
		return nil, fmt.Errorf("%w: learning rate must be > 0, got %g", ErrInvalidNetwork, cfg.LearningRate)
	}
	if cfg.Architecture == "" {
		cfg.Architecture = HiddenSoftmax
	}
	if cfg.Architecture != HiddenSoftmax && cfg.Architecture != OutputSoftmax {
		return nil, fmt.Errorf("%w: unknown architecture %q", ErrInvalidNetwork, cfg.Architecture)
	}

	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	rng := rand.New(rand.NewSource(cfg.Seed))
	opts := []nn.LinearOption{nn.WithRand(rng), nn.WithLearningRate(cfg.LearningRate)}
	if cfg.Init != nil {
		opts = append(opts, nn.WithInitializer(cfg.Init))
	}

	return &Network{
		arch:    cfg.Architecture,
		l1:      nn.NewLinear(cfg.InputDim, cfg.HiddenDim, opts...),
		l2:      nn.NewLinear(cfg.HiddenDim, cfg.OutputDim, opts...),
		softmax: nn.NewSoftmax(),
		ce:      nn.NewCrossEntropyLoss(),
		fused:   nn.NewSoftmaxCrossEntropy(),
	}, nil
}

// Architecture returns the network's architecture.
func (n *Network) Architecture() Architecture {
	return n.arch
}

// Layers returns the two linear layers.
func (n *Network) Layers() (l1, l2 *nn.Linear) {
	return n.l1, n.l2
}

// Forward runs x through the network and returns the output row used for
// classification.
func (n *Network) Forward(x *matrix.Matrix) *matrix.Matrix {
	a1 := n.l1.Forward(x)
	if n.arch == HiddenSoftmax {
		a1 = n.softmax.Forward(a1)
	}
	return n.l2.Forward(a1)
}

// Step performs one forward pass, one backward pass and one SGD update on
// both layers. It returns the sample loss.
func (n *Network) Step(x, y *matrix.Matrix) float32 {
	out := n.Forward(x)

	if n.arch == OutputSoftmax {
		loss := n.fused.Forward(out, y)
		g2 := n.l2.Backward(n.fused.Backward())
		g0 := n.l1.Backward(g2.InputGrads)
		n.l1.ApplyGradient(g0.WeightGrads)
		n.l2.ApplyGradient(g2.WeightGrads)
		return loss
	}

	n.ce.Forward(out, y)
	g2 := n.l2.Backward(n.ce.InputGrads)
	g1 := n.softmax.Backward(g2.InputGrads)
	g0 := n.l1.Backward(g1)
	n.l1.ApplyGradient(g0.WeightGrads)
	n.l2.ApplyGradient(g2.WeightGrads)
	return n.ce.Loss.At(0, 0)
}

// Predict returns the index of the largest output for x.
func (n *Network) Predict(x *matrix.Matrix) int {
	return n.Forward(x).MaxIndex()
}

// String describes the network layout.
func (n *Network) String() string {
	return fmt.Sprintf("Network(%v, %v, %s)", n.l1, n.l2, n.arch)
}

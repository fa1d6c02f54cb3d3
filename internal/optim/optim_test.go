package optim_test

import (
	"testing"

	"github.com/born-ml/digits/internal/matrix"
	"github.com/born-ml/digits/internal/optim"
	"github.com/stretchr/testify/assert"
)

// TestSGD_SimpleUpdate tests a single SGD step.
func TestSGD_SimpleUpdate(t *testing.T) {
	param := matrix.MustNew(matrix.Shape{Rows: 1, Cols: 2}, []float32{2.0, -1.0})
	grad := matrix.MustNew(matrix.Shape{Rows: 1, Cols: 2}, []float32{1.0, -2.0})

	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1})
	sgd.Update(param, grad)

	// Expected: x_new = x_old - lr * grad
	assert.InDelta(t, 1.9, param.At(0, 0), 1e-6)
	assert.InDelta(t, -0.8, param.At(0, 1), 1e-6)

	// Gradient is untouched.
	assert.Equal(t, []float32{1.0, -2.0}, grad.Data())
}

// TestSGD_RepeatedSteps checks there is no momentum carried between steps.
func TestSGD_RepeatedSteps(t *testing.T) {
	param := matrix.Full(matrix.Shape{Rows: 2, Cols: 2}, 1.0)
	grad := matrix.Ones(matrix.Shape{Rows: 2, Cols: 2})

	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.25})
	sgd.Update(param, grad)
	sgd.Update(param, grad)

	for _, v := range param.Data() {
		assert.InDelta(t, 0.5, v, 1e-6)
	}
}

func TestSGD_DefaultLR(t *testing.T) {
	sgd := optim.NewSGD(optim.SGDConfig{})
	assert.Equal(t, optim.DefaultLR, sgd.GetLR())
}

func TestSGD_GetSetLR(t *testing.T) {
	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.01})
	assert.Equal(t, float32(0.01), sgd.GetLR())

	sgd.SetLR(0.001)
	assert.Equal(t, float32(0.001), sgd.GetLR())
}

func TestSGD_ShapeMismatchPanics(t *testing.T) {
	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1})
	param := matrix.Zeros(matrix.Shape{Rows: 2, Cols: 2})
	grad := matrix.Zeros(matrix.Shape{Rows: 1, Cols: 4})

	assert.Panics(t, func() { sgd.Update(param, grad) })
}

func TestSGD_ImplementsOptimizer(t *testing.T) {
	var _ optim.Optimizer = optim.NewSGD(optim.SGDConfig{})
}

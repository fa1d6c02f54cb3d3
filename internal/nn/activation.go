package nn

import (
	"github.com/born-ml/digits/internal/matrix"
)

// Softmax normalizes a whole matrix into a probability distribution.
//
// The normalization is flat: all elements share one denominator, which for
// a 1×N row is the usual softmax. The input is shifted by its maximum before
// exponentiation so large logits do not overflow.
//
//	s = exp(z - max(z)) / sum(exp(z - max(z)))
type Softmax struct {
	output *matrix.Matrix
}

// NewSoftmax creates a Softmax whose stored output is the 1×1 zero matrix.
func NewSoftmax() *Softmax {
	return &Softmax{output: matrix.Default()}
}

// Forward computes the softmax of z and stores it for Backward.
func (s *Softmax) Forward(z *matrix.Matrix) *matrix.Matrix {
	e := z.SubScalar(z.Max()).Exp()
	s.output = e.DivScalar(e.Sum())
	return s.output
}

// Backward returns the gradient with respect to the softmax input.
//
//	h = s ⊙ g
//	d = h - s * sum(h)
//	return d / sum(s)²
//
// g must have the shape of the last output.
func (s *Softmax) Backward(g *matrix.Matrix) *matrix.Matrix {
	h := s.output.Mul(g)
	d := h.Sub(s.output.Scale(h.Sum()))
	total := s.output.Sum()
	return d.DivScalar(total * total)
}

// Output returns the last computed output.
func (s *Softmax) Output() *matrix.Matrix {
	return s.output
}

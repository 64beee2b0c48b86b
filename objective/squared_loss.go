package objective

import (
	"github.com/sgdkit/sgdkit/linalg"
)

// SquaredLoss is the squared error objective for (multi-output)
// regression.
type SquaredLoss struct{}

// NewSquaredLoss returns a squared error objective.
func NewSquaredLoss() SquaredLoss {
	return SquaredLoss{}
}

// LossAndGradient returns half the squared L2 distance between truth and
// prediction, and the residual truth - prediction as the gradient.
func (SquaredLoss) LossAndGradient(truth *linalg.DenseVector, prediction *linalg.DenseVector) (float64, linalg.Vector) {
	td := truth.Data()
	pd := prediction.Data()
	if len(td) != len(pd) {
		panic("objective: truth and prediction dimension mismatch")
	}
	residual := make([]float64, len(td))
	var loss float64
	for i := range td {
		r := td[i] - pd[i]
		residual[i] = r
		loss += r * r
	}
	return loss / 2.0, linalg.NewDenseVectorFrom(residual)
}

// Name implements Regression.
func (SquaredLoss) Name() string {
	return "SquaredLoss"
}

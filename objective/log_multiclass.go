package objective

import (
	"math"

	"github.com/sgdkit/sgdkit/linalg"
)

// LogMulticlass is the softmax cross-entropy objective for multiclass
// classification.
type LogMulticlass struct{}

// NewLogMulticlass returns a softmax cross-entropy objective.
func NewLogMulticlass() LogMulticlass {
	return LogMulticlass{}
}

// LossAndGradient computes the negative log likelihood of the true class
// under the softmax of the scores, and the gradient onehot(truth) -
// softmax(prediction).
func (LogMulticlass) LossAndGradient(truth int, prediction *linalg.DenseVector) (float64, linalg.Vector) {
	probs := softmax(prediction.Data())
	loss := -math.Log(probs[truth])

	gradient := make([]float64, len(probs))
	for i, p := range probs {
		gradient[i] = -p
	}
	gradient[truth] += 1.0
	return loss, linalg.NewDenseVectorFrom(gradient)
}

// Distribution applies the softmax to the raw scores.
func (LogMulticlass) Distribution(prediction *linalg.DenseVector) *linalg.DenseVector {
	return linalg.NewDenseVectorFrom(softmax(prediction.Data()))
}

// Name implements Classification.
func (LogMulticlass) Name() string {
	return "LogMulticlass"
}

// softmax exp-normalizes after subtracting the max score for numerical
// stability.
func softmax(scores []float64) []float64 {
	maxScore := math.Inf(-1)
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	out := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		e := math.Exp(s - maxScore)
		out[i] = e
		sum += e
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

package objective

import (
	"github.com/sgdkit/sgdkit/linalg"
)

// Hinge is the multiclass hinge loss. The loss is positive when the true
// class score fails to beat the best wrong class score by the margin.
// Gradients are sparse, touching only the true class and the offending
// class, so training with this objective exercises the sparse merge path.
type Hinge struct {
	margin float64
}

// NewHinge returns a hinge objective with margin 1.0.
func NewHinge() Hinge {
	return Hinge{margin: 1.0}
}

// NewHingeWithMargin returns a hinge objective with the given margin.
func NewHingeWithMargin(margin float64) Hinge {
	return Hinge{margin: margin}
}

// LossAndGradient returns max(0, margin - (score[truth] - bestWrong)) and
// a sparse gradient of +1 at the true class and -1 at the best wrong
// class when the margin is violated, or an empty sparse gradient
// otherwise.
func (h Hinge) LossAndGradient(truth int, prediction *linalg.DenseVector) (float64, linalg.Vector) {
	scores := prediction.Data()
	bestWrong := -1
	for i, s := range scores {
		if i == truth {
			continue
		}
		if bestWrong == -1 || s > scores[bestWrong] {
			bestWrong = i
		}
	}
	if bestWrong == -1 {
		// Single class, nothing to separate.
		return 0, linalg.NewSparseVector(len(scores), nil, nil)
	}

	loss := h.margin - (scores[truth] - scores[bestWrong])
	if loss <= 0 {
		return 0, linalg.NewSparseVector(len(scores), nil, nil)
	}

	var indices []int
	var values []float64
	if truth < bestWrong {
		indices = []int{truth, bestWrong}
		values = []float64{1.0, -1.0}
	} else {
		indices = []int{bestWrong, truth}
		values = []float64{-1.0, 1.0}
	}
	return loss, linalg.NewSparseVector(len(scores), indices, values)
}

// Distribution returns the raw scores unchanged; hinge scores are margins,
// not probabilities.
func (Hinge) Distribution(prediction *linalg.DenseVector) *linalg.DenseVector {
	return prediction.Copy()
}

// Name implements Classification.
func (Hinge) Name() string {
	return "Hinge"
}

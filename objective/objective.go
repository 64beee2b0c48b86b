// Package objective defines the loss functions used by the linear
// trainers.
//
// Gradients point in the direction of steepest descent on the loss after
// negation, so parameter updates add them directly. Classification
// objectives consume an integer class index, regression objectives a
// dense target vector.
package objective

import (
	"github.com/sgdkit/sgdkit/linalg"
)

// Classification scores a vector of per-class model outputs against the
// true class index.
type Classification interface {
	// LossAndGradient returns the loss and the negated loss gradient with
	// respect to the prediction.
	LossAndGradient(truth int, prediction *linalg.DenseVector) (float64, linalg.Vector)

	// Distribution converts raw scores into the output distribution used
	// for probability estimates.
	Distribution(prediction *linalg.DenseVector) *linalg.DenseVector

	// Name identifies the objective in logs and model metadata.
	Name() string
}

// Regression scores a vector of per-dimension model outputs against the
// true regression targets.
type Regression interface {
	// LossAndGradient returns the loss and the negated loss gradient with
	// respect to the prediction.
	LossAndGradient(truth *linalg.DenseVector, prediction *linalg.DenseVector) (float64, linalg.Vector)

	// Name identifies the objective in logs and model metadata.
	Name() string
}

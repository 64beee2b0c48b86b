package optimizer

import (
	"fmt"
	"math"

	"github.com/sgdkit/sgdkit/linalg"
	"github.com/sgdkit/sgdkit/param"
)

// Adam keeps exponential moving averages of the gradients and of their
// squares, with bias correction folded into the learning rate.
//
// See Kingma and Ba, "Adam: A Method for Stochastic Optimization", ICLR
// 2015.
type Adam struct {
	initialLearningRate float64
	betaOne             float64
	betaTwo             float64
	epsilon             float64

	iteration    int
	firstMoment  []linalg.Tensor
	secondMoment []linalg.Tensor
}

// AdamOption configures an Adam optimizer.
type AdamOption func(*Adam)

// WithBetas sets the first and second moment decay rates. Defaults 0.9 and
// 0.999.
func WithBetas(betaOne, betaTwo float64) AdamOption {
	return func(a *Adam) {
		a.betaOne = betaOne
		a.betaTwo = betaTwo
	}
}

// WithAdamEpsilon sets the denominator smoothing term. Default 1e-6.
func WithAdamEpsilon(epsilon float64) AdamOption {
	return func(a *Adam) { a.epsilon = epsilon }
}

// NewAdam returns an Adam optimizer with the given initial learning rate.
func NewAdam(learningRate float64, opts ...AdamOption) *Adam {
	a := &Adam{
		initialLearningRate: learningRate,
		betaOne:             0.9,
		betaTwo:             0.999,
		epsilon:             1e-6,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Initialise allocates the moment buffers.
func (a *Adam) Initialise(parameters param.Parameters) {
	a.firstMoment = parameters.EmptyCopy()
	a.secondMoment = parameters.EmptyCopy()
	a.iteration = 0
}

// Step folds the gradients into the moment estimates and rewrites the
// updates as learningRate * mHat / (epsilon + sqrt(vHat)), with the bias
// corrections absorbed into the learning rate. The updates are mutated in
// place and returned.
func (a *Adam) Step(updates []linalg.Tensor, weight float64) []linalg.Tensor {
	a.iteration++
	t := float64(a.iteration)
	learningRate := weight * a.initialLearningRate *
		math.Sqrt(1.0-math.Pow(a.betaTwo, t)) / (1.0 - math.Pow(a.betaOne, t))

	for i := range updates {
		a.firstMoment[i].ScaleInPlace(a.betaOne)
		a.firstMoment[i].IntersectAddInPlace(updates[i], func(g float64) float64 { return g * (1.0 - a.betaOne) })
		a.secondMoment[i].ScaleInPlace(a.betaTwo)
		a.secondMoment[i].IntersectAddInPlace(updates[i], func(g float64) float64 { return g * g * (1.0 - a.betaTwo) })
		updates[i].ScaleInPlace(0.0)
		updates[i].IntersectAddInPlace(a.firstMoment[i], func(m float64) float64 { return m * learningRate })
		updates[i].HadamardProductInPlace(a.secondMoment[i], func(v float64) float64 {
			return 1.0 / (a.epsilon + math.Sqrt(v))
		})
	}
	return updates
}

// Reset discards the moment buffers and rewinds the iteration counter.
func (a *Adam) Reset() {
	a.firstMoment = nil
	a.secondMoment = nil
	a.iteration = 0
}

// Copy returns a stateless clone with the same hyperparameters.
func (a *Adam) Copy() Optimizer {
	return &Adam{
		initialLearningRate: a.initialLearningRate,
		betaOne:             a.betaOne,
		betaTwo:             a.betaTwo,
		epsilon:             a.epsilon,
	}
}

func (a *Adam) String() string {
	return fmt.Sprintf("Adam(initialLearningRate=%g,betaOne=%g,betaTwo=%g,epsilon=%g)",
		a.initialLearningRate, a.betaOne, a.betaTwo, a.epsilon)
}

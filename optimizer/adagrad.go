package optimizer

import (
	"fmt"
	"math"

	"github.com/sgdkit/sgdkit/linalg"
	"github.com/sgdkit/sgdkit/param"
)

// AdaGrad scales each weight's update by the inverse square root of its
// accumulated squared gradients, so frequently updated weights take
// smaller steps.
//
// See Duchi et al., "Adaptive Subgradient Methods for Online Learning and
// Stochastic Optimization", JMLR 2011.
type AdaGrad struct {
	initialLearningRate float64
	epsilon             float64

	gradsSquared []linalg.Tensor
}

// AdaGradOption configures an AdaGrad optimizer.
type AdaGradOption func(*AdaGrad)

// WithAdaGradEpsilon sets the denominator smoothing term. Default 1e-6.
func WithAdaGradEpsilon(epsilon float64) AdaGradOption {
	return func(a *AdaGrad) { a.epsilon = epsilon }
}

// NewAdaGrad returns an AdaGrad optimizer with the given initial learning
// rate.
func NewAdaGrad(learningRate float64, opts ...AdaGradOption) *AdaGrad {
	a := &AdaGrad{
		initialLearningRate: learningRate,
		epsilon:             1e-6,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Initialise allocates the squared gradient accumulator.
func (a *AdaGrad) Initialise(parameters param.Parameters) {
	a.gradsSquared = parameters.EmptyCopy()
}

// Step accumulates squared gradients and rescales the updates elementwise
// by initialLearningRate / (epsilon + sqrt(accumulated)). The updates are
// mutated in place and returned.
func (a *AdaGrad) Step(updates []linalg.Tensor, weight float64) []linalg.Tensor {
	for i := range updates {
		a.gradsSquared[i].IntersectAddInPlace(updates[i], func(g float64) float64 { return g * g })
		updates[i].HadamardProductInPlace(a.gradsSquared[i], func(sum float64) float64 {
			return weight * a.initialLearningRate / (a.epsilon + math.Sqrt(sum))
		})
	}
	return updates
}

// Reset discards the accumulated squared gradients.
func (a *AdaGrad) Reset() {
	a.gradsSquared = nil
}

// Copy returns a stateless clone with the same hyperparameters.
func (a *AdaGrad) Copy() Optimizer {
	return &AdaGrad{
		initialLearningRate: a.initialLearningRate,
		epsilon:             a.epsilon,
	}
}

func (a *AdaGrad) String() string {
	return fmt.Sprintf("AdaGrad(initialLearningRate=%g,epsilon=%g)", a.initialLearningRate, a.epsilon)
}

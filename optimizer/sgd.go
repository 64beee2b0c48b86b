package optimizer

import (
	"fmt"
	"math"

	"github.com/sgdkit/sgdkit/linalg"
	"github.com/sgdkit/sgdkit/param"
)

// Momentum selects the momentum variant used by SGD.
type Momentum int

const (
	// MomentumNone disables momentum.
	MomentumNone Momentum = iota
	// MomentumStandard uses classical heavy-ball momentum.
	MomentumStandard
	// MomentumNesterov uses Nesterov accelerated momentum.
	MomentumNesterov
)

func (m Momentum) String() string {
	switch m {
	case MomentumStandard:
		return "standard"
	case MomentumNesterov:
		return "nesterov"
	default:
		return "none"
	}
}

type decaySchedule int

const (
	decayConstant decaySchedule = iota
	decayLinear
	decaySqrt
)

func (d decaySchedule) String() string {
	switch d {
	case decayLinear:
		return "linear-decay"
	case decaySqrt:
		return "sqrt-decay"
	default:
		return "constant"
	}
}

// SGD is single learning rate stochastic gradient descent with optional
// momentum, following the formulation in Shallue et al., "Measuring the
// Effects of Data Parallelism on Neural Network Training", 2018.
//
// The constructors choose the learning rate schedule: NewSGD keeps it
// constant, NewLinearDecaySGD divides by the iteration count, and
// NewSqrtDecaySGD divides by its square root.
type SGD struct {
	initialLearningRate float64
	momentumType        Momentum
	rho                 float64
	decay               decaySchedule

	iteration int
	momentum  []linalg.Tensor
}

// SGDOption configures an SGD optimizer.
type SGDOption func(*SGD)

// WithMomentum enables momentum of the given type, scaled by rho.
func WithMomentum(momentumType Momentum, rho float64) SGDOption {
	return func(s *SGD) {
		s.momentumType = momentumType
		s.rho = rho
	}
}

// NewSGD returns a constant learning rate SGD.
func NewSGD(learningRate float64, opts ...SGDOption) *SGD {
	return newSGD(learningRate, decayConstant, opts)
}

// NewLinearDecaySGD returns an SGD whose learning rate decays as
// initialLearningRate / iteration.
func NewLinearDecaySGD(learningRate float64, opts ...SGDOption) *SGD {
	return newSGD(learningRate, decayLinear, opts)
}

// NewSqrtDecaySGD returns an SGD whose learning rate decays as
// initialLearningRate / sqrt(iteration).
func NewSqrtDecaySGD(learningRate float64, opts ...SGDOption) *SGD {
	return newSGD(learningRate, decaySqrt, opts)
}

func newSGD(learningRate float64, decay decaySchedule, opts []SGDOption) *SGD {
	s := &SGD{
		initialLearningRate: learningRate,
		momentumType:        MomentumNone,
		decay:               decay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialise allocates the momentum buffer when momentum is enabled.
func (s *SGD) Initialise(parameters param.Parameters) {
	if s.momentumType != MomentumNone {
		s.momentum = parameters.EmptyCopy()
	}
}

// LearningRate reports the learning rate for the current iteration.
func (s *SGD) LearningRate() float64 {
	switch s.decay {
	case decayLinear:
		return s.initialLearningRate / float64(s.iteration)
	case decaySqrt:
		return s.initialLearningRate / math.Sqrt(float64(s.iteration))
	default:
		return s.initialLearningRate
	}
}

// Step scales the gradients by the current learning rate and weight,
// folding in the momentum buffer when enabled. The updates are mutated in
// place and returned.
func (s *SGD) Step(updates []linalg.Tensor, weight float64) []linalg.Tensor {
	s.iteration++
	learningRate := s.LearningRate()
	learningRateFunc := func(a float64) float64 { return a * learningRate * weight }
	nesterovFunc := func(a float64) float64 { return a * learningRate * weight * s.rho }

	for i := range updates {
		switch s.momentumType {
		case MomentumStandard:
			s.momentum[i].ScaleInPlace(s.rho)
			s.momentum[i].IntersectAddInPlace(updates[i], nil)
			updates[i].ScaleInPlace(0.0)
			updates[i].IntersectAddInPlace(s.momentum[i], learningRateFunc)
		case MomentumNesterov:
			s.momentum[i].ScaleInPlace(s.rho)
			s.momentum[i].IntersectAddInPlace(updates[i], nil)
			updates[i].ScaleInPlace(weight * learningRate)
			updates[i].IntersectAddInPlace(s.momentum[i], nesterovFunc)
		default:
			updates[i].ScaleInPlace(weight * learningRate)
		}
	}

	return updates
}

// Reset discards the momentum buffer and rewinds the iteration counter.
func (s *SGD) Reset() {
	s.momentum = nil
	s.iteration = 0
}

// Copy returns a stateless clone with the same hyperparameters.
func (s *SGD) Copy() Optimizer {
	return &SGD{
		initialLearningRate: s.initialLearningRate,
		momentumType:        s.momentumType,
		rho:                 s.rho,
		decay:               s.decay,
	}
}

func (s *SGD) String() string {
	if s.momentumType == MomentumNone {
		return fmt.Sprintf("SGD(type=%s,initialLearningRate=%g)", s.decay, s.initialLearningRate)
	}
	return fmt.Sprintf("SGD+Momentum(type=%s,momentum=%s,initialLearningRate=%g,rho=%g)",
		s.decay, s.momentumType, s.initialLearningRate, s.rho)
}

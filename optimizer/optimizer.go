// Package optimizer provides stochastic gradient optimizers that transform
// raw gradients into parameter updates.
//
// An Optimizer is stateful: Initialise binds it to a parameter shape,
// Step converts gradients into scaled update tensors, and Reset clears
// the accumulated state so the optimizer can be reused for another run.
// Optimizers are not safe for concurrent use; parallel trainers compute
// gradients on worker goroutines, merge them, and call Step from a single
// goroutine.
//
// Step is destructive: it mutates the supplied update tensors in place and
// returns them. Callers must not reuse the inputs afterwards.
package optimizer

import (
	"github.com/sgdkit/sgdkit/linalg"
	"github.com/sgdkit/sgdkit/param"
)

// Optimizer transforms gradients into parameter updates.
type Optimizer interface {
	// Initialise prepares internal state (momentum buffers, squared
	// gradient accumulators) sized to match the supplied parameters.
	// It must be called before the first Step.
	Initialise(parameters param.Parameters)

	// Step scales the supplied gradients into an update, mutating them in
	// place. The weight multiplies the learning rate, typically
	// 1/minibatchSize. The returned tensors are suitable for
	// Parameters.Update.
	Step(updates []linalg.Tensor, weight float64) []linalg.Tensor

	// Reset clears all accumulated state.
	Reset()

	// Copy returns a fresh optimizer with the same hyperparameters and
	// no accumulated state.
	Copy() Optimizer
}

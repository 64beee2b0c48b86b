// Package param provides the trainable parameter containers for sgdkit
// models and the update/merge protocol used by the SGD training loops.
//
// Training is data parallel: workers compute gradient tensors
// independently, a single coordinator merges them with Merge, and Update is
// called once with the merged result. Update is not synchronized, the
// trainer must serialise Update calls itself. Merge is pure apart from
// destructively reusing its input as an accumulator, so it can run off the
// update path.
package param

import (
	"github.com/sgdkit/sgdkit/linalg"
)

// Parameters is a collection of trainable weight tensors plus the protocol
// used to apply and combine gradient updates.
type Parameters interface {
	// Get returns the live weight tensors. Mutating them changes model
	// state.
	Get() []linalg.Tensor

	// Set replaces the weight tensors. Returns a DimensionError if the
	// length of newWeights does not match the current weights.
	Set(newWeights []linalg.Tensor) error

	// EmptyCopy returns zeroed tensors with the same shapes as the
	// weights, sharing no state with them. Used as gradient accumulators.
	EmptyCopy() []linalg.Tensor

	// Update adds the gradient tensors into the weights elementwise, in
	// place. The gradients must have the same shapes as the weights.
	Update(gradients []linalg.Tensor)

	// Merge combines size gradient arrays into one. Dense gradients are
	// summed into gradients[0], destroying it. Sparse gradients are
	// combined with a k-way heap merge. Returns a TensorTypeError if a
	// gradient tensor has an unsupported concrete type.
	Merge(gradients [][]linalg.Tensor, size int) ([]linalg.Tensor, error)
}

// FeedForward is a Parameters implementation that can run a forward pass
// and produce per-example gradients, which is everything a gradient
// descent trainer needs.
type FeedForward interface {
	Parameters

	// Predict computes the unnormalised score for each output dimension.
	Predict(features linalg.Vector) *linalg.DenseVector

	// Gradients computes the weight gradients for one example from the
	// per-output gradient vector produced by an objective.
	Gradients(gradient linalg.Vector, features linalg.Vector) []linalg.Tensor

	// Copy returns a deep copy sharing no state with the receiver, used
	// to snapshot weights into an inference-time model.
	Copy() FeedForward
}

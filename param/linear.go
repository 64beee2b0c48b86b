package param

import (
	"math/rand"

	"github.com/sgdkit/sgdkit/linalg"
	"github.com/sgdkit/sgdkit/pkg/errors"
)

// merger is stateless, one instance serves every LinearParameters.
var merger = linalg.HeapMerger{}

// LinearParameters holds the weights of a linear model: a single dense
// matrix of numOutputs rows by numFeatures columns. When a trainer adds a
// bias it passes numFeatures+1 and appends an implicit 1.0 feature at the
// last index of every example, so the bias is the last column.
type LinearParameters struct {
	weights      []linalg.Tensor
	weightMatrix *linalg.DenseMatrix
}

var _ FeedForward = (*LinearParameters)(nil)

// NewLinearParameters creates a zero initialised LinearParameters. The
// dimensions are fixed for the life of the value.
func NewLinearParameters(numFeatures, numOutputs int) *LinearParameters {
	return WrapLinearParameters(linalg.NewDenseMatrix(numOutputs, numFeatures))
}

// NewRandomLinearParameters creates a LinearParameters with weights drawn
// from a zero mean Gaussian with the given standard deviation.
func NewRandomLinearParameters(numFeatures, numOutputs int, stdDev float64, rng *rand.Rand) *LinearParameters {
	m := linalg.NewDenseMatrix(numOutputs, numFeatures)
	for i := 0; i < numOutputs; i++ {
		for j := 0; j < numFeatures; j++ {
			m.Set(i, j, rng.NormFloat64()*stdDev)
		}
	}
	return WrapLinearParameters(m)
}

// WrapLinearParameters creates a LinearParameters around an existing
// weight matrix, taking ownership of it.
func WrapLinearParameters(weightMatrix *linalg.DenseMatrix) *LinearParameters {
	lp := &LinearParameters{
		weights:      make([]linalg.Tensor, 1),
		weightMatrix: weightMatrix,
	}
	lp.weights[0] = weightMatrix
	return lp
}

// WeightMatrix returns the live weight matrix.
func (lp *LinearParameters) WeightMatrix() *linalg.DenseMatrix {
	return lp.weightMatrix
}

// Predict computes weightMatrix * features, one unnormalised score per
// output dimension.
func (lp *LinearParameters) Predict(features linalg.Vector) *linalg.DenseVector {
	return lp.weightMatrix.LeftMultiply(features)
}

// Gradients computes the outer product of the per-output gradient and the
// feature vector, the weight gradient contribution of a single example.
// The result is row sparse when both the gradient and the features are
// sparse.
func (lp *LinearParameters) Gradients(gradient linalg.Vector, features linalg.Vector) []linalg.Tensor {
	return []linalg.Tensor{gradient.Outer(features)}
}

// EmptyCopy returns a zeroed dense matrix with the weight matrix's shape.
func (lp *LinearParameters) EmptyCopy() []linalg.Tensor {
	r, c := lp.weightMatrix.Dims()
	return []linalg.Tensor{linalg.NewDenseMatrix(r, c)}
}

// Get returns the live weight tensors.
func (lp *LinearParameters) Get() []linalg.Tensor {
	return lp.weights
}

// Set replaces the weights. The new weights must contain exactly one dense
// matrix of the same shape.
func (lp *LinearParameters) Set(newWeights []linalg.Tensor) error {
	if len(newWeights) != len(lp.weights) {
		return errors.NewDimensionError("LinearParameters.Set", len(lp.weights), len(newWeights), 0)
	}
	newMatrix, ok := newWeights[0].(*linalg.DenseMatrix)
	if !ok {
		return errors.NewTensorTypeError("LinearParameters.Set", "*linalg.DenseMatrix", newWeights[0])
	}
	r, c := lp.weightMatrix.Dims()
	nr, nc := newMatrix.Dims()
	if nr != r || nc != c {
		return errors.NewDimensionError("LinearParameters.Set", r*c, nr*nc, 1)
	}
	lp.weights = newWeights
	lp.weightMatrix = newMatrix
	return nil
}

// Update adds the gradients into the weights in place.
func (lp *LinearParameters) Update(gradients []linalg.Tensor) {
	for i, g := range gradients {
		lp.weights[i].IntersectAddInPlace(g, nil)
	}
}

// Merge combines size single-tensor gradient arrays into one. Dense
// gradients are accumulated into gradients[0][0], destroying it. Row
// sparse gradients are combined with the shared heap merger.
func (lp *LinearParameters) Merge(gradients [][]linalg.Tensor, size int) ([]linalg.Tensor, error) {
	switch first := gradients[0][0].(type) {
	case *linalg.DenseMatrix:
		for i := 1; i < size; i++ {
			first.IntersectAddInPlace(gradients[i][0], nil)
		}
		return []linalg.Tensor{first}, nil
	case *linalg.RowSparseMatrix:
		updates := make([]*linalg.RowSparseMatrix, size)
		for j := 0; j < size; j++ {
			m, ok := gradients[j][0].(*linalg.RowSparseMatrix)
			if !ok {
				return nil, errors.NewTensorTypeError("LinearParameters.Merge", "*linalg.RowSparseMatrix", gradients[j][0])
			}
			updates[j] = m
		}
		return []linalg.Tensor{merger.MergeMatrices(updates)}, nil
	default:
		return nil, errors.NewTensorTypeError("LinearParameters.Merge", "*linalg.DenseMatrix or *linalg.RowSparseMatrix", first)
	}
}

// Copy deep copies the weights, so updates to the original no longer
// affect the copy.
func (lp *LinearParameters) Copy() FeedForward {
	return WrapLinearParameters(lp.weightMatrix.Copy())
}

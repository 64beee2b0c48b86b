package linear

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/sgdkit/sgdkit/linalg"
	"github.com/sgdkit/sgdkit/objective"
	"github.com/sgdkit/sgdkit/optimizer"
	"github.com/sgdkit/sgdkit/pkg/errors"
)

// twoClusters builds a linearly separable binary dataset: class 0 around
// (-2,-2), class 1 around (2,2).
func twoClusters(n int, seed int64) (*mat.Dense, *mat.Dense) {
	rng := rand.New(rand.NewSource(seed))
	X := mat.NewDense(2*n, 2, nil)
	y := mat.NewDense(2*n, 1, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, -2+rng.NormFloat64()*0.5)
		X.Set(i, 1, -2+rng.NormFloat64()*0.5)
		y.Set(i, 0, 0)

		X.Set(n+i, 0, 2+rng.NormFloat64()*0.5)
		X.Set(n+i, 1, 2+rng.NormFloat64()*0.5)
		y.Set(n+i, 0, 1)
	}
	return X, y
}

// oneHotClasses builds a sparse three-class dataset where each sample
// activates exactly one of six features.
func oneHotClasses(n int) (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(3*n, 6, nil)
	y := mat.NewDense(3*n, 1, nil)
	for class := 0; class < 3; class++ {
		for i := 0; i < n; i++ {
			row := class*n + i
			X.Set(row, class*2, 1.0)
			y.Set(row, 0, float64(class))
		}
	}
	return X, y
}

func TestClassifierSeparableData(t *testing.T) {
	X, y := twoClusters(20, 1)
	clf := NewSGDClassifier(
		WithClassifierEpochs(10),
		WithClassifierSeed(42),
	)

	require.NoError(t, clf.Fit(X, y))
	require.True(t, clf.IsFitted())

	score, err := clf.Score(X, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
	assert.Equal(t, []int{0, 1}, clf.Classes())
}

func TestClassifierLossCurveDecreases(t *testing.T) {
	X, y := twoClusters(20, 2)
	clf := NewSGDClassifier(WithClassifierEpochs(10), WithClassifierSeed(7))
	require.NoError(t, clf.Fit(X, y))

	curve := clf.LossCurve()
	require.Len(t, curve, 10)
	assert.Less(t, curve[len(curve)-1], curve[0])
}

func TestClassifierPredictProbaRowsSumToOne(t *testing.T) {
	X, y := twoClusters(10, 3)
	clf := NewSGDClassifier(WithClassifierEpochs(5), WithClassifierSeed(1))
	require.NoError(t, clf.Fit(X, y))

	probas, err := clf.PredictProba(X)
	require.NoError(t, err)
	rows, cols := probas.Dims()
	assert.Equal(t, 2, cols)
	for i := 0; i < rows; i++ {
		sum := 0.0
		for j := 0; j < cols; j++ {
			p := probas.At(i, j)
			assert.GreaterOrEqual(t, p, 0.0)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestClassifierHingeSparseMinibatch(t *testing.T) {
	X, y := oneHotClasses(10)
	clf := NewSGDClassifier(
		WithClassifierObjective(objective.NewHinge()),
		WithClassifierOptimizer(optimizer.NewSGD(0.5)),
		WithClassifierEpochs(20),
		WithClassifierMinibatchSize(4),
		WithClassifierSeed(5),
	)

	require.NoError(t, clf.Fit(X, y))
	score, err := clf.Score(X, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestClassifierSeededDeterminism(t *testing.T) {
	X, y := twoClusters(15, 4)

	fit := func(workers int) [][]float64 {
		clf := NewSGDClassifier(
			WithClassifierEpochs(5),
			WithClassifierSeed(99),
			WithClassifierMinibatchSize(8),
			WithClassifierWorkers(workers),
		)
		require.NoError(t, clf.Fit(X, y))
		snap, err := clf.Export()
		require.NoError(t, err)
		return snap.Weights
	}

	first := fit(1)
	second := fit(1)
	parallel := fit(4)

	assert.Equal(t, first, second)
	// The merge is deterministic, so the worker count must not change
	// the trained weights.
	assert.Equal(t, first, parallel)
}

func TestClassifierDifferentSeedsDiffer(t *testing.T) {
	X, y := twoClusters(15, 4)

	fit := func(seed int64) *linalg.DenseMatrix {
		clf := NewSGDClassifier(WithClassifierEpochs(3), WithClassifierSeed(seed))
		require.NoError(t, clf.Fit(X, y))
		return clf.Parameters().WeightMatrix()
	}

	assert.False(t, linalg.MatricesEqualApprox(fit(1), fit(2), 0))
}

func TestClassifierPredictBeforeFit(t *testing.T) {
	clf := NewSGDClassifier()
	_, err := clf.Predict(mat.NewDense(1, 2, nil))
	require.Error(t, err)

	var nfe *errors.NotFittedError
	assert.True(t, errors.As(err, &nfe))
}

func TestClassifierFitValidation(t *testing.T) {
	clf := NewSGDClassifier()

	// Sample count mismatch.
	err := clf.Fit(mat.NewDense(4, 2, nil), mat.NewDense(3, 1, nil))
	require.Error(t, err)
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de))

	// y must be a column vector.
	err = clf.Fit(mat.NewDense(4, 2, nil), mat.NewDense(4, 2, nil))
	assert.Error(t, err)

	// A single class cannot be fit.
	X, _ := twoClusters(5, 1)
	y := mat.NewDense(10, 1, nil)
	err = clf.Fit(X, y)
	assert.Error(t, err)
}

func TestClassifierPredictFeatureMismatch(t *testing.T) {
	X, y := twoClusters(10, 1)
	clf := NewSGDClassifier(WithClassifierEpochs(2))
	require.NoError(t, clf.Fit(X, y))

	_, err := clf.Predict(mat.NewDense(3, 5, nil))
	require.Error(t, err)
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de))
}

func TestClassifierDecisionFunctionShape(t *testing.T) {
	X, y := twoClusters(10, 6)
	clf := NewSGDClassifier(WithClassifierEpochs(3))
	require.NoError(t, clf.Fit(X, y))

	scores, err := clf.DecisionFunction(X)
	require.NoError(t, err)
	rows, cols := scores.Dims()
	assert.Equal(t, 20, rows)
	assert.Equal(t, 2, cols)
}

func TestClassifierNonContiguousLabels(t *testing.T) {
	X, _ := twoClusters(10, 8)
	y := mat.NewDense(20, 1, nil)
	for i := 0; i < 10; i++ {
		y.Set(i, 0, -5)
		y.Set(10+i, 0, 7)
	}

	clf := NewSGDClassifier(WithClassifierEpochs(10), WithClassifierSeed(3))
	require.NoError(t, clf.Fit(X, y))
	assert.Equal(t, []int{-5, 7}, clf.Classes())

	predictions, err := clf.Predict(X)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		assert.Contains(t, []float64{-5, 7}, predictions.At(i, 0))
	}
}

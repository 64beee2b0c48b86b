package objective

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgdkit/sgdkit/linalg"
)

func TestLogMulticlassUniformScores(t *testing.T) {
	obj := NewLogMulticlass()
	pred := linalg.NewDenseVectorFrom([]float64{0, 0, 0, 0})

	loss, grad := obj.LossAndGradient(1, pred)
	assert.InDelta(t, math.Log(4), loss, 1e-12)

	g := grad.(*linalg.DenseVector)
	assert.InDelta(t, -0.25, g.Get(0), 1e-12)
	assert.InDelta(t, 0.75, g.Get(1), 1e-12)
	assert.InDelta(t, -0.25, g.Get(2), 1e-12)
	assert.InDelta(t, -0.25, g.Get(3), 1e-12)
}

func TestLogMulticlassConfidentCorrect(t *testing.T) {
	obj := NewLogMulticlass()
	pred := linalg.NewDenseVectorFrom([]float64{10, -10})

	loss, grad := obj.LossAndGradient(0, pred)
	assert.Less(t, loss, 1e-8)

	// Gradient vanishes when the model is already right.
	g := grad.(*linalg.DenseVector)
	assert.InDelta(t, 0.0, g.Get(0), 1e-8)
	assert.InDelta(t, 0.0, g.Get(1), 1e-8)
}

func TestLogMulticlassGradientSumsToZero(t *testing.T) {
	obj := NewLogMulticlass()
	pred := linalg.NewDenseVectorFrom([]float64{1.5, -0.2, 0.7})

	_, grad := obj.LossAndGradient(2, pred)
	assert.InDelta(t, 0.0, grad.Sum(), 1e-12)
}

func TestLogMulticlassStableUnderLargeScores(t *testing.T) {
	obj := NewLogMulticlass()
	pred := linalg.NewDenseVectorFrom([]float64{1e4, 1e4 - 1})

	loss, grad := obj.LossAndGradient(0, pred)
	assert.False(t, math.IsNaN(loss))
	assert.False(t, math.IsInf(loss, 0))
	assert.False(t, grad.(*linalg.DenseVector).HasInvalidValues())
}

func TestLogMulticlassDistribution(t *testing.T) {
	obj := NewLogMulticlass()
	dist := obj.Distribution(linalg.NewDenseVectorFrom([]float64{2, 1, 0}))

	assert.InDelta(t, 1.0, dist.Sum(), 1e-12)
	assert.Greater(t, dist.Get(0), dist.Get(1))
	assert.Greater(t, dist.Get(1), dist.Get(2))
}

func TestHingeMarginViolated(t *testing.T) {
	obj := NewHinge()
	pred := linalg.NewDenseVectorFrom([]float64{0.5, 1.0, 0.0})

	loss, grad := obj.LossAndGradient(0, pred)
	assert.InDelta(t, 1.5, loss, 1e-12)

	sv, ok := grad.(*linalg.SparseVector)
	require.True(t, ok)
	assert.Equal(t, 2, sv.NumActive())
	assert.Equal(t, 1.0, sv.Get(0))
	assert.Equal(t, -1.0, sv.Get(1))
}

func TestHingeMarginSatisfied(t *testing.T) {
	obj := NewHinge()
	pred := linalg.NewDenseVectorFrom([]float64{3.0, 0.5, 0.0})

	loss, grad := obj.LossAndGradient(0, pred)
	assert.Equal(t, 0.0, loss)

	sv := grad.(*linalg.SparseVector)
	assert.Equal(t, 0, sv.NumActive())
}

func TestHingeInsideMargin(t *testing.T) {
	// Correct ordering but within the margin still incurs loss.
	obj := NewHinge()
	pred := linalg.NewDenseVectorFrom([]float64{0.6, 0.0})

	loss, grad := obj.LossAndGradient(0, pred)
	assert.InDelta(t, 0.4, loss, 1e-12)
	assert.Equal(t, 2, grad.NumActive())
}

func TestHingeCustomMargin(t *testing.T) {
	obj := NewHingeWithMargin(2.0)
	pred := linalg.NewDenseVectorFrom([]float64{1.5, 0.0})

	loss, _ := obj.LossAndGradient(0, pred)
	assert.InDelta(t, 0.5, loss, 1e-12)
}

func TestHingeTruthAfterBestWrong(t *testing.T) {
	obj := NewHinge()
	pred := linalg.NewDenseVectorFrom([]float64{2.0, 0.5, 0.0})

	loss, grad := obj.LossAndGradient(2, pred)
	assert.InDelta(t, 3.0, loss, 1e-12)

	sv := grad.(*linalg.SparseVector)
	assert.Equal(t, -1.0, sv.Get(0))
	assert.Equal(t, 1.0, sv.Get(2))
}

func TestSquaredLossPerfectPrediction(t *testing.T) {
	obj := NewSquaredLoss()
	truth := linalg.NewDenseVectorFrom([]float64{1, 2, 3})
	pred := linalg.NewDenseVectorFrom([]float64{1, 2, 3})

	loss, grad := obj.LossAndGradient(truth, pred)
	assert.Equal(t, 0.0, loss)
	assert.InDelta(t, 0.0, grad.TwoNorm(), 1e-12)
}

func TestSquaredLossResidualGradient(t *testing.T) {
	obj := NewSquaredLoss()
	truth := linalg.NewDenseVectorFrom([]float64{2, 0})
	pred := linalg.NewDenseVectorFrom([]float64{0, 1})

	loss, grad := obj.LossAndGradient(truth, pred)
	assert.InDelta(t, 2.5, loss, 1e-12)

	g := grad.(*linalg.DenseVector)
	assert.Equal(t, 2.0, g.Get(0))
	assert.Equal(t, -1.0, g.Get(1))
}

func TestObjectiveNames(t *testing.T) {
	assert.Equal(t, "LogMulticlass", NewLogMulticlass().Name())
	assert.Equal(t, "Hinge", NewHinge().Name())
	assert.Equal(t, "SquaredLoss", NewSquaredLoss().Name())
}

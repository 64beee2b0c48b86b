package linear

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/sgdkit/sgdkit/linalg"
)

func TestVectorizeRowsDense(t *testing.T) {
	X := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	rows := vectorizeRows(X, false)

	require.Len(t, rows, 2)
	dv, ok := rows[0].(*linalg.DenseVector)
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2, 3}, dv.Data())
	assert.Equal(t, 3, rows[1].Size())
}

func TestVectorizeRowsDenseWithBias(t *testing.T) {
	X := mat.NewDense(1, 2, []float64{3, 4})
	rows := vectorizeRows(X, true)

	dv := rows[0].(*linalg.DenseVector)
	assert.Equal(t, []float64{3, 4, 1}, dv.Data())
}

func TestVectorizeRowsSparse(t *testing.T) {
	// Mostly zeros, so rows come back sparse.
	X := mat.NewDense(2, 6, nil)
	X.Set(0, 1, 5)
	X.Set(1, 4, -3)

	rows := vectorizeRows(X, true)
	sv, ok := rows[0].(*linalg.SparseVector)
	require.True(t, ok)
	assert.Equal(t, 7, sv.Size())
	assert.Equal(t, 2, sv.NumActive())
	assert.Equal(t, 5.0, sv.Get(1))
	// Bias rides along as the last index.
	assert.Equal(t, 1.0, sv.Get(6))
}

func TestVectorizeRowsUniformRepresentation(t *testing.T) {
	// A half-dense matrix must not mix vector types across rows.
	X := mat.NewDense(2, 2, []float64{1, 1, 0, 0})
	rows := vectorizeRows(X, false)

	_, firstDense := rows[0].(*linalg.DenseVector)
	_, secondDense := rows[1].(*linalg.DenseVector)
	assert.Equal(t, firstDense, secondDense)
}

func TestShuffleInPlaceKeepsPairsAligned(t *testing.T) {
	features := []linalg.Vector{
		linalg.NewDenseVectorFrom([]float64{0}),
		linalg.NewDenseVectorFrom([]float64{1}),
		linalg.NewDenseVectorFrom([]float64{2}),
		linalg.NewDenseVectorFrom([]float64{3}),
	}
	targets := []int{0, 1, 2, 3}

	shuffleInPlace(features, targets, rand.New(rand.NewSource(1)))

	for i := range features {
		assert.Equal(t, float64(targets[i]), features[i].Get(0))
	}
}

func TestShuffleInPlaceSeededDeterminism(t *testing.T) {
	build := func() ([]linalg.Vector, []int) {
		fs := make([]linalg.Vector, 10)
		ts := make([]int, 10)
		for i := range fs {
			fs[i] = linalg.NewDenseVectorFrom([]float64{float64(i)})
			ts[i] = i
		}
		return fs, ts
	}

	f1, t1 := build()
	f2, t2 := build()
	shuffleInPlace(f1, t1, rand.New(rand.NewSource(9)))
	shuffleInPlace(f2, t2, rand.New(rand.NewSource(9)))

	assert.Equal(t, t1, t2)
	for i := range f1 {
		assert.Equal(t, f1[i].Get(0), f2[i].Get(0))
	}
}

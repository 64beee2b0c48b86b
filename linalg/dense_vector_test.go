package linalg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenseVectorBasics(t *testing.T) {
	v := NewDenseVectorFrom([]float64{1, 2, 3, 4})

	assert.Equal(t, 4, v.Size())
	assert.Equal(t, 4, v.NumActive())
	assert.Equal(t, []int{4}, v.Shape())
	assert.Equal(t, 2.0, v.Get(1))
	assert.Equal(t, 10.0, v.Sum())
	assert.Equal(t, 3, v.MaxIndex())
	assert.InDelta(t, math.Sqrt(30), v.TwoNorm(), 1e-12)

	v.Set(0, 5)
	v.Add(0, 1)
	assert.Equal(t, 6.0, v.Get(0))
}

func TestDenseVectorCloneIndependence(t *testing.T) {
	v := NewDenseVectorFrom([]float64{1, 2, 3})
	c := v.Copy()
	c.Set(0, 100)
	assert.Equal(t, 1.0, v.Get(0))
}

func TestDenseVectorScale(t *testing.T) {
	v := NewDenseVectorFrom([]float64{1, -2, 3})
	scaled := v.Scale(2.0)
	assert.Equal(t, []float64{2, -4, 6}, scaled.(*DenseVector).Data())
	// Scale does not mutate the receiver.
	assert.Equal(t, []float64{1, -2, 3}, v.Data())

	v.ScaleInPlace(-1.0)
	assert.Equal(t, []float64{-1, 2, -3}, v.Data())
}

func TestDenseVectorDot(t *testing.T) {
	a := NewDenseVectorFrom([]float64{1, 2, 3})
	b := NewDenseVectorFrom([]float64{4, 5, 6})
	assert.Equal(t, 32.0, a.Dot(b))

	s := NewSparseVector(3, []int{0, 2}, []float64{1, 2})
	assert.Equal(t, 7.0, a.Dot(s))
}

func TestDenseVectorIntersectAdd(t *testing.T) {
	v := NewDenseVectorFrom([]float64{1, 1, 1})

	v.IntersectAddInPlace(NewDenseVectorFrom([]float64{1, 2, 3}), nil)
	assert.Equal(t, []float64{2, 3, 4}, v.Data())

	v.IntersectAddInPlace(NewSparseVector(3, []int{1}, []float64{10}), nil)
	assert.Equal(t, []float64{2, 13, 4}, v.Data())

	v.IntersectAddInPlace(NewDenseVectorFrom([]float64{1, 1, 1}), func(x float64) float64 { return 2 * x })
	assert.Equal(t, []float64{4, 15, 6}, v.Data())
}

func TestDenseVectorOuterDense(t *testing.T) {
	a := NewDenseVectorFrom([]float64{1, 2})
	b := NewDenseVectorFrom([]float64{3, 4, 5})

	outer := a.Outer(b)
	expected := NewDenseMatrixFrom(2, 3, []float64{
		3, 4, 5,
		6, 8, 10,
	})
	assert.True(t, MatricesEqualApprox(outer, expected, 1e-12))
}

func TestDenseVectorOuterSparse(t *testing.T) {
	a := NewDenseVectorFrom([]float64{1, 2})
	b := NewSparseVector(3, []int{0, 2}, []float64{1, 2})

	outer := a.Outer(b)
	expected := NewDenseMatrixFrom(2, 3, []float64{
		1, 0, 2,
		2, 0, 4,
	})
	require.IsType(t, &DenseMatrix{}, outer)
	assert.True(t, MatricesEqualApprox(outer, expected, 1e-12))
}

func TestDenseVectorHasInvalidValues(t *testing.T) {
	assert.False(t, NewDenseVectorFrom([]float64{1, 2}).HasInvalidValues())
	assert.True(t, NewDenseVectorFrom([]float64{1, math.NaN()}).HasInvalidValues())
	assert.True(t, NewDenseVectorFrom([]float64{math.Inf(1)}).HasInvalidValues())
}

func TestDenseVectorSizeMismatchPanics(t *testing.T) {
	a := NewDenseVector(3)
	b := NewDenseVector(4)
	assert.Panics(t, func() { a.IntersectAddInPlace(b, nil) })
}

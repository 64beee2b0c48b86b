package linalg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDenseMatrixBasics(t *testing.T) {
	m := NewDenseMatrixFrom(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})

	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, []int{2, 3}, m.Shape())
	assert.Equal(t, 5.0, m.At(1, 1))
	assert.Equal(t, 3, m.NumActive(0))

	m.Set(0, 0, 10)
	m.Add(0, 0, 1)
	assert.Equal(t, 11.0, m.At(0, 0))
}

func TestDenseMatrixLeftMultiplyDense(t *testing.T) {
	m := NewDenseMatrixFrom(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	v := NewDenseVectorFrom([]float64{1, 1, 1})

	out := m.LeftMultiply(v)
	assert.Equal(t, []float64{6, 15}, out.Data())
}

func TestDenseMatrixLeftMultiplySparse(t *testing.T) {
	m := NewDenseMatrixFrom(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	v := NewSparseVector(3, []int{0, 2}, []float64{1, 2})

	out := m.LeftMultiply(v)
	assert.Equal(t, []float64{7, 16}, out.Data())
}

func TestDenseMatrixLeftMultiplyShapePanics(t *testing.T) {
	m := NewDenseMatrix(2, 3)
	assert.Panics(t, func() { m.LeftMultiply(NewDenseVector(4)) })
}

func TestDenseMatrixIntersectAddDense(t *testing.T) {
	m := NewDenseMatrixFrom(2, 2, []float64{1, 1, 1, 1})
	g := NewDenseMatrixFrom(2, 2, []float64{1, 2, 3, 4})

	m.IntersectAddInPlace(g, nil)
	expected := NewDenseMatrixFrom(2, 2, []float64{2, 3, 4, 5})
	assert.True(t, MatricesEqualApprox(m, expected, 1e-12))

	m.IntersectAddInPlace(g, func(x float64) float64 { return -x })
	original := NewDenseMatrixFrom(2, 2, []float64{1, 1, 1, 1})
	assert.True(t, MatricesEqualApprox(m, original, 1e-12))
}

func TestDenseMatrixIntersectAddRowSparse(t *testing.T) {
	m := NewDenseMatrix(2, 4)
	g := NewRowSparseMatrix([]*SparseVector{
		NewSparseVector(4, []int{0, 2}, []float64{1, 2}),
		NewSparseVector(4, []int{3}, []float64{5}),
	}, 4)

	m.IntersectAddInPlace(g, nil)
	expected := NewDenseMatrixFrom(2, 4, []float64{
		1, 0, 2, 0,
		0, 0, 0, 5,
	})
	assert.True(t, MatricesEqualApprox(m, expected, 1e-12))
}

func TestDenseMatrixHadamard(t *testing.T) {
	m := NewDenseMatrixFrom(2, 2, []float64{1, 2, 3, 4})
	o := NewDenseMatrixFrom(2, 2, []float64{2, 2, 2, 2})

	m.HadamardProductInPlace(o, nil)
	expected := NewDenseMatrixFrom(2, 2, []float64{2, 4, 6, 8})
	assert.True(t, MatricesEqualApprox(m, expected, 1e-12))

	m.HadamardProductInPlace(o, func(x float64) float64 { return 1 / x })
	halved := NewDenseMatrixFrom(2, 2, []float64{1, 2, 3, 4})
	assert.True(t, MatricesEqualApprox(m, halved, 1e-12))
}

func TestDenseMatrixScaleInPlace(t *testing.T) {
	m := NewDenseMatrixFrom(2, 2, []float64{1, 2, 3, 4})
	m.ScaleInPlace(0.5)
	expected := NewDenseMatrixFrom(2, 2, []float64{0.5, 1, 1.5, 2})
	assert.True(t, MatricesEqualApprox(m, expected, 1e-12))
}

func TestDenseMatrixRowViewSharesStorage(t *testing.T) {
	m := NewDenseMatrixFrom(2, 2, []float64{1, 2, 3, 4})
	row := m.Row(1)
	row.Set(0, 100)
	assert.Equal(t, 100.0, m.At(1, 0))
}

func TestDenseMatrixCopyIndependence(t *testing.T) {
	m := NewDenseMatrixFrom(2, 2, []float64{1, 2, 3, 4})
	c := m.Copy()
	c.Set(0, 0, 100)
	assert.Equal(t, 1.0, m.At(0, 0))
}

func TestDenseMatrixNorms(t *testing.T) {
	m := NewDenseMatrixFrom(2, 2, []float64{3, 0, 0, 4})
	assert.InDelta(t, 5.0, m.TwoNorm(), 1e-12)
}

func TestDenseMatrixHasInvalidValues(t *testing.T) {
	assert.False(t, NewDenseMatrixFrom(1, 2, []float64{1, 2}).HasInvalidValues())
	assert.True(t, NewDenseMatrixFrom(1, 2, []float64{1, math.NaN()}).HasInvalidValues())
}

package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rowSparseFixture() *RowSparseMatrix {
	return NewRowSparseMatrix([]*SparseVector{
		NewSparseVector(4, []int{0, 2}, []float64{1, 2}),
		NewSparseVector(4, []int{1, 3}, []float64{3, 4}),
	}, 4)
}

func TestRowSparseMatrixBasics(t *testing.T) {
	m := rowSparseFixture()

	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 4, c)
	assert.Equal(t, 2.0, m.At(0, 2))
	assert.Equal(t, 0.0, m.At(0, 1))
	assert.Equal(t, 2, m.NumActive(0))
}

func TestRowSparseMatrixMismatchedRowPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewRowSparseMatrix([]*SparseVector{NewSparseVector(3, nil, nil)}, 4)
	})
}

func TestRowSparseMatrixLeftMultiply(t *testing.T) {
	m := rowSparseFixture()
	v := NewDenseVectorFrom([]float64{1, 1, 1, 1})

	out := m.LeftMultiply(v)
	assert.Equal(t, []float64{3, 7}, out.Data())

	s := NewSparseVector(4, []int{2, 3}, []float64{1, 1})
	out = m.LeftMultiply(s)
	assert.Equal(t, []float64{2, 4}, out.Data())
}

func TestRowSparseMatrixScaleInPlace(t *testing.T) {
	m := rowSparseFixture()
	m.ScaleInPlace(2)
	assert.Equal(t, 2.0, m.At(0, 0))
	assert.Equal(t, 8.0, m.At(1, 3))
}

func TestRowSparseMatrixIntersectAddDense(t *testing.T) {
	m := rowSparseFixture()
	d := NewDenseMatrixFrom(2, 4, []float64{
		10, 10, 10, 10,
		10, 10, 10, 10,
	})

	m.IntersectAddInPlace(d, nil)
	assert.Equal(t, 11.0, m.At(0, 0))
	assert.Equal(t, 12.0, m.At(0, 2))
	assert.Equal(t, 0.0, m.At(0, 1))
	assert.Equal(t, 14.0, m.At(1, 3))
}

func TestRowSparseMatrixIntersectAddSparse(t *testing.T) {
	m := rowSparseFixture()
	other := NewRowSparseMatrix([]*SparseVector{
		NewSparseVector(4, []int{2, 3}, []float64{5, 5}),
		NewSparseVector(4, []int{1}, []float64{5}),
	}, 4)

	m.IntersectAddInPlace(other, nil)
	assert.Equal(t, 7.0, m.At(0, 2))
	// Index 3 is inactive in m's first row, the intersection skips it.
	assert.Equal(t, 0.0, m.At(0, 3))
	assert.Equal(t, 8.0, m.At(1, 1))
}

func TestRowSparseMatrixHadamard(t *testing.T) {
	m := rowSparseFixture()
	d := NewDenseMatrixFrom(2, 4, []float64{
		2, 2, 2, 2,
		3, 3, 3, 3,
	})

	m.HadamardProductInPlace(d, nil)
	assert.Equal(t, 2.0, m.At(0, 0))
	assert.Equal(t, 4.0, m.At(0, 2))
	assert.Equal(t, 9.0, m.At(1, 1))
}

func TestRowSparseMatrixCopyIndependence(t *testing.T) {
	m := rowSparseFixture()
	c := m.Copy()
	c.Set(0, 0, 100)
	assert.Equal(t, 1.0, m.At(0, 0))
}

func TestRowSparseMatrixTwoNorm(t *testing.T) {
	m := NewRowSparseMatrix([]*SparseVector{
		NewSparseVector(4, []int{0}, []float64{3}),
		NewSparseVector(4, []int{1}, []float64{4}),
	}, 4)
	assert.InDelta(t, 5.0, m.TwoNorm(), 1e-12)
}

package linalg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DenseMatrix is a Matrix backed by a gonum Dense, stored row major.
type DenseMatrix struct {
	m *mat.Dense
}

var _ Matrix = (*DenseMatrix)(nil)

// NewDenseMatrix creates a zeroed dense matrix with r rows and c columns.
func NewDenseMatrix(r, c int) *DenseMatrix {
	return &DenseMatrix{m: mat.NewDense(r, c, nil)}
}

// NewDenseMatrixFrom creates a dense matrix taking ownership of data, which
// must have length r*c in row major order.
func NewDenseMatrixFrom(r, c int, data []float64) *DenseMatrix {
	return &DenseMatrix{m: mat.NewDense(r, c, data)}
}

// RawMatrix returns the backing gonum Dense. Mutating it mutates the
// matrix.
func (m *DenseMatrix) RawMatrix() *mat.Dense {
	return m.m
}

// Shape returns the matrix dimensions.
func (m *DenseMatrix) Shape() []int {
	r, c := m.Dims()
	return []int{r, c}
}

// Dims returns the row and column counts.
func (m *DenseMatrix) Dims() (r, c int) {
	return m.m.Dims()
}

// At returns the value at row i, column j.
func (m *DenseMatrix) At(i, j int) float64 {
	return m.m.At(i, j)
}

// Set stores v at row i, column j.
func (m *DenseMatrix) Set(i, j int, v float64) {
	m.m.Set(i, j, v)
}

// Add adds v to the value at row i, column j.
func (m *DenseMatrix) Add(i, j int, v float64) {
	m.m.Set(i, j, m.m.At(i, j)+v)
}

// Copy returns a deep copy.
func (m *DenseMatrix) Copy() *DenseMatrix {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	out.Copy(m.m)
	return &DenseMatrix{m: out}
}

// Clone returns a deep copy as a Tensor.
func (m *DenseMatrix) Clone() Tensor {
	return m.Copy()
}

// Row returns a dense view of row i sharing the matrix's storage.
func (m *DenseMatrix) Row(i int) Vector {
	_, c := m.Dims()
	return &DenseVector{vec: mat.NewVecDense(c, m.m.RawRowView(i))}
}

// NumActive returns the column count, every element of a dense row is
// active.
func (m *DenseMatrix) NumActive(i int) int {
	_, c := m.Dims()
	return c
}

// ScaleInPlace multiplies every value by coef.
func (m *DenseMatrix) ScaleInPlace(coef float64) {
	m.m.Scale(coef, m.m)
}

// IntersectAddInPlace adds f(other's value) into the receiver. A dense
// other touches every cell, a row sparse other touches only its active
// cells.
func (m *DenseMatrix) IntersectAddInPlace(other Tensor, f func(float64) float64) {
	fn := orIdentity(f)
	r, c := m.Dims()
	switch o := other.(type) {
	case *DenseMatrix:
		or, oc := o.Dims()
		if or != r || oc != c {
			panic(fmt.Sprintf("linalg: matrix shape mismatch (%d,%d) vs (%d,%d)", r, c, or, oc))
		}
		for i := 0; i < r; i++ {
			row := m.m.RawRowView(i)
			orow := o.m.RawRowView(i)
			for j := range row {
				row[j] += fn(orow[j])
			}
		}
	case *RowSparseMatrix:
		or, oc := o.Dims()
		if or != r || oc != c {
			panic(fmt.Sprintf("linalg: matrix shape mismatch (%d,%d) vs (%d,%d)", r, c, or, oc))
		}
		for i := 0; i < r; i++ {
			row := m.m.RawRowView(i)
			sparse := o.rows[i]
			for k, idx := range sparse.indices {
				row[idx] += fn(sparse.values[k])
			}
		}
	default:
		panic(fmt.Sprintf("linalg: unsupported matrix type %T", other))
	}
}

// HadamardProductInPlace multiplies each cell by f(other's value).
func (m *DenseMatrix) HadamardProductInPlace(other Tensor, f func(float64) float64) {
	fn := orIdentity(f)
	o, ok := other.(Matrix)
	if !ok {
		panic(fmt.Sprintf("linalg: unsupported matrix type %T", other))
	}
	r, c := m.Dims()
	or, oc := o.Dims()
	if or != r || oc != c {
		panic(fmt.Sprintf("linalg: matrix shape mismatch (%d,%d) vs (%d,%d)", r, c, or, oc))
	}
	for i := 0; i < r; i++ {
		row := m.m.RawRowView(i)
		for j := range row {
			row[j] *= fn(o.At(i, j))
		}
	}
}

// LeftMultiply computes matrix * input, producing one value per row. For a
// sparse input only the active columns are visited.
func (m *DenseMatrix) LeftMultiply(input Vector) *DenseVector {
	r, c := m.Dims()
	if input.Size() != c {
		panic(fmt.Sprintf("linalg: input size %d does not match column count %d", input.Size(), c))
	}
	out := NewDenseVector(r)
	switch in := input.(type) {
	case *DenseVector:
		out.vec.MulVec(m.m, in.vec)
	case *SparseVector:
		data := out.Data()
		for i := 0; i < r; i++ {
			row := m.m.RawRowView(i)
			sum := 0.0
			for k, idx := range in.indices {
				sum += row[idx] * in.values[k]
			}
			data[i] = sum
		}
	default:
		panic(fmt.Sprintf("linalg: unsupported vector type %T", input))
	}
	return out
}

// TwoNorm returns the Frobenius norm.
func (m *DenseMatrix) TwoNorm() float64 {
	return mat.Norm(m.m, 2)
}

// HasInvalidValues reports whether the matrix contains NaN or Inf values.
func (m *DenseMatrix) HasInvalidValues() bool {
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		for _, v := range m.m.RawRowView(i) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return true
			}
		}
	}
	return false
}

func (m *DenseMatrix) String() string {
	return fmt.Sprintf("DenseMatrix%v", mat.Formatted(m.m, mat.Squeeze()))
}

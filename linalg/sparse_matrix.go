package linalg

import (
	"fmt"
	"math"
	"strings"
)

// RowSparseMatrix is a Matrix stored as a dense array of sparse rows. It is
// the natural shape of a gradient produced by a sparse feature vector,
// where only the touched feature columns are stored per output row.
type RowSparseMatrix struct {
	rows []*SparseVector
	cols int
}

var _ Matrix = (*RowSparseMatrix)(nil)

// NewRowSparseMatrix creates a row sparse matrix wrapping rows. Every row
// must have size cols.
func NewRowSparseMatrix(rows []*SparseVector, cols int) *RowSparseMatrix {
	for i, row := range rows {
		if row.Size() != cols {
			panic(fmt.Sprintf("linalg: row %d has size %d, want %d", i, row.Size(), cols))
		}
	}
	return &RowSparseMatrix{rows: rows, cols: cols}
}

// Shape returns the matrix dimensions.
func (m *RowSparseMatrix) Shape() []int {
	return []int{len(m.rows), m.cols}
}

// Dims returns the row and column counts.
func (m *RowSparseMatrix) Dims() (r, c int) {
	return len(m.rows), m.cols
}

// At returns the value at row i, column j, zero if inactive.
func (m *RowSparseMatrix) At(i, j int) float64 {
	return m.rows[i].Get(j)
}

// Set stores v at row i, column j. Panics if the position is not active.
func (m *RowSparseMatrix) Set(i, j int, v float64) {
	m.rows[i].Set(j, v)
}

// Row returns row i. Mutating it mutates the matrix.
func (m *RowSparseMatrix) Row(i int) Vector {
	return m.rows[i]
}

// SparseRow returns row i with its concrete type.
func (m *RowSparseMatrix) SparseRow(i int) *SparseVector {
	return m.rows[i]
}

// NumActive returns the number of active elements in row i.
func (m *RowSparseMatrix) NumActive(i int) int {
	return m.rows[i].NumActive()
}

// Copy returns a deep copy.
func (m *RowSparseMatrix) Copy() *RowSparseMatrix {
	rows := make([]*SparseVector, len(m.rows))
	for i, row := range m.rows {
		rows[i] = row.Copy()
	}
	return &RowSparseMatrix{rows: rows, cols: m.cols}
}

// Clone returns a deep copy as a Tensor.
func (m *RowSparseMatrix) Clone() Tensor {
	return m.Copy()
}

// ScaleInPlace multiplies every active value by coef.
func (m *RowSparseMatrix) ScaleInPlace(coef float64) {
	for _, row := range m.rows {
		row.ScaleInPlace(coef)
	}
}

// IntersectAddInPlace adds f(other's value) into the active positions of
// the receiver, row by row.
func (m *RowSparseMatrix) IntersectAddInPlace(other Tensor, f func(float64) float64) {
	r, c := m.Dims()
	switch o := other.(type) {
	case *DenseMatrix:
		or, oc := o.Dims()
		if or != r || oc != c {
			panic(fmt.Sprintf("linalg: matrix shape mismatch (%d,%d) vs (%d,%d)", r, c, or, oc))
		}
		for i, row := range m.rows {
			row.IntersectAddInPlace(o.Row(i), f)
		}
	case *RowSparseMatrix:
		or, oc := o.Dims()
		if or != r || oc != c {
			panic(fmt.Sprintf("linalg: matrix shape mismatch (%d,%d) vs (%d,%d)", r, c, or, oc))
		}
		for i, row := range m.rows {
			row.IntersectAddInPlace(o.rows[i], f)
		}
	default:
		panic(fmt.Sprintf("linalg: unsupported matrix type %T", other))
	}
}

// HadamardProductInPlace multiplies each active value by f(other's value).
func (m *RowSparseMatrix) HadamardProductInPlace(other Tensor, f func(float64) float64) {
	o, ok := other.(Matrix)
	if !ok {
		panic(fmt.Sprintf("linalg: unsupported matrix type %T", other))
	}
	r, c := m.Dims()
	or, oc := o.Dims()
	if or != r || oc != c {
		panic(fmt.Sprintf("linalg: matrix shape mismatch (%d,%d) vs (%d,%d)", r, c, or, oc))
	}
	fn := orIdentity(f)
	for i, row := range m.rows {
		for k, idx := range row.indices {
			row.values[k] *= fn(o.At(i, idx))
		}
	}
}

// LeftMultiply computes matrix * input, producing one value per row.
func (m *RowSparseMatrix) LeftMultiply(input Vector) *DenseVector {
	r, c := m.Dims()
	if input.Size() != c {
		panic(fmt.Sprintf("linalg: input size %d does not match column count %d", input.Size(), c))
	}
	out := NewDenseVector(r)
	data := out.Data()
	for i, row := range m.rows {
		data[i] = row.Dot(input)
	}
	return out
}

// TwoNorm returns the Frobenius norm over the active values.
func (m *RowSparseMatrix) TwoNorm() float64 {
	sum := 0.0
	for _, row := range m.rows {
		for _, v := range row.values {
			sum += v * v
		}
	}
	return math.Sqrt(sum)
}

func (m *RowSparseMatrix) String() string {
	var sb strings.Builder
	sb.WriteString("RowSparseMatrix{")
	for i, row := range m.rows {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(row.String())
	}
	sb.WriteString("}")
	return sb.String()
}

package linalg

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// SparseVector is a Vector storing only nonzero elements as (index, value)
// pairs in ascending index order.
type SparseVector struct {
	size    int
	indices []int
	values  []float64
}

var _ Vector = (*SparseVector)(nil)

// NewSparseVector creates a sparse vector of the given dimension taking
// ownership of the index and value slices. The pairs are sorted by index.
// Panics if the slice lengths differ, an index is out of range, or an index
// is duplicated.
func NewSparseVector(size int, indices []int, values []float64) *SparseVector {
	if len(indices) != len(values) {
		panic(fmt.Sprintf("linalg: indices length %d does not match values length %d", len(indices), len(values)))
	}
	if !sort.IntsAreSorted(indices) {
		sort.Sort(&indexValueSorter{indices: indices, values: values})
	}
	for k, idx := range indices {
		if idx < 0 || idx >= size {
			panic(fmt.Sprintf("linalg: index %d out of range for dimension %d", idx, size))
		}
		if k > 0 && indices[k-1] == idx {
			panic(fmt.Sprintf("linalg: duplicate index %d", idx))
		}
	}
	return &SparseVector{size: size, indices: indices, values: values}
}

// NewSparseVectorFromMap creates a sparse vector from an index to value map.
func NewSparseVectorFromMap(size int, elements map[int]float64) *SparseVector {
	indices := make([]int, 0, len(elements))
	for idx := range elements {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	values := make([]float64, len(indices))
	for k, idx := range indices {
		values[k] = elements[idx]
	}
	return NewSparseVector(size, indices, values)
}

// SparseFromDense creates a sparse vector holding the nonzero elements of
// values.
func SparseFromDense(values []float64) *SparseVector {
	var indices []int
	var active []float64
	for i, v := range values {
		if v != 0.0 {
			indices = append(indices, i)
			active = append(active, v)
		}
	}
	return &SparseVector{size: len(values), indices: indices, values: active}
}

type indexValueSorter struct {
	indices []int
	values  []float64
}

func (s *indexValueSorter) Len() int           { return len(s.indices) }
func (s *indexValueSorter) Less(i, j int) bool { return s.indices[i] < s.indices[j] }
func (s *indexValueSorter) Swap(i, j int) {
	s.indices[i], s.indices[j] = s.indices[j], s.indices[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// Shape returns the vector dimensions.
func (v *SparseVector) Shape() []int {
	return []int{v.size}
}

// Size returns the dimension of the vector.
func (v *SparseVector) Size() int {
	return v.size
}

// NumActive returns the number of stored elements.
func (v *SparseVector) NumActive() int {
	return len(v.indices)
}

// Indices returns the active indices in ascending order. The slice is owned
// by the vector.
func (v *SparseVector) Indices() []int {
	return v.indices
}

// Values returns the active values, aligned with Indices. The slice is
// owned by the vector.
func (v *SparseVector) Values() []float64 {
	return v.values
}

// position returns the storage position of index i, or -1 if inactive.
func (v *SparseVector) position(i int) int {
	pos := sort.SearchInts(v.indices, i)
	if pos < len(v.indices) && v.indices[pos] == i {
		return pos
	}
	return -1
}

// Get returns the value at index i, zero if inactive.
func (v *SparseVector) Get(i int) float64 {
	if pos := v.position(i); pos >= 0 {
		return v.values[pos]
	}
	return 0.0
}

// Set stores value at index i. Panics if i is not active, the sparsity
// pattern is fixed at construction.
func (v *SparseVector) Set(i int, value float64) {
	pos := v.position(i)
	if pos < 0 {
		panic(fmt.Sprintf("linalg: index %d is not active in this sparse vector", i))
	}
	v.values[pos] = value
}

// Add adds value to the element at index i. Panics if i is not active.
func (v *SparseVector) Add(i int, value float64) {
	pos := v.position(i)
	if pos < 0 {
		panic(fmt.Sprintf("linalg: index %d is not active in this sparse vector", i))
	}
	v.values[pos] += value
}

// Copy returns a deep copy.
func (v *SparseVector) Copy() *SparseVector {
	indices := make([]int, len(v.indices))
	copy(indices, v.indices)
	values := make([]float64, len(v.values))
	copy(values, v.values)
	return &SparseVector{size: v.size, indices: indices, values: values}
}

// Clone returns a deep copy as a Tensor.
func (v *SparseVector) Clone() Tensor {
	return v.Copy()
}

// ScaleInPlace multiplies every active value by coef.
func (v *SparseVector) ScaleInPlace(coef float64) {
	for k := range v.values {
		v.values[k] *= coef
	}
}

// Scale returns a new sparse vector with every active value multiplied by
// coef.
func (v *SparseVector) Scale(coef float64) Vector {
	out := v.Copy()
	out.ScaleInPlace(coef)
	return out
}

// IntersectAddInPlace adds f(other's value) into the active positions of
// the receiver. Positions active only in other are ignored.
func (v *SparseVector) IntersectAddInPlace(other Tensor, f func(float64) float64) {
	fn := orIdentity(f)
	switch o := other.(type) {
	case *DenseVector:
		if o.Size() != v.size {
			panic(fmt.Sprintf("linalg: vector size mismatch %d vs %d", v.size, o.Size()))
		}
		data := o.Data()
		for k, idx := range v.indices {
			v.values[k] += fn(data[idx])
		}
	case *SparseVector:
		if o.Size() != v.size {
			panic(fmt.Sprintf("linalg: vector size mismatch %d vs %d", v.size, o.Size()))
		}
		// Two pointer walk over the sorted index lists.
		j := 0
		for k, idx := range v.indices {
			for j < len(o.indices) && o.indices[j] < idx {
				j++
			}
			if j == len(o.indices) {
				break
			}
			if o.indices[j] == idx {
				v.values[k] += fn(o.values[j])
			}
		}
	default:
		panic(fmt.Sprintf("linalg: unsupported vector type %T", other))
	}
}

// HadamardProductInPlace multiplies each active value by f(other's value).
func (v *SparseVector) HadamardProductInPlace(other Tensor, f func(float64) float64) {
	fn := orIdentity(f)
	o, ok := other.(Vector)
	if !ok {
		panic(fmt.Sprintf("linalg: unsupported vector type %T", other))
	}
	if o.Size() != v.size {
		panic(fmt.Sprintf("linalg: vector size mismatch %d vs %d", v.size, o.Size()))
	}
	for k, idx := range v.indices {
		v.values[k] *= fn(o.Get(idx))
	}
}

// Dot returns the inner product with other.
func (v *SparseVector) Dot(other Vector) float64 {
	sum := 0.0
	switch o := other.(type) {
	case *DenseVector:
		data := o.Data()
		for k, idx := range v.indices {
			sum += v.values[k] * data[idx]
		}
	case *SparseVector:
		j := 0
		for k, idx := range v.indices {
			for j < len(o.indices) && o.indices[j] < idx {
				j++
			}
			if j == len(o.indices) {
				break
			}
			if o.indices[j] == idx {
				sum += v.values[k] * o.values[j]
			}
		}
	default:
		panic(fmt.Sprintf("linalg: unsupported vector type %T", other))
	}
	return sum
}

// Outer returns the outer product v ⊗ other. Sparse ⊗ sparse produces a
// row sparse matrix, sparse ⊗ dense produces a dense matrix with nonzero
// rows only at the receiver's active indices.
func (v *SparseVector) Outer(other Vector) Matrix {
	switch o := other.(type) {
	case *SparseVector:
		rows := make([]*SparseVector, v.size)
		empty := &SparseVector{size: o.Size()}
		for i := range rows {
			rows[i] = empty
		}
		for k, idx := range v.indices {
			rows[idx] = o.Scale(v.values[k]).(*SparseVector)
		}
		return NewRowSparseMatrix(rows, o.Size())
	case *DenseVector:
		out := NewDenseMatrix(v.size, o.Size())
		data := o.Data()
		for k, idx := range v.indices {
			row := out.m.RawRowView(idx)
			val := v.values[k]
			for j := range data {
				row[j] = val * data[j]
			}
		}
		return out
	default:
		panic(fmt.Sprintf("linalg: unsupported vector type %T", other))
	}
}

// Sum returns the sum of active values.
func (v *SparseVector) Sum() float64 {
	sum := 0.0
	for _, val := range v.values {
		sum += val
	}
	return sum
}

// TwoNorm returns the l2 norm.
func (v *SparseVector) TwoNorm() float64 {
	sum := 0.0
	for _, val := range v.values {
		sum += val * val
	}
	return math.Sqrt(sum)
}

// MaxIndex returns the index of the maximum value. When the vector has
// inactive indices and every active value is negative the first inactive
// index is returned, implicit zeros participate in the maximum.
func (v *SparseVector) MaxIndex() int {
	if len(v.indices) == 0 {
		return 0
	}
	maxIdx := v.indices[0]
	maxVal := v.values[0]
	for k := 1; k < len(v.values); k++ {
		if v.values[k] > maxVal {
			maxVal = v.values[k]
			maxIdx = v.indices[k]
		}
	}
	if maxVal < 0.0 && len(v.indices) < v.size {
		for i := 0; i < v.size; i++ {
			if v.position(i) < 0 {
				return i
			}
		}
	}
	return maxIdx
}

func (v *SparseVector) String() string {
	var sb strings.Builder
	sb.WriteString("SparseVector{")
	for k, idx := range v.indices {
		if k > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d:%g", idx, v.values[k])
	}
	sb.WriteString("}")
	return sb.String()
}

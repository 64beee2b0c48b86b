package linalg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DenseVector is a dense Vector backed by a gonum VecDense.
type DenseVector struct {
	vec *mat.VecDense
}

var _ Vector = (*DenseVector)(nil)

// NewDenseVector creates a zeroed dense vector of the given size.
func NewDenseVector(size int) *DenseVector {
	return &DenseVector{vec: mat.NewVecDense(size, nil)}
}

// NewDenseVectorFrom creates a dense vector taking ownership of values.
func NewDenseVectorFrom(values []float64) *DenseVector {
	return &DenseVector{vec: mat.NewVecDense(len(values), values)}
}

// NewDenseVectorCopy creates a dense vector with a copy of values.
func NewDenseVectorCopy(values []float64) *DenseVector {
	data := make([]float64, len(values))
	copy(data, values)
	return NewDenseVectorFrom(data)
}

// RawVector returns the backing gonum VecDense. Mutating it mutates the
// vector.
func (v *DenseVector) RawVector() *mat.VecDense {
	return v.vec
}

// Data returns the backing slice. Mutating it mutates the vector.
func (v *DenseVector) Data() []float64 {
	return v.vec.RawVector().Data
}

// Shape returns the vector dimensions.
func (v *DenseVector) Shape() []int {
	return []int{v.Size()}
}

// Size returns the dimension of the vector.
func (v *DenseVector) Size() int {
	return v.vec.Len()
}

// NumActive returns Size, every element of a dense vector is active.
func (v *DenseVector) NumActive() int {
	return v.Size()
}

// Get returns the value at index i.
func (v *DenseVector) Get(i int) float64 {
	return v.vec.AtVec(i)
}

// Set stores value at index i.
func (v *DenseVector) Set(i int, value float64) {
	v.vec.SetVec(i, value)
}

// Add adds value to the element at index i.
func (v *DenseVector) Add(i int, value float64) {
	v.vec.SetVec(i, v.vec.AtVec(i)+value)
}

// Copy returns a deep copy.
func (v *DenseVector) Copy() *DenseVector {
	out := mat.NewVecDense(v.Size(), nil)
	out.CopyVec(v.vec)
	return &DenseVector{vec: out}
}

// Clone returns a deep copy as a Tensor.
func (v *DenseVector) Clone() Tensor {
	return v.Copy()
}

// ScaleInPlace multiplies every value by coef.
func (v *DenseVector) ScaleInPlace(coef float64) {
	v.vec.ScaleVec(coef, v.vec)
}

// Scale returns a new dense vector with every value multiplied by coef.
func (v *DenseVector) Scale(coef float64) Vector {
	out := v.Copy()
	out.ScaleInPlace(coef)
	return out
}

// IntersectAddInPlace adds f(other's value) at every index. The
// intersection of a dense vector with anything is every active index of
// the other operand for sparse others, and the whole vector for dense
// others.
func (v *DenseVector) IntersectAddInPlace(other Tensor, f func(float64) float64) {
	fn := orIdentity(f)
	data := v.Data()
	switch o := other.(type) {
	case *DenseVector:
		if o.Size() != v.Size() {
			panic(fmt.Sprintf("linalg: vector size mismatch %d vs %d", v.Size(), o.Size()))
		}
		od := o.Data()
		for i := range data {
			data[i] += fn(od[i])
		}
	case *SparseVector:
		if o.Size() != v.Size() {
			panic(fmt.Sprintf("linalg: vector size mismatch %d vs %d", v.Size(), o.Size()))
		}
		for k, idx := range o.indices {
			data[idx] += fn(o.values[k])
		}
	default:
		panic(fmt.Sprintf("linalg: unsupported vector type %T", other))
	}
}

// HadamardProductInPlace multiplies each element by f(other's value).
// Inactive indices of a sparse other are treated as zero.
func (v *DenseVector) HadamardProductInPlace(other Tensor, f func(float64) float64) {
	fn := orIdentity(f)
	o, ok := other.(Vector)
	if !ok {
		panic(fmt.Sprintf("linalg: unsupported vector type %T", other))
	}
	if o.Size() != v.Size() {
		panic(fmt.Sprintf("linalg: vector size mismatch %d vs %d", v.Size(), o.Size()))
	}
	data := v.Data()
	for i := range data {
		data[i] *= fn(o.Get(i))
	}
}

// Dot returns the inner product with other.
func (v *DenseVector) Dot(other Vector) float64 {
	switch o := other.(type) {
	case *DenseVector:
		return mat.Dot(v.vec, o.vec)
	case *SparseVector:
		return o.Dot(v)
	default:
		panic(fmt.Sprintf("linalg: unsupported vector type %T", other))
	}
}

// Outer returns the outer product v ⊗ other as a dense matrix.
func (v *DenseVector) Outer(other Vector) Matrix {
	rows := v.Size()
	cols := other.Size()
	out := NewDenseMatrix(rows, cols)
	switch o := other.(type) {
	case *DenseVector:
		out.m.Outer(1.0, v.vec, o.vec)
	case *SparseVector:
		for i := 0; i < rows; i++ {
			vi := v.Get(i)
			if vi == 0.0 {
				continue
			}
			for k, idx := range o.indices {
				out.m.Set(i, idx, vi*o.values[k])
			}
		}
	default:
		panic(fmt.Sprintf("linalg: unsupported vector type %T", other))
	}
	return out
}

// Sum returns the sum of all values.
func (v *DenseVector) Sum() float64 {
	return floats.Sum(v.Data())
}

// TwoNorm returns the l2 norm.
func (v *DenseVector) TwoNorm() float64 {
	return mat.Norm(v.vec, 2)
}

// MaxIndex returns the index of the maximum value.
func (v *DenseVector) MaxIndex() int {
	return floats.MaxIdx(v.Data())
}

// HasInvalidValues reports whether the vector contains NaN or Inf values.
func (v *DenseVector) HasInvalidValues() bool {
	for _, val := range v.Data() {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return true
		}
	}
	return false
}

func (v *DenseVector) String() string {
	return fmt.Sprintf("DenseVector%v", v.Data())
}

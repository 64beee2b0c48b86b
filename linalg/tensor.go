// Package linalg provides the dense and sparse vector and matrix types used
// as weights and gradients by sgdkit's linear models.
//
// Dense containers are backed by gonum's mat package. Sparse containers
// store sorted (index, value) pairs so gradient merges can walk them in
// order. In-place accumulation follows an intersection rule: only the
// positions active in the receiver are modified.
//
// Dimension mismatches at this layer are programming errors and panic, in
// the same way gonum's mat package panics on shape violations. Operations
// whose failure is a normal runtime condition return errors at the param
// and estimator layers instead.
package linalg

import "math"

// Tensor is the generic numeric array abstraction. Concrete shapes are
// vectors and matrices, each with a dense and a sparse representation.
type Tensor interface {
	// Shape returns the tensor dimensions.
	Shape() []int

	// Clone returns a deep copy sharing no state with the receiver.
	Clone() Tensor

	// ScaleInPlace multiplies every value by coef.
	ScaleInPlace(coef float64)

	// IntersectAddInPlace adds f(other's value) into the receiver at each
	// position active in the receiver. f nil means identity. Panics if the
	// shapes differ.
	IntersectAddInPlace(other Tensor, f func(float64) float64)

	// HadamardProductInPlace multiplies the receiver at each of its active
	// positions by f(other's value). f nil means identity. Panics if the
	// shapes differ.
	HadamardProductInPlace(other Tensor, f func(float64) float64)

	// TwoNorm returns the l2 norm over all values.
	TwoNorm() float64
}

func identity(v float64) float64 { return v }

func orIdentity(f func(float64) float64) func(float64) float64 {
	if f == nil {
		return identity
	}
	return f
}

// shapesEqual reports whether two shapes match exactly.
func shapesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// VectorsEqualApprox reports whether two vectors have the same size and
// values within tol at every index.
func VectorsEqualApprox(a, b Vector, tol float64) bool {
	if a.Size() != b.Size() {
		return false
	}
	for i := 0; i < a.Size(); i++ {
		if math.Abs(a.Get(i)-b.Get(i)) > tol {
			return false
		}
	}
	return true
}

// MatricesEqualApprox reports whether two matrices have the same dimensions
// and values within tol at every cell.
func MatricesEqualApprox(a, b Matrix, tol float64) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return false
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			if math.Abs(a.At(i, j)-b.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}

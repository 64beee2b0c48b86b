package linalg

// Vector is a one dimensional tensor holding features, per-output gradients
// or weight rows.
type Vector interface {
	Tensor

	// Size returns the dimension of the vector.
	Size() int

	// NumActive returns the number of active (stored) elements. Equal to
	// Size for dense vectors.
	NumActive() int

	// Get returns the value at index i, zero for inactive sparse indices.
	Get(i int) float64

	// Set stores v at index i. Sparse vectors panic if i is not active.
	Set(i int, v float64)

	// Add adds v to the value at index i. Sparse vectors panic if i is not
	// active.
	Add(i int, v float64)

	// Dot returns the inner product with other.
	Dot(other Vector) float64

	// Scale returns a new vector with every value multiplied by coef.
	Scale(coef float64) Vector

	// Outer returns the outer product with other: a matrix of
	// Size() x other.Size(). The result is row sparse only when both
	// operands are sparse.
	Outer(other Vector) Matrix

	// Sum returns the sum of all values.
	Sum() float64

	// MaxIndex returns the index of the maximum value.
	MaxIndex() int
}

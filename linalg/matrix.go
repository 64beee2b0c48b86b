package linalg

// Matrix is a two dimensional tensor. Weight matrices are dense, gradient
// matrices are dense or row sparse depending on the feature sparsity of the
// example that produced them.
type Matrix interface {
	Tensor

	// Dims returns the row and column counts.
	Dims() (r, c int)

	// At returns the value at row i, column j.
	At(i, j int) float64

	// Set stores v at row i, column j. Row sparse matrices panic if the
	// position is not active.
	Set(i, j int, v float64)

	// LeftMultiply computes matrix * input, producing one value per row.
	// Panics if input's size does not match the column count.
	LeftMultiply(input Vector) *DenseVector

	// Row returns a view of row i. Mutating the view mutates the matrix.
	Row(i int) Vector

	// NumActive returns the number of active elements in row i.
	NumActive(i int) int
}

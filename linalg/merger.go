package linalg

import "container/heap"

// Merger combines gradient tensors from several minibatch examples or
// parallel workers into a single update, summing values that land on the
// same coordinate.
type Merger interface {
	// MergeMatrices merges the inputs into one row sparse matrix. All
	// inputs must share the same dimensions.
	MergeMatrices(inputs []*RowSparseMatrix) *RowSparseMatrix

	// MergeVectors merges the inputs into one sparse vector. All inputs
	// must share the same size.
	MergeVectors(inputs []*SparseVector) *SparseVector
}

// HeapMerger merges sorted sparse rows with a k-way heap merge. For n
// inputs with m active elements each this costs O(n*m*log(n)) rather than
// the O(n*m*n) of repeated pairwise intersection, which matters when many
// small sparse gradients are combined per minibatch.
//
// HeapMerger is stateless, a single value can be shared across goroutines.
type HeapMerger struct{}

var _ Merger = HeapMerger{}

// MergeMatrices merges row by row, reusing one buffer pair across rows.
func (HeapMerger) MergeMatrices(inputs []*RowSparseMatrix) *RowSparseMatrix {
	denseLength, sparseLength := inputs[0].Dims()

	maxLength := 0
	for i := 0; i < denseLength; i++ {
		total := 0
		for _, m := range inputs {
			total += m.NumActive(i)
		}
		if total > maxLength {
			maxLength = total
		}
	}

	indicesBuffer := make([]int, maxLength)
	valuesBuffer := make([]float64, maxLength)

	output := make([]*SparseVector, denseLength)
	cursors := make([]*vectorCursor, 0, len(inputs))
	for i := 0; i < denseLength; i++ {
		cursors = cursors[:0]
		for ord, m := range inputs {
			row := m.SparseRow(i)
			if row.NumActive() > 0 {
				cursors = append(cursors, &vectorCursor{vec: row, ord: ord})
			}
		}
		output[i] = mergeCursors(cursors, sparseLength, indicesBuffer, valuesBuffer)
	}

	return NewRowSparseMatrix(output, sparseLength)
}

// MergeVectors merges the inputs into one sparse vector.
func (HeapMerger) MergeVectors(inputs []*SparseVector) *SparseVector {
	maxLength := 0
	cursors := make([]*vectorCursor, 0, len(inputs))
	for ord, v := range inputs {
		maxLength += v.NumActive()
		if v.NumActive() > 0 {
			cursors = append(cursors, &vectorCursor{vec: v, ord: ord})
		}
	}
	return mergeCursors(cursors, inputs[0].Size(), make([]int, maxLength), make([]float64, maxLength))
}

// vectorCursor walks the active elements of one sparse vector.
type vectorCursor struct {
	vec *SparseVector
	pos int
	ord int
}

func (c *vectorCursor) index() int     { return c.vec.indices[c.pos] }
func (c *vectorCursor) value() float64 { return c.vec.values[c.pos] }
func (c *vectorCursor) exhausted() bool {
	return c.pos >= len(c.vec.indices)
}

// cursorHeap orders cursors by current index, breaking ties by input
// ordinal so the summation order, and therefore the floating point result,
// is independent of goroutine scheduling.
type cursorHeap []*vectorCursor

func (h cursorHeap) Len() int { return len(h) }
func (h cursorHeap) Less(i, j int) bool {
	if h[i].index() != h[j].index() {
		return h[i].index() < h[j].index()
	}
	return h[i].ord < h[j].ord
}
func (h cursorHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *cursorHeap) Push(x any) { *h = append(*h, x.(*vectorCursor)) }
func (h *cursorHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// mergeCursors merges the cursors' (index, value) streams into one sparse
// vector of the given dimension, summing values with equal indices. The
// buffers must be large enough to hold the total active count.
func mergeCursors(cursors []*vectorCursor, dimension int, indicesBuffer []int, valuesBuffer []float64) *SparseVector {
	h := make(cursorHeap, len(cursors))
	copy(h, cursors)
	heap.Init(&h)

	counter := 0
	currentIndex := -1

	for h.Len() > 0 {
		cur := h[0]
		idx := cur.index()
		val := cur.value()

		switch {
		case currentIndex == -1:
			currentIndex = idx
			indicesBuffer[counter] = idx
			valuesBuffer[counter] = val
		case idx == currentIndex:
			valuesBuffer[counter] += val
		default:
			currentIndex = idx
			counter++
			indicesBuffer[counter] = idx
			valuesBuffer[counter] = val
		}

		cur.pos++
		if cur.exhausted() {
			heap.Pop(&h)
		} else {
			heap.Fix(&h, 0)
		}
	}

	length := 0
	if currentIndex != -1 {
		length = counter + 1
	}
	indices := make([]int, length)
	copy(indices, indicesBuffer[:length])
	values := make([]float64, length)
	copy(values, valuesBuffer[:length])
	return &SparseVector{size: dimension, indices: indices, values: values}
}

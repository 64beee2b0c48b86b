// Package parallel provides chunked parallel execution helpers for
// CPU-bound numeric loops.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits the range [0, items) into contiguous chunks, one per
// available CPU, and runs fn(start, end) for each chunk on its own
// goroutine. It returns once every chunk has completed.
func Parallelize(items int, fn func(start, end int)) {
	ParallelizeN(items, runtime.NumCPU(), fn)
}

// ParallelizeN is Parallelize with an explicit worker count. A worker count
// of one runs fn sequentially on the calling goroutine.
func ParallelizeN(items, workers int, fn func(start, end int)) {
	if items == 0 {
		return
	}
	if workers > items {
		workers = items
	}
	if workers <= 1 {
		fn(0, items)
		return
	}

	// Ceiling division so the last chunk absorbs the remainder.
	chunkSize := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially when items does not exceed
// threshold, avoiding goroutine overhead on small inputs.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// Package parallel provides a small fixed-fan-out worker group, the
// generic, result-typed counterpart of the teacher's reflect-based
// ParallelGroup. It backs spec.md §5's optional parallelism points: initial
// prior draws and their likelihood evaluations are embarrassingly parallel,
// but results must be applied back in a deterministic (index) order so the
// sequential reference semantics (bit-identical up to float associativity)
// are preserved.
package parallel

import "sync"

// Map runs fn(i) for i in [0,n) across up to workers goroutines and returns
// results indexed by i, so callers can fold them back in deterministic order
// regardless of completion order.
func Map[T any](n, workers int, fn func(i int) T) []T {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	results := make([]T, n)
	if n == 0 {
		return results
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			results[i] = fn(i)
		}
		return results
	}

	var wg sync.WaitGroup
	jobs := make(chan int)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

// Package parallelism provides fan-out scheduling for index-addressable
// workloads, such as hashing the blocks of a fingerprint in parallel.
package parallelism

import (
	"runtime"
)

// ForEachStride invokes fn for every index in [0, count), fanning the
// calls out across a bounded set of worker Goroutines. Worker w handles
// indices w, w+workers, w+2*workers, and so on, so a caller that writes
// into pre-sized output slots by index needs no synchronization beyond the
// join performed here. If workers is zero or negative, one worker per
// system CPU is used. It blocks until all workers have finished and
// returns the first non-nil error returned by fn, if any.
func ForEachStride(count, workers int, fn func(index int) error) error {
	// Handle the case of a default worker count.
	if workers < 1 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}

	// Don't start more workers than there are indices. This also handles
	// the case of an empty index space.
	if workers > count {
		workers = count
	}
	if workers == 0 {
		return nil
	}

	// Start the workers, each striding across the index space from its own
	// offset.
	results := make(chan error, workers)
	for w := 0; w < workers; w++ {
		go func(start int) {
			var firstErr error
			for i := start; i < count; i += workers {
				if err := fn(i); err != nil && firstErr == nil {
					firstErr = err
				}
			}
			results <- firstErr
		}(w)
	}

	// Join the workers and surface the first error.
	var firstErr error
	for w := 0; w < workers; w++ {
		if err := <-results; err != nil && firstErr == nil {
			firstErr = err
		}
	}

	// Done.
	return firstErr
}

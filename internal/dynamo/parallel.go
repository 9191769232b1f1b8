package dynamo

import (
	"golang.org/x/sync/errgroup"
)

// ParallelFor calls fn for every index in [0, n), split into contiguous
// chunks run on at most workers goroutines. It returns after every chunk has
// finished, with the first error any chunk returned. A chunk stops at its
// first failing index.
func ParallelFor(n, workers int, fn func(i int) error) error {
	if workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	if workers > n {
		workers = n
	}
	chunkSize := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		s, e := start, end
		g.Go(func() error {
			for i := s; i < e; i++ {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

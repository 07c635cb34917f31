package looppipe

import "golang.org/x/sync/errgroup"

// CapWorkers resolves a Concurrency hint to a concrete in-flight limit.
// Zero (or negative) means the engine decides and yields the pool size.
func (e *Engine) CapWorkers(c Concurrency) int {
	if c <= 0 {
		return e.workers
	}
	return int(c)
}

// Capped runs body for every i in [0, total), keeping at most CapWorkers(c)
// iterations in flight at once. Unlike Pipelined there is no ordering
// guarantee between iterations, so the body's combining step must commute.
// Every iteration runs even when some fail; the first non-nil error is
// returned once all bodies finish. Serial engines run the loop inline with
// the same error semantics.
func (e *Engine) Capped(total int, c Concurrency, body func(i int) error) error {
	if total <= 0 {
		return nil
	}
	limit := e.CapWorkers(c)
	if e.inline() || limit == 1 {
		var firstErr error
		for i := range total {
			if err := body(i); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i := range total {
		g.Go(func() error { return body(i) })
	}
	return g.Wait()
}

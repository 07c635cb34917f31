package looppipe

import "sync"

// windowTask is one contiguous chunk of loop iterations handed to a worker.
// The barrier releases once every chunk of the window has run.
type windowTask struct {
	start, end int
	body       func(start, end int)
	barrier    *sync.WaitGroup
}

// worker drains workC until Close. One goroutine per worker for the lifetime
// of the engine, so windows pay no spawn cost.
func (e *Engine) worker() {
	for task := range e.workC {
		task.body(task.start, task.end)
		task.barrier.Done()
	}
}

// window runs body over [start, end) split across the pool and returns when
// every chunk is done. Chunks are sized so each worker gets at most one, which
// keeps the per-window overhead at a single barrier wait.
func (e *Engine) window(start, end int, body func(start, end int)) {
	span := end - start
	if span <= 0 {
		return
	}
	if e.inline() || span == 1 {
		body(start, end)
		return
	}

	chunk := (span + e.workers - 1) / e.workers
	var barrier sync.WaitGroup
	for lo := start; lo < end; lo += chunk {
		hi := min(lo+chunk, end)
		barrier.Add(1)
		e.workC <- windowTask{start: lo, end: hi, body: body, barrier: &barrier}
	}
	barrier.Wait()
}

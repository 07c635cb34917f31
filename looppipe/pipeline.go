package looppipe

// Pipelined executes body over the index space [0, total) in consecutive
// windows of at most d iterations each. Windows never overlap and start in
// ascending order; inside one window the iterations may run concurrently,
// split into contiguous chunks across the pool.
//
// body receives half-open ranges and must be equivalent to running
// body(i, i+1) for each i in ascending order within the range. Under that
// contract, any loop whose writes to a given location are at least d
// iterations apart produces bit-identical results for every d and every
// worker count: same-location writes always land in different windows, and
// windows are ordered.
//
// Hints below MinSafelen are treated as MinSafelen, which is the fully serial
// schedule. Serial engines run the whole loop inline.
func (e *Engine) Pipelined(total int, d Safelen, body func(start, end int)) {
	if total <= 0 {
		return
	}
	if e.inline() || d <= MinSafelen {
		body(0, total)
		return
	}

	w := min(int(d), total)
	for lo := 0; lo < total; lo += w {
		e.window(lo, min(lo+w, total), body)
	}
}

// Package looppipe executes annotated loops the way FPGA high-level synthesis
// schedulers do: the caller attaches scheduling hints to a loop and an execution
// engine uses them to overlap iterations, with the contract that a hint may only
// ever change how long the loop takes, never what it computes.
//
// Two hints are supported:
//
//   - Safelen declares the minimum index distance at which loop iterations may
//     depend on each other. Iterations closer together than Safelen are free of
//     conflicts and may run concurrently.
//   - Concurrency bounds how many outer iterations are in flight at once, which
//     in turn bounds how many private scratch buffers a kernel keeps resident.
//
// Basic usage:
//
//	eng, err := looppipe.New(looppipe.DefaultConfig())
//	if err != nil {
//	    // no usable execution target
//	}
//	defer eng.Close()
//
//	// Iterations less than 8 apart never touch the same data.
//	eng.Pipelined(len(items), 8, func(start, end int) {
//	    for j := start; j < end; j++ {
//	        process(items[j])
//	    }
//	})
//
// The demo kernels under contrib/ show both hints applied to real workloads.
package looppipe

// Floats is a constraint for the floating-point element types the bundled
// kernels operate on.
type Floats interface {
	~float32 | ~float64
}

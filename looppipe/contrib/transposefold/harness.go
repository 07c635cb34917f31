// Copyright 2025 The go-looppipe Authors. SPDX-License-Identifier: Apache-2.0

package transposefold

import (
	"errors"
	"fmt"
	"time"
	"unsafe"

	"github.com/ajroetker/go-looppipe/looppipe"
)

var (
	// ErrBadMatrix reports an input that is not a non-empty square matrix.
	ErrBadMatrix = errors.New("transposefold: input is not a square matrix")

	// ErrSafelenRange reports a dependence-distance hint outside [1, n].
	ErrSafelenRange = errors.New("transposefold: safelen out of range")
)

// Result holds the output of one timed kernel run.
type Result[T looppipe.Floats] struct {
	// Output is the n×n accumulator, row-major.
	Output []T

	// N is the matrix side length.
	N int

	// Elapsed is the kernel time, excluding validation and buffer setup.
	Elapsed time.Duration
}

// KBPerSec reports matrix bytes moved per second, the throughput figure the
// FPGA tutorials print for each safelen variant.
func (r Result[T]) KBPerSec() float64 {
	var elem T
	bytes := float64(r.N) * float64(r.N) * float64(unsafe.Sizeof(elem))
	return bytes / 1e3 / r.Elapsed.Seconds()
}

// Run validates, stages and times one kernel execution with the given
// dependence-distance hint. The input must be an n×n row-major matrix and
// the hint must lie in [1, n]; violations return ErrBadMatrix or
// ErrSafelenRange. The input slice is never mutated.
func Run[T looppipe.Floats](eng *looppipe.Engine, input []T, n int, d looppipe.Safelen) (Result[T], error) {
	if n <= 0 || len(input) != n*n {
		return Result[T]{}, fmt.Errorf("%w: side %d with %d elements", ErrBadMatrix, n, len(input))
	}
	if d < looppipe.MinSafelen || int(d) > n {
		return Result[T]{}, fmt.Errorf("%w: %d not in [1, %d]", ErrSafelenRange, d, n)
	}

	// Stage a private copy, like the original's host-to-device transfer.
	// The kernel only ever reads it, so the caller's buffer stays untouched
	// no matter what the schedule does.
	work := make([]T, len(input))
	copy(work, input)
	acc := make([]T, n*n)

	start := time.Now()
	PipelinedFold(eng, acc, work, n, d)
	elapsed := time.Since(start)

	return Result[T]{Output: acc, N: n, Elapsed: elapsed}, nil
}

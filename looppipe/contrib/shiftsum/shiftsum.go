// Copyright 2025 The go-looppipe Authors. SPDX-License-Identifier: Apache-2.0

// Package shiftsum implements a shifted partial-sum kernel whose outer
// iterations are independent but each own a private scratch buffer, making it
// the canonical demonstration of a max-concurrency hint: the cap bounds how
// many iterations are in flight, and therefore how much scratch memory is
// resident, without ever changing the result.
//
// Iteration i scales a rotated view of the input by shift into its scratch
// buffer, reduces the buffer to one partial sum and folds that into the
// running total. All arithmetic is wrapping int32, so partial sums commute
// and any schedule produces the same total.
//
// Usage:
//
//	res, err := shiftsum.Sum(eng, input, shift, shiftsum.DemoIters, 4)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if res.Sum != shiftsum.Golden(input, shift, shiftsum.DemoIters) {
//		// schedule bug: the cap must never change the total
//	}
package shiftsum

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ajroetker/go-looppipe/looppipe"
)

// Demo parameters, matching the sweep the demo driver runs.
const (
	// DemoSize is the input length used by the demo driver.
	DemoSize = 8192

	// DemoIters is the outer trip count used by the demo driver.
	DemoIters = 50000

	// DemoMaxValue bounds the random input values and the shift.
	DemoMaxValue = 128
)

// ErrBadInput reports arguments Sum cannot work with.
var ErrBadInput = errors.New("shiftsum: bad input")

// Result holds the outcome of one timed kernel run.
type Result struct {
	// Sum is the wrapping int32 total over all iterations.
	Sum int32

	// Iters is the outer trip count.
	Iters int

	// Size is the input length, which is also the scratch buffer length.
	Size int

	// Elapsed is the kernel time, excluding validation and scratch setup.
	Elapsed time.Duration
}

// MIPS reports millions of integer ops per second, counting one multiply and
// one add per scratch element per iteration.
func (r Result) MIPS() float64 {
	ops := 2 * float64(r.Iters) * float64(r.Size)
	return ops / r.Elapsed.Seconds() / 1e6
}

// Golden computes the reference total with a straight serial loop.
func Golden(input []int32, shift int32, iters int) int32 {
	size := len(input)
	var r int32
	for i := 0; i < iters; i++ {
		for j := 0; j < size; j++ {
			r += input[(i*4+j)%size] * shift
		}
	}
	return r
}

// Sum runs the kernel with at most conc outer iterations in flight. Scratch
// buffers live on a free list sized to the resolved cap, so the hint bounds
// resident scratch memory exactly. conc = 0 lets the engine decide.
//
// Wrapping int32 addition commutes, so Sum equals Golden for every cap and
// every engine.
func Sum(eng *looppipe.Engine, input []int32, shift int32, iters int, conc looppipe.Concurrency) (Result, error) {
	if len(input) == 0 {
		return Result{}, fmt.Errorf("%w: empty input", ErrBadInput)
	}
	if iters < 0 {
		return Result{}, fmt.Errorf("%w: negative iteration count %d", ErrBadInput, iters)
	}
	if conc < 0 {
		return Result{}, fmt.Errorf("%w: negative concurrency %d", ErrBadInput, conc)
	}

	size := len(input)

	// One private scratch buffer per in-flight iteration. The free list is
	// the resident-memory bound the concurrency hint promises.
	slots := eng.CapWorkers(conc)
	scratch := make(chan []int32, slots)
	for range slots {
		scratch <- make([]int32, size)
	}

	var total atomic.Int32

	start := time.Now()
	err := eng.Capped(iters, conc, func(i int) error {
		a1 := <-scratch
		for j := range size {
			a1[j] = input[(i*4+j)%size] * shift
		}
		var sum int32
		for _, v := range a1 {
			sum += v
		}
		scratch <- a1
		total.Add(sum)
		return nil
	})
	elapsed := time.Since(start)
	if err != nil {
		return Result{}, err
	}

	return Result{Sum: total.Load(), Iters: iters, Size: size, Elapsed: elapsed}, nil
}

// Copyright 2025 The go-looppipe Authors. SPDX-License-Identifier: Apache-2.0

package transposefold

import "github.com/ajroetker/go-looppipe/looppipe"

// Tuning parameters
const (
	// MinPipelinedOps is the minimum j-loop trip count before the pipelined
	// path pays off; below it the windowing overhead dominates.
	MinPipelinedOps = 32 * 32 * 32
)

// PipelinedFold runs the kernel through the engine's window-ordered pipeline
// with the given dependence-distance hint. Small problems and serial engines
// degrade to the serial kernel, which is bit-identical by the ordering
// contract.
//
// Hints beyond n are clamped to n: successive touches of one accumulator
// cell are exactly n iterations apart, so n is the largest truthful distance
// for this loop body.
func PipelinedFold[T looppipe.Floats](eng *looppipe.Engine, dst, src []T, n int, d looppipe.Safelen) {
	total := n * n * n
	if total < MinPipelinedOps {
		Fold(dst, src, n, d)
		return
	}

	d = min(d, looppipe.Safelen(n))
	eng.Pipelined(total, d, func(start, end int) {
		foldRange(dst, src, n, start, end)
	})
}

// Copyright 2025 go-looppipe Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transposefold

import "github.com/ajroetker/go-looppipe/looppipe"

// DemoSide is the side length used by the demo driver: a 128×128 matrix,
// small enough that n² repeated float32 additions stay exact.
const DemoSide = 128

// Fold runs the kernel serially: for each j in [0, n³), add column j%n of
// the n×n row-major src into row j%n of dst. The safelen hint is accepted
// for signature parity with PipelinedFold and has no effect here; a serial
// schedule satisfies every dependence distance.
//
// Accumulates into dst, so callers wanting the plain result pass a zeroed
// dst. Both slices must hold n*n elements; short slices panic on indexing.
func Fold[T looppipe.Floats](dst, src []T, n int, d looppipe.Safelen) {
	foldRange(dst, src, n, 0, n*n*n)
}

// foldRange applies iterations [start, end) of the j-loop.
//
// Source: column j%n, accessed as src[i*n + (j%n)]
// Dest: row j%n, accessed as dst[(j%n)*n + i]
func foldRange[T looppipe.Floats](dst, src []T, n, start, end int) {
	for j := start; j < end; j++ {
		r := j % n
		row := dst[r*n : (r+1)*n]
		for i := range n {
			row[i] += src[i*n+r]
		}
	}
}

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

// Package transposefold implements a transpose-and-fold accumulation kernel
// whose loop-carried dependences are exactly n iterations apart, making it
// the canonical demonstration of a dependence-distance (safelen) hint: any
// hint from 1 to n produces bit-identical output, only the schedule changes.
//
// The kernel walks j over [0, n³). Each iteration adds column j%n of the
// input into row j%n of the accumulator, so every output cell receives n²
// additions of one fixed input value and successive touches of a cell are
// exactly n apart.
//
// Example usage:
//
//	eng, err := looppipe.New(looppipe.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer eng.Close()
//
//	n := transposefold.DemoSide
//	input := make([]float32, n*n) // row-major
//	// ... fill input ...
//
//	conservative, err := transposefold.Run(eng, input, n, 1)
//	aggressive, err := transposefold.Run(eng, input, n, looppipe.Safelen(n))
//	// transposefold.Equal(conservative.Output, aggressive.Output) == true
package transposefold

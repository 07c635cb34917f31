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

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRunValidation(t *testing.T) {
	eng := workersEngine(t)

	src := randomMatrix(8, 1)

	_, err := Run(eng, src, 0, 1)
	require.ErrorIs(t, err, ErrBadMatrix)

	_, err = Run(eng, src, -8, 1)
	require.ErrorIs(t, err, ErrBadMatrix)

	_, err = Run(eng, src, 9, 1) // 8x8 data with side 9
	require.ErrorIs(t, err, ErrBadMatrix)

	_, err = Run(eng, src, 8, 0)
	require.ErrorIs(t, err, ErrSafelenRange)

	_, err = Run(eng, src, 8, -1)
	require.ErrorIs(t, err, ErrSafelenRange)

	_, err = Run(eng, src, 8, 9) // hint beyond the side length
	require.ErrorIs(t, err, ErrSafelenRange)

	// Both ends of the valid range are accepted.
	_, err = Run(eng, src, 8, 1)
	require.NoError(t, err)
	_, err = Run(eng, src, 8, 8)
	require.NoError(t, err)
}

func TestRunResult(t *testing.T) {
	eng := workersEngine(t)

	const n = 32
	res, err := Run(eng, randomMatrix(n, 5), n, n)
	require.NoError(t, err)

	assert.Equal(t, n, res.N)
	assert.Len(t, res.Output, n*n)
	assert.Greater(t, res.Elapsed.Nanoseconds(), int64(0))
	assert.Greater(t, res.KBPerSec(), 0.0)
}

func TestVerify(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	b := []float32{1, 2, 3, 4}

	require.NoError(t, Verify(a, b))
	assert.True(t, Equal(a, b))

	b[2] = 5
	err := Verify(a, b)
	require.ErrorIs(t, err, ErrMismatch)
	assert.Contains(t, err.Error(), "index 2")
	assert.Contains(t, err.Error(), "3")
	assert.Contains(t, err.Error(), "5")
	assert.False(t, Equal(a, b))

	err = Verify(a, b[:3])
	require.ErrorIs(t, err, ErrMismatch)
	assert.Contains(t, err.Error(), "length")
}

// TestRunAgainstGonum checks the kernel against an independent formulation:
// since every output cell (r, i) accumulates n² additions of in[i][r], the
// output approximates n² times the transpose of the input. Repeated addition
// and multiplication round differently, so the comparison uses float64 and a
// relative tolerance.
func TestRunAgainstGonum(t *testing.T) {
	eng := workersEngine(t)

	const n = 32
	rng := rand.New(rand.NewSource(13))
	src := make([]float64, n*n)
	for i := range src {
		src[i] = rng.Float64()
	}

	res, err := Run(eng, src, n, n)
	require.NoError(t, err)

	in := mat.NewDense(n, n, src)
	var want mat.Dense
	want.Scale(float64(n*n), in.T())

	for r := 0; r < n; r++ {
		for i := 0; i < n; i++ {
			assert.InEpsilon(t, want.At(r, i), res.Output[r*n+i], 1e-9,
				"cell (%d, %d)", r, i)
		}
	}
}

// Copyright 2025 The go-looppipe Authors. SPDX-License-Identifier: Apache-2.0

package shiftsum

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-looppipe/looppipe"
)

func workersEngine(tb testing.TB) *looppipe.Engine {
	tb.Helper()
	eng, err := looppipe.New(looppipe.Config{Target: looppipe.TargetWorkers, Workers: 4})
	if err != nil {
		tb.Fatal(err)
	}
	tb.Cleanup(eng.Close)
	return eng
}

func randomInput(size int, seed int64) []int32 {
	rng := rand.New(rand.NewSource(seed))
	input := make([]int32, size)
	for i := range input {
		input[i] = rng.Int31n(DemoMaxValue)
	}
	return input
}

func TestGolden(t *testing.T) {
	input := []int32{1, 2, 3, 4}

	// One pass over a rotation of {1,2,3,4} scaled by 2.
	if got := Golden(input, 2, 1); got != 20 {
		t.Errorf("Golden(iters=1) = %d, want 20", got)
	}

	// The rotation preserves the multiset, so each pass adds the same 20.
	if got := Golden(input, 2, 2); got != 40 {
		t.Errorf("Golden(iters=2) = %d, want 40", got)
	}

	if got := Golden(input, 2, 0); got != 0 {
		t.Errorf("Golden(iters=0) = %d, want 0", got)
	}
}

func TestSumMatchesGolden(t *testing.T) {
	eng := workersEngine(t)

	const size = 512
	const iters = 100
	input := randomInput(size, 1)
	const shift = int32(7)

	want := Golden(input, shift, iters)

	for _, conc := range []looppipe.Concurrency{0, 1, 2, 4, 8, 16} {
		t.Run(fmt.Sprintf("conc=%d", conc), func(t *testing.T) {
			res, err := Sum(eng, input, shift, iters, conc)
			require.NoError(t, err)
			if res.Sum != want {
				t.Errorf("Sum = %d, want %d", res.Sum, want)
			}
		})
	}
}

func TestSumWraparound(t *testing.T) {
	eng := workersEngine(t)

	// 3 << 30 exceeds MaxInt32 and must wrap to -(1 << 30), identically in
	// the kernel and the reference.
	input := []int32{1 << 30}
	const shift = int32(3)

	want := Golden(input, shift, 1)
	if want != -(1 << 30) {
		t.Fatalf("Golden = %d, want %d", want, -(1 << 30))
	}

	res, err := Sum(eng, input, shift, 1, 4)
	require.NoError(t, err)
	if res.Sum != want {
		t.Errorf("Sum = %d, want %d", res.Sum, want)
	}
}

func TestSumSerialMatchesWorkers(t *testing.T) {
	serial, err := looppipe.New(looppipe.Config{Target: looppipe.TargetSerial})
	require.NoError(t, err)
	defer serial.Close()
	pooled := workersEngine(t)

	input := randomInput(256, 2)
	const shift = int32(3)
	const iters = 50

	want, err := Sum(serial, input, shift, iters, 1)
	require.NoError(t, err)
	got, err := Sum(pooled, input, shift, iters, 8)
	require.NoError(t, err)

	if got.Sum != want.Sum {
		t.Errorf("workers Sum = %d, serial Sum = %d", got.Sum, want.Sum)
	}
}

func TestSumValidation(t *testing.T) {
	eng := workersEngine(t)

	_, err := Sum(eng, nil, 1, 10, 2)
	require.ErrorIs(t, err, ErrBadInput)

	_, err = Sum(eng, []int32{1}, 1, -1, 2)
	require.ErrorIs(t, err, ErrBadInput)

	_, err = Sum(eng, []int32{1}, 1, 10, -2)
	require.ErrorIs(t, err, ErrBadInput)
}

func TestSumZeroIters(t *testing.T) {
	eng := workersEngine(t)

	res, err := Sum(eng, []int32{5, 6}, 2, 0, 2)
	require.NoError(t, err)
	if res.Sum != 0 {
		t.Errorf("Sum = %d, want 0", res.Sum)
	}
}

func TestSumResult(t *testing.T) {
	eng := workersEngine(t)

	const size = 4096
	const iters = 200
	res, err := Sum(eng, randomInput(size, 3), 5, iters, 4)
	require.NoError(t, err)

	if res.Iters != iters {
		t.Errorf("Iters = %d, want %d", res.Iters, iters)
	}
	if res.Size != size {
		t.Errorf("Size = %d, want %d", res.Size, size)
	}
	if res.Elapsed <= 0 {
		t.Errorf("Elapsed = %v, want > 0", res.Elapsed)
	}
	if mips := res.MIPS(); mips <= 0 {
		t.Errorf("MIPS() = %v, want > 0", mips)
	}
}

func BenchmarkSum(b *testing.B) {
	eng := workersEngine(b)

	input := randomInput(DemoSize, 1)
	const shift = int32(9)
	const iters = 500

	for _, conc := range []looppipe.Concurrency{1, 4, 16} {
		b.Run(fmt.Sprintf("conc=%d", conc), func(b *testing.B) {
			b.SetBytes(int64(iters) * DemoSize * 4)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Sum(eng, input, shift, iters, conc); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

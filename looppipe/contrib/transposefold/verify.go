// Copyright 2025 The go-looppipe Authors. SPDX-License-Identifier: Apache-2.0

package transposefold

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ajroetker/go-looppipe/looppipe"
)

// ErrMismatch reports that two kernel outputs are not bit-identical.
var ErrMismatch = errors.New("transposefold: results differ")

// Equal reports whether two outputs are elementwise identical.
func Equal[T looppipe.Floats](a, b []T) bool {
	return slices.Equal(a, b)
}

// Verify compares got against want elementwise and returns nil when they
// match. On the first difference it returns ErrMismatch wrapped with the
// index and both values.
func Verify[T looppipe.Floats](got, want []T) error {
	if len(got) != len(want) {
		return fmt.Errorf("%w: length %d != %d", ErrMismatch, len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			return fmt.Errorf("%w: index %d: %v != %v", ErrMismatch, i, got[i], want[i])
		}
	}
	return nil
}

// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package ivec

import "math/bits"

// Int128 is a signed two's complement 128-bit integer, wide enough to sum
// products of 64-bit values without overflow.
type Int128 struct {
	hi int64
	lo uint64
}

// Mul returns the exact product a*b.
func Mul(a, b int64) Int128 {
	hi, lo := bits.Mul64(abs(a), abs(b))
	r := Int128{hi: int64(hi), lo: lo}
	if (a < 0) != (b < 0) {
		return r.Neg()
	}
	return r
}

func (x Int128) Add(y Int128) Int128 {
	lo, carry := bits.Add64(x.lo, y.lo, 0)
	return Int128{hi: x.hi + y.hi + int64(carry), lo: lo}
}

func (x Int128) Neg() Int128 {
	lo, borrow := bits.Sub64(0, x.lo, 0)
	return Int128{hi: -x.hi - int64(borrow), lo: lo}
}

// Sign returns -1, 0 or +1.
func (x Int128) Sign() int {
	switch {
	case x.hi < 0:
		return -1
	case x.hi == 0 && x.lo == 0:
		return 0
	}
	return 1
}

// Cmp returns -1, 0 or +1 depending on whether x is less than, equal to or
// greater than y.
func (x Int128) Cmp(y Int128) int {
	switch {
	case x.hi < y.hi:
		return -1
	case x.hi > y.hi:
		return 1
	case x.lo < y.lo:
		return -1
	case x.lo > y.lo:
		return 1
	}
	return 0
}

func abs(a int64) uint64 {
	if a < 0 {
		return uint64(-a)
	}
	return uint64(a)
}

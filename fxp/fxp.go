// Copyright 2025 go-highway Authors
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

// Package fxp implements fixed-point numbers with explicit bit widths.
//
// A Number stores an integer payload interpreted with NFrac fractional bits.
// Nothing is scaled, saturated or range-checked implicitly:
//
//   - operands of a binary operation must share NFrac; call Rescale first
//     when they do not,
//   - keeping Stored inside the range of (NInt, NFrac, Signed) is the
//     caller's responsibility, checked only by an explicit Overflow call.
//
// Format: U(NInt, NFrac) is unsigned with NInt integer bits; S(NInt, NFrac)
// adds one sign bit. Signed values are stored in two's complement, so Add, Sub
// and Mul are the plain integer operations and Decode needs no sign fix-up.
//
//	gain := fxp.U(6, 10)(1.37)     // Stored = 1402
//	px := fxp.U(10, 0)(700)
//	wb := fxp.Product(px, gain)     // U(16, 10), Stored = 981400
//	wb = wb.Rescale(16, 6)          // 958.375 in U(16, 6)
package fxp

import (
	"cmp"
	"errors"
	"fmt"
	"math"
)

// ErrUnimplemented is returned by operations the format deliberately lacks.
var ErrUnimplemented = errors.New("fxp: operation not implemented")

// Number is a fixed-point value.
type Number struct {
	// Stored is the integer payload; the represented value is Stored / 2^NFrac.
	Stored int64
	NInt   int
	NFrac  int
	Signed bool
}

// Encode converts value to fixed point. The integer part is shifted left by
// nFrac and the fractional part is scaled by 2^nFrac and truncated toward
// zero, so the encoding as a whole truncates toward zero.
func Encode(value float64, nInt, nFrac int, signed bool) Number {
	whole, frac := math.Modf(value)
	stored := int64(whole)<<nFrac + int64(frac*float64(int64(1)<<nFrac))
	return Number{Stored: stored, NInt: nInt, NFrac: nFrac, Signed: signed}
}

// U returns an encoder for unsigned U(nInt, nFrac) numbers.
func U(nInt, nFrac int) func(float64) Number {
	return func(v float64) Number {
		return Encode(v, nInt, nFrac, false)
	}
}

// S returns an encoder for signed S(nInt, nFrac) numbers.
func S(nInt, nFrac int) func(float64) Number {
	return func(v float64) Number {
		return Encode(v, nInt, nFrac, true)
	}
}

// Decode returns the represented value: the arithmetic right shift of Stored
// by NFrac plus the low NFrac bits divided by 2^NFrac.
func (n Number) Decode() float64 {
	whole := n.Stored >> n.NFrac
	frac := n.Stored & (int64(1)<<n.NFrac - 1)
	return float64(whole) + float64(frac)/float64(int64(1)<<n.NFrac)
}

// Float64 is an alias of Decode.
func (n Number) Float64() float64 {
	return n.Decode()
}

// Rescale changes the bit-width split without changing the represented value,
// shifting Stored by the difference in fractional bits. Narrowing NFrac
// truncates the dropped bits (toward negative infinity). The caller must
// ensure the new widths can hold the value.
func (n Number) Rescale(nInt, nFrac int) Number {
	stored := n.Stored
	switch delta := nFrac - n.NFrac; {
	case delta > 0:
		stored <<= delta
	case delta < 0:
		stored >>= -delta
	}
	return Number{Stored: stored, NInt: nInt, NFrac: nFrac, Signed: n.Signed}
}

// Add returns n + m with n's widths. Both operands must share NFrac.
func (n Number) Add(m Number) Number {
	n.Stored += m.Stored
	return n
}

// Sub returns n - m with n's widths. Both operands must share NFrac.
func (n Number) Sub(m Number) Number {
	n.Stored -= m.Stored
	return n
}

// Mul returns (n * m) >> NFrac with n's widths: the truncating fixed-point
// product. Both operands must share NFrac.
func (n Number) Mul(m Number) Number {
	n.Stored = (n.Stored * m.Stored) >> n.NFrac
	return n
}

// Product returns the full-precision product of a and b. The result has
// NInt = a.NInt + b.NInt and NFrac = a.NFrac + b.NFrac, so no bits are
// dropped; Rescale it to the width the next stage expects.
func Product(a, b Number) Number {
	return Number{
		Stored: a.Stored * b.Stored,
		NInt:   a.NInt + b.NInt,
		NFrac:  a.NFrac + b.NFrac,
		Signed: a.Signed || b.Signed,
	}
}

// Div is not supported by the format and always returns ErrUnimplemented.
func (n Number) Div(m Number) (Number, error) {
	return Number{}, fmt.Errorf("fxp: %v / %v: %w", n, m, ErrUnimplemented)
}

// NBits returns the total width: NInt + NFrac, plus one for the sign.
func (n Number) NBits() int {
	if n.Signed {
		return n.NInt + n.NFrac + 1
	}
	return n.NInt + n.NFrac
}

// Overflow reports whether Stored lies outside the range representable with
// the declared widths: [0, 2^(NInt+NFrac)) unsigned, [-2^(NInt+NFrac),
// 2^(NInt+NFrac)) signed. No operation calls it implicitly.
func (n Number) Overflow() bool {
	bound := int64(1) << (n.NInt + n.NFrac)
	if n.Signed {
		return n.Stored < -bound || n.Stored >= bound
	}
	return n.Stored < 0 || n.Stored >= bound
}

// Equal compares payloads. Only meaningful for operands of equal NFrac.
func (n Number) Equal(m Number) bool {
	return n.Stored == m.Stored
}

// Less compares payloads. Only meaningful for operands of equal NFrac.
func (n Number) Less(m Number) bool {
	return n.Stored < m.Stored
}

// Compare returns -1, 0 or +1 comparing payloads, for use with slices.SortFunc.
func (n Number) Compare(m Number) int {
	return cmp.Compare(n.Stored, m.Stored)
}

// String formats the value with its Q format, e.g. "1.5 U(4,4)".
func (n Number) String() string {
	kind := "U"
	if n.Signed {
		kind = "S"
	}
	return fmt.Sprintf("%g %s(%d,%d)", n.Decode(), kind, n.NInt, n.NFrac)
}

// Package hwy provides portable vector operations with runtime dispatch-level
// detection.
//
// Kernels are written once against Vec and Mask; the number of lanes follows
// the register width detected for the running CPU (see MaxLanes), so the same
// code processes 4 lanes of uint32 on NEON and 8 on AVX2. Every operation has a
// plain Go definition, which makes vectorized kernels bit-exact with their
// scalar references.
//
// Basic usage:
//
//	import "github.com/ajroetker/go-isp/hwy"
//
//	a := hwy.Load(row[x:])
//	b := hwy.Load(row[x+1:])
//	avg := hwy.ShiftRight(hwy.Add(a, b), 1)
//	hwy.Store(avg, out[x:])
package hwy

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored in vector lanes.
type Lanes interface {
	Floats | Integers
}

// Vec is a portable vector handle.
//
// Vec instances should not be created directly; use Load, Set, Zero or Iota.
type Vec[T Lanes] struct {
	data []T
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return len(v.data)
}

// Mask is a per-lane predicate produced by TestBit. It selects lanes in
// IfThenElse and IfThenElseZero.
type Mask[T Lanes] struct {
	bits []bool
}

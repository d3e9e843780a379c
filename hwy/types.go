// Package hwy holds the pieces shared by every radixcount component: the
// element-type constraints and the runtime CPU dispatch level.
//
// The dispatch level is detected once at init. Kernels read it when they are
// built, never inside their hot loops:
//
//	import "github.com/ajroetker/radixcount/hwy"
//
//	fmt.Println(hwy.CurrentName(), hwy.UnrollFactor())
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

// Lanes is a constraint for all fixed-width numeric types.
type Lanes interface {
	Floats | Integers
}

// Keys is a constraint for the element types a radix pass can classify:
// every fixed-width numeric type plus bool.
type Keys interface {
	~bool | Lanes
}

// Counters is a constraint for histogram counter types.
//
// A counter must hold the largest per-segment count, which is bounded by the
// segment length in elements.
type Counters interface {
	~int32 | ~int64 | ~uint32 | ~uint64 | ~int | ~uint
}

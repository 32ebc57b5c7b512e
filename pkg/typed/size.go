package typed

import (
	"math"
	"math/bits"
)

// ElementCount returns the number of scalar slots a value of type `t` has:
// the product of the fixed array lengths times the size of the base shape.
// Dynamic and zero length dimensions count as 0. The base shape counts 1 for
// primitives, the number of attributes for objects and 1 otherwise. Counts
// that don't fit an int saturate at math.MaxInt.
func ElementCount(t Type) int {
	dims := t.Dimensions()

	product := 1
	for _, d := range dims {
		product = saturatingMul(product, max(0, d))
	}

	if len(dims) > 0 && product == 0 {
		return 0
	}

	base := t.Base()

	size := 1
	if base.kind == KindObject && len(base.attributes) > 0 {
		size = len(base.attributes)
	}

	return saturatingMul(product, size)
}

// saturatingMul multiplies two non-negative ints, clamping at math.MaxInt.
func saturatingMul(a, b int) int {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		return math.MaxInt
	}
	return int(lo)
}

package fraction

import (
	"math"
	"math/bits"

	"modernc.org/mathutil"
)

// gcd returns the greatest common divisor of x and y.
// gcd(0, y) is y.
func gcd(x, y uint64) uint64 {
	return mathutil.GCDUint64(x, y)
}

// mul64 calculates x * y and checks overflow of uint64.
func mul64(x, y uint64) (z uint64, ok bool) {
	hi, lo := bits.Mul64(x, y)
	return lo, hi == 0
}

// add64 calculates x + y and checks overflow of uint64.
func add64(x, y uint64) (z uint64, ok bool) {
	z, carry := bits.Add64(x, y, 0)
	return z, carry == 0
}

// mulSafe calculates x * y and checks that the product does not exceed MaxSafe.
func mulSafe(x, y uint64) (z uint64, ok bool) {
	z, ok = mul64(x, y)
	return z, ok && z <= MaxSafe
}

// powSafe calculates x^e by repeated squaring and checks that the result
// does not exceed MaxSafe.
func powSafe(x, e uint64) (z uint64, ok bool) {
	z = 1
	for {
		if e&1 == 1 {
			z, ok = mulSafe(z, x)
			if !ok {
				return 0, false
			}
		}
		e >>= 1
		if e == 0 {
			return z, true
		}
		x, ok = mulSafe(x, x)
		if !ok {
			return 0, false
		}
	}
}

// rootExact returns the k-th root of x if it is an integer.
func rootExact(x, k uint64) (uint64, bool) {
	switch {
	case x < 2 || k == 1:
		return x, true
	case k >= 64:
		// 1 < root < 2
		return 0, false
	}
	r := uint64(math.Round(math.Pow(float64(x), 1/float64(k))))
	for _, c := range [...]uint64{r, r - 1, r + 1} {
		if p, ok := powSafe(c, k); ok && p == x {
			return c, true
		}
	}
	return 0, false
}

// absInt64 returns the absolute value of x and its sign.
// The absolute value of math.MinInt64 is representable as uint64.
func absInt64(x int64) (u uint64, neg bool) {
	if x < 0 {
		return uint64(-(x + 1)) + 1, true
	}
	return uint64(x), false
}

// cmp128 compares the 128-bit products x1 * y1 and x2 * y2.
func cmp128(x1, y1, x2, y2 uint64) int {
	hi1, lo1 := bits.Mul64(x1, y1)
	hi2, lo2 := bits.Mul64(x2, y2)
	switch {
	case hi1 < hi2:
		return -1
	case hi1 > hi2:
		return 1
	case lo1 < lo2:
		return -1
	case lo1 > lo2:
		return 1
	default:
		return 0
	}
}

package fraction

import "fmt"

// Add returns the (exact) sum f + g.
// The cross terms are reduced by the gcd of the denominators before they
// are combined, so intermediate products stay as small as possible.
//
// Add returns an error if the result cannot be represented within [MaxSafe].
func (f Fraction) Add(g Fraction) (Fraction, error) {
	h, err := f.add(g)
	if err != nil {
		return Fraction{}, fmt.Errorf("computing [%v + %v]: %w", f, g, err)
	}
	return h, nil
}

func (f Fraction) add(g Fraction) (Fraction, error) {
	switch {
	case g.IsZero():
		return f, nil
	case f.IsZero():
		return g, nil
	}
	fd, gd := f.den(), g.den()
	k := gcd(fd, gd)
	x, ok := mul64(f.num, gd/k)
	if !ok {
		return Fraction{}, ErrOverflow
	}
	y, ok := mul64(g.num, fd/k)
	if !ok {
		return Fraction{}, ErrOverflow
	}
	var t uint64
	var neg bool
	switch {
	case f.neg == g.neg:
		t, ok = add64(x, y)
		if !ok {
			return Fraction{}, ErrOverflow
		}
		neg = f.neg
	case x >= y:
		t, neg = x-y, f.neg
	default:
		t, neg = y-x, g.neg
	}
	if t == 0 {
		return Fraction{}, nil
	}
	// t / (fd/k * gd) is reduced by gcd(t, k) only, see Knuth 4.5.1.
	k = gcd(t, k)
	den, ok := mul64(fd/gcd(fd, gd), gd/k)
	if !ok {
		return Fraction{}, ErrOverflow
	}
	return newFraction(neg, t/k, den)
}

// Sub returns the (exact) difference f - g.
//
// Sub returns an error if the result cannot be represented within [MaxSafe].
func (f Fraction) Sub(g Fraction) (Fraction, error) {
	h, err := f.add(g.Neg())
	if err != nil {
		return Fraction{}, fmt.Errorf("computing [%v - %v]: %w", f, g, err)
	}
	return h, nil
}

// Mul returns the (exact) product f * g.
// Each numerator is reduced against the opposite denominator before multiplication.
//
// Mul returns an error if the result cannot be represented within [MaxSafe].
func (f Fraction) Mul(g Fraction) (Fraction, error) {
	h, err := f.mul(g)
	if err != nil {
		return Fraction{}, fmt.Errorf("computing [%v * %v]: %w", f, g, err)
	}
	return h, nil
}

func (f Fraction) mul(g Fraction) (Fraction, error) {
	if f.IsZero() || g.IsZero() {
		return Fraction{}, nil
	}
	fd, gd := f.den(), g.den()
	k1 := gcd(f.num, gd)
	k2 := gcd(g.num, fd)
	num, ok := mul64(f.num/k1, g.num/k2)
	if !ok {
		return Fraction{}, ErrOverflow
	}
	den, ok := mul64(fd/k2, gd/k1)
	if !ok {
		return Fraction{}, ErrOverflow
	}
	return newFraction(f.neg != g.neg, num, den)
}

// Quo returns the (exact) quotient f / g.
//
// Quo returns an error if:
//   - the divisor is 0;
//   - the result cannot be represented within [MaxSafe].
func (f Fraction) Quo(g Fraction) (Fraction, error) {
	h, err := f.quo(g)
	if err != nil {
		return Fraction{}, fmt.Errorf("computing [%v / %v]: %w", f, g, err)
	}
	return h, nil
}

func (f Fraction) quo(g Fraction) (Fraction, error) {
	g, err := g.inv()
	if err != nil {
		return Fraction{}, err
	}
	return f.mul(g)
}

// Mod returns the remainder of f / g truncated towards zero.
// The sign of the remainder follows the dividend f, like the % operator.
// See also method [Fraction.Mmod].
//
// Mod returns an error if:
//   - the divisor is 0;
//   - an intermediate product overflows.
func (f Fraction) Mod(g Fraction) (Fraction, error) {
	h, err := f.mod(g)
	if err != nil {
		return Fraction{}, fmt.Errorf("computing [%v mod %v]: %w", f, g, err)
	}
	return h, nil
}

func (f Fraction) mod(g Fraction) (Fraction, error) {
	switch {
	case g.IsZero():
		return Fraction{}, ErrDivisionByZero
	case f.IsZero():
		return Fraction{}, nil
	}
	// Both operands are brought to the common denominator lcm(fd, gd).
	fd, gd := f.den(), g.den()
	k := gcd(fd, gd)
	x, ok := mul64(f.num, gd/k)
	if !ok {
		return Fraction{}, ErrOverflow
	}
	y, ok := mul64(g.num, fd/k)
	if !ok {
		return Fraction{}, ErrOverflow
	}
	r := x % y
	if r == 0 {
		return Fraction{}, nil
	}
	d1 := fd / k
	k = gcd(r, d1)
	r, d1 = r/k, d1/k
	k = gcd(r, gd)
	r, d2 := r/k, gd/k
	den, ok := mul64(d1, d2)
	if !ok {
		return Fraction{}, ErrOverflow
	}
	return newFraction(f.neg, r, den)
}

// Mmod returns the mathematical modulo of f and g.
// The sign of the result follows the divisor g.
// See also method [Fraction.Mod].
//
// Mmod returns an error if:
//   - the divisor is 0;
//   - an intermediate product overflows.
func (f Fraction) Mmod(g Fraction) (Fraction, error) {
	h, err := f.mmod(g)
	if err != nil {
		return Fraction{}, fmt.Errorf("computing [%v mmod %v]: %w", f, g, err)
	}
	return h, nil
}

func (f Fraction) mmod(g Fraction) (Fraction, error) {
	r, err := f.mod(g)
	if err != nil {
		return Fraction{}, err
	}
	if !r.IsZero() && r.neg != g.neg {
		return r.add(g)
	}
	return r, nil
}

// Inv returns the multiplicative inverse 1 / f.
//
// Inv returns an error if f is 0.
func (f Fraction) Inv() (Fraction, error) {
	g, err := f.inv()
	if err != nil {
		return Fraction{}, fmt.Errorf("inverting %v: %w", f, err)
	}
	return g, nil
}

func (f Fraction) inv() (Fraction, error) {
	if f.IsZero() {
		return Fraction{}, ErrDivisionByZero
	}
	return Fraction{neg: f.neg, num: f.den(), dm: f.num - 1}, nil
}

// Neg returns a fraction with the opposite sign.
func (f Fraction) Neg() Fraction {
	if f.IsZero() {
		return f
	}
	f.neg = !f.neg
	return f
}

// Abs returns the absolute value of the fraction.
func (f Fraction) Abs() Fraction {
	f.neg = false
	return f
}

// Gcd returns the greatest common divisor of f and g, which is the largest
// fraction such that both f and g are integer multiples of it.
// The result is never negative and Gcd(0, g) is |g|.
//
// Gcd returns an error if the result cannot be represented within [MaxSafe].
func (f Fraction) Gcd(g Fraction) (Fraction, error) {
	// gcd(a/b, c/d) = gcd(a, c) / lcm(b, d)
	n := gcd(f.num, g.num)
	if n == 0 {
		return Fraction{}, nil
	}
	fd, gd := f.den(), g.den()
	d, ok := mul64(fd/gcd(fd, gd), gd)
	if !ok {
		return Fraction{}, fmt.Errorf("computing [gcd(%v, %v)]: %w", f, g, ErrOverflow)
	}
	return newFraction(false, n, d)
}

// Lcm returns the least common multiple of f and g, which is the smallest
// fraction that is an integer multiple of both f and g.
// The sign of the result is the sign of the product f * g.
//
// Lcm returns an error if the result cannot be represented within [MaxSafe].
func (f Fraction) Lcm(g Fraction) (Fraction, error) {
	if f.IsZero() || g.IsZero() {
		return Fraction{}, nil
	}
	// lcm(a/b, c/d) = lcm(a, c) / gcd(b, d)
	n, ok := mul64(f.num/gcd(f.num, g.num), g.num)
	if !ok {
		return Fraction{}, fmt.Errorf("computing [lcm(%v, %v)]: %w", f, g, ErrOverflow)
	}
	h, err := newFraction(f.neg != g.neg, n, gcd(f.den(), g.den()))
	if err != nil {
		return Fraction{}, fmt.Errorf("computing [lcm(%v, %v)]: %w", f, g, err)
	}
	return h, nil
}

// Trunc returns the integer part of f, rounded towards zero.
func (f Fraction) Trunc() Fraction {
	return newFractionUnsafe(f.neg, f.num/f.den(), 1)
}

// Floor returns the largest integer less than or equal to f.
func (f Fraction) Floor() Fraction {
	d := f.den()
	q, r := f.num/d, f.num%d
	if f.neg && r != 0 {
		q++
	}
	return newFractionUnsafe(f.neg, q, 1)
}

// Ceil returns the smallest integer greater than or equal to f.
func (f Fraction) Ceil() Fraction {
	d := f.den()
	q, r := f.num/d, f.num%d
	if !f.neg && r != 0 {
		q++
	}
	return newFractionUnsafe(f.neg, q, 1)
}

// Round returns the integer nearest to f, rounding half away from zero.
func (f Fraction) Round() Fraction {
	d := f.den()
	q, r := f.num/d, f.num%d
	if 2*r >= d && r != 0 {
		q++
	}
	return newFractionUnsafe(f.neg, q, 1)
}

// Cmp compares fractions and returns:
//
//	-1 if f < g
//	 0 if f = g
//	+1 if f > g
//
// See also methods [Fraction.CmpAbs] and [Fraction.CompareValue].
func (f Fraction) Cmp(g Fraction) int {
	switch fs, gs := f.Sign(), g.Sign(); {
	case fs > gs:
		return 1
	case fs < gs:
		return -1
	case fs == 0:
		return 0
	}
	c := f.CmpAbs(g)
	if f.neg {
		return -c
	}
	return c
}

// CmpAbs compares absolute values of fractions and returns:
//
//	-1 if |f| < |g|
//	 0 if |f| = |g|
//	+1 if |f| > |g|
func (f Fraction) CmpAbs(g Fraction) int {
	return cmp128(f.num, g.den(), g.num, f.den())
}

// CompareValue converts v with [From] and compares it with f.
// Unlike [Fraction.Cmp], it accepts any value: if v cannot be converted,
// CompareValue returns false instead of an error, so that it can be used
// in sorting and predicate contexts where an incomparable value is
// not a failure.
func (f Fraction) CompareValue(v any) (c int, ok bool) {
	g, err := From(v)
	if err != nil {
		return 0, false
	}
	return f.Cmp(g), true
}

// Equals returns true if v converts with [From] to a value equal to f.
// Values that cannot be converted are never equal.
func (f Fraction) Equals(v any) bool {
	g, err := From(v)
	if err != nil {
		return false
	}
	return f == g
}

// Divisible returns true if f / v is an integer.
// Values that cannot be converted with [From] and 0 never divide f.
func (f Fraction) Divisible(v any) bool {
	g, err := From(v)
	if err != nil || g.IsZero() {
		return false
	}
	// Both fractions are in lowest terms, so (a/b) / (c/d) is an integer
	// if and only if c divides a and b divides d.
	return f.num%g.num == 0 && g.den()%f.den() == 0
}

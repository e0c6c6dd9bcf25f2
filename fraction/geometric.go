package fraction

import (
	"fmt"
	"math"
)

// maxRadicalIterations bounds the Euclidean loop of [Fraction.Gcr].
// Operands within the safe range have radical exponents below 64,
// so a common radical, if any, is always found well before the bound.
const maxRadicalIterations = 100

// Pow returns f raised to the rational power e.
// The result is exact: if f^e is irrational, ok is false.
// A negative base has a rational power only if the reduced denominator
// of the exponent is odd.
// 0^0 is 1.
//
// Pow returns an error if:
//   - f is 0 and e is negative;
//   - the result cannot be represented within [MaxSafe].
func (f Fraction) Pow(e Fraction) (g Fraction, ok bool, err error) {
	g, ok, err = f.pow(e)
	if err != nil {
		return Fraction{}, false, fmt.Errorf("computing [%v^%v]: %w", f, e, err)
	}
	return g, ok, nil
}

func (f Fraction) pow(e Fraction) (Fraction, bool, error) {
	switch {
	case e.IsZero():
		return one, true, nil
	case f.IsZero():
		if e.neg {
			return Fraction{}, false, ErrDivisionByZero
		}
		return Fraction{}, true, nil
	case f.IsOne():
		return one, true, nil
	}
	p, q := e.num, e.den()
	if f.neg && q%2 == 0 {
		return Fraction{}, false, nil
	}
	n, ok := rootExact(f.num, q)
	if !ok {
		return Fraction{}, false, nil
	}
	d, ok := rootExact(f.den(), q)
	if !ok {
		return Fraction{}, false, nil
	}
	n, ok = powSafe(n, p)
	if !ok {
		return Fraction{}, false, ErrOverflow
	}
	d, ok = powSafe(d, p)
	if !ok {
		return Fraction{}, false, ErrOverflow
	}
	if e.neg {
		n, d = d, n
	}
	return newFractionUnsafe(f.neg && p%2 == 1, n, d), true, nil
}

// Sqrt returns the square root of f if it is rational.
// Negative fractions have no square root.
func (f Fraction) Sqrt() (Fraction, bool) {
	if f.neg {
		return Fraction{}, false
	}
	g, ok, err := f.pow(half)
	if err != nil {
		return Fraction{}, false
	}
	return g, ok
}

// powInt returns f^k for an integer exponent k.
func (f Fraction) powInt(k int) (Fraction, error) {
	switch {
	case k == 0:
		return one, nil
	case f.IsZero():
		if k < 0 {
			return Fraction{}, ErrDivisionByZero
		}
		return Fraction{}, nil
	}
	e := uint64(k)
	if k < 0 {
		e = uint64(-(k + 1)) + 1
	}
	n, ok := powSafe(f.num, e)
	if !ok {
		return Fraction{}, ErrOverflow
	}
	d, ok := powSafe(f.den(), e)
	if !ok {
		return Fraction{}, ErrOverflow
	}
	if k < 0 {
		n, d = d, n
	}
	return newFractionUnsafe(f.neg && e%2 == 1, n, d), nil
}

// log returns the natural logarithm of |f|.
func (f Fraction) log() float64 {
	return math.Log(float64(f.num)) - math.Log(float64(f.den()))
}

// GeoMod returns the geometric modulo of f and g, the multiplicative
// analogue of [Fraction.Mod].
// The magnitude of f is divided by the largest integer power of |g| that keeps
// the result within [1, |g|) if |g| > 1, or within (|g|, 1] if |g| < 1.
// The sign of the result follows f.
//
// GeoMod returns an error if:
//   - f or g is 0, or |g| is 1;
//   - an intermediate power cannot be represented within [MaxSafe].
func (f Fraction) GeoMod(g Fraction) (Fraction, error) {
	h, err := f.geoMod(g)
	if err != nil {
		return Fraction{}, fmt.Errorf("computing [%v geomod %v]: %w", f, g, err)
	}
	return h, nil
}

func (f Fraction) geoMod(g Fraction) (Fraction, error) {
	b := g.Abs()
	if f.IsZero() || b.IsZero() || b.IsOne() {
		return Fraction{}, ErrDomain
	}
	if b.CmpAbs(one) < 0 {
		// (|g|, 1] is the inverse of [1, 1/|g|)
		fi, err := f.inv()
		if err != nil {
			return Fraction{}, err
		}
		bi, err := b.inv()
		if err != nil {
			return Fraction{}, err
		}
		r, err := fi.geoMod(bi)
		if err != nil {
			return Fraction{}, err
		}
		return r.inv()
	}
	x := f.Abs()
	k := math.Floor(x.log() / b.log())
	p, err := b.powInt(int(k))
	if err != nil {
		return Fraction{}, err
	}
	r, err := x.quo(p)
	if err != nil {
		return Fraction{}, err
	}
	// The logarithms are inexact near the boundaries.
	switch {
	case r.Cmp(one) < 0:
		r, err = r.mul(b)
	case r.Cmp(b) >= 0:
		r, err = r.quo(b)
	}
	if err != nil {
		return Fraction{}, err
	}
	if f.neg {
		r = r.Neg()
	}
	return r, nil
}

// Gcr returns the greatest common radical of f and g: the largest r >= 1
// such that |f| and |g| are both integer powers of r.
// For example, Gcr(8, 4) = 2 and Gcr(4/9, 8/27) = 3/2.
// If f and g have no common radical, such as 2 and 3, ok is false.
func (f Fraction) Gcr(g Fraction) (r Fraction, ok bool) {
	a, b := f.Abs(), g.Abs()
	if a.IsZero() || b.IsZero() {
		return Fraction{}, false
	}
	if a.Cmp(one) < 0 {
		a, _ = a.inv()
	}
	if b.Cmp(one) < 0 {
		b, _ = b.inv()
	}
	for i := 0; i < maxRadicalIterations; i++ {
		if b.IsOne() {
			return a, true
		}
		c, err := a.geoMod(b)
		if err != nil {
			return Fraction{}, false
		}
		a, b = b, c
	}
	return Fraction{}, false
}

// radicalExponent returns k such that |x| = r^k, where r > 1.
func radicalExponent(x, r Fraction) (int, bool) {
	k := int(math.Round(x.log() / r.log()))
	y, err := r.powInt(k)
	if err != nil || y != x.Abs() {
		return 0, false
	}
	return k, true
}

// Lcr returns the least common radical of f and g: the smallest power of
// their greatest common radical that is an integer power of both |f| and |g|.
// For example, Lcr(4, 8) = 64.
// If f and g have no common radical, ok is false.
// See also method [Fraction.Gcr].
//
// Lcr returns an error if the result cannot be represented within [MaxSafe].
func (f Fraction) Lcr(g Fraction) (h Fraction, ok bool, err error) {
	r, ok := f.Gcr(g)
	if !ok {
		return Fraction{}, false, nil
	}
	if r.IsOne() {
		return one, true, nil
	}
	p, ok := radicalExponent(f, r)
	if !ok {
		return Fraction{}, false, nil
	}
	q, ok := radicalExponent(g, r)
	if !ok {
		return Fraction{}, false, nil
	}
	if p < 0 {
		p = -p
	}
	if q < 0 {
		q = -q
	}
	l := p / int(gcd(uint64(p), uint64(q))) * q
	h, err = r.powInt(l)
	if err != nil {
		return Fraction{}, false, fmt.Errorf("computing [lcr(%v, %v)]: %w", f, g, err)
	}
	return h, true, nil
}

// Log returns the logarithm of f in base g as an exact rational p/q,
// such that f = g^(p/q).
// If no such rational exists, ok is false.
// For a negative base the denominator q must be odd and the parity
// of p must match the sign of f.
func (f Fraction) Log(g Fraction) (e Fraction, ok bool) {
	switch {
	case f.IsZero() || g.IsZero():
		return Fraction{}, false
	case g == one:
		return Fraction{}, false
	case g == minusOne:
		switch f {
		case one:
			return Fraction{}, true
		case minusOne:
			return one, true
		}
		return Fraction{}, false
	case f == one:
		return Fraction{}, true
	}
	r, ok := f.Gcr(g)
	if !ok || r.IsOne() {
		return Fraction{}, false
	}
	p, ok := radicalExponent(f, r)
	if !ok {
		return Fraction{}, false
	}
	q, ok := radicalExponent(g, r)
	if !ok || q == 0 {
		return Fraction{}, false
	}
	e, err := New(int64(p), int64(q))
	if err != nil {
		return Fraction{}, false
	}
	switch {
	case !g.neg:
		if f.neg {
			return Fraction{}, false
		}
	case e.den()%2 == 0:
		return Fraction{}, false
	case f.neg != (e.num%2 == 1):
		return Fraction{}, false
	}
	return e, true
}

// GeoRoundTo returns the integer power of g nearest to f on a logarithmic scale.
// For a negative g only powers with the sign of f are considered:
// odd powers for a negative f and even powers otherwise.
// If no power of g has the sign of f, or f or g is 0, ok is false.
//
// GeoRoundTo returns an error if the result cannot be represented within [MaxSafe].
func (f Fraction) GeoRoundTo(g Fraction) (h Fraction, ok bool, err error) {
	switch {
	case f.IsZero() || g.IsZero():
		return Fraction{}, false, nil
	case f.neg && !g.neg:
		return Fraction{}, false, nil
	case g == one:
		return one, true, nil
	case g == minusOne:
		if f.neg {
			return minusOne, true, nil
		}
		return one, true, nil
	}
	x := f.log() / g.log()
	var k float64
	switch {
	case !g.neg:
		k = math.Round(x)
	case f.neg:
		k = 2*math.Round((x-1)/2) + 1
	default:
		k = 2 * math.Round(x/2)
	}
	h, err = g.powInt(int(k))
	if err != nil {
		return Fraction{}, false, fmt.Errorf("rounding %v to a power of %v: %w", f, g, err)
	}
	return h, true, nil
}

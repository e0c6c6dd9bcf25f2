package monzo

import (
	"fmt"
	"math/big"

	"modernc.org/mathutil"

	"github.com/xenharmonic-devs/xen-dev-utils-sub000/fraction"
)

// FromInt returns the shortest monzo of a positive integer.
//
// FromInt returns an error if:
//   - n is 0 or negative;
//   - n has a prime factor beyond the prime table.
func FromInt(n int64) (Monzo, error) {
	m, err := fromInt(n)
	if err != nil {
		return nil, fmt.Errorf("converting %v to monzo: %w", n, err)
	}
	return m, nil
}

func fromInt(n int64) (Monzo, error) {
	switch {
	case n == 0:
		return nil, ErrZero
	case n < 0:
		return nil, ErrNegative
	}
	m, r := decompose(uint64(n), len(primes))
	if r != 1 {
		return nil, ErrOutOfPrimes
	}
	return m.Trim(), nil
}

// FromIntWithResidual returns the exponents of the first k primes in n and
// the residual factor that is not divisible by any of them.
// The residual carries the sign of n.
// For 0 the monzo is k zeros and the residual is 0.
//
// FromIntWithResidual returns an error if k is negative or exceeds [NumPrimes].
func FromIntWithResidual(n int64, k int) (Monzo, int64, error) {
	if k < 0 || k > len(primes) {
		return nil, 0, fmt.Errorf("converting %v to %v-limit monzo: %w", n, k, ErrDomain)
	}
	if n == 0 {
		return make(Monzo, k), 0, nil
	}
	u, neg := uint64(n), n < 0
	if neg {
		u = -u
	}
	m, r := decompose(u, k)
	if neg {
		return m, int64(-r), nil
	}
	return m, int64(r), nil
}

// FromFraction returns the shortest monzo of a positive fraction:
// the monzo of its numerator minus the monzo of its denominator.
//
// FromFraction returns an error if:
//   - f is 0 or negative;
//   - f has a prime factor beyond the prime table.
func FromFraction(f fraction.Fraction) (Monzo, error) {
	m, err := fromFraction(f)
	if err != nil {
		return nil, fmt.Errorf("converting %v to monzo: %w", f, err)
	}
	return m, nil
}

func fromFraction(f fraction.Fraction) (Monzo, error) {
	switch {
	case f.IsZero():
		return nil, ErrZero
	case f.IsNeg():
		return nil, ErrNegative
	}
	n, err := fromInt(f.Num())
	if err != nil {
		return nil, err
	}
	d, err := fromInt(f.Den())
	if err != nil {
		return nil, err
	}
	return n.Sub(d).Trim(), nil
}

// FromFractionWithResidual is like [FromIntWithResidual] but for fractions.
// The residual is the fraction left after removing the first k primes from
// the numerator and the denominator.
func FromFractionWithResidual(f fraction.Fraction, k int) (Monzo, fraction.Fraction, error) {
	if k < 0 || k > len(primes) {
		return nil, fraction.Fraction{}, fmt.Errorf("converting %v to %v-limit monzo: %w", f, k, ErrDomain)
	}
	if f.IsZero() {
		return make(Monzo, k), fraction.Fraction{}, nil
	}
	n, nr, err := FromIntWithResidual(f.Num(), k)
	if err != nil {
		return nil, fraction.Fraction{}, err
	}
	d, dr, err := FromIntWithResidual(f.Den(), k)
	if err != nil {
		return nil, fraction.Fraction{}, err
	}
	// The residuals are coprime because f is in lowest terms.
	r, err := fraction.New(nr, dr)
	if err != nil {
		return nil, fraction.Fraction{}, fmt.Errorf("converting %v to %v-limit monzo: %w", f, k, err)
	}
	return n.Sub(d), r, nil
}

// FromBigInt is like [FromInt] but for arbitrary-precision integers.
func FromBigInt(n *big.Int) (Monzo, error) {
	m, err := fromBigInt(n)
	if err != nil {
		return nil, fmt.Errorf("converting %v to monzo: %w", n, err)
	}
	return m, nil
}

func fromBigInt(n *big.Int) (Monzo, error) {
	switch {
	case n == nil || n.Sign() == 0:
		return nil, ErrZero
	case n.Sign() < 0:
		return nil, ErrNegative
	}
	m, r := decomposeBig(n, len(primes))
	if r.Cmp(big.NewInt(1)) != 0 {
		return nil, ErrOutOfPrimes
	}
	return m.Trim(), nil
}

// FromBigIntWithResidual is like [FromIntWithResidual] but for
// arbitrary-precision integers.
func FromBigIntWithResidual(n *big.Int, k int) (Monzo, *big.Int, error) {
	switch {
	case n == nil || k < 0 || k > len(primes):
		return nil, nil, fmt.Errorf("converting %v to %v-limit monzo: %w", n, k, ErrDomain)
	case n.Sign() == 0:
		return make(Monzo, k), new(big.Int), nil
	}
	m, r := decomposeBig(new(big.Int).Abs(n), k)
	if n.Sign() < 0 {
		r.Neg(r)
	}
	return m, r, nil
}

// decompose returns the exponents of the first k primes in n > 0
// and the remaining factor of n.
func decompose(n uint64, k int) (Monzo, uint64) {
	m := make(Monzo, k)
	if k == 0 {
		return m, n
	}

	// Two
	e2 := mathutil.Log2Uint64(n & -n)
	m[0] = e2
	n >>= e2
	if k == 1 {
		return m, n
	}

	// Three, five and seven
	n = strip357(n, m)

	return m, stripFrom(n, m, 4)
}

// strip357 removes the factors 3, 5 and 7 from odd n using the residue
// table and stores their exponents in m, which has at least 2 components.
// Factors that do not fit in m are left in n.
func strip357(n uint64, m Monzo) uint64 {
	var e3, e5, e7 int
	for {
		s := strip315[n%315]
		if s.div == 1 {
			break
		}
		n /= uint64(s.div)
		e3 += int(s.e3)
		e5 += int(s.e5)
		e7 += int(s.e7)
	}
	m[1] = e3
	if len(m) > 2 {
		m[2] = e5
	} else {
		n *= ipow(5, e5)
	}
	if len(m) > 3 {
		m[3] = e7
	} else {
		n *= ipow(7, e7)
	}
	return n
}

// stripFrom removes the primes with indices in [from, len(m)) from n
// and stores their exponents in m.
// All smaller primes must already be removed from n.
func stripFrom(n uint64, m Monzo, from int) uint64 {
	for i := from; i < len(m); i++ {
		p := primes[i]
		if p > n/p {
			// n is 1 or a prime
			if j, ok := PrimeIndex(n); ok && j < len(m) {
				m[j]++
				n = 1
			}
			return n
		}
		if n%p != 0 {
			continue
		}
		probe, e := p, 1
		for (n/probe)%p == 0 {
			probe *= p
			e++
		}
		n /= probe
		m[i] = e
	}
	return n
}

// decomposeBig is like decompose but for arbitrary-precision integers.
// It switches to decompose as soon as the remaining factor fits in uint64.
func decomposeBig(n *big.Int, k int) (Monzo, *big.Int) {
	if n.IsUint64() {
		m, r := decompose(n.Uint64(), k)
		return m, new(big.Int).SetUint64(r)
	}
	m := make(Monzo, k)
	x := new(big.Int).Set(n)
	if k == 0 {
		return m, x
	}

	// Two
	e2 := x.TrailingZeroBits()
	m[0] = int(e2)
	x.Rsh(x, e2)
	if k == 1 {
		return m, x
	}

	// Three, five and seven
	var e3, e5, e7 int
	mod, q := new(big.Int), new(big.Int)
	modulus := big.NewInt(315)
	for !x.IsUint64() {
		s := strip315[mod.Mod(x, modulus).Uint64()]
		if s.div == 1 {
			break
		}
		x.Quo(x, q.SetUint64(uint64(s.div)))
		e3 += int(s.e3)
		e5 += int(s.e5)
		e7 += int(s.e7)
	}
	if x.IsUint64() {
		// Finish the small factors on the fast path.
		r := strip357(x.Uint64(), m)
		m[1] += e3
		if k > 2 {
			m[2] += e5
		}
		if k > 3 {
			m[3] += e7
		}
		x.SetUint64(r)
		restore(x, k, e5, e7)
		if k > 4 && x.IsUint64() {
			x.SetUint64(stripFrom(x.Uint64(), m, 4))
		}
		return m, x
	}
	m[1] = e3
	if k > 2 {
		m[2] = e5
	}
	if k > 3 {
		m[3] = e7
	}
	restore(x, k, e5, e7)

	// Remaining primes
	for i := 4; i < k; i++ {
		if x.IsUint64() {
			x.SetUint64(stripFrom(x.Uint64(), m, i))
			return m, x
		}
		p := bigPrimes[i]
		for {
			q.QuoRem(x, p, mod)
			if mod.Sign() != 0 {
				break
			}
			x.Set(q)
			m[i]++
		}
	}
	return m, x
}

// restore multiplies x by the powers of 5 and 7 that do not fit in a monzo
// with k components.
func restore(x *big.Int, k, e5, e7 int) {
	if k <= 2 && e5 > 0 {
		x.Mul(x, new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(e5)), nil))
	}
	if k <= 3 && e7 > 0 {
		x.Mul(x, new(big.Int).Exp(big.NewInt(7), big.NewInt(int64(e7)), nil))
	}
}

// ipow returns b^e for results known to fit in uint64.
func ipow(b uint64, e int) uint64 {
	r := uint64(1)
	for ; e > 0; e-- {
		r *= b
	}
	return r
}

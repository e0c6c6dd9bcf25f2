package monzo

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"slices"

	"modernc.org/mathutil"
)

const (
	// maxRhoRestarts is the number of polynomials x^2 + c, c = 1, 2, ...,
	// tried before a composite is reported as unfactorable.
	maxRhoRestarts = 16
	// maxRhoSteps bounds the number of iterations of one rho attempt.
	// Factors below 2^32 are expected after about 2^16 steps.
	maxRhoSteps = 1 << 24
	// maxBigRhoSteps is like maxRhoSteps for arbitrary-precision integers.
	maxBigRhoSteps = 1 << 20
	// rhoBatch is the number of differences multiplied before taking a gcd.
	rhoBatch = 128
)

// Factor is a prime raised to a positive power.
type Factor struct {
	Prime uint64
	Power int
}

// BigFactor is like [Factor] but with an arbitrary-precision prime.
type BigFactor struct {
	Prime *big.Int
	Power int
}

// Factorize returns the prime factorization of n sorted by prime.
// The factorization of 1 is empty.
//
// Factorize returns an error if:
//   - n is 0;
//   - a composite factor could not be split, which is not expected to happen.
func Factorize(n uint64) ([]Factor, error) {
	f, err := factorize(n)
	if err != nil {
		return nil, fmt.Errorf("factorizing %v: %w", n, err)
	}
	return f, nil
}

func factorize(n uint64) ([]Factor, error) {
	switch n {
	case 0:
		return nil, ErrDomain
	case 1:
		return nil, nil
	}
	ps, err := factorUint64(n, nil)
	if err != nil {
		return nil, err
	}
	return collect(ps), nil
}

// factorUint64 appends the prime factors of n > 1 to ps.
func factorUint64(n uint64, ps []uint64) ([]uint64, error) {
	if n <= math.MaxUint32 {
		for _, t := range mathutil.FactorInt(uint32(n)) {
			for i := uint32(0); i < t.Power; i++ {
				ps = append(ps, uint64(t.Prime))
			}
		}
		return ps, nil
	}

	// Trial division by the prime table
	for _, p := range primes {
		if p > n/p {
			break
		}
		for n%p == 0 {
			ps = append(ps, p)
			n /= p
		}
	}

	// Large factors
	return splitUint64(n, ps)
}

// splitUint64 appends the prime factors of n to ps.
func splitUint64(n uint64, ps []uint64) ([]uint64, error) {
	switch {
	case n == 1:
		return ps, nil
	case mathutil.IsPrimeUint64(n):
		return append(ps, n), nil
	}
	for c := uint64(1); c <= maxRhoRestarts; c++ {
		d := rho(n, c)
		if d == 0 {
			continue
		}
		ps, err := splitUint64(d, ps)
		if err != nil {
			return nil, err
		}
		return splitUint64(n/d, ps)
	}
	return nil, ErrFactorization
}

// rho returns a non-trivial divisor of the odd composite n found by the
// Pollard-Brent method with the polynomial x^2 + c, or 0 on failure.
func rho(n, c uint64) uint64 {
	f := func(x uint64) uint64 {
		return addMod(mulMod(x, x, n), c, n)
	}
	var x, ys uint64
	y, q, g := uint64(2), uint64(1), uint64(1)
	for r := 1; g == 1; r <<= 1 {
		if r > maxRhoSteps {
			return 0
		}
		x = y
		for i := 0; i < r; i++ {
			y = f(y)
		}
		for k := 0; k < r && g == 1; k += rhoBatch {
			ys = y
			for i := 0; i < min(rhoBatch, r-k); i++ {
				y = f(y)
				q = mulMod(q, absDiff(x, y), n)
			}
			g = mathutil.GCDUint64(q, n)
		}
	}
	if g == n {
		// The batch overshot, retrace it one step at a time.
		g = 1
		for i := 0; i < rhoBatch && g == 1; i++ {
			ys = f(ys)
			g = mathutil.GCDUint64(absDiff(x, ys), n)
		}
	}
	if g == 1 || g == n {
		return 0
	}
	return g
}

// mulMod returns x * y mod n without overflow.
func mulMod(x, y, n uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	return bits.Rem64(hi, lo, n)
}

// addMod returns x + y mod n for x, y < n without overflow.
func addMod(x, y, n uint64) uint64 {
	y %= n
	s, carry := bits.Add64(x, y, 0)
	if carry != 0 || s >= n {
		s -= n
	}
	return s
}

func absDiff(x, y uint64) uint64 {
	if x > y {
		return x - y
	}
	return y - x
}

// collect groups sorted primes into factors.
func collect(ps []uint64) []Factor {
	slices.Sort(ps)
	var res []Factor
	for _, p := range ps {
		if len(res) > 0 && res[len(res)-1].Prime == p {
			res[len(res)-1].Power++
			continue
		}
		res = append(res, Factor{Prime: p, Power: 1})
	}
	return res
}

// FactorizeBig is like [Factorize] but for arbitrary-precision integers.
//
// FactorizeBig returns an error if:
//   - n is nil or less than 1;
//   - a composite factor could not be split within the iteration bounds.
func FactorizeBig(n *big.Int) ([]BigFactor, error) {
	f, err := factorizeBig(n)
	if err != nil {
		return nil, fmt.Errorf("factorizing %v: %w", n, err)
	}
	return f, nil
}

func factorizeBig(n *big.Int) ([]BigFactor, error) {
	switch {
	case n == nil || n.Sign() <= 0:
		return nil, ErrDomain
	case n.IsUint64():
		fs, err := factorize(n.Uint64())
		if err != nil {
			return nil, err
		}
		return toBig(fs), nil
	}

	// Trial division by the prime table
	x := new(big.Int).Set(n)
	var small []uint64
	q, r := new(big.Int), new(big.Int)
	for i, p := range bigPrimes {
		if x.IsUint64() {
			break
		}
		for {
			q.QuoRem(x, p, r)
			if r.Sign() != 0 {
				break
			}
			small = append(small, primes[i])
			x.Set(q)
		}
	}

	// Large factors
	var large []*big.Int
	var err error
	switch {
	case x.Cmp(big.NewInt(1)) == 0:
	case x.IsUint64():
		small, err = factorUint64(x.Uint64(), small)
	default:
		small, large, err = splitBig(x, small, large)
	}
	if err != nil {
		return nil, err
	}

	res := toBig(collect(small))
	slices.SortFunc(large, func(a, b *big.Int) int { return a.Cmp(b) })
	for _, p := range large {
		if len(res) > 0 && res[len(res)-1].Prime.Cmp(p) == 0 {
			res[len(res)-1].Power++
			continue
		}
		res = append(res, BigFactor{Prime: p, Power: 1})
	}
	return res, nil
}

// splitBig appends the prime factors of n to small or large depending on
// whether they fit in uint64.
func splitBig(n *big.Int, small []uint64, large []*big.Int) ([]uint64, []*big.Int, error) {
	switch {
	case n.IsUint64():
		small, err := factorUint64(n.Uint64(), small)
		return small, large, err
	case n.ProbablyPrime(20):
		return small, append(large, n), nil
	}
	for c := int64(1); c <= maxRhoRestarts; c++ {
		d := rhoBig(n, c)
		if d == nil {
			continue
		}
		small, large, err := splitBig(d, small, large)
		if err != nil {
			return nil, nil, err
		}
		return splitBig(new(big.Int).Quo(n, d), small, large)
	}
	return nil, nil, ErrFactorization
}

// rhoBig returns a non-trivial divisor of the composite n found by the
// Pollard rho method with Floyd cycle detection, or nil on failure.
func rhoBig(n *big.Int, c int64) *big.Int {
	bc := big.NewInt(c)
	f := func(v *big.Int) {
		v.Mul(v, v)
		v.Add(v, bc)
		v.Mod(v, n)
	}
	x, y := big.NewInt(2), big.NewInt(2)
	d, diff := big.NewInt(1), new(big.Int)
	one := big.NewInt(1)
	for i := 0; i < maxBigRhoSteps && d.Cmp(one) == 0; i++ {
		f(x)
		f(y)
		f(y)
		diff.Sub(x, y)
		diff.Abs(diff)
		d.GCD(nil, nil, diff, n)
	}
	if d.Cmp(one) == 0 || d.Cmp(n) == 0 {
		return nil
	}
	return d
}

func toBig(fs []Factor) []BigFactor {
	res := make([]BigFactor, len(fs))
	for i, f := range fs {
		res[i] = BigFactor{Prime: new(big.Int).SetUint64(f.Prime), Power: f.Power}
	}
	return res
}

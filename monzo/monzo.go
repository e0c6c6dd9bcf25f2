package monzo

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/xenharmonic-devs/xen-dev-utils-sub000/fraction"
)

var (
	ErrZero          = errors.New("zero has no prime decomposition")
	ErrNegative      = errors.New("negative value has no prime decomposition")
	ErrOutOfPrimes   = errors.New("prime factor beyond the prime table")
	ErrDomain        = errors.New("value out of domain")
	ErrFactorization = errors.New("factorization failed")
)

// Monzo is a vector of prime exponents: the i-th component is the exponent
// of [Prime](i). For example, 360 = 2^3 * 3^2 * 5 is [3, 2, 1> and
// 3/2 is [-1, 1>.
// Trailing zeros do not change the value, see method [Monzo.Equal].
//
// Methods never modify the receiver or the arguments.
type Monzo []int

// Equal returns true if m and n represent the same value,
// ignoring trailing zeros.
func (m Monzo) Equal(n Monzo) bool {
	if len(m) < len(n) {
		m, n = n, m
	}
	for i, e := range m {
		if i < len(n) {
			if e != n[i] {
				return false
			}
		} else if e != 0 {
			return false
		}
	}
	return true
}

// Trim returns a copy of m without trailing zeros.
func (m Monzo) Trim() Monzo {
	k := len(m)
	for k > 0 && m[k-1] == 0 {
		k--
	}
	res := make(Monzo, k)
	copy(res, m)
	return res
}

// Pad returns a copy of m with at least k components.
func (m Monzo) Pad(k int) Monzo {
	res := make(Monzo, max(k, len(m)))
	copy(res, m)
	return res
}

// Add returns the component-wise sum of m and n,
// which represents the product of their values.
func (m Monzo) Add(n Monzo) Monzo {
	res := m.Pad(len(n))
	for i, e := range n {
		res[i] += e
	}
	return res
}

// Sub returns the component-wise difference of m and n,
// which represents the quotient of their values.
func (m Monzo) Sub(n Monzo) Monzo {
	res := m.Pad(len(n))
	for i, e := range n {
		res[i] -= e
	}
	return res
}

// Scale returns m with every component multiplied by k,
// which represents the k-th power of its value.
func (m Monzo) Scale(k int) Monzo {
	res := make(Monzo, len(m))
	for i, e := range m {
		res[i] = e * k
	}
	return res
}

// Neg returns m with every component negated,
// which represents the inverse of its value.
func (m Monzo) Neg() Monzo {
	return m.Scale(-1)
}

// BigRat returns the value of m as an arbitrary-precision rational.
//
// BigRat returns an error if m has more components than there are primes in the table.
func (m Monzo) BigRat() (*big.Rat, error) {
	num, den, err := m.bigParts()
	if err != nil {
		return nil, err
	}
	return new(big.Rat).SetFrac(num, den), nil
}

// BigInt returns the value of m as an arbitrary-precision integer.
//
// BigInt returns an error if:
//   - m has a negative component;
//   - m has more components than there are primes in the table.
func (m Monzo) BigInt() (*big.Int, error) {
	num, den, err := m.bigParts()
	if err != nil {
		return nil, err
	}
	if den.Cmp(big.NewInt(1)) != 0 {
		return nil, fmt.Errorf("converting %v to integer: %w", m, ErrNegative)
	}
	return num, nil
}

func (m Monzo) bigParts() (num, den *big.Int, err error) {
	if len(m) > len(primes) {
		return nil, nil, fmt.Errorf("converting %v: %w", m, ErrOutOfPrimes)
	}
	num, den = big.NewInt(1), big.NewInt(1)
	pow := new(big.Int)
	for i, e := range m {
		switch {
		case e > 0:
			num.Mul(num, pow.Exp(bigPrimes[i], big.NewInt(int64(e)), nil))
		case e < 0:
			den.Mul(den, pow.Exp(bigPrimes[i], big.NewInt(-int64(e)), nil))
		}
	}
	return num, den, nil
}

// Fraction returns the value of m as a fraction.
//
// Fraction returns an error if:
//   - m has more components than there are primes in the table;
//   - the value cannot be represented as a [fraction.Fraction].
func (m Monzo) Fraction() (fraction.Fraction, error) {
	r, err := m.BigRat()
	if err != nil {
		return fraction.Fraction{}, err
	}
	f, err := fraction.NewFromBigRat(r)
	if err != nil {
		return fraction.Fraction{}, fmt.Errorf("converting %v: %w", m, err)
	}
	return f, nil
}

// String implements the [fmt.Stringer] interface and returns the monzo
// in the bra-ket notation, for example "[-1, 1>".
func (m Monzo) String() string {
	buf := make([]byte, 0, 2+4*len(m))
	buf = append(buf, '[')
	for i, e := range m {
		if i > 0 {
			buf = append(buf, ", "...)
		}
		buf = strconv.AppendInt(buf, int64(e), 10)
	}
	buf = append(buf, '>')
	return string(buf)
}

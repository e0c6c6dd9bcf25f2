package monzo

import (
	"fmt"
	"math"
	"math/big"

	"github.com/xenharmonic-devs/xen-dev-utils-sub000/fraction"
)

// Unbounded is the prime limit of values with a prime factor beyond
// the prime table or above the requested maximum.
const Unbounded = math.MaxUint64

// PrimeLimit returns the largest prime factor of the numerator and the
// denominator of f, or its 1-based index among the primes if ordinal is true.
// The prime limit of 1 is 1, or 0 as an ordinal.
// If the limit is above maxLimit, or beyond the prime table,
// PrimeLimit returns [Unbounded]. A maxLimit of 0 means no maximum.
//
// PrimeLimit returns an error if f is not positive.
func PrimeLimit(f fraction.Fraction, ordinal bool, maxLimit uint64) (uint64, error) {
	if !f.IsPos() {
		return 0, fmt.Errorf("computing prime limit of %v: %w", f, ErrDomain)
	}
	n, ok := topIndex(uint64(f.Num()))
	if !ok {
		return Unbounded, nil
	}
	d, ok := topIndex(uint64(f.Den()))
	if !ok {
		return Unbounded, nil
	}
	return limitOf(max(n, d), ordinal, maxLimit), nil
}

// PrimeLimitInt is like [PrimeLimit] but for integers.
func PrimeLimitInt(n int64, ordinal bool, maxLimit uint64) (uint64, error) {
	if n < 1 {
		return 0, fmt.Errorf("computing prime limit of %v: %w", n, ErrDomain)
	}
	i, ok := topIndex(uint64(n))
	if !ok {
		return Unbounded, nil
	}
	return limitOf(i, ordinal, maxLimit), nil
}

// PrimeLimitBig is like [PrimeLimit] but for arbitrary-precision integers.
func PrimeLimitBig(n *big.Int, ordinal bool, maxLimit uint64) (uint64, error) {
	if n == nil || n.Sign() <= 0 {
		return 0, fmt.Errorf("computing prime limit of %v: %w", n, ErrDomain)
	}
	m, r := decomposeBig(n, len(primes))
	if r.Cmp(big.NewInt(1)) != 0 {
		return Unbounded, nil
	}
	return limitOf(len(m.Trim())-1, ordinal, maxLimit), nil
}

// topIndex returns the index of the largest prime factor of n > 0,
// or -1 for n = 1.
// If n has a prime factor beyond the prime table, ok is false.
func topIndex(n uint64) (i int, ok bool) {
	m, r := decompose(n, len(primes))
	if r != 1 {
		return 0, false
	}
	return len(m.Trim()) - 1, true
}

// limitOf converts the index of the largest prime factor into a prime limit.
func limitOf(i int, ordinal bool, maxLimit uint64) uint64 {
	if i < 0 {
		if ordinal {
			return 0
		}
		return 1
	}
	if maxLimit != 0 && primes[i] > maxLimit {
		return Unbounded
	}
	if ordinal {
		return uint64(i + 1)
	}
	return primes[i]
}

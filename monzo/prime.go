package monzo

import (
	"math/big"
	"slices"
)

//go:generate go run ../scripts/primes/codegen.go

// stripEntry describes gcd(r, 315) for a residue r modulo 315.
type stripEntry struct {
	div        uint16 // gcd(r, 315)
	e3, e5, e7 int8   // exponents of 3, 5 and 7 in div
}

var bigPrimes [len(primes)]*big.Int

func init() {
	for i, p := range primes {
		bigPrimes[i] = new(big.Int).SetUint64(p)
	}
}

// NumPrimes returns the number of primes in the table.
// Monzos never have more components than that.
func NumPrimes() int {
	return len(primes)
}

// Prime returns the i-th prime, counting from Prime(0) = 2.
// It panics if i is outside the range [0, NumPrimes()).
func Prime(i int) uint64 {
	return primes[i]
}

// BigPrime is like [Prime] but returns a new arbitrary-precision integer.
func BigPrime(i int) *big.Int {
	return new(big.Int).Set(bigPrimes[i])
}

// PrimeIndex returns the index of p in the prime table.
// If p is not a prime or is beyond the table, ok is false.
func PrimeIndex(p uint64) (i int, ok bool) {
	return slices.BinarySearch(primes[:], p)
}

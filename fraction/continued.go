package fraction

import (
	"fmt"
	"math"
	"math/big"
)

// MaxContinuedLength is the maximum number of continued fraction coefficients
// produced by [Fraction.ToContinued] and considered by convergent searches.
// Fractions within the safe range never need more than 80 coefficients.
const MaxContinuedLength = 128

// ToContinued returns the coefficients of the continued fraction of f.
// The first coefficient is floor(f) and the others are positive.
// For example, 7/3 = [2; 3] and -7/3 = [-3; 1, 2].
func (f Fraction) ToContinued() []int64 {
	n, d := f.num, f.den()
	a, r := int64(n/d), n%d
	if f.neg {
		a = -a
		if r != 0 {
			a--
			r = d - r
		}
	}
	terms := []int64{a}
	n, d = d, r
	for d != 0 && len(terms) < MaxContinuedLength {
		terms = append(terms, int64(n/d))
		n, d = d, n%d
	}
	return terms
}

// NewFromContinued returns the fraction with the given continued fraction
// coefficients.
// See also method [Fraction.ToContinued].
//
// NewFromContinued returns an error if:
//   - there are no coefficients;
//   - a coefficient other than the first is 0 where its reciprocal is needed;
//   - the result cannot be represented within [MaxSafe].
func NewFromContinued(terms []int64) (Fraction, error) {
	f, err := fromContinued(terms)
	if err != nil {
		return Fraction{}, fmt.Errorf("converting continued fraction %v: %w", terms, err)
	}
	return f, nil
}

func fromContinued(terms []int64) (Fraction, error) {
	if len(terms) == 0 {
		return Fraction{}, ErrDomain
	}
	x, err := NewFromInt64(terms[len(terms)-1])
	if err != nil {
		return Fraction{}, ErrOverflow
	}
	for i := len(terms) - 2; i >= 0; i-- {
		x, err = x.inv()
		if err != nil {
			return Fraction{}, err
		}
		a, err := NewFromInt64(terms[i])
		if err != nil {
			return Fraction{}, ErrOverflow
		}
		x, err = x.add(a)
		if err != nil {
			return Fraction{}, err
		}
	}
	return x, nil
}

// eachConvergent calls yield with successive convergents of |f| carrying
// the sign of f, until yield returns false or the last convergent (f itself)
// has been produced.
func (f Fraction) eachConvergent(yield func(c Fraction) bool) {
	n, d := f.num, f.den()
	h0, h1 := uint64(0), uint64(1)
	k0, k1 := uint64(1), uint64(0)
	for i := 0; i < MaxContinuedLength; i++ {
		a := n / d
		// Convergents of a fraction never exceed its numerator and denominator.
		h0, h1 = h1, a*h1+h0
		k0, k1 = k1, a*k1+k0
		if !yield(newFractionUnsafe(f.neg, h1, k1)) {
			return
		}
		n, d = d, n%d
		if d == 0 {
			return
		}
	}
}

// Convergents returns the successive continued fraction convergents of |f|,
// each carrying the sign of f.
// The last convergent is f itself.
func (f Fraction) Convergents() []Fraction {
	var res []Fraction
	f.eachConvergent(func(c Fraction) bool {
		res = append(res, c)
		return true
	})
	return res
}

// Simplify returns the first convergent c of f such that |c - f| < eps.
// If eps is not positive, f is returned.
func (f Fraction) Simplify(eps Fraction) Fraction {
	if !eps.IsPos() {
		return f
	}
	x, tol := f.BigRat(), eps.BigRat()
	res := f
	diff := new(big.Rat)
	f.eachConvergent(func(c Fraction) bool {
		diff.Sub(c.BigRat(), x)
		if diff.Abs(diff).Cmp(tol) < 0 {
			res = c
			return false
		}
		return true
	})
	return res
}

// SimplifyRelative returns the first convergent c of f such that c and f are
// less than the given number of cents apart, where a cent is 1/1200 of an
// octave: |1200 * log2(c / f)| < cents.
// Zero and non-positive tolerances return f.
func (f Fraction) SimplifyRelative(cents float64) Fraction {
	if f.IsZero() || !(cents > 0) {
		return f
	}
	x := f.log()
	res := f
	f.eachConvergent(func(c Fraction) bool {
		if c.IsZero() {
			return true
		}
		if math.Abs(1200*(c.log()-x)/math.Ln2) < cents {
			res = c
			return false
		}
		return true
	})
	return res
}

package fraction

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/govalues/decimal"
)

// MaxSafe is the largest numerator or denominator a fraction can hold.
// It is equal to 2^53 - 1, the largest integer such that it and all smaller
// integers are exactly representable as float64.
const MaxSafe = 1<<53 - 1

var (
	ErrParse          = errors.New("invalid fraction")
	ErrOverflow       = errors.New("fraction overflow")
	ErrDivisionByZero = errors.New("division by zero")
	ErrDomain         = errors.New("value out of domain")
)

var (
	one      = Fraction{num: 1}
	minusOne = Fraction{neg: true, num: 1}
	half     = Fraction{num: 1, dm: 1}
)

// Fraction type represents an exact rational number.
// The zero value is the numeric value of 0.
// It is designed to be safe for concurrent use by multiple goroutines.
//
// A fraction is a struct with three parameters:
//
//   - Sign: a boolean indicating whether the fraction is negative.
//   - Numerator: an integer in the range [0, MaxSafe].
//   - Denominator: an integer in the range [1, MaxSafe].
//
// Every fraction is kept in lowest terms with the sign carried separately,
// so two fractions are numerically equal if and only if they are equal
// according to the == operator.
type Fraction struct {
	neg bool   // indicates whether the fraction is negative
	num uint64 // the numerator
	dm  uint64 // the denominator minus one, which makes the zero value equal to 0/1
}

// newFraction reduces num/den to lowest terms and checks the safe range.
// The range is checked after the reduction.
func newFraction(neg bool, num, den uint64) (Fraction, error) {
	if den == 0 {
		return Fraction{}, ErrDivisionByZero
	}
	if g := gcd(num, den); g > 1 {
		num /= g
		den /= g
	}
	if num > MaxSafe || den > MaxSafe {
		return Fraction{}, ErrOverflow
	}
	return newFractionUnsafe(neg, num, den), nil
}

// newFractionUnsafe creates a new fraction without reducing it or checking the range.
// Use it only if you are absolutely sure that the arguments are valid.
func newFractionUnsafe(neg bool, num, den uint64) Fraction {
	if num == 0 {
		return Fraction{}
	}
	return Fraction{neg: neg, num: num, dm: den - 1}
}

// New returns a fraction equal to num / den, reduced to lowest terms.
//
// New returns an error if:
//   - the denominator is 0;
//   - the numerator or denominator of the reduced fraction exceeds [MaxSafe].
func New(num, den int64) (Fraction, error) {
	n, nneg := absInt64(num)
	d, dneg := absInt64(den)
	f, err := newFraction(nneg != dneg, n, d)
	if err != nil {
		return Fraction{}, fmt.Errorf("converting %v/%v: %w", num, den, err)
	}
	return f, nil
}

// MustNew is like [New] but panics if the fraction cannot be constructed.
// It simplifies safe initialization of global variables holding fractions.
func MustNew(num, den int64) Fraction {
	f, err := New(num, den)
	if err != nil {
		panic(fmt.Sprintf("New(%v, %v) failed: %v", num, den, err))
	}
	return f
}

// NewFromInt64 converts an integer to a fraction.
//
// NewFromInt64 returns an error if the absolute value of the integer exceeds [MaxSafe].
func NewFromInt64(n int64) (Fraction, error) {
	return New(n, 1)
}

// NewFromFloat64 converts a float to an exact fraction.
// The implicit power-of-two denominator of the float is removed by doubling
// the numerator and denominator until both are integers.
// If that would exceed [MaxSafe], the result is the last continued fraction
// convergent of the float that fits within [MaxSafe].
//
// NewFromFloat64 returns an error if:
//   - the float is a special value (NaN or Inf);
//   - no convergent of the float fits within [MaxSafe].
func NewFromFloat64(f float64) (Fraction, error) {
	r, err := defloat(f)
	if err != nil {
		return Fraction{}, fmt.Errorf("converting float %v: %w", f, err)
	}
	return r, nil
}

// NewFromFloat64s returns a fraction equal to num / den.
// An infinite denominator with a finite numerator results in 0.
//
// NewFromFloat64s returns an error if:
//   - the numerator is NaN or Inf, or the denominator is NaN;
//   - the denominator is 0;
//   - the result cannot be represented within [MaxSafe].
func NewFromFloat64s(num, den float64) (Fraction, error) {
	f, err := newFromFloat64s(num, den)
	if err != nil {
		return Fraction{}, fmt.Errorf("converting floats %v/%v: %w", num, den, err)
	}
	return f, nil
}

func newFromFloat64s(num, den float64) (Fraction, error) {
	switch {
	case math.IsNaN(num) || math.IsNaN(den) || math.IsInf(num, 0):
		return Fraction{}, ErrDomain
	case math.IsInf(den, 0):
		return Fraction{}, nil
	case den == 0:
		return Fraction{}, ErrDivisionByZero
	}
	n, err := defloat(num)
	if err != nil {
		return Fraction{}, err
	}
	d, err := defloat(den)
	if err != nil {
		return Fraction{}, err
	}
	return n.quo(d)
}

func defloat(f float64) (Fraction, error) {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return Fraction{}, ErrDomain
	case f == 0:
		return Fraction{}, nil
	}
	neg := f < 0
	n, d := math.Abs(f), 1.0
	for n != math.Trunc(n) && d <= MaxSafe {
		n *= 2
		d *= 2
	}
	if n == math.Trunc(n) && n <= MaxSafe && d <= MaxSafe {
		return newFraction(neg, uint64(n), uint64(d))
	}
	return bestConvergent(neg, math.Abs(f))
}

// bestConvergent returns the last continued fraction convergent of f
// whose numerator and denominator do not exceed MaxSafe.
func bestConvergent(neg bool, f float64) (Fraction, error) {
	x := new(big.Rat).SetFloat64(f)
	p := new(big.Int).Set(x.Num())
	q := new(big.Int).Set(x.Denom())
	h0, h1 := big.NewInt(0), big.NewInt(1)
	k0, k1 := big.NewInt(1), big.NewInt(0)
	limit := new(big.Int).SetUint64(MaxSafe)
	found := false
	var hn, kn uint64
	a, r := new(big.Int), new(big.Int)
	for i := 0; i < MaxContinuedLength && q.Sign() != 0; i++ {
		a.QuoRem(p, q, r)
		h := new(big.Int).Mul(a, h1)
		h.Add(h, h0)
		k := new(big.Int).Mul(a, k1)
		k.Add(k, k0)
		if h.Cmp(limit) > 0 || k.Cmp(limit) > 0 {
			break
		}
		hn, kn, found = h.Uint64(), k.Uint64(), true
		h0, h1 = h1, h
		k0, k1 = k1, k
		p, q = q, new(big.Int).Set(r)
	}
	if !found {
		return Fraction{}, ErrOverflow
	}
	return newFraction(neg, hn, kn)
}

// NewFromDecimal converts a decimal to an exact fraction.
// See also method [Fraction.Decimal].
//
// NewFromDecimal returns an error if the reduced fraction exceeds [MaxSafe].
func NewFromDecimal(d decimal.Decimal) (Fraction, error) {
	den := uint64(1)
	for i := 0; i < d.Scale(); i++ {
		den *= 10
	}
	f, err := newFraction(d.IsNeg(), d.Coef(), den)
	if err != nil {
		return Fraction{}, fmt.Errorf("converting decimal %v: %w", d, err)
	}
	return f, nil
}

// NewFromBigRat converts an arbitrary-precision rational to a fraction.
//
// NewFromBigRat returns an error if the rational is nil or its numerator
// or denominator exceeds [MaxSafe].
func NewFromBigRat(r *big.Rat) (Fraction, error) {
	f, err := fromBigRat(r)
	if err != nil {
		return Fraction{}, fmt.Errorf("converting %v: %w", r, err)
	}
	return f, nil
}

func fromBigRat(r *big.Rat) (Fraction, error) {
	if r == nil {
		return Fraction{}, ErrDomain
	}
	n := new(big.Int).Abs(r.Num())
	d := r.Denom()
	if !n.IsUint64() || !d.IsUint64() {
		return Fraction{}, ErrOverflow
	}
	return newFraction(r.Sign() < 0, n.Uint64(), d.Uint64())
}

// NewFromBigInt converts an arbitrary-precision integer to a fraction.
//
// NewFromBigInt returns an error if the integer is nil or its absolute value
// exceeds [MaxSafe].
func NewFromBigInt(i *big.Int) (Fraction, error) {
	if i == nil {
		return Fraction{}, fmt.Errorf("converting nil integer: %w", ErrDomain)
	}
	return NewFromBigRat(new(big.Rat).SetInt(i))
}

// From converts a value of a supported type to a fraction.
// Supported types are [Fraction], all integer and float types, string
// (see [Parse]), [decimal.Decimal], *[big.Int] and *[big.Rat].
func From(v any) (Fraction, error) {
	switch v := v.(type) {
	case Fraction:
		return v, nil
	case int:
		return NewFromInt64(int64(v))
	case int8:
		return NewFromInt64(int64(v))
	case int16:
		return NewFromInt64(int64(v))
	case int32:
		return NewFromInt64(int64(v))
	case int64:
		return NewFromInt64(v)
	case uint:
		return fromUint64(uint64(v))
	case uint8:
		return fromUint64(uint64(v))
	case uint16:
		return fromUint64(uint64(v))
	case uint32:
		return fromUint64(uint64(v))
	case uint64:
		return fromUint64(v)
	case float32:
		return NewFromFloat64(float64(v))
	case float64:
		return NewFromFloat64(v)
	case string:
		return Parse(v)
	case decimal.Decimal:
		return NewFromDecimal(v)
	case *big.Int:
		return NewFromBigInt(v)
	case *big.Rat:
		return NewFromBigRat(v)
	default:
		return Fraction{}, fmt.Errorf("converting %T: type is not supported: %w", v, ErrDomain)
	}
}

func fromUint64(n uint64) (Fraction, error) {
	if n > MaxSafe {
		return Fraction{}, fmt.Errorf("converting %v: %w", n, ErrOverflow)
	}
	return newFractionUnsafe(false, n, 1), nil
}

// Num returns the signed numerator of the fraction.
func (f Fraction) Num() int64 {
	if f.neg {
		return -int64(f.num)
	}
	return int64(f.num)
}

// Den returns the denominator of the fraction, which is always positive.
func (f Fraction) Den() int64 {
	return int64(f.den())
}

func (f Fraction) den() uint64 {
	return f.dm + 1
}

// Sign returns:
//
//	-1 if f < 0
//	 0 if f = 0
//	+1 if f > 0
func (f Fraction) Sign() int {
	switch {
	case f.num == 0:
		return 0
	case f.neg:
		return -1
	default:
		return 1
	}
}

// IsZero returns:
//
//	true  if f = 0
//	false otherwise
func (f Fraction) IsZero() bool {
	return f.num == 0
}

// IsOne returns:
//
//	true  if f = 1
//	false otherwise
func (f Fraction) IsOne() bool {
	return f == one
}

// IsInt returns true if the denominator of the fraction is 1.
func (f Fraction) IsInt() bool {
	return f.dm == 0
}

// IsNeg returns:
//
//	true  if f < 0
//	false otherwise
func (f Fraction) IsNeg() bool {
	return f.neg
}

// IsPos returns:
//
//	true  if f > 0
//	false otherwise
func (f Fraction) IsPos() bool {
	return !f.neg && f.num != 0
}

// Float64 returns the nearest binary floating-point number.
// Both the numerator and the denominator are exact in float64,
// so the result is rounded only once.
func (f Fraction) Float64() float64 {
	x := float64(f.num) / float64(f.den())
	if f.neg {
		return -x
	}
	return x
}

// Decimal returns the (possibly rounded) decimal value of the fraction.
// See also constructor [NewFromDecimal].
func (f Fraction) Decimal() (decimal.Decimal, error) {
	n, err := decimal.New(f.Num(), 0)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v to decimal: %w", f, err)
	}
	d, err := decimal.New(f.Den(), 0)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v to decimal: %w", f, err)
	}
	q, err := n.Quo(d)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v to decimal: %w", f, err)
	}
	return q, nil
}

// BigRat returns the fraction as an arbitrary-precision rational.
func (f Fraction) BigRat() *big.Rat {
	return new(big.Rat).SetFrac(big.NewInt(f.Num()), big.NewInt(f.Den()))
}

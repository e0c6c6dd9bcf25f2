/*
Package fraction implements exact rational numbers that never silently lose precision.
It is the numeric kernel behind prime-exponent vectors (see package monzo)
and models musical intervals as frequency ratios.

# Features

  - Immutable fractions, ensuring safe usage across multiple goroutines
  - Exact arithmetic with overflow detection instead of rounding
  - Conversion from integers, floats, decimal strings with repeating cycles,
    [decimal.Decimal] and math/big values
  - Exact rational powers and roots, and multiplicative analogues of
    modulo, gcd and lcm
  - Continued fractions and convergent-based simplification

# Representation

A Fraction consists of a sign, a numerator and a denominator.
Fractions are always kept in lowest terms with a positive denominator,
so there is exactly one representation of every value and fractions can
be compared with the == operator.
The zero value is 0/1.

# Supported Ranges

Both the numerator and the denominator must not exceed [MaxSafe] = 2^53 - 1,
the largest integer that a float64 represents exactly together with all
smaller integers.
Arithmetic operations reduce their operands by common factors before
multiplying, so an operation fails with [ErrOverflow] only if its reduced
result does not fit, or in rare cases where an intermediate product
exceeds 64 bits.

# Operations

Arithmetic operations Add, Sub, Mul and Quo are exact.
Mod follows the sign of the dividend and Mmod the sign of the divisor.

Operations without a rational answer for some inputs, such as Pow, Sqrt,
Log, Gcr, Lcr and GeoRoundTo, report the absence of an answer with an
additional boolean result, which is distinct from both a zero result and an error.

Comparison predicates CompareValue, Equals and Divisible accept operands of any
type and report incomparable operands as false rather than as errors.

# Errors

Errors wrap one of [ErrParse], [ErrOverflow], [ErrDivisionByZero] and [ErrDomain],
which can be tested with [errors.Is].
Constructors prefixed with Must panic instead of returning an error.
*/
package fraction

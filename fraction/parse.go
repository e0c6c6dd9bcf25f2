package fraction

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// maxExponent bounds the scientific exponent accepted by [Parse].
const maxExponent = 10_000

// Parse converts a string to a fraction.
// The input string must be in the form "numerator/denominator", where either
// side may be omitted (it defaults to 1) and each side is a decimal number:
//
//	-123
//	1.25
//	0.1'6'     (1/6, the apostrophes delimit a repeating cycle)
//	2.5e-3
//	-3/4
//	/3         (1/3)
//	-4/        (-4)
//
// Decimal digits are accumulated exactly, so the numerator and denominator
// only need to fit within [MaxSafe] after reduction.
//
// Parse returns an error if:
//   - the string is empty or malformed;
//   - both the numerator and denominator are negative;
//   - the denominator is 0;
//   - the reduced fraction exceeds [MaxSafe].
func Parse(s string) (Fraction, error) {
	f, err := parse(s)
	if err != nil {
		return Fraction{}, fmt.Errorf("parsing fraction %q: %w", s, err)
	}
	return f, nil
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding fractions.
func MustParse(s string) Fraction {
	f, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("Parse(%q) failed: %v", s, err))
	}
	return f
}

func parse(s string) (Fraction, error) {
	if s == "" {
		return Fraction{}, fmt.Errorf("%w: empty string", ErrParse)
	}
	ns, ds, slash := strings.Cut(s, "/")
	num, err := parseSide(ns)
	if err != nil {
		return Fraction{}, err
	}
	if slash {
		den, err := parseSide(ds)
		if err != nil {
			return Fraction{}, err
		}
		switch {
		case num.Sign() < 0 && den.Sign() < 0:
			return Fraction{}, fmt.Errorf("%w: double sign", ErrParse)
		case den.Sign() == 0:
			return Fraction{}, ErrDivisionByZero
		}
		num.Quo(num, den)
	}
	return fromBigRat(num)
}

// parseSide parses one side of a fraction literal as an exact rational.
func parseSide(s string) (*big.Rat, error) {
	switch s {
	case "":
		return big.NewRat(1, 1), nil
	case "-":
		return big.NewRat(-1, 1), nil
	}

	pos := 0
	neg := false
	if s[pos] == '-' || s[pos] == '+' {
		neg = s[pos] == '-'
		pos++
		if pos < len(s) && (s[pos] == '-' || s[pos] == '+') {
			return nil, fmt.Errorf("%w: double sign", ErrParse)
		}
	}

	// Integer, fractional and repeating digits
	intdigs := scanDigits(s, &pos)
	var fracdigs, cycledigs string
	if pos < len(s) && s[pos] == '.' {
		pos++
		fracdigs = scanDigits(s, &pos)
		if pos < len(s) && s[pos] == '\'' {
			pos++
			cycledigs = scanDigits(s, &pos)
			if cycledigs == "" || pos == len(s) || s[pos] != '\'' {
				return nil, fmt.Errorf("%w: unterminated repeating cycle", ErrParse)
			}
			pos++
		}
	}
	if intdigs == "" && fracdigs == "" && cycledigs == "" {
		return nil, fmt.Errorf("%w: missing digits", ErrParse)
	}

	// Exponent
	exp := 0
	if pos < len(s) && (s[pos] == 'e' || s[pos] == 'E') {
		pos++
		start := pos
		if pos < len(s) && (s[pos] == '-' || s[pos] == '+') {
			pos++
		}
		if scanDigits(s, &pos) == "" {
			return nil, fmt.Errorf("%w: missing exponent digits", ErrParse)
		}
		e, err := strconv.Atoi(s[start:pos])
		if err != nil || e > maxExponent || e < -maxExponent {
			return nil, fmt.Errorf("%w: exponent out of range", ErrOverflow)
		}
		exp = e
	}
	if pos != len(s) {
		return nil, fmt.Errorf("%w: unexpected character %q", ErrParse, s[pos])
	}

	// x = int.frac + cycle / (10^len(frac) * (10^len(cycle) - 1))
	x := new(big.Rat)
	m, _ := new(big.Int).SetString("0"+intdigs+fracdigs, 10)
	x.SetFrac(m, pow10(len(fracdigs)))
	if cycledigs != "" {
		c, _ := new(big.Int).SetString(cycledigs, 10)
		d := pow10(len(cycledigs))
		d.Sub(d, big.NewInt(1))
		d.Mul(d, pow10(len(fracdigs)))
		x.Add(x, new(big.Rat).SetFrac(c, d))
	}
	switch {
	case exp > 0:
		x.Mul(x, new(big.Rat).SetInt(pow10(exp)))
	case exp < 0:
		x.Quo(x, new(big.Rat).SetInt(pow10(-exp)))
	}
	if neg {
		x.Neg(x)
	}
	return x, nil
}

// scanDigits advances pos over decimal digits and returns them.
func scanDigits(s string, pos *int) string {
	start := *pos
	for *pos < len(s) && s[*pos] >= '0' && s[*pos] <= '9' {
		*pos++
	}
	return s[start:*pos]
}

// pow10 returns 10^n as a new integer.
func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

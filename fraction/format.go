package fraction

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math/bits"
	"strconv"
)

// DefaultCycleLimit is the length of the longest repeating decimal cycle
// that [Fraction.String] searches for.
// Use [Fraction.RepeatingString] to choose a different limit.
const DefaultCycleLimit = 2000

// truncatedDigits is the number of digits written after the non-repeating
// part when the cycle is longer than the limit.
const truncatedDigits = 20

// String method implements the [fmt.Stringer] interface and returns
// the shortest decimal representation of the fraction.
// A repeating cycle of digits is delimited by apostrophes, for example
// 5/11 is "0.'45'" and 1/6 is "0.1'6'".
// The result can be parsed back with [Parse] unless the cycle is longer
// than [DefaultCycleLimit], in which case the digits are truncated and
// followed by "...".
// See also methods [Fraction.RatString] and [Fraction.RepeatingString].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (f Fraction) String() string {
	s, _ := f.RepeatingString(DefaultCycleLimit)
	return s
}

// RepeatingString returns the decimal representation of the fraction,
// searching for repeating cycles of at most limit digits.
// If the cycle of the fraction is longer, the representation is truncated,
// marked with a trailing "..." and exact is false.
func (f Fraction) RepeatingString(limit int) (s string, exact bool) {
	buf := make([]byte, 0, 24)
	buf, exact = f.appendRepeating(buf, limit)
	return string(buf), exact
}

func (f Fraction) appendRepeating(buf []byte, limit int) ([]byte, bool) {
	if f.neg {
		buf = append(buf, '-')
	}
	n, d := f.num, f.den()
	buf = strconv.AppendUint(buf, n/d, 10)
	n %= d
	if n == 0 {
		return buf, true
	}
	buf = append(buf, '.')

	// digit appends the next digit of the long division n/d.
	digit := func() {
		n *= 10 // n < d <= MaxSafe, so no overflow
		buf = append(buf, byte('0'+n/d))
		n %= d
	}

	offset, period, ok := decimalCycle(d, limit)
	if !ok {
		for i := 0; i < offset+truncatedDigits; i++ {
			digit()
		}
		return append(buf, "..."...), false
	}
	for i := 0; i < offset; i++ {
		digit()
	}
	if period > 0 {
		buf = append(buf, '\'')
		for i := 0; i < period; i++ {
			digit()
		}
		buf = append(buf, '\'')
	}
	return buf, true
}

// decimalCycle returns the length of the non-repeating part and the length
// of the repeating cycle of any reduced fraction with denominator d.
// If the cycle is longer than limit, ok is false.
func decimalCycle(d uint64, limit int) (offset, period int, ok bool) {
	e2 := bits.TrailingZeros64(d)
	d >>= e2
	e5 := 0
	for d%5 == 0 {
		d /= 5
		e5++
	}
	offset = max(e2, e5)
	if d == 1 {
		return offset, 0, true
	}
	// The period is the multiplicative order of 10 modulo d.
	r := uint64(1)
	for period = 1; period <= limit; period++ {
		r = r * 10 % d
		if r == 1 {
			return offset, period, true
		}
	}
	return offset, 0, false
}

// RatString returns the fraction in the form "n/d", or "n" if the
// denominator is 1.
func (f Fraction) RatString() string {
	buf := make([]byte, 0, 24)
	return string(f.appendRat(buf))
}

func (f Fraction) appendRat(buf []byte) []byte {
	buf = strconv.AppendInt(buf, f.Num(), 10)
	if !f.IsInt() {
		buf = append(buf, '/')
		buf = strconv.AppendUint(buf, f.den(), 10)
	}
	return buf
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example  | Description               |
//	| ------ | -------- | ------------------------- |
//	| %s, %v | 0.'45'   | Repeating decimal         |
//	| %q     | "0.'45'" | Quoted repeating decimal  |
//	| %r     | 5/11     | Ratio                     |
//	| %f     | 0.454545 | Float, see [strconv]      |
//	| %e, %g | 4.5e-01  | Float, see [strconv]      |
//
// The '-' format flag can be used with all verbs.
// Precision is only supported for the float verbs.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (f Fraction) Format(state fmt.State, verb rune) {
	var buf []byte
	switch verb {
	case 's', 'v':
		buf, _ = f.appendRepeating(buf, DefaultCycleLimit)
	case 'q':
		buf = append(buf, '"')
		buf, _ = f.appendRepeating(buf, DefaultCycleLimit)
		buf = append(buf, '"')
	case 'r':
		buf = f.appendRat(buf)
	case 'f', 'F', 'e', 'E', 'g', 'G':
		prec, ok := state.Precision()
		if !ok {
			prec = -1
			if verb == 'f' || verb == 'F' {
				prec = 6
			}
		}
		if verb == 'F' {
			verb = 'f'
		}
		buf = strconv.AppendFloat(buf, f.Float64(), byte(verb), prec, 64)
	default:
		buf = append(buf, "%!"...)
		buf = append(buf, string(verb)...)
		buf = append(buf, "(fraction.Fraction="...)
		buf = f.appendRat(buf)
		buf = append(buf, ')')
	}

	// Padding
	if w, ok := state.Width(); ok && w > len(buf) {
		pad := make([]byte, w-len(buf))
		for i := range pad {
			pad[i] = ' '
		}
		if state.Flag('-') {
			buf = append(buf, pad...)
		} else {
			buf = append(pad, buf...)
		}
	}
	_, _ = state.Write(buf)
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// The expected format is {"n": <signed integer>, "d": <positive integer>}.
// The numerator and denominator of the reduced fraction must not exceed [MaxSafe].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (f *Fraction) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var v struct {
		N *int64  `json:"n"`
		D *uint64 `json:"d"`
	}
	err := json.Unmarshal(data, &v)
	switch {
	case err != nil:
	case v.N == nil || v.D == nil:
		err = fmt.Errorf("%w: missing numerator or denominator", ErrParse)
	default:
		n, neg := absInt64(*v.N)
		*f, err = newFraction(neg, n, *v.D)
	}
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Fraction{}, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// The result has the format {"n": <signed integer>, "d": <positive integer>}.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (f Fraction) MarshalJSON() ([]byte, error) {
	text := make([]byte, 0, 48)
	text = append(text, `{"n":`...)
	text = strconv.AppendInt(text, f.Num(), 10)
	text = append(text, `,"d":`...)
	text = strconv.AppendUint(text, f.den(), 10)
	text = append(text, '}')
	return text, nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [Parse].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (f *Fraction) UnmarshalText(text []byte) error {
	var err error
	*f, err = Parse(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Fraction{}, err)
	}
	return nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [Fraction.RatString].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (f Fraction) MarshalText() ([]byte, error) {
	return f.appendRat(nil), nil
}

// Scan implements the [sql.Scanner] interface.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (f *Fraction) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*f, err = Parse(value)
	case []byte:
		*f, err = Parse(string(value))
	case int64:
		*f, err = NewFromInt64(value)
	case float64:
		*f, err = NewFromFloat64(value)
	case nil:
		err = fmt.Errorf("%T does not support null values", Fraction{})
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Fraction{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// The fraction is stored in the form returned by [Fraction.RatString].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (f Fraction) Value() (driver.Value, error) {
	return f.RatString(), nil
}

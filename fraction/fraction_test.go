package fraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"testing"
	"unsafe"

	"github.com/govalues/decimal"
)

func TestFraction_ZeroValue(t *testing.T) {
	got := Fraction{}
	want := MustParse("0")
	if got != want {
		t.Errorf("Fraction{} = %r, want %r", got, want)
	}
	if got.Den() != 1 {
		t.Errorf("Fraction{}.Den() = %v, want 1", got.Den())
	}
	if got.String() != "0" {
		t.Errorf("Fraction{}.String() = %q, want \"0\"", got.String())
	}
}

func TestFraction_Size(t *testing.T) {
	f := Fraction{}
	got := unsafe.Sizeof(f)
	want := uintptr(24)
	if got != want {
		t.Errorf("unsafe.Sizeof(%r) = %v, want %v", f, got, want)
	}
}

func TestFraction_Interfaces(t *testing.T) {
	var i any = Fraction{}
	_, ok := i.(fmt.Stringer)
	if !ok {
		t.Errorf("%T does not implement fmt.Stringer", i)
	}
	_, ok = i.(fmt.Formatter)
	if !ok {
		t.Errorf("%T does not implement fmt.Formatter", i)
	}
	_, ok = i.(json.Marshaler)
	if !ok {
		t.Errorf("%T does not implement json.Marshaler", i)
	}
	i = &Fraction{}
	_, ok = i.(json.Unmarshaler)
	if !ok {
		t.Errorf("%T does not implement json.Unmarshaler", i)
	}
}

func TestNew(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			num, den int64
			want     string
		}{
			{6, 4, "3/2"},
			{-6, 4, "-3/2"},
			{6, -4, "-3/2"},
			{-6, -4, "3/2"},
			{0, 5, "0"},
			{0, -5, "0"},
			{MaxSafe, 1, "9007199254740991"},
			{1, MaxSafe, "1/9007199254740991"},
			{1 << 54, 4, "4503599627370496"},
			{-(1 << 60), 1 << 58, "-4"},
		}
		for _, tt := range tests {
			got, err := New(tt.num, tt.den)
			if err != nil {
				t.Errorf("New(%v, %v) failed: %v", tt.num, tt.den, err)
				continue
			}
			if got.RatString() != tt.want {
				t.Errorf("New(%v, %v) = %r, want %v", tt.num, tt.den, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			num, den int64
			want     error
		}{
			"zero denominator": {1, 0, ErrDivisionByZero},
			"overflow 1":       {MaxSafe + 1, 1, ErrOverflow},
			"overflow 2":       {1, MaxSafe + 1, ErrOverflow},
			"overflow 3":       {math.MinInt64, 1, ErrOverflow},
			"overflow 4":       {1 << 54, 2, ErrOverflow},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := New(tt.num, tt.den)
				if !errors.Is(err, tt.want) {
					t.Errorf("New(%v, %v) = %v, want %v", tt.num, tt.den, err, tt.want)
				}
			})
		}
	})

	t.Run("panic", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("MustNew(1, 0) did not panic")
			}
		}()
		MustNew(1, 0)
	})
}

func TestNewFromFloat64(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			f    float64
			want string
		}{
			{0, "0"},
			{3, "3"},
			{-3, "-3"},
			{0.5, "1/2"},
			{-0.75, "-3/4"},
			{1.0 / 1024, "1/1024"},
			{0.1, "1/10"},
			{MaxSafe, "9007199254740991"},
		}
		for _, tt := range tests {
			got, err := NewFromFloat64(tt.f)
			if err != nil {
				t.Errorf("NewFromFloat64(%v) failed: %v", tt.f, err)
				continue
			}
			if got.RatString() != tt.want {
				t.Errorf("NewFromFloat64(%v) = %r, want %v", tt.f, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			f    float64
			want error
		}{
			"nan":      {math.NaN(), ErrDomain},
			"inf 1":    {math.Inf(1), ErrDomain},
			"inf 2":    {math.Inf(-1), ErrDomain},
			"overflow": {1e300, ErrOverflow},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := NewFromFloat64(tt.f)
				if !errors.Is(err, tt.want) {
					t.Errorf("NewFromFloat64(%v) = %v, want %v", tt.f, err, tt.want)
				}
			})
		}
	})
}

func TestNewFromFloat64s(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			num, den float64
			want     string
		}{
			{1, 3, "1/3"},
			{-1.5, 0.25, "-6"},
			{1, math.Inf(1), "0"},
			{-1, math.Inf(-1), "0"},
		}
		for _, tt := range tests {
			got, err := NewFromFloat64s(tt.num, tt.den)
			if err != nil {
				t.Errorf("NewFromFloat64s(%v, %v) failed: %v", tt.num, tt.den, err)
				continue
			}
			if got.RatString() != tt.want {
				t.Errorf("NewFromFloat64s(%v, %v) = %r, want %v", tt.num, tt.den, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			num, den float64
			want     error
		}{
			"zero denominator": {1, 0, ErrDivisionByZero},
			"nan 1":            {math.NaN(), 1, ErrDomain},
			"nan 2":            {1, math.NaN(), ErrDomain},
			"inf":              {math.Inf(1), 1, ErrDomain},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := NewFromFloat64s(tt.num, tt.den)
				if !errors.Is(err, tt.want) {
					t.Errorf("NewFromFloat64s(%v, %v) = %v, want %v", tt.num, tt.den, err, tt.want)
				}
			})
		}
	})
}

func TestNewFromDecimal(t *testing.T) {
	tests := []struct {
		d    string
		want string
	}{
		{"0", "0"},
		{"1.25", "5/4"},
		{"-0.5", "-1/2"},
		{"100.000", "100"},
	}
	for _, tt := range tests {
		d := decimal.MustParse(tt.d)
		got, err := NewFromDecimal(d)
		if err != nil {
			t.Errorf("NewFromDecimal(%v) failed: %v", d, err)
			continue
		}
		if got.RatString() != tt.want {
			t.Errorf("NewFromDecimal(%v) = %r, want %v", d, got, tt.want)
		}
	}
}

func TestFraction_Decimal(t *testing.T) {
	tests := []struct {
		f    string
		want string
	}{
		{"0", "0"},
		{"1/4", "0.25"},
		{"-5/2", "-2.5"},
		{"7", "7"},
	}
	for _, tt := range tests {
		f := MustParse(tt.f)
		got, err := f.Decimal()
		if err != nil {
			t.Errorf("%r.Decimal() failed: %v", f, err)
			continue
		}
		want := decimal.MustParse(tt.want)
		if got.Cmp(want) != 0 {
			t.Errorf("%r.Decimal() = %v, want %v", f, got, want)
		}
	}
}

func TestNewFromBigRat(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		got, err := NewFromBigRat(big.NewRat(-10, 4))
		if err != nil {
			t.Fatalf("NewFromBigRat(-10/4) failed: %v", err)
		}
		if got.RatString() != "-5/2" {
			t.Errorf("NewFromBigRat(-10/4) = %r, want -5/2", got)
		}
		got, err = NewFromBigInt(big.NewInt(42))
		if err != nil {
			t.Fatalf("NewFromBigInt(42) failed: %v", err)
		}
		if got.RatString() != "42" {
			t.Errorf("NewFromBigInt(42) = %r, want 42", got)
		}
	})

	t.Run("error", func(t *testing.T) {
		huge := new(big.Int).Lsh(big.NewInt(1), 70)
		if _, err := NewFromBigInt(huge); !errors.Is(err, ErrOverflow) {
			t.Errorf("NewFromBigInt(2^70) = %v, want %v", err, ErrOverflow)
		}
		if _, err := NewFromBigRat(nil); !errors.Is(err, ErrDomain) {
			t.Errorf("NewFromBigRat(nil) = %v, want %v", err, ErrDomain)
		}
		if _, err := NewFromBigInt(nil); !errors.Is(err, ErrDomain) {
			t.Errorf("NewFromBigInt(nil) = %v, want %v", err, ErrDomain)
		}
	})
}

func TestFrom(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			v    any
			want string
		}{
			{MustNew(1, 3), "1/3"},
			{int(-4), "-4"},
			{int8(-8), "-8"},
			{int16(16), "16"},
			{int32(32), "32"},
			{int64(64), "64"},
			{uint(4), "4"},
			{uint8(8), "8"},
			{uint16(16), "16"},
			{uint32(32), "32"},
			{uint64(64), "64"},
			{float32(0.25), "1/4"},
			{float64(-0.5), "-1/2"},
			{"0.'3'", "1/3"},
			{decimal.MustParse("0.2"), "1/5"},
			{big.NewInt(7), "7"},
			{big.NewRat(2, 6), "1/3"},
		}
		for _, tt := range tests {
			got, err := From(tt.v)
			if err != nil {
				t.Errorf("From(%v) failed: %v", tt.v, err)
				continue
			}
			if got.RatString() != tt.want {
				t.Errorf("From(%v) = %r, want %v", tt.v, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			v    any
			want error
		}{
			"unsupported": {struct{}{}, ErrDomain},
			"nil":         {nil, ErrDomain},
			"uint64":      {uint64(math.MaxUint64), ErrOverflow},
			"string":      {"x", ErrParse},
			"float":       {math.NaN(), ErrDomain},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := From(tt.v)
				if !errors.Is(err, tt.want) {
					t.Errorf("From(%v) = %v, want %v", tt.v, err, tt.want)
				}
			})
		}
	})
}

func TestParse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			s    string
			want string
		}{
			{"0", "0"},
			{"-0", "0"},
			{"3", "3"},
			{"+7", "7"},
			{"-3/4", "-3/4"},
			{"6/8", "3/4"},
			{"3/-6", "-1/2"},
			{"1.25", "5/4"},
			{".5", "1/2"},
			{"5.", "5"},
			{"1.5/2.5", "3/5"},
			{"0.1'6'", "1/6"},
			{"0.'45'", "5/11"},
			{"3.'142857'", "22/7"},
			{"/3", "1/3"},
			{"-/3", "-1/3"},
			{"-4/", "-4"},
			{"/", "1"},
			{"2.5e-3", "1/400"},
			{"1e3", "1000"},
			{"1E+3", "1000"},
			{"0.50000000000000000000", "1/2"},
			{"9007199254740991", "9007199254740991"},
			{"123456789/94906267", "123456789/94906267"},
		}
		for _, tt := range tests {
			got, err := Parse(tt.s)
			if err != nil {
				t.Errorf("Parse(%q) failed: %v", tt.s, err)
				continue
			}
			if got.RatString() != tt.want {
				t.Errorf("Parse(%q) = %r, want %v", tt.s, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			s    string
			want error
		}{
			"empty":                {"", ErrParse},
			"double sign 1":        {"-3/-4", ErrParse},
			"double sign 2":        {"--3", ErrParse},
			"double sign 3":        {"+-3", ErrParse},
			"letters":              {"abc", ErrParse},
			"two points":           {"1.2.3", ErrParse},
			"two slashes":          {"1/2/3", ErrParse},
			"unterminated cycle":   {"0.'3", ErrParse},
			"empty cycle":          {"0.''", ErrParse},
			"missing digits":       {"-.", ErrParse},
			"missing exponent":     {"1e", ErrParse},
			"truncated string":     {"0.333...", ErrParse},
			"zero denominator":     {"1/0", ErrDivisionByZero},
			"zero denominator 2":   {"1/0.0", ErrDivisionByZero},
			"overflow numerator":   {"9007199254740992", ErrOverflow},
			"overflow exponent":    {"1e100000", ErrOverflow},
			"overflow denominator": {"1/9007199254740992", ErrOverflow},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := Parse(tt.s)
				if !errors.Is(err, tt.want) {
					t.Errorf("Parse(%q) = %v, want %v", tt.s, err, tt.want)
				}
			})
		}
	})

	t.Run("panic", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("MustParse(\"x\") did not panic")
			}
		}()
		MustParse("x")
	})
}

func TestFraction_String(t *testing.T) {
	tests := []struct {
		f    string
		want string
	}{
		{"0", "0"},
		{"3", "3"},
		{"-3/2", "-1.5"},
		{"3/8", "0.375"},
		{"1/3", "0.'3'"},
		{"5/11", "0.'45'"},
		{"1/6", "0.1'6'"},
		{"-7/12", "-0.58'3'"},
		{"1/7", "0.'142857'"},
		{"22/7", "3.'142857'"},
	}
	for _, tt := range tests {
		f := MustParse(tt.f)
		got := f.String()
		if got != tt.want {
			t.Errorf("%r.String() = %q, want %q", f, got, tt.want)
		}
		back, err := Parse(got)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", got, err)
			continue
		}
		if back != f {
			t.Errorf("Parse(%q) = %r, want %r", got, back, f)
		}
	}
}

func TestFraction_RepeatingString(t *testing.T) {
	tests := []struct {
		f         string
		limit     int
		want      string
		wantExact bool
	}{
		{"1/7", 6, "0.'142857'", true},
		{"1/7", 3, "0.14285714285714285714...", false},
		{"1/6", 0, "0.1666666666666666666666...", false},
		{"1/8", 0, "0.125", true},
	}
	for _, tt := range tests {
		f := MustParse(tt.f)
		got, exact := f.RepeatingString(tt.limit)
		if got != tt.want || exact != tt.wantExact {
			t.Errorf("%r.RepeatingString(%v) = (%q, %v), want (%q, %v)", f, tt.limit, got, exact, tt.want, tt.wantExact)
		}
	}
}

func TestFraction_Format(t *testing.T) {
	tests := []struct {
		f, format, want string
	}{
		{"5/11", "%v", "0.'45'"},
		{"5/11", "%s", "0.'45'"},
		{"5/11", "%q", "\"0.'45'\""},
		{"5/11", "%r", "5/11"},
		{"5/11", "%.3f", "0.455"},
		{"1/2", "%f", "0.500000"},
		{"1/2", "%e", "5e-01"},
		{"1/2", "%8r", "     1/2"},
		{"1/2", "%-8r|", "1/2     |"},
		{"-3", "%r", "-3"},
		{"1/2", "%d", "%!d(fraction.Fraction=1/2)"},
	}
	for _, tt := range tests {
		f := MustParse(tt.f)
		got := fmt.Sprintf(tt.format, f)
		if got != tt.want {
			t.Errorf("fmt.Sprintf(%q, %r) = %q, want %q", tt.format, f, got, tt.want)
		}
	}
}

func TestFraction_MarshalJSON(t *testing.T) {
	tests := []struct {
		f    string
		want string
	}{
		{"0", `{"n":0,"d":1}`},
		{"-3/4", `{"n":-3,"d":4}`},
		{"9007199254740991", `{"n":9007199254740991,"d":1}`},
	}
	for _, tt := range tests {
		f := MustParse(tt.f)
		got, err := json.Marshal(f)
		if err != nil {
			t.Errorf("json.Marshal(%r) failed: %v", f, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("json.Marshal(%r) = %s, want %s", f, got, tt.want)
		}
	}
}

func TestFraction_UnmarshalJSON(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			s    string
			want string
		}{
			{`{"n":6,"d":4}`, "3/2"},
			{`{"n":-3,"d":4}`, "-3/4"},
			{`{"d":1,"n":0}`, "0"},
		}
		for _, tt := range tests {
			var got Fraction
			err := json.Unmarshal([]byte(tt.s), &got)
			if err != nil {
				t.Errorf("json.Unmarshal(%s) failed: %v", tt.s, err)
				continue
			}
			if got.RatString() != tt.want {
				t.Errorf("json.Unmarshal(%s) = %r, want %v", tt.s, got, tt.want)
			}
		}

		got := MustNew(1, 3)
		if err := got.UnmarshalJSON([]byte("null")); err != nil {
			t.Errorf("UnmarshalJSON(null) failed: %v", err)
		}
		if got != MustNew(1, 3) {
			t.Errorf("UnmarshalJSON(null) = %r, want 1/3", got)
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]string{
			"zero denominator":     `{"n":1,"d":0}`,
			"missing denominator":  `{"n":1}`,
			"overflow":             `{"n":9007199254740992,"d":1}`,
			"negative denominator": `{"n":1,"d":-2}`,
			"string":               `"1/2"`,
		}
		for name, s := range tests {
			t.Run(name, func(t *testing.T) {
				var got Fraction
				err := json.Unmarshal([]byte(s), &got)
				if err == nil {
					t.Errorf("json.Unmarshal(%s) did not fail", s)
				}
			})
		}
	})
}

func TestFraction_Text(t *testing.T) {
	f := MustNew(-3, 4)
	text, err := f.MarshalText()
	if err != nil {
		t.Fatalf("%r.MarshalText() failed: %v", f, err)
	}
	if string(text) != "-3/4" {
		t.Errorf("%r.MarshalText() = %s, want -3/4", f, text)
	}
	var got Fraction
	if err := got.UnmarshalText([]byte("0.'3'")); err != nil {
		t.Fatalf("UnmarshalText(0.'3') failed: %v", err)
	}
	if got != MustNew(1, 3) {
		t.Errorf("UnmarshalText(0.'3') = %r, want 1/3", got)
	}
	if err := got.UnmarshalText([]byte("x")); !errors.Is(err, ErrParse) {
		t.Errorf("UnmarshalText(x) = %v, want %v", err, ErrParse)
	}
}

func TestFraction_Scan(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			v    any
			want string
		}{
			{"1/3", "1/3"},
			{[]byte("0.5"), "1/2"},
			{int64(4), "4"},
			{float64(0.25), "1/4"},
		}
		for _, tt := range tests {
			var got Fraction
			err := got.Scan(tt.v)
			if err != nil {
				t.Errorf("Scan(%v) failed: %v", tt.v, err)
				continue
			}
			if got.RatString() != tt.want {
				t.Errorf("Scan(%v) = %r, want %v", tt.v, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]any{
			"nil":  nil,
			"bool": true,
			"text": "x",
		}
		for name, v := range tests {
			t.Run(name, func(t *testing.T) {
				var got Fraction
				if err := got.Scan(v); err == nil {
					t.Errorf("Scan(%v) did not fail", v)
				}
			})
		}
	})
}

func TestFraction_Value(t *testing.T) {
	f := MustNew(1, 3)
	got, err := f.Value()
	if err != nil {
		t.Fatalf("%r.Value() failed: %v", f, err)
	}
	if got != "1/3" {
		t.Errorf("%r.Value() = %v, want 1/3", f, got)
	}
}

func TestFraction_Predicates(t *testing.T) {
	tests := []struct {
		f                                  string
		sign                               int
		isZero, isOne, isInt, isNeg, isPos bool
	}{
		{"0", 0, true, false, true, false, false},
		{"1", 1, false, true, true, false, true},
		{"-1", -1, false, false, true, true, false},
		{"1/2", 1, false, false, false, false, true},
		{"-1/2", -1, false, false, false, true, false},
	}
	for _, tt := range tests {
		f := MustParse(tt.f)
		if got := f.Sign(); got != tt.sign {
			t.Errorf("%r.Sign() = %v, want %v", f, got, tt.sign)
		}
		if got := f.IsZero(); got != tt.isZero {
			t.Errorf("%r.IsZero() = %v, want %v", f, got, tt.isZero)
		}
		if got := f.IsOne(); got != tt.isOne {
			t.Errorf("%r.IsOne() = %v, want %v", f, got, tt.isOne)
		}
		if got := f.IsInt(); got != tt.isInt {
			t.Errorf("%r.IsInt() = %v, want %v", f, got, tt.isInt)
		}
		if got := f.IsNeg(); got != tt.isNeg {
			t.Errorf("%r.IsNeg() = %v, want %v", f, got, tt.isNeg)
		}
		if got := f.IsPos(); got != tt.isPos {
			t.Errorf("%r.IsPos() = %v, want %v", f, got, tt.isPos)
		}
	}
}

func TestFraction_Float64(t *testing.T) {
	tests := []struct {
		f    string
		want float64
	}{
		{"0", 0},
		{"1/4", 0.25},
		{"-3/2", -1.5},
		{"9007199254740991", 9007199254740991},
	}
	for _, tt := range tests {
		f := MustParse(tt.f)
		if got := f.Float64(); got != tt.want {
			t.Errorf("%r.Float64() = %v, want %v", f, got, tt.want)
		}
	}
}

func FuzzParse(f *testing.F) {
	for _, s := range []string{"0", "-3/4", "0.1'6'", "0.'45'", "2.5e-3", "/3", "-4/", "123456789/94906267"} {
		f.Add(s)
	}

	f.Fuzz(
		func(t *testing.T, s string) {
			x, err := Parse(s)
			if err != nil {
				t.Skip()
				return
			}
			str, exact := x.RepeatingString(DefaultCycleLimit)
			if exact {
				y, err := Parse(str)
				if err != nil {
					t.Errorf("Parse(%q) failed: %v", str, err)
					return
				}
				if y != x {
					t.Errorf("Parse(%q) = %r, whereas Parse(%q) = %r", str, y, s, x)
				}
			}
			y, err := Parse(x.RatString())
			if err != nil {
				t.Errorf("Parse(%q) failed: %v", x.RatString(), err)
				return
			}
			if y != x {
				t.Errorf("Parse(%q) = %r, whereas Parse(%q) = %r", x.RatString(), y, s, x)
			}
		},
	)
}

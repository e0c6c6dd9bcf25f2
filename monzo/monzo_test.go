package monzo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xenharmonic-devs/xen-dev-utils-sub000/fraction"
)

func TestMonzoEqual(t *testing.T) {
	for idx, tc := range []struct {
		a, b Monzo
		want bool
	}{
		{Monzo{1, 2}, Monzo{1, 2}, true},
		{Monzo{1, 2}, Monzo{1, 2, 0, 0}, true},
		{Monzo{1, 2, 0, 0}, Monzo{1, 2}, true},
		{Monzo{}, Monzo{0}, true},
		{nil, Monzo{}, true},
		{Monzo{1, 2}, Monzo{1, 3}, false},
		{Monzo{0, 0, 1}, Monzo{}, false},
		{Monzo{}, Monzo{0, 0, 1}, false},
	} {
		t.Run(fmt.Sprintf("%d/%v=%v", idx, tc.a, tc.b), func(t *testing.T) {
			require.Equal(t, tc.want, tc.a.Equal(tc.b))
		})
	}
}

func TestMonzoTrimPad(t *testing.T) {
	require.Equal(t, Monzo{1, 2}, Monzo{1, 2, 0, 0}.Trim())
	require.Equal(t, Monzo{}, Monzo{0, 0}.Trim())
	require.Equal(t, Monzo{1, 0, 0}, Monzo{1}.Pad(3))
	require.Equal(t, Monzo{1, 2, 3}, Monzo{1, 2, 3}.Pad(1))

	// The receiver is not modified.
	m := Monzo{1, 0}
	p := m.Trim()
	p = append(p, 5)
	require.Equal(t, Monzo{1, 0}, m)
	require.Equal(t, Monzo{1, 5}, p)
}

func TestMonzoArithmetic(t *testing.T) {
	a, b := Monzo{1, 2}, Monzo{0, 1, 1}
	require.Equal(t, Monzo{1, 3, 1}, a.Add(b))
	require.Equal(t, Monzo{1, 1, -1}, a.Sub(b))
	require.Equal(t, Monzo{-1, -1, 1}, b.Sub(a))
	require.Equal(t, Monzo{3, 6}, a.Scale(3))
	require.Equal(t, Monzo{-1, -2}, a.Neg())
	require.Equal(t, Monzo{1, 2}, a)
	require.Equal(t, Monzo{0, 1, 1}, b)
}

func TestMonzoString(t *testing.T) {
	require.Equal(t, "[3, 2, 1>", Monzo{3, 2, 1}.String())
	require.Equal(t, "[-1, 1>", Monzo{-1, 1}.String())
	require.Equal(t, "[>", Monzo{}.String())
	require.Equal(t, "[0, 0, 7>", fmt.Sprint(Monzo{0, 0, 7}))
}

func TestMonzoFraction(t *testing.T) {
	for idx, tc := range []struct {
		m    Monzo
		want string
	}{
		{Monzo{}, "1"},
		{Monzo{-1, 1}, "3/2"},
		{Monzo{3, 2, 1}, "360"},
		{Monzo{-4, 4, -1}, "81/80"},
		{Monzo{52}, "4503599627370496"},
	} {
		t.Run(fmt.Sprintf("%d/%v", idx, tc.m), func(t *testing.T) {
			f, err := tc.m.Fraction()
			require.NoError(t, err)
			require.Equal(t, tc.want, f.RatString())

			r, err := tc.m.BigRat()
			require.NoError(t, err)
			require.Equal(t, tc.want, r.RatString())
		})
	}

	_, err := Monzo{60}.Fraction()
	require.ErrorIs(t, err, fraction.ErrOverflow)

	_, err = make(Monzo, NumPrimes()+1).Fraction()
	require.ErrorIs(t, err, ErrOutOfPrimes)
}

func TestMonzoBigInt(t *testing.T) {
	n, err := Monzo{100}.BigInt()
	require.NoError(t, err)
	require.Equal(t, "1267650600228229401496703205376", n.String())

	n, err = Monzo{3, 2, 1}.BigInt()
	require.NoError(t, err)
	require.Equal(t, "360", n.String())

	_, err = Monzo{-1, 1}.BigInt()
	require.ErrorIs(t, err, ErrNegative)
}

package fraction

import "fmt"

// MustAdd is like [Fraction.Add] but panics if computing error.
func (f Fraction) MustAdd(g Fraction) Fraction {
	h, err := f.Add(g)
	if err != nil {
		panic(fmt.Sprintf("MustAdd(%v) failed: %v", g, err))
	}
	return h
}

// MustSub is like [Fraction.Sub] but panics if computing error.
func (f Fraction) MustSub(g Fraction) Fraction {
	h, err := f.Sub(g)
	if err != nil {
		panic(fmt.Sprintf("MustSub(%v) failed: %v", g, err))
	}
	return h
}

// MustMul is like [Fraction.Mul] but panics if computing error.
func (f Fraction) MustMul(g Fraction) Fraction {
	h, err := f.Mul(g)
	if err != nil {
		panic(fmt.Sprintf("MustMul(%v) failed: %v", g, err))
	}
	return h
}

// MustQuo is like [Fraction.Quo] but panics if computing error.
func (f Fraction) MustQuo(g Fraction) Fraction {
	h, err := f.Quo(g)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v) failed: %v", g, err))
	}
	return h
}

package mpolyu

import (
	"math/big"

	"mpoly-gcd/mpoly"
)

// Poly represents an element of Z[x_0,...,x_{n-1}][X] as a sparse sequence
// of (X exponent, coefficient polynomial) pairs with strictly decreasing
// exponents. The coefficient context is shared by all coefficients.
type Poly struct {
	Ctx    *mpoly.Ctx
	Exps   []uint64
	Coeffs []*mpoly.Poly
}

func New(ctx *mpoly.Ctx) *Poly {
	return &Poly{Ctx: ctx}
}

func (a *Poly) Len() int     { return len(a.Coeffs) }
func (a *Poly) IsZero() bool { return len(a.Coeffs) == 0 }

func (a *Poly) Zero() {
	a.Exps = a.Exps[:0]
	a.Coeffs = a.Coeffs[:0]
}

// One sets a to the constant 1.
func (a *Poly) One() {
	c := mpoly.New(a.Ctx)
	c.One()
	a.Exps = append(a.Exps[:0], 0)
	a.Coeffs = append(a.Coeffs[:0], c)
}

func (a *Poly) Swap(b *Poly) {
	a.Exps, b.Exps = b.Exps, a.Exps
	a.Coeffs, b.Coeffs = b.Coeffs, a.Coeffs
}

func (a *Poly) Set(b *Poly) {
	a.Ctx = b.Ctx
	a.Exps = append(a.Exps[:0], b.Exps...)
	a.Coeffs = a.Coeffs[:0]
	for _, c := range b.Coeffs {
		a.Coeffs = append(a.Coeffs, c.Clone())
	}
}

func (a *Poly) Clone() *Poly {
	b := New(a.Ctx)
	b.Set(a)
	return b
}

// AppendTerm appends (exp, c); the caller guarantees decreasing exponents
// and a nonzero coefficient polynomial.
func (a *Poly) AppendTerm(exp uint64, c *mpoly.Poly) {
	a.Exps = append(a.Exps, exp)
	a.Coeffs = append(a.Coeffs, c)
}

func (a *Poly) IsCanonical() bool {
	for i, c := range a.Coeffs {
		if c.IsZero() || !c.IsCanonical() {
			return false
		}
		if i > 0 && a.Exps[i-1] <= a.Exps[i] {
			return false
		}
	}
	return true
}

func (a *Poly) Equal(b *Poly) bool {
	if len(a.Coeffs) != len(b.Coeffs) {
		return false
	}
	for i := range a.Coeffs {
		if a.Exps[i] != b.Exps[i] || !a.Coeffs[i].Equal(b.Coeffs[i]) {
			return false
		}
	}
	return true
}

// LeadCoeff returns the leading integer coefficient: the leading coefficient
// of the coefficient polynomial of the greatest X power.
func (a *Poly) LeadCoeff() *big.Int {
	if a.IsZero() {
		return nil
	}
	return a.Coeffs[0].LeadCoeff()
}

// Content sets c to the gcd of all integer coefficients.
func (a *Poly) Content(c *big.Int) {
	c.SetInt64(0)
	t := new(big.Int)
	for _, q := range a.Coeffs {
		q.Content(t)
		c.GCD(nil, nil, c, t)
	}
}

// Height sets h to the maximum coefficient magnitude over all terms.
func (a *Poly) Height(h *big.Int) {
	h.SetInt64(0)
	t := new(big.Int)
	for _, q := range a.Coeffs {
		q.Height(t)
		if t.CmpAbs(h) > 0 {
			h.Set(t)
		}
	}
}

func (a *Poly) MulScalar(c *big.Int) {
	for _, q := range a.Coeffs {
		q.MulScalar(c)
	}
}

func (a *Poly) DivExactScalar(c *big.Int) {
	for _, q := range a.Coeffs {
		q.DivExactScalar(c)
	}
}

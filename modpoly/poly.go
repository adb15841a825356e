package modpoly

import (
	"mpoly-gcd/mpoly"
)

// Poly is a sparse multivariate polynomial over F_p sharing the packed
// monomial layout of an mpoly.Ctx. Terms are in strictly decreasing lex
// order with nonzero coefficients.
type Poly struct {
	Ctx    *mpoly.Ctx
	Coeffs []uint64
	Exps   []uint64
}

func NewPoly(ctx *mpoly.Ctx) *Poly { return &Poly{Ctx: ctx} }

func (p *Poly) Len() int     { return len(p.Coeffs) }
func (p *Poly) IsZero() bool { return len(p.Coeffs) == 0 }

func (p *Poly) Exp(i int) []uint64 {
	return p.Exps[i*p.Ctx.N : (i+1)*p.Ctx.N]
}

func (p *Poly) AppendTerm(c uint64, packed []uint64) {
	p.Coeffs = append(p.Coeffs, c)
	p.Exps = append(p.Exps, packed...)
}

// IsConst reports whether p is a (possibly zero) constant.
func (p *Poly) IsConst() bool {
	if p.IsZero() {
		return true
	}
	if p.Len() != 1 {
		return false
	}
	for _, w := range p.Exp(0) {
		if w != 0 {
			return false
		}
	}
	return true
}

// UPoly is the modular analogue of mpolyu.Poly: sparse in the distinguished
// variable X with Poly coefficients, X exponents strictly decreasing.
type UPoly struct {
	Ctx    *mpoly.Ctx
	Exps   []uint64
	Coeffs []*Poly
}

func NewUPoly(ctx *mpoly.Ctx) *UPoly { return &UPoly{Ctx: ctx} }

func (a *UPoly) Len() int     { return len(a.Coeffs) }
func (a *UPoly) IsZero() bool { return len(a.Coeffs) == 0 }

func (a *UPoly) AppendTerm(exp uint64, c *Poly) {
	a.Exps = append(a.Exps, exp)
	a.Coeffs = append(a.Coeffs, c)
}

// IsNonzeroConst reports whether a is a nonzero constant overall: a single
// X^0 term whose coefficient is a nonzero constant. The split coordinator
// uses this as the gcd-is-one signal.
func (a *UPoly) IsNonzeroConst() bool {
	return a.Len() == 1 && a.Exps[0] == 0 && a.Coeffs[0].IsConst() && !a.Coeffs[0].IsZero()
}

// MulScalar scales every coefficient by c != 0.
func (a *UPoly) MulScalar(m *Mod, c uint64) {
	for _, q := range a.Coeffs {
		for i := range q.Coeffs {
			q.Coeffs[i] = m.Mul(q.Coeffs[i], c)
		}
	}
}

// LeadMonomial returns the packed leading monomial of the leading
// coefficient; together with Exps[0] it forms the image shape.
func (a *UPoly) LeadMonomial() []uint64 {
	return a.Coeffs[0].Exp(0)
}

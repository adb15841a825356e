package mpoly

import (
	"fmt"
	"math/big"
	"strings"
)

// Poly is a sparse multivariate polynomial over Z: coefficient i belongs to
// the packed monomial Exps[i*N : (i+1)*N]. Terms are kept in strictly
// decreasing lex order with no zero coefficients.
type Poly struct {
	Ctx    *Ctx
	Coeffs []*big.Int
	Exps   []uint64
}

// Term is the unpacked builder form used by tests and constructors.
type Term struct {
	C *big.Int
	E []uint64
}

func New(ctx *Ctx) *Poly {
	return &Poly{Ctx: ctx}
}

// FromTerms builds a canonical polynomial from arbitrary-order terms.
// Duplicate monomials are summed.
func FromTerms(ctx *Ctx, terms []Term) (*Poly, error) {
	p := New(ctx)
	for _, t := range terms {
		if t.C.Sign() == 0 {
			continue
		}
		packed := make([]uint64, ctx.N)
		if err := ctx.PackExp(packed, t.E); err != nil {
			return nil, err
		}
		one := New(ctx)
		one.Coeffs = []*big.Int{new(big.Int).Set(t.C)}
		one.Exps = packed
		p = Add(p, one)
	}
	return p, nil
}

// Int is shorthand for big.NewInt in term literals.
func Int(v int64) *big.Int { return big.NewInt(v) }

func (p *Poly) Len() int     { return len(p.Coeffs) }
func (p *Poly) IsZero() bool { return len(p.Coeffs) == 0 }

// Exp returns the packed monomial of term i.
func (p *Poly) Exp(i int) []uint64 {
	return p.Exps[i*p.Ctx.N : (i+1)*p.Ctx.N]
}

func (p *Poly) Clone() *Poly {
	q := New(p.Ctx)
	q.Coeffs = make([]*big.Int, len(p.Coeffs))
	for i, c := range p.Coeffs {
		q.Coeffs[i] = new(big.Int).Set(c)
	}
	q.Exps = append([]uint64(nil), p.Exps...)
	return q
}

func (p *Poly) Set(q *Poly) {
	p.Ctx = q.Ctx
	p.Coeffs = p.Coeffs[:0]
	for _, c := range q.Coeffs {
		p.Coeffs = append(p.Coeffs, new(big.Int).Set(c))
	}
	p.Exps = append(p.Exps[:0], q.Exps...)
}

func (p *Poly) Swap(q *Poly) {
	p.Coeffs, q.Coeffs = q.Coeffs, p.Coeffs
	p.Exps, q.Exps = q.Exps, p.Exps
}

func (p *Poly) Zero() {
	p.Coeffs = p.Coeffs[:0]
	p.Exps = p.Exps[:0]
}

// One sets p to the constant 1.
func (p *Poly) One() {
	p.Coeffs = append(p.Coeffs[:0], big.NewInt(1))
	p.Exps = append(p.Exps[:0], make([]uint64, p.Ctx.N)...)
}

// AppendTerm appends a term; the caller guarantees decreasing order and a
// nonzero coefficient. The coefficient is not copied.
func (p *Poly) AppendTerm(c *big.Int, packed []uint64) {
	p.Coeffs = append(p.Coeffs, c)
	p.Exps = append(p.Exps, packed...)
}

// IsCanonical reports strictly decreasing monomials and no zero coefficients.
func (p *Poly) IsCanonical() bool {
	for i := range p.Coeffs {
		if p.Coeffs[i].Sign() == 0 {
			return false
		}
		if i > 0 && CmpExp(p.Exp(i-1), p.Exp(i)) <= 0 {
			return false
		}
	}
	return true
}

func (p *Poly) Equal(q *Poly) bool {
	if len(p.Coeffs) != len(q.Coeffs) {
		return false
	}
	for i := range p.Coeffs {
		if p.Coeffs[i].Cmp(q.Coeffs[i]) != 0 || CmpExp(p.Exp(i), q.Exp(i)) != 0 {
			return false
		}
	}
	return true
}

// LeadCoeff returns the coefficient of the greatest monomial (nil if zero).
func (p *Poly) LeadCoeff() *big.Int {
	if p.IsZero() {
		return nil
	}
	return p.Coeffs[0]
}

// Content sets c to the gcd of all coefficients (0 for the zero polynomial).
func (p *Poly) Content(c *big.Int) {
	c.SetInt64(0)
	for _, a := range p.Coeffs {
		c.GCD(nil, nil, c, new(big.Int).Abs(a))
		if c.Cmp(bigOne) == 0 {
			return
		}
	}
}

// Height sets h to the maximum coefficient magnitude.
func (p *Poly) Height(h *big.Int) {
	h.SetInt64(0)
	for _, a := range p.Coeffs {
		if a.CmpAbs(h) > 0 {
			h.Abs(a)
		}
	}
}

// MulScalar multiplies every coefficient by c in place (c nonzero).
func (p *Poly) MulScalar(c *big.Int) {
	for _, a := range p.Coeffs {
		a.Mul(a, c)
	}
}

// DivExactScalar divides every coefficient by c in place; c must divide all.
func (p *Poly) DivExactScalar(c *big.Int) {
	for _, a := range p.Coeffs {
		a.Quo(a, c)
	}
}

func (p *Poly) Neg() {
	for _, a := range p.Coeffs {
		a.Neg(a)
	}
}

var bigOne = big.NewInt(1)

// String renders the polynomial with generic variable names, mostly for
// test failure messages.
func (p *Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	e := make([]uint64, p.Ctx.Nvars)
	for i, c := range p.Coeffs {
		if i > 0 {
			sb.WriteString(" + ")
		}
		sb.WriteString(c.String())
		p.Ctx.UnpackExp(e, p.Exp(i))
		for v, ev := range e {
			if ev != 0 {
				fmt.Fprintf(&sb, "*x%d^%d", v, ev)
			}
		}
	}
	return sb.String()
}

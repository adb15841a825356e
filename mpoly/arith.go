package mpoly

import "math/big"

// Add returns a + b by merging the two sorted term sequences.
func Add(a, b *Poly) *Poly {
	r := New(a.Ctx)
	i, j := 0, 0
	for i < a.Len() && j < b.Len() {
		switch CmpExp(a.Exp(i), b.Exp(j)) {
		case 1:
			r.AppendTerm(new(big.Int).Set(a.Coeffs[i]), a.Exp(i))
			i++
		case -1:
			r.AppendTerm(new(big.Int).Set(b.Coeffs[j]), b.Exp(j))
			j++
		default:
			s := new(big.Int).Add(a.Coeffs[i], b.Coeffs[j])
			if s.Sign() != 0 {
				r.AppendTerm(s, a.Exp(i))
			}
			i++
			j++
		}
	}
	for ; i < a.Len(); i++ {
		r.AppendTerm(new(big.Int).Set(a.Coeffs[i]), a.Exp(i))
	}
	for ; j < b.Len(); j++ {
		r.AppendTerm(new(big.Int).Set(b.Coeffs[j]), b.Exp(j))
	}
	return r
}

// Sub returns a - b.
func Sub(a, b *Poly) *Poly {
	nb := b.Clone()
	nb.Neg()
	return Add(a, nb)
}

// mulTerm returns a * c*x^e for a packed monomial e.
func mulTerm(a *Poly, c *big.Int, e []uint64) *Poly {
	r := New(a.Ctx)
	for i := range a.Coeffs {
		exp := make([]uint64, a.Ctx.N)
		AddExp(exp, a.Exp(i), e)
		r.AppendTerm(new(big.Int).Mul(a.Coeffs[i], c), exp)
	}
	return r
}

// Mul returns the product a*b. Quadratic schoolbook; the engine only needs
// it on the trivial paths and in tests, where inputs are small.
func Mul(a, b *Poly) *Poly {
	r := New(a.Ctx)
	for j := range b.Coeffs {
		r = Add(r, mulTerm(a, b.Coeffs[j], b.Exp(j)))
	}
	return r
}

// DivExact returns a/b and whether the division is exact over Z.
func DivExact(a, b *Poly) (*Poly, bool) {
	if b.IsZero() {
		return nil, false
	}
	ctx := a.Ctx
	q := New(ctx)
	r := a.Clone()
	e := make([]uint64, ctx.N)
	for !r.IsZero() {
		if !ctx.SubExp(e, r.Exp(0), b.Exp(0)) {
			return nil, false
		}
		c, rem := new(big.Int).QuoRem(r.Coeffs[0], b.Coeffs[0], new(big.Int))
		if rem.Sign() != 0 {
			return nil, false
		}
		t := New(ctx)
		t.AppendTerm(c, append([]uint64(nil), e...))
		q = Add(q, t)
		r = Sub(r, mulTerm(b, c, e))
	}
	return q, true
}

package mpolyu

import (
	"fmt"
	"math/big"

	"mpoly-gcd/mpoly"
)

// FromMpoly rewrites a multivariate polynomial with variable 0 as the
// distinguished variable X; the remaining variables are re-indexed into
// uctx. The lex order on ctx restricts to the lex order on uctx, so a
// single grouped pass keeps everything canonical.
func FromMpoly(a *mpoly.Poly, uctx *mpoly.Ctx) (*Poly, error) {
	ctx := a.Ctx
	if uctx.Nvars != ctx.Nvars-1 {
		return nil, fmt.Errorf("mpolyu: coefficient context has %d variables, want %d", uctx.Nvars, ctx.Nvars-1)
	}
	u := New(uctx)
	e := make([]uint64, ctx.Nvars)
	packed := make([]uint64, uctx.N)
	for i := 0; i < a.Len(); i++ {
		ctx.UnpackExp(e, a.Exp(i))
		xexp := e[0]
		if err := uctx.PackExp(packed, e[1:]); err != nil {
			return nil, err
		}
		if u.Len() == 0 || u.Exps[u.Len()-1] != xexp {
			u.AppendTerm(xexp, mpoly.New(uctx))
		}
		u.Coeffs[u.Len()-1].AppendTerm(new(big.Int).Set(a.Coeffs[i]), packed)
	}
	return u, nil
}

// ToMpoly is the inverse of FromMpoly.
func ToMpoly(u *Poly, ctx *mpoly.Ctx) (*mpoly.Poly, error) {
	uctx := u.Ctx
	if uctx.Nvars != ctx.Nvars-1 {
		return nil, fmt.Errorf("mpolyu: coefficient context has %d variables, want %d", uctx.Nvars, ctx.Nvars-1)
	}
	a := mpoly.New(ctx)
	e := make([]uint64, ctx.Nvars)
	ue := make([]uint64, uctx.Nvars)
	packed := make([]uint64, ctx.N)
	for i := 0; i < u.Len(); i++ {
		c := u.Coeffs[i]
		for j := 0; j < c.Len(); j++ {
			uctx.UnpackExp(ue, c.Exp(j))
			e[0] = u.Exps[i]
			copy(e[1:], ue)
			if err := ctx.PackExp(packed, e); err != nil {
				return nil, err
			}
			a.AppendTerm(new(big.Int).Set(c.Coeffs[j]), append([]uint64(nil), packed...))
		}
	}
	return a, nil
}

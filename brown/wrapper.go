package brown

import (
	"fmt"

	"mpoly-gcd/mpoly"
	"mpoly-gcd/mpolyu"
	"mpoly-gcd/pool"
)

// GcdCofactors computes G = gcd(A, B) with lc(G) >= 0 together with
// Abar = A/G and Bbar = B/G, dispatching the univariate case to the
// integer PRS and everything else to the parallel modular engine with the
// requested total thread count.
func GcdCofactors(A, B *mpoly.Poly, threads int) (G, Abar, Bbar *mpoly.Poly, err error) {
	if A.Ctx != B.Ctx {
		return nil, nil, nil, fmt.Errorf("brown: operands use different contexts")
	}
	ctx := A.Ctx
	if threads < 1 {
		threads = 1
	}

	if A.IsZero() || B.IsZero() {
		return gcdWithZero(A, B)
	}

	if ctx.Nvars == 1 {
		g := fromDense1(ctx, upolyGCD(toDense1(A), toDense1(B)))
		Abar, _ = mpoly.DivExact(A, g)
		Bbar, _ = mpoly.DivExact(B, g)
		return g, Abar, Bbar, nil
	}

	uctx, err := mpoly.NewCtx(ctx.Nvars-1, ctx.Bits)
	if err != nil {
		return nil, nil, nil, err
	}
	Au, err := mpolyu.FromMpoly(A, uctx)
	if err != nil {
		return nil, nil, nil, err
	}
	Bu, err := mpolyu.FromMpoly(B, uctx)
	if err != nil {
		return nil, nil, nil, err
	}
	Gu := mpolyu.New(uctx)
	Abaru := mpolyu.New(uctx)
	Bbaru := mpolyu.New(uctx)

	var pl *pool.Pool
	var handles []pool.Handle
	if threads > 1 {
		pl = pool.New(threads - 1)
		handles = pl.Request(threads - 1)
		defer func() {
			for _, h := range handles {
				pl.GiveBack(h)
			}
			pl.Close()
		}()
	}

	if err := GCDCofactors(Gu, Abaru, Bbaru, Au, Bu, pl, handles); err != nil {
		return nil, nil, nil, err
	}

	G, err = mpolyu.ToMpoly(Gu, ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	Abar, err = mpolyu.ToMpoly(Abaru, ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	Bbar, err = mpolyu.ToMpoly(Bbaru, ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	if !G.IsZero() && G.LeadCoeff().Sign() < 0 {
		G.Neg()
		Abar.Neg()
		Bbar.Neg()
	}
	return G, Abar, Bbar, nil
}

// Gcd returns gcd(A, B) with nonnegative leading coefficient.
func Gcd(A, B *mpoly.Poly, threads int) (*mpoly.Poly, error) {
	G, _, _, err := GcdCofactors(A, B, threads)
	return G, err
}

// gcdWithZero settles the cases with a zero operand; no division happens.
func gcdWithZero(A, B *mpoly.Poly) (G, Abar, Bbar *mpoly.Poly, err error) {
	ctx := A.Ctx
	one := func(sign int) *mpoly.Poly {
		p := mpoly.New(ctx)
		p.One()
		if sign < 0 {
			p.Neg()
		}
		return p
	}
	switch {
	case A.IsZero() && B.IsZero():
		return mpoly.New(ctx), mpoly.New(ctx), mpoly.New(ctx), nil
	case A.IsZero():
		s := B.LeadCoeff().Sign()
		G = B.Clone()
		if s < 0 {
			G.Neg()
		}
		return G, mpoly.New(ctx), one(s), nil
	default:
		s := A.LeadCoeff().Sign()
		G = A.Clone()
		if s < 0 {
			G.Neg()
		}
		return G, one(s), mpoly.New(ctx), nil
	}
}

package modpoly

import (
	"sort"

	"mpoly-gcd/mpoly"
	"mpoly-gcd/pool"
)

// fromUPoly densifies a sparse modular image. Dimension 0 is X, dimension
// v+1 the coefficient context's variable v.
func fromUPoly(a *UPoly) *cube {
	ctx := a.Ctx
	dims := make([]int, 1+ctx.Nvars)
	dims[0] = int(a.Exps[0]) + 1
	e := make([]uint64, ctx.Nvars)
	for _, c := range a.Coeffs {
		for i := 0; i < c.Len(); i++ {
			ctx.UnpackExp(e, c.Exp(i))
			for v, ev := range e {
				if int(ev)+1 > dims[v+1] {
					dims[v+1] = int(ev) + 1
				}
			}
		}
	}
	for j := range dims {
		if dims[j] < 1 {
			dims[j] = 1
		}
	}
	out := newCube(dims)
	idx := make([]int, len(dims))
	for t, c := range a.Coeffs {
		idx[0] = int(a.Exps[t])
		for i := 0; i < c.Len(); i++ {
			ctx.UnpackExp(e, c.Exp(i))
			for v, ev := range e {
				idx[v+1] = int(ev)
			}
			out.c[out.pos(idx)] = c.Coeffs[i]
		}
	}
	return out
}

// toUPoly sparsifies a cube back into canonical UPoly form.
func toUPoly(a *cube, ctx *mpoly.Ctx) *UPoly {
	out := NewUPoly(ctx)
	idx := make([]int, len(a.dims))
	e := make([]uint64, ctx.Nvars)
	type entry struct {
		exp []uint64
		c   uint64
	}
	for xe := a.dims[0] - 1; xe >= 0; xe-- {
		var terms []entry
		for p, v := range a.c {
			if v == 0 {
				continue
			}
			a.decompose(p, idx)
			if idx[0] != xe {
				continue
			}
			for v2 := 0; v2 < ctx.Nvars; v2++ {
				e[v2] = uint64(idx[v2+1])
			}
			packed := make([]uint64, ctx.N)
			ctx.PackExp(packed, e)
			terms = append(terms, entry{exp: packed, c: v})
		}
		if len(terms) == 0 {
			continue
		}
		sort.Slice(terms, func(i, j int) bool {
			return mpoly.CmpExp(terms[i].exp, terms[j].exp) > 0
		})
		c := NewPoly(ctx)
		for _, t := range terms {
			c.AppendTerm(t.c, t.exp)
		}
		out.AppendTerm(uint64(xe), c)
	}
	return out
}

// lcFiber returns the leading coefficient of a viewed in F_p[x_last][rest]:
// the fiber along the highest dimension attached to the lex-greatest
// multi-index of the remaining dimensions, together with that index.
func lcFiber(a *cube) ([]uint64, []int) {
	k := len(a.dims)
	idx := make([]int, k)
	var best []int
	for p, v := range a.c {
		if v == 0 {
			continue
		}
		a.decompose(p, idx)
		if best == nil || cmpIdx(idx[:k-1], best) > 0 {
			best = append(best[:0], idx[:k-1]...)
		}
	}
	fidx := make([]int, k)
	copy(fidx, best)
	f := a.pos(fidx)
	buf := make([]uint64, 0, a.dims[k-1])
	return a.fiber(f, buf), best
}

// brownDense is Brown's dense recursive GCD over F_p: evaluate the highest
// dimension, recurse, interpolate, and certify by trial division. A false
// return is a decline; the caller tries another prime.
func brownDense(m *Mod, A, B *cube) (*cube, bool) {
	k := A.nvars()
	if k == 1 {
		g := uGCD(m, A.c, B.c)
		out := newCube([]int{len(g)})
		copy(out.c, g)
		return out, true
	}

	cA := A.contentLast(m)
	A1, ok := A.divExactLast(m, cA)
	if !ok {
		return nil, false
	}
	cB := B.contentLast(m)
	B1, ok := B.divExactLast(m, cB)
	if !ok {
		return nil, false
	}
	cG := uGCD(m, cA, cB)

	lcA, _ := lcFiber(A1)
	lcB, _ := lcFiber(B1)
	gamma := uGCD(m, lcA, lcB)

	ldeg := A1.lastDeg()
	if d := B1.lastDeg(); d > ldeg {
		ldeg = d
	}
	bound := uDeg(gamma) + ldeg + 1

	var Gs *cube
	var shape []int
	modulus := []uint64{1}

	for alpha := m.P - 1; alpha > 0; alpha-- {
		if uEval(m, gamma, alpha) == 0 {
			continue
		}
		if uEval(m, lcA, alpha) == 0 || uEval(m, lcB, alpha) == 0 {
			continue
		}
		Aev := A1.evalLast(m, alpha)
		Bev := B1.evalLast(m, alpha)
		Gev, ok := brownDense(m, Aev, Bev)
		if !ok {
			return nil, false
		}

		if Gev.isScalar() {
			// the primitive parts are coprime
			dims := make([]int, k)
			for j := range dims {
				dims[j] = 1
			}
			dims[k-1] = len(cG)
			out := newCube(dims)
			copy(out.c, cG)
			return out, true
		}

		lm := Gev.leadIdx()
		if Gs != nil {
			switch c := cmpIdx(lm, shape); {
			case c > 0:
				// unlucky evaluation point
				continue
			case c < 0:
				// everything interpolated so far was unlucky
				Gs = nil
				modulus = []uint64{1}
			}
		}

		scale := m.Mul(uEval(m, gamma, alpha), m.Inv(Gev.c[Gev.pos(lm)]))
		Gev.scale(m, scale)

		if Gs == nil {
			Gs = Gev.promoteLast()
			shape = append(shape[:0], lm...)
		} else {
			ev := Gs.evalLast(m, alpha)
			d := cubeSub(m, Gev, ev)
			if !d.isZero() {
				d.scale(m, m.Inv(uEval(m, modulus, alpha)))
				other := maxDims(Gs.dims[:k-1], d.dims)
				newLast := Gs.dims[k-1]
				if len(modulus) > newLast {
					newLast = len(modulus)
				}
				Gs = Gs.embed(append(append([]int(nil), other...), newLast))
				s := Gs.lastStride()
				didx := make([]int, k)
				for p, v := range d.c {
					if v == 0 {
						continue
					}
					d.decompose(p, didx[:k-1])
					f := Gs.pos(didx)
					for j, mv := range modulus {
						if mv != 0 {
							Gs.c[f+j*s] = m.Add(Gs.c[f+j*s], m.Mul(v, mv))
						}
					}
				}
			}
		}
		modulus = uMulLinear(m, modulus, alpha)

		if uDeg(modulus) < bound {
			continue
		}

		cGs := Gs.contentLast(m)
		ppG, ok := Gs.divExactLast(m, cGs)
		if !ok {
			return nil, false
		}
		if _, ok := A1.divExact(m, ppG); !ok {
			return nil, false
		}
		if _, ok := B1.divExact(m, ppG); !ok {
			return nil, false
		}
		return ppG.mulLast(m, cG), true
	}
	return nil, false
}

// GCD computes the monic gcd of two nonzero modular images together with
// the cofactors Abar = A/G and Bbar = B/G. Worker handles, when present,
// run the two cofactor divisions concurrently. A false return declines the
// prime.
func GCD(m *Mod, A, B *UPoly, pl *pool.Pool, handles []pool.Handle) (G, Abar, Bbar *UPoly, ok bool) {
	ctx := A.Ctx
	Ac := fromUPoly(A)
	Bc := fromUPoly(B)
	Gc, ok := brownDense(m, Ac, Bc)
	if !ok {
		return nil, nil, nil, false
	}

	lt := Gc.leadIdx()
	Gc.scale(m, m.Inv(Gc.c[Gc.pos(lt)]))

	var Abarc, Bbarc *cube
	okA, okB := false, false
	if pl != nil && len(handles) > 0 {
		h := handles[0]
		pl.Wake(h, func() {
			Bbarc, okB = Bc.divExact(m, Gc)
		})
		Abarc, okA = Ac.divExact(m, Gc)
		pl.Wait(h)
	} else {
		Abarc, okA = Ac.divExact(m, Gc)
		Bbarc, okB = Bc.divExact(m, Gc)
	}
	if !okA || !okB {
		return nil, nil, nil, false
	}
	return toUPoly(Gc, ctx), toUPoly(Abarc, ctx), toUPoly(Bbarc, ctx), true
}

package brown

import (
	"math/big"

	"mpoly-gcd/crt"
	"mpoly-gcd/modpoly"
	"mpoly-gcd/mpoly"
	"mpoly-gcd/mpolyu"
)

// reduceU reduces an integer polynomial coefficient-wise modulo p. Terms
// whose coefficients all vanish drop out of the sparse image.
func reduceU(m *modpoly.Mod, a *mpolyu.Poly) *modpoly.UPoly {
	out := modpoly.NewUPoly(a.Ctx)
	for i := 0; i < a.Len(); i++ {
		src := a.Coeffs[i]
		c := modpoly.NewPoly(a.Ctx)
		for j := 0; j < src.Len(); j++ {
			r := m.RedBig(src.Coeffs[j])
			if r != 0 {
				c.AppendTerm(r, src.Exp(j))
			}
		}
		if !c.IsZero() {
			out.AppendTerm(a.Exps[i], c)
		}
	}
	return out
}

// symBig returns the least absolute residue of c mod p as a big integer.
func symBig(m *modpoly.Mod, c uint64) *big.Int {
	if c > m.P/2 {
		return new(big.Int).Sub(new(big.Int).SetUint64(c), m.Big())
	}
	return new(big.Int).SetUint64(c)
}

// liftU overwrites dst with the symmetric lift of a first image.
func liftU(dst *mpolyu.Poly, m *modpoly.Mod, img *modpoly.UPoly) {
	out := mpolyu.New(dst.Ctx)
	for i := 0; i < img.Len(); i++ {
		src := img.Coeffs[i]
		c := mpoly.New(dst.Ctx)
		for j := 0; j < src.Len(); j++ {
			c.AppendTerm(symBig(m, src.Coeffs[j]), src.Exp(j))
		}
		out.AppendTerm(img.Exps[i], c)
	}
	dst.Swap(out)
}

// crtU merges a fresh image into the accumulator dst, which currently
// satisfies |coeff| <= modulus/2, producing the unique representative with
// |coeff| <= modulus*p/2. The exponent sets of dst and img may differ;
// absent terms contribute zero.
func crtU(dst *mpolyu.Poly, modulus *big.Int, m *modpoly.Mod, img *modpoly.UPoly) {
	newmod := new(big.Int).Mul(modulus, m.Big())
	invm := m.Inv(m.RedBig(modulus))
	zero := mpoly.New(dst.Ctx)
	zeroImg := modpoly.NewPoly(dst.Ctx)

	combine := func(old *mpoly.Poly, im *modpoly.Poly) *mpoly.Poly {
		out := mpoly.New(dst.Ctx)
		i, j := 0, 0
		for i < old.Len() || j < im.Len() {
			var cmp int
			switch {
			case i >= old.Len():
				cmp = -1
			case j >= im.Len():
				cmp = 1
			default:
				cmp = mpoly.CmpExp(old.Exp(i), im.Exp(j))
			}
			var cOld *big.Int
			var cImg uint64
			var exp []uint64
			switch {
			case cmp > 0:
				cOld, cImg, exp = old.Coeffs[i], 0, old.Exp(i)
				i++
			case cmp < 0:
				cOld, cImg, exp = bigZero, im.Coeffs[j], im.Exp(j)
				j++
			default:
				cOld, cImg, exp = old.Coeffs[i], im.Coeffs[j], old.Exp(i)
				i++
				j++
			}
			t := m.Mul(m.Sub(cImg, m.RedBig(cOld)), invm)
			r := new(big.Int).Mul(modulus, symBig(m, t))
			r.Add(r, cOld)
			crt.Mods(r, newmod)
			if r.Sign() != 0 {
				out.AppendTerm(r, exp)
			}
		}
		return out
	}

	out := mpolyu.New(dst.Ctx)
	i, j := 0, 0
	for i < dst.Len() || j < img.Len() {
		var cmp int
		switch {
		case i >= dst.Len():
			cmp = -1
		case j >= img.Len():
			cmp = 1
		default:
			switch {
			case dst.Exps[i] > img.Exps[j]:
				cmp = 1
			case dst.Exps[i] < img.Exps[j]:
				cmp = -1
			}
		}
		var c *mpoly.Poly
		var exp uint64
		switch {
		case cmp > 0:
			c, exp = combine(dst.Coeffs[i], zeroImg), dst.Exps[i]
			i++
		case cmp < 0:
			c, exp = combine(zero, img.Coeffs[j]), img.Exps[j]
			j++
		default:
			c, exp = combine(dst.Coeffs[i], img.Coeffs[j]), dst.Exps[i]
			i++
			j++
		}
		if !c.IsZero() {
			out.AppendTerm(exp, c)
		}
	}
	dst.Swap(out)
}

var bigZero = new(big.Int)

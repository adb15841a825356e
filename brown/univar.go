package brown

import (
	"math/big"

	"mpoly-gcd/mpoly"
)

// Univariate gcd over Z by primitive pseudo-remainder sequences; the
// one-variable case never enters the modular engine.

func udeg(a []*big.Int) int { return len(a) - 1 }

func utrim(a []*big.Int) []*big.Int {
	n := len(a)
	for n > 0 && a[n-1].Sign() == 0 {
		n--
	}
	return a[:n]
}

func ucontent(a []*big.Int) *big.Int {
	c := new(big.Int)
	for _, v := range a {
		c.GCD(nil, nil, c, new(big.Int).Abs(v))
	}
	return c
}

func uprimitive(a []*big.Int) []*big.Int {
	c := ucontent(a)
	out := make([]*big.Int, len(a))
	for i, v := range a {
		out[i] = new(big.Int).Quo(v, c)
	}
	return out
}

// uprem computes a pseudo-remainder lc(b)^k * a mod b, where k <= da-db+1
// is the number of reduction steps taken (one factor lc(b) per step).
func uprem(a, b []*big.Int) []*big.Int {
	r := make([]*big.Int, len(a))
	for i, v := range a {
		r[i] = new(big.Int).Set(v)
	}
	db := udeg(b)
	lcb := b[db]
	for len(utrim(r))-1 >= db {
		r = utrim(r)
		dr := len(r) - 1
		lead := new(big.Int).Set(r[dr])
		for i := range r {
			r[i].Mul(r[i], lcb)
		}
		for i := 0; i <= db; i++ {
			t := new(big.Int).Mul(lead, b[i])
			r[dr-db+i].Sub(r[dr-db+i], t)
		}
	}
	return utrim(r)
}

// upolyGCD returns the gcd with positive leading coefficient. When one
// input is zero the other is returned as it is, without sign normalization.
func upolyGCD(a, b []*big.Int) []*big.Int {
	a = utrim(a)
	b = utrim(b)
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	cont := new(big.Int).GCD(nil, nil, ucontent(a), ucontent(b))
	A := uprimitive(a)
	B := uprimitive(b)
	if udeg(A) < udeg(B) {
		A, B = B, A
	}
	var g []*big.Int
	for {
		r := uprem(A, B)
		if len(r) == 0 {
			g = B
			break
		}
		if udeg(r) == 0 {
			g = []*big.Int{big.NewInt(1)}
			break
		}
		A = B
		B = uprimitive(r)
	}
	g = uprimitive(g)
	if g[len(g)-1].Sign() < 0 {
		for _, v := range g {
			v.Neg(v)
		}
	}
	for _, v := range g {
		v.Mul(v, cont)
	}
	return g
}

func toDense1(a *mpoly.Poly) []*big.Int {
	e := make([]uint64, 1)
	var deg uint64
	if !a.IsZero() {
		a.Ctx.UnpackExp(e, a.Exp(0))
		deg = e[0]
	}
	out := make([]*big.Int, deg+1)
	for i := range out {
		out[i] = new(big.Int)
	}
	for i := 0; i < a.Len(); i++ {
		a.Ctx.UnpackExp(e, a.Exp(i))
		out[e[0]].Set(a.Coeffs[i])
	}
	return out
}

func fromDense1(ctx *mpoly.Ctx, a []*big.Int) *mpoly.Poly {
	out := mpoly.New(ctx)
	packed := make([]uint64, ctx.N)
	for d := len(a) - 1; d >= 0; d-- {
		if a[d].Sign() == 0 {
			continue
		}
		ctx.PackExp(packed, []uint64{uint64(d)})
		out.AppendTerm(new(big.Int).Set(a[d]), append([]uint64(nil), packed...))
	}
	return out
}

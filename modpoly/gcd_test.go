package modpoly

import (
	"math/big"
	"testing"

	"mpoly-gcd/mpoly"
)

func testMod(t *testing.T) *Mod {
	p := NextPrime(PrimeFloor)
	if p == 0 {
		t.Fatal("no prime above the floor")
	}
	return NewMod(p)
}

func TestNextPrime(t *testing.T) {
	cases := map[uint64]uint64{2: 3, 3: 5, 10: 11, 96: 97}
	for in, want := range cases {
		if got := NextPrime(in); got != want {
			t.Fatalf("NextPrime(%d) = %d, want %d", in, got, want)
		}
	}
	if got := NextPrime(PrimeCeiling); got != 0 {
		t.Fatalf("NextPrime(PrimeCeiling) = %d, want 0", got)
	}
	p := NextPrime(PrimeFloor)
	if p <= PrimeFloor || p > PrimeCeiling {
		t.Fatalf("NextPrime(2^61) = %d outside the prime window", p)
	}
}

func TestModArithmeticMatchesBig(t *testing.T) {
	m := testMod(t)
	pb := m.Big()
	xs := []uint64{0, 1, 2, m.P - 1, m.P / 2, m.P/2 + 1, 123456789123456789 % m.P}
	for _, a := range xs {
		for _, b := range xs {
			ab := new(big.Int).SetUint64(a)
			bb := new(big.Int).SetUint64(b)
			if got, want := m.Add(a, b), new(big.Int).Mod(new(big.Int).Add(ab, bb), pb).Uint64(); got != want {
				t.Fatalf("Add(%d,%d) = %d, want %d", a, b, got, want)
			}
			if got, want := m.Sub(a, b), new(big.Int).Mod(new(big.Int).Sub(ab, bb), pb).Uint64(); got != want {
				t.Fatalf("Sub(%d,%d) = %d, want %d", a, b, got, want)
			}
			if got, want := m.Mul(a, b), new(big.Int).Mod(new(big.Int).Mul(ab, bb), pb).Uint64(); got != want {
				t.Fatalf("Mul(%d,%d) = %d, want %d", a, b, got, want)
			}
		}
		if a != 0 {
			if got := m.Mul(a, m.Inv(a)); got != 1 {
				t.Fatalf("a*Inv(a) = %d for a = %d", got, a)
			}
		}
	}
}

func upolyFromTerms(t *testing.T, m *Mod, ctx *mpoly.Ctx, terms map[uint64][]struct {
	c int64
	e []uint64
}) *UPoly {
	out := NewUPoly(ctx)
	var xs []uint64
	for x := range terms {
		xs = append(xs, x)
	}
	for i := 0; i < len(xs); i++ {
		for j := i + 1; j < len(xs); j++ {
			if xs[j] > xs[i] {
				xs[i], xs[j] = xs[j], xs[i]
			}
		}
	}
	for _, x := range xs {
		c := NewPoly(ctx)
		for _, tm := range terms[x] {
			packed := make([]uint64, ctx.N)
			if err := ctx.PackExp(packed, tm.e); err != nil {
				t.Fatalf("PackExp: %v", err)
			}
			v := tm.c % int64(m.P)
			if v < 0 {
				v += int64(m.P)
			}
			c.AppendTerm(uint64(v), packed)
		}
		out.AppendTerm(x, c)
	}
	return out
}

type mterm = struct {
	c int64
	e []uint64
}

func TestDenseGCDBivariate(t *testing.T) {
	m := testMod(t)
	ctx, err := mpoly.NewCtx(1, 16)
	if err != nil {
		t.Fatalf("NewCtx: %v", err)
	}
	// A = (x+y)(x-y) = x^2 - y^2, B = (x+y)(x+2y) = x^2 + 3xy + 2y^2
	A := upolyFromTerms(t, m, ctx, map[uint64][]mterm{
		2: {{1, []uint64{0}}},
		0: {{-1, []uint64{2}}},
	})
	B := upolyFromTerms(t, m, ctx, map[uint64][]mterm{
		2: {{1, []uint64{0}}},
		1: {{3, []uint64{1}}},
		0: {{2, []uint64{2}}},
	})
	G, Abar, Bbar, ok := GCD(m, A, B, nil, nil)
	if !ok {
		t.Fatal("GCD declined")
	}
	wantG := upolyFromTerms(t, m, ctx, map[uint64][]mterm{
		1: {{1, []uint64{0}}},
		0: {{1, []uint64{1}}},
	})
	wantAbar := upolyFromTerms(t, m, ctx, map[uint64][]mterm{
		1: {{1, []uint64{0}}},
		0: {{-1, []uint64{1}}},
	})
	wantBbar := upolyFromTerms(t, m, ctx, map[uint64][]mterm{
		1: {{1, []uint64{0}}},
		0: {{2, []uint64{1}}},
	})
	for name, pair := range map[string][2]*UPoly{
		"G":    {G, wantG},
		"Abar": {Abar, wantAbar},
		"Bbar": {Bbar, wantBbar},
	} {
		if !upolyEqual(pair[0], pair[1]) {
			t.Fatalf("%s mismatch: got %+v / %+v", name, pair[0].Exps, pair[0].Coeffs)
		}
	}
}

func TestDenseGCDCoprime(t *testing.T) {
	m := testMod(t)
	ctx, err := mpoly.NewCtx(1, 16)
	if err != nil {
		t.Fatalf("NewCtx: %v", err)
	}
	// A = x, B = y
	A := upolyFromTerms(t, m, ctx, map[uint64][]mterm{1: {{1, []uint64{0}}}})
	B := upolyFromTerms(t, m, ctx, map[uint64][]mterm{0: {{1, []uint64{1}}}})
	G, _, _, ok := GCD(m, A, B, nil, nil)
	if !ok {
		t.Fatal("GCD declined")
	}
	if !G.IsNonzeroConst() {
		t.Fatalf("gcd(x, y) not constant: exps %v", G.Exps)
	}
	if G.Coeffs[0].Coeffs[0] != 1 {
		t.Fatalf("monic constant gcd is %d, want 1", G.Coeffs[0].Coeffs[0])
	}
}

func TestDenseGCDWithContent(t *testing.T) {
	m := testMod(t)
	ctx, err := mpoly.NewCtx(1, 16)
	if err != nil {
		t.Fatalf("NewCtx: %v", err)
	}
	// A = B = 2xy + 3x = x(2y+3): the gcd must keep both the x factor and
	// the last-variable content 2y+3 (monic: y + 3/2).
	mk := func() *UPoly {
		return upolyFromTerms(t, m, ctx, map[uint64][]mterm{
			1: {{2, []uint64{1}}, {3, []uint64{0}}},
		})
	}
	G, Abar, Bbar, ok := GCD(m, mk(), mk(), nil, nil)
	if !ok {
		t.Fatal("GCD declined")
	}
	if G.Len() != 1 || G.Exps[0] != 1 || G.Coeffs[0].Len() != 2 {
		t.Fatalf("unexpected gcd structure: exps %v", G.Exps)
	}
	// monic: leading (packed-lex) coefficient 1, trailing 3*inv(2)
	if G.Coeffs[0].Coeffs[0] != 1 {
		t.Fatalf("gcd not monic: lead %d", G.Coeffs[0].Coeffs[0])
	}
	if want := m.Mul(3, m.Inv(2)); G.Coeffs[0].Coeffs[1] != want {
		t.Fatalf("trailing coefficient %d, want %d", G.Coeffs[0].Coeffs[1], want)
	}
	// cofactors must be the constant 2
	for name, cf := range map[string]*UPoly{"Abar": Abar, "Bbar": Bbar} {
		if !cf.IsNonzeroConst() || cf.Coeffs[0].Coeffs[0] != 2 {
			t.Fatalf("%s is not the constant 2", name)
		}
	}
}

func upolyEqual(a, b *UPoly) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.Coeffs {
		if a.Exps[i] != b.Exps[i] || a.Coeffs[i].Len() != b.Coeffs[i].Len() {
			return false
		}
		for j := range a.Coeffs[i].Coeffs {
			if a.Coeffs[i].Coeffs[j] != b.Coeffs[i].Coeffs[j] {
				return false
			}
			if mpoly.CmpExp(a.Coeffs[i].Exp(j), b.Coeffs[i].Exp(j)) != 0 {
				return false
			}
		}
	}
	return true
}

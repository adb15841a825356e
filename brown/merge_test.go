package brown

import (
	"math/big"
	"testing"

	"mpoly-gcd/crt"
	"mpoly-gcd/mpoly"
	"mpoly-gcd/mpolyu"
)

func TestCrtPolyAlignsMonomials(t *testing.T) {
	ctx, err := mpoly.NewCtx(2, 16)
	if err != nil {
		t.Fatalf("NewCtx: %v", err)
	}
	prog, err := crt.Precompute([]*big.Int{big.NewInt(3), big.NewInt(5)})
	if err != nil {
		t.Fatalf("Precompute: %v", err)
	}
	// image mod 3 has only the y term, image mod 5 only the x term; the
	// merger must restart on discovering the greater head in the second
	// image and pad the other input with zero.
	b0, err := mpoly.FromTerms(ctx, []mpoly.Term{{C: mpoly.Int(2), E: []uint64{0, 1}}})
	if err != nil {
		t.Fatalf("FromTerms: %v", err)
	}
	b1, err := mpoly.FromTerms(ctx, []mpoly.Term{{C: mpoly.Int(3), E: []uint64{1, 0}}})
	if err != nil {
		t.Fatalf("FromTerms: %v", err)
	}
	out := mpoly.New(ctx)
	amax, asum := new(big.Int), new(big.Int)
	crtPoly(prog, prog.NewScratch(), amax, asum, out, []*mpoly.Poly{b0, b1})

	want, err := mpoly.FromTerms(ctx, []mpoly.Term{
		{C: mpoly.Int(3), E: []uint64{1, 0}},
		{C: mpoly.Int(5), E: []uint64{0, 1}},
	})
	if err != nil {
		t.Fatalf("FromTerms: %v", err)
	}
	if !out.Equal(want) {
		t.Fatalf("merged %v, want %v", out, want)
	}
	if !out.IsCanonical() {
		t.Fatal("merged output not canonical")
	}
	if amax.Cmp(big.NewInt(5)) != 0 || asum.Cmp(big.NewInt(8)) != 0 {
		t.Fatalf("heights max=%v sum=%v, want 5 and 8", amax, asum)
	}
}

func TestFinalJoinRestoresOrder(t *testing.T) {
	ctx, err := mpoly.NewCtx(1, 16)
	if err != nil {
		t.Fatalf("NewCtx: %v", err)
	}
	mk := func(exps ...uint64) *mpolyu.Poly {
		u := mpolyu.New(ctx)
		for _, e := range exps {
			c := mpoly.New(ctx)
			c.One()
			u.AppendTerm(e, c)
		}
		return u
	}
	out := mpolyu.New(ctx)
	finalJoin(out, []*mpolyu.Poly{mk(7, 3, 0), mk(9, 4), mk(8, 1)})
	want := []uint64{9, 8, 7, 4, 3, 1, 0}
	if out.Len() != len(want) {
		t.Fatalf("joined %d terms, want %d", out.Len(), len(want))
	}
	for i, e := range want {
		if out.Exps[i] != e {
			t.Fatalf("exps[%d] = %d, want %d", i, out.Exps[i], e)
		}
	}
	if !out.IsCanonical() {
		t.Fatal("joined output not canonical")
	}
}

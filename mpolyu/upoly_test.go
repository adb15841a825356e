package mpolyu

import (
	"math/big"
	"testing"

	"mpoly-gcd/mpoly"
)

func buildCtx(t *testing.T, nvars int) *mpoly.Ctx {
	ctx, err := mpoly.NewCtx(nvars, 16)
	if err != nil {
		t.Fatalf("NewCtx: %v", err)
	}
	return ctx
}

func TestConversionRoundTrip(t *testing.T) {
	ctx := buildCtx(t, 3)
	uctx := buildCtx(t, 2)
	a, err := mpoly.FromTerms(ctx, []mpoly.Term{
		{C: mpoly.Int(4), E: []uint64{3, 1, 0}},
		{C: mpoly.Int(-2), E: []uint64{3, 0, 2}},
		{C: mpoly.Int(7), E: []uint64{1, 5, 5}},
		{C: mpoly.Int(1), E: []uint64{0, 0, 0}},
	})
	if err != nil {
		t.Fatalf("FromTerms: %v", err)
	}
	u, err := FromMpoly(a, uctx)
	if err != nil {
		t.Fatalf("FromMpoly: %v", err)
	}
	if !u.IsCanonical() {
		t.Fatal("converted form is not canonical")
	}
	if u.Len() != 3 || u.Exps[0] != 3 || u.Exps[1] != 1 || u.Exps[2] != 0 {
		t.Fatalf("unexpected X exponents %v", u.Exps)
	}
	back, err := ToMpoly(u, ctx)
	if err != nil {
		t.Fatalf("ToMpoly: %v", err)
	}
	if !back.Equal(a) {
		t.Fatalf("round trip: got %v, want %v", back, a)
	}
}

func TestContentHeightLead(t *testing.T) {
	ctx := buildCtx(t, 2)
	uctx := buildCtx(t, 1)
	a, err := mpoly.FromTerms(ctx, []mpoly.Term{
		{C: mpoly.Int(6), E: []uint64{2, 1}},
		{C: mpoly.Int(-10), E: []uint64{1, 0}},
		{C: mpoly.Int(4), E: []uint64{0, 3}},
	})
	if err != nil {
		t.Fatalf("FromTerms: %v", err)
	}
	u, err := FromMpoly(a, uctx)
	if err != nil {
		t.Fatalf("FromMpoly: %v", err)
	}
	c := new(big.Int)
	u.Content(c)
	if c.Cmp(mpoly.Int(2)) != 0 {
		t.Fatalf("content = %v, want 2", c)
	}
	h := new(big.Int)
	u.Height(h)
	if h.Cmp(mpoly.Int(10)) != 0 {
		t.Fatalf("height = %v, want 10", h)
	}
	if u.LeadCoeff().Cmp(mpoly.Int(6)) != 0 {
		t.Fatalf("lead = %v, want 6", u.LeadCoeff())
	}
}

func TestScalarOps(t *testing.T) {
	ctx := buildCtx(t, 2)
	uctx := buildCtx(t, 1)
	a, _ := mpoly.FromTerms(ctx, []mpoly.Term{
		{C: mpoly.Int(3), E: []uint64{1, 1}},
		{C: mpoly.Int(9), E: []uint64{0, 0}},
	})
	u, err := FromMpoly(a, uctx)
	if err != nil {
		t.Fatalf("FromMpoly: %v", err)
	}
	u.MulScalar(mpoly.Int(4))
	u.DivExactScalar(mpoly.Int(6))
	want := u.Clone()
	u.MulScalar(mpoly.Int(1))
	if !u.Equal(want) {
		t.Fatal("scalar identity broke equality")
	}
	if u.Coeffs[0].Coeffs[0].Cmp(mpoly.Int(2)) != 0 {
		t.Fatalf("3*4/6 = %v, want 2", u.Coeffs[0].Coeffs[0])
	}
}

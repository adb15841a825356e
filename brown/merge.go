package brown

import (
	"math/big"

	"mpoly-gcd/crt"
	"mpoly-gcd/mpoly"
	"mpoly-gcd/mpolyu"
)

// crtPoly writes into A the monomial-aligned CRT of the images B: the
// sparse inputs are walked in parallel, each output term taking the
// greatest unscanned monomial with zero padding for images lacking it.
// Amax and Asum accumulate the height and the absolute coefficient sum of
// the output for the divisibility heuristic.
func crtPoly(P *crt.Prog, scratch []*big.Int, Amax, Asum *big.Int, A *mpoly.Poly, B []*mpoly.Poly) {
	count := len(B)
	inputs := make([]*big.Int, count)
	start := make([]int, count)
	A.Zero()

	var curExp []uint64
	for {
		// find a first image with terms left
		k := 0
		for {
			inputs[k] = bigZero
			if start[k] < B[k].Len() {
				break
			}
			k++
			if k >= count {
				return
			}
		}

	foundMax:
		inputs[k] = B[k].Coeffs[start[k]]
		curExp = B[k].Exp(start[k])
		start[k]++

		for k++; k < count; k++ {
			inputs[k] = bigZero
			if start[k] >= B[k].Len() {
				continue
			}
			cmp := mpoly.CmpExp(B[k].Exp(start[k]), curExp)
			if cmp == 0 {
				inputs[k] = B[k].Coeffs[start[k]]
				start[k]++
			} else if cmp > 0 {
				// a later image has a greater monomial: undo and restart
				for j := 0; j < k; j++ {
					if inputs[j] != bigZero {
						start[j]--
						inputs[j] = bigZero
					}
				}
				goto foundMax
			}
		}

		P.Run(scratch, inputs)
		r := scratch[0]
		if r.Sign() != 0 {
			A.AppendTerm(new(big.Int).Set(r), curExp)
			Asum.Add(Asum, new(big.Int).Abs(r))
			if r.CmpAbs(Amax) > 0 {
				Amax.Abs(r)
			}
		}
	}
}

// crtExp appends to A one term at the given X exponent whose coefficient is
// the merged CRT of the coefficients of X^exp in the images (zero when an
// image lacks the exponent). Nothing is appended if the result vanishes.
func crtExp(P *crt.Prog, scratch []*big.Int, Amax, Asum *big.Int, A *mpolyu.Poly, exp uint64, B []*mpolyu.Poly) {
	zero := mpoly.New(A.Ctx)
	C := make([]*mpoly.Poly, len(B))
	for k := range B {
		C[k] = zero
		for j := 0; j < B[k].Len(); j++ {
			if B[k].Exps[j] == exp {
				C[k] = B[k].Coeffs[j]
				break
			}
		}
	}
	c := mpoly.New(A.Ctx)
	crtPoly(P, scratch, Amax, Asum, c, C)
	if !c.IsZero() {
		A.AppendTerm(exp, c)
	}
}

// finalJoin concatenates the workers' partial outputs, which have disjoint
// X exponents, back into one canonical polynomial. The coefficient
// polynomials are moved into A by reference, not copied; the inputs
// themselves are left unchanged.
func finalJoin(A *mpolyu.Poly, B []*mpolyu.Poly) {
	starts := make([]int, len(B))
	A.Zero()
	for {
		maxPos := -1
		var maxExp uint64
		for i := range B {
			if starts[i] < B[i].Len() && (maxPos < 0 || B[i].Exps[starts[i]] > maxExp) {
				maxPos = i
				maxExp = B[i].Exps[starts[i]]
			}
		}
		if maxPos < 0 {
			return
		}
		A.AppendTerm(maxExp, B[maxPos].Coeffs[starts[maxPos]])
		starts[maxPos]++
	}
}

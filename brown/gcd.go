package brown

import (
	"errors"
	"fmt"
	"math/big"

	"mpoly-gcd/crt"
	"mpoly-gcd/modpoly"
	"mpoly-gcd/mpoly"
	"mpoly-gcd/mpolyu"
	"mpoly-gcd/pool"
)

// ErrPrimesExhausted is returned when the word-prime pool runs out before
// enough images were collected.
var ErrPrimesExhausted = errors.New("brown: ran out of word primes")

// clogBig returns the smallest k with base^k >= t, for t >= 1.
func clogBig(t *big.Int, base uint64) int {
	k := 0
	acc := big.NewInt(1)
	b := new(big.Int).SetUint64(base)
	for acc.Cmp(t) < 0 {
		acc.Mul(acc, b)
		k++
	}
	return k
}

// shapeCmpZZ orders two integer accumulators by image shape: top X
// exponent, then the packed leading monomial of the leading coefficient.
func shapeCmpZZ(a, b *mpolyu.Poly) int {
	if a.Exps[0] != b.Exps[0] {
		if a.Exps[0] > b.Exps[0] {
			return 1
		}
		return -1
	}
	return mpoly.CmpExp(a.Coeffs[0].Exp(0), b.Coeffs[0].Exp(0))
}

// GCDCofactors runs Brown's modular algorithm on nonzero A and B in
// recursive form, writing G = gcd(A, B), Abar = A/G and Bbar = B/G. The
// inputs are clobbered. handles carries len(handles) claimed pool workers;
// the total thread budget is len(handles)+1.
func GCDCofactors(G, Abar, Bbar, A, B *mpolyu.Poly, pl *pool.Pool, handles []pool.Handle) error {
	numThreads := len(handles) + 1

	// strip integer contents
	cA, cB := new(big.Int), new(big.Int)
	cG, cAbar, cBbar := new(big.Int), new(big.Int), new(big.Int)
	A.Content(cA)
	B.Content(cB)
	cG.GCD(nil, nil, cA, cB)
	cAbar.Quo(cA, cG)
	cBbar.Quo(cB, cG)
	A.DivExactScalar(cA)
	B.DivExactScalar(cB)

	base := &splitBase{p: modpoly.PrimeFloor, gamma: new(big.Int), A: A, B: B}
	base.gamma.GCD(nil, nil, new(big.Int).Abs(A.LeadCoeff()), new(big.Int).Abs(B.LeadCoeff()))

	// initial bound on the target modulus
	bound := new(big.Int)
	temp := new(big.Int)
	A.Height(bound)
	B.Height(temp)
	if bound.Cmp(temp) < 0 {
		bound.Set(temp)
	}
	bound.Mul(bound, base.gamma)
	bound.Add(bound, bound)

	modulus := big.NewInt(1)

	splitargs := make([]*splitArg, numThreads)
	for i := range splitargs {
		splitargs[i] = &splitArg{
			base:    base,
			G:       mpolyu.New(A.Ctx),
			Abar:    mpolyu.New(A.Ctx),
			Bbar:    mpolyu.New(A.Ctx),
			modulus: new(big.Int),
			pl:      pl,
		}
	}

	gnm, gns := new(big.Int), new(big.Int)
	anm, ans := new(big.Int), new(big.Int)
	bnm, bns := new(big.Int), new(big.Int)

	for {
		// SPLIT: how many more images, and who computes them
		base.gcdIsOne = false
		temp.Sub(modulus, bigOneC)
		temp.Add(temp, bound)
		temp.Quo(temp, modulus)
		temp.Add(temp, big.NewInt(2))
		numImagesNeeded := clogBig(temp, base.p)

		fractions := divideMasters(numImagesNeeded, numThreads)
		l := len(fractions)
		k := 0
		for i := 0; i < l; i++ {
			arg := splitargs[i]
			arg.requiredImages = int(fractions[i].Num().Int64())
			numWorkers := int(fractions[i].Denom().Int64()) - 1
			if i == 0 {
				arg.masterHandle = -1
			} else {
				arg.masterHandle = handles[k]
				k++
			}
			arg.workerHandles = handles[k : k+numWorkers]
			k += numWorkers
		}

		for i := 1; i < l; i++ {
			pl.Wake(splitargs[i].masterHandle, splitargs[i].run)
		}
		splitargs[0].run()
		for i := 1; i < l; i++ {
			pl.Wait(splitargs[i].masterHandle)
		}

		if base.gcdIsOne {
			G.One()
			Abar.Swap(A)
			Bbar.Swap(B)
			break
		}

		for i := 0; i < l; i++ {
			if splitargs[i].imageCount < splitargs[i].requiredImages {
				return ErrPrimesExhausted
			}
		}

		// gather images to join, dropping the unlucky ones
		gptrs := make([]*mpolyu.Poly, 0, l+1)
		abarptrs := make([]*mpolyu.Poly, 0, l+1)
		bbarptrs := make([]*mpolyu.Poly, 0, l+1)
		mptrs := make([]*big.Int, 0, l+1)
		i := 0
		if modulus.Cmp(bigOneC) != 0 {
			gptrs = append(gptrs, G)
			abarptrs = append(abarptrs, Abar)
			bbarptrs = append(bbarptrs, Bbar)
			mptrs = append(mptrs, modulus)
		} else {
			gptrs = append(gptrs, splitargs[0].G)
			abarptrs = append(abarptrs, splitargs[0].Abar)
			bbarptrs = append(bbarptrs, splitargs[0].Bbar)
			mptrs = append(mptrs, splitargs[0].modulus)
			i = 1
		}
		for ; i < l; i++ {
			cmp := shapeCmpZZ(gptrs[0], splitargs[i].G)
			if cmp < 0 {
				// splitargs[i] was unlucky, ignore it
				continue
			}
			if cmp > 0 {
				// everything gathered so far was unlucky
				gptrs = gptrs[:0]
				abarptrs = abarptrs[:0]
				bbarptrs = bbarptrs[:0]
				mptrs = mptrs[:0]
			}
			gptrs = append(gptrs, splitargs[i].G)
			abarptrs = append(abarptrs, splitargs[i].Abar)
			bbarptrs = append(bbarptrs, splitargs[i].Bbar)
			mptrs = append(mptrs, splitargs[i].modulus)
		}

		// JOIN the accepted images
		prog, err := crt.Precompute(mptrs)
		if err != nil {
			return fmt.Errorf("brown: joining images: %w", err)
		}
		jbase := &joinBase{
			gExp:     int64(gptrs[0].Exps[0]),
			abarExp:  int64(abarptrs[0].Exps[0]),
			bbarExp:  int64(bbarptrs[0].Exps[0]),
			prog:     prog,
			gptrs:    gptrs,
			abarptrs: abarptrs,
			bbarptrs: bbarptrs,
		}
		joinargs := make([]*joinArg, numThreads)
		for i := range joinargs {
			joinargs[i] = &joinArg{
				base:    jbase,
				G:       mpolyu.New(A.Ctx),
				Abar:    mpolyu.New(A.Ctx),
				Bbar:    mpolyu.New(A.Ctx),
				Gmax:    new(big.Int),
				Gsum:    new(big.Int),
				Abarmax: new(big.Int),
				Abarsum: new(big.Int),
				Bbarmax: new(big.Int),
				Bbarsum: new(big.Int),
			}
		}
		for i := 0; i+1 < numThreads; i++ {
			pl.Wake(handles[i], joinargs[i].run)
		}
		joinargs[numThreads-1].run()
		for i := 0; i+1 < numThreads; i++ {
			pl.Wait(handles[i])
		}

		gouts := make([]*mpolyu.Poly, numThreads)
		abarouts := make([]*mpolyu.Poly, numThreads)
		bbarouts := make([]*mpolyu.Poly, numThreads)
		for i, ja := range joinargs {
			gouts[i] = ja.G
			abarouts[i] = ja.Abar
			bbarouts[i] = ja.Bbar
		}

		// the new modulus, before G/Abar/Bbar are overwritten
		temp.SetInt64(1)
		for _, mp := range mptrs {
			temp.Mul(temp, mp)
		}

		finalJoin(G, gouts)
		finalJoin(Abar, abarouts)
		finalJoin(Bbar, bbarouts)
		modulus.Set(temp)

		gnm.SetInt64(0)
		gns.SetInt64(0)
		anm.SetInt64(0)
		ans.SetInt64(0)
		bnm.SetInt64(0)
		bns.SetInt64(0)
		for _, ja := range joinargs {
			gns.Add(gns, ja.Gsum)
			ans.Add(ans, ja.Abarsum)
			bns.Add(bns, ja.Bbarsum)
			if gnm.Cmp(ja.Gmax) < 0 {
				gnm.Set(ja.Gmax)
			}
			if anm.Cmp(ja.Abarmax) < 0 {
				anm.Set(ja.Abarmax)
			}
			if bnm.Cmp(ja.Bbarmax) < 0 {
				bnm.Set(ja.Bbarmax)
			}
		}

		// only try the divisibility check once the heuristic bound is passed
		if modulus.Cmp(bound) <= 0 {
			continue
		}

		ans.Mul(ans, gnm)
		anm.Mul(anm, gns)
		bns.Mul(bns, gnm)
		bnm.Mul(bnm, gns)
		if ans.Cmp(anm) > 0 {
			ans, anm = anm, ans
		}
		if bns.Cmp(bnm) > 0 {
			bns, bnm = bnm, bns
		}
		ans.Add(ans, ans)
		bns.Add(bns, bns)
		if ans.Cmp(modulus) < 0 && bns.Cmp(modulus) < 0 {
			// heights certified: normalize and restore contents
			G.Content(temp)
			G.DivExactScalar(temp)
			Abar.DivExactScalar(G.LeadCoeff())
			Bbar.DivExactScalar(G.LeadCoeff())
			break
		}

		// the heuristic bound was insufficient
		bound.Lsh(modulus, 2*64)
	}

	G.MulScalar(cG)
	Abar.MulScalar(cAbar)
	Bbar.MulScalar(cBbar)
	return nil
}

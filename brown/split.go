package brown

import (
	"math/big"
	"sync"

	"mpoly-gcd/modpoly"
	"mpoly-gcd/mpoly"
	"mpoly-gcd/mpolyu"
	"mpoly-gcd/pool"
)

// splitBase is the state shared by all master workers of one SPLIT phase.
// The mutex guards p and gcdIsOne; everything else is read-only while the
// phase runs.
type splitBase struct {
	mu       sync.Mutex
	p        uint64
	gcdIsOne bool
	gamma    *big.Int
	A, B     *mpolyu.Poly
}

// splitArg is one master's private slice of the phase.
type splitArg struct {
	base           *splitBase
	G, Abar, Bbar  *mpolyu.Poly
	modulus        *big.Int
	imageCount     int
	requiredImages int
	masterHandle   pool.Handle
	workerHandles  []pool.Handle
	pl             *pool.Pool
}

// shapeCmpZ orders the running accumulator shape against a fresh image:
// top X exponent first, then the packed leading monomial of the leading
// coefficient. Positive means the accumulator has the larger (worse) shape.
func shapeCmpZ(g *mpolyu.Poly, img *modpoly.UPoly) int {
	if g.Exps[0] != img.Exps[0] {
		if g.Exps[0] > img.Exps[0] {
			return 1
		}
		return -1
	}
	return mpoly.CmpExp(g.Coeffs[0].Exp(0), img.LeadMonomial())
}

// run fetches fresh primes, reduces the inputs, runs the modular
// GCD, and CRT-lifts the images into its private accumulators until its
// quota is reached or the prime pool runs dry.
func (arg *splitArg) run() {
	base := arg.base
	arg.modulus.SetInt64(1)
	arg.imageCount = 0

	for arg.imageCount < arg.requiredImages {
		base.mu.Lock()
		p := modpoly.NextPrime(base.p)
		if p == 0 {
			base.mu.Unlock()
			break
		}
		base.p = p
		base.mu.Unlock()

		m := modpoly.NewMod(p)

		// the reduction must not kill both leading coefficients
		gammaRed := m.RedBig(base.gamma)
		if gammaRed == 0 {
			continue
		}

		Ap := reduceU(m, base.A)
		Bp := reduceU(m, base.B)

		Gp, Abarp, Bbarp, ok := modpoly.GCD(m, Ap, Bp, arg.pl, arg.workerHandles)
		if !ok {
			continue
		}

		base.mu.Lock()
		done := base.gcdIsOne
		base.mu.Unlock()
		if done {
			break
		}

		if Gp.IsNonzeroConst() {
			base.mu.Lock()
			base.gcdIsOne = true
			base.mu.Unlock()
			break
		}

		if arg.modulus.Cmp(bigOneC) != 0 {
			cmp := shapeCmpZ(arg.G, Gp)
			if cmp < 0 {
				// this prime is unlucky
				continue
			}
			if cmp > 0 {
				// everything accumulated so far was unlucky
				arg.modulus.SetInt64(1)
				arg.imageCount = 0
			}
		}

		// the dense gcd is monic; rescale to the reduced gamma
		Gp.MulScalar(m, gammaRed)

		if arg.modulus.Cmp(bigOneC) != 0 {
			crtU(arg.G, arg.modulus, m, Gp)
			crtU(arg.Abar, arg.modulus, m, Abarp)
			crtU(arg.Bbar, arg.modulus, m, Bbarp)
		} else {
			liftU(arg.G, m, Gp)
			liftU(arg.Abar, m, Abarp)
			liftU(arg.Bbar, m, Bbarp)
		}

		arg.modulus.Mul(arg.modulus, m.Big())
		arg.imageCount++
	}
}

var bigOneC = big.NewInt(1)

package brown

import (
	"math/big"
	"sync"

	"mpoly-gcd/crt"
	"mpoly-gcd/mpolyu"
)

// joinBase is the state shared by all JOIN workers: the compiled CRT
// program (read-only) and three descending exponent cursors guarded by the
// mutex. A cursor value of -1 means that output is fully claimed.
type joinBase struct {
	mu                        sync.Mutex
	gExp, abarExp, bbarExp    int64
	prog                      *crt.Prog
	gptrs, abarptrs, bbarptrs []*mpolyu.Poly
}

// joinArg is one worker's private output and height accumulators.
type joinArg struct {
	base          *joinBase
	G, Abar, Bbar *mpolyu.Poly
	Gmax, Gsum    *big.Int
	Abarmax       *big.Int
	Abarsum       *big.Int
	Bbarmax       *big.Int
	Bbarsum       *big.Int
}

// run claims exponents, G first, then Abar, then Bbar, and produces one
// CRT-merged term per claim in its private output.
func (arg *joinArg) run() {
	base := arg.base
	scratch := base.prog.NewScratch()
	for {
		base.mu.Lock()
		g, a, b := base.gExp, base.abarExp, base.bbarExp
		switch {
		case g >= 0:
			base.gExp = g - 1
		case a >= 0:
			base.abarExp = a - 1
		case b >= 0:
			base.bbarExp = b - 1
		}
		base.mu.Unlock()

		switch {
		case g >= 0:
			crtExp(base.prog, scratch, arg.Gmax, arg.Gsum, arg.G, uint64(g), base.gptrs)
		case a >= 0:
			crtExp(base.prog, scratch, arg.Abarmax, arg.Abarsum, arg.Abar, uint64(a), base.abarptrs)
		case b >= 0:
			crtExp(base.prog, scratch, arg.Bbarmax, arg.Bbarsum, arg.Bbar, uint64(b), base.bbarptrs)
		default:
			return
		}
	}
}

// Package modpoly holds the word-prime side of the engine: F_p coefficient
// arithmetic on top of lattigo's Barrett reduction, sparse prime images of
// integer polynomials, and the dense recursive modular GCD.
package modpoly

import (
	"math/big"

	"github.com/tuneinsight/lattigo/v4/ring"
)

// PrimeFloor is the first candidate prime; the shared split counter starts
// here and walks upward.
const PrimeFloor = uint64(1) << 61

// PrimeCeiling bounds the iterator. Primes stay below 2^62, the modulus
// range lattigo's single-correction Barrett reduction is exact for.
const PrimeCeiling = uint64(1)<<62 - 1

// NextPrime returns the smallest prime strictly greater than p, or 0 once
// the window up to PrimeCeiling is exhausted.
func NextPrime(p uint64) uint64 {
	if p >= PrimeCeiling {
		return 0
	}
	n := p + 1
	if n&1 == 0 {
		n++
	}
	for !ring.IsPrime(n) {
		n += 2
	}
	if n > PrimeCeiling {
		return 0
	}
	return n
}

// Mod bundles a word prime with its Barrett constants.
type Mod struct {
	P    uint64
	bred []uint64
	pBig *big.Int
}

func NewMod(p uint64) *Mod {
	return &Mod{P: p, bred: ring.BRedParams(p), pBig: new(big.Int).SetUint64(p)}
}

func (m *Mod) Big() *big.Int { return m.pBig }

func (m *Mod) Add(a, b uint64) uint64 {
	c := a + b
	if c < a || c >= m.P {
		c -= m.P
	}
	return c
}

func (m *Mod) Sub(a, b uint64) uint64 {
	c := a - b
	if a < b {
		c += m.P
	}
	return c
}

func (m *Mod) Neg(a uint64) uint64 {
	if a == 0 {
		return 0
	}
	return m.P - a
}

func (m *Mod) Mul(a, b uint64) uint64 {
	return ring.BRed(a, b, m.P, m.bred)
}

// Inv returns a^-1 mod p for a != 0 (p prime).
func (m *Mod) Inv(a uint64) uint64 {
	return ring.ModExp(a, m.P-2, m.P)
}

// Red reduces an arbitrary word modulo p.
func (m *Mod) Red(a uint64) uint64 {
	return ring.BRedAdd(a, m.P, m.bred)
}

// RedBig reduces a signed big integer to its nonnegative residue.
func (m *Mod) RedBig(a *big.Int) uint64 {
	return new(big.Int).Mod(a, m.pBig).Uint64()
}

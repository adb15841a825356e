package mpoly

import (
	"encoding/binary"
	"math/big"

	"github.com/tuneinsight/lattigo/v4/utils"
)

func randU64(prng utils.PRNG) uint64 {
	var buf [8]byte
	prng.Read(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

// RandPoly draws a polynomial with up to length terms, exponents below
// maxExp per variable and coefficients of at most coeffBits bits (signed,
// never zero). Used by tests and the sweep driver.
func RandPoly(prng utils.PRNG, ctx *Ctx, length int, maxExp uint64, coeffBits uint) *Poly {
	p := New(ctx)
	e := make([]uint64, ctx.Nvars)
	for t := 0; t < length; t++ {
		for v := range e {
			e[v] = randU64(prng) % maxExp
		}
		c := new(big.Int)
		words := int(coeffBits+63) / 64
		for w := 0; w < words; w++ {
			c.Lsh(c, 64)
			c.Or(c, new(big.Int).SetUint64(randU64(prng)))
		}
		c.Rsh(c, uint(words*64)-coeffBits)
		c.Add(c, big.NewInt(1))
		if randU64(prng)&1 == 1 {
			c.Neg(c)
		}
		one, err := FromTerms(ctx, []Term{{C: c, E: append([]uint64(nil), e...)}})
		if err != nil {
			continue
		}
		p = Add(p, one)
	}
	return p
}

package mpoly

import (
	"fmt"
)

// Ctx fixes the variable count and the packed-exponent layout shared by all
// polynomials that are combined with each other. Exponent vectors are packed
// Bits wide per variable, variable 0 in the most significant field, so that
// lexicographic monomial comparison is big-endian word comparison.
type Ctx struct {
	Nvars int
	Bits  uint
	N     int // words per packed exponent vector
}

// NewCtx validates and builds a packing context.
func NewCtx(nvars int, bits uint) (*Ctx, error) {
	if nvars <= 0 {
		return nil, fmt.Errorf("mpoly: nvars must be positive")
	}
	if bits == 0 || bits > 62 {
		return nil, fmt.Errorf("mpoly: bits must be in [1,62]")
	}
	perWord := int(64 / bits)
	n := (nvars + perWord - 1) / perWord
	return &Ctx{Nvars: nvars, Bits: bits, N: n}, nil
}

func (ctx *Ctx) fieldsPerWord() int { return int(64 / ctx.Bits) }

// PackExp packs the exponent vector e (one entry per variable) into dst,
// which must have length ctx.N. Entries must be below 2^Bits.
func (ctx *Ctx) PackExp(dst []uint64, e []uint64) error {
	if len(e) != ctx.Nvars {
		return fmt.Errorf("mpoly: exponent vector has %d entries, want %d", len(e), ctx.Nvars)
	}
	per := ctx.fieldsPerWord()
	for i := range dst {
		dst[i] = 0
	}
	for v, ev := range e {
		if ev>>ctx.Bits != 0 {
			return fmt.Errorf("mpoly: exponent %d does not fit in %d bits", ev, ctx.Bits)
		}
		w := v / per
		sh := 64 - ctx.Bits*uint(v%per+1)
		dst[w] |= ev << sh
	}
	return nil
}

// UnpackExp expands the packed words into one exponent per variable.
func (ctx *Ctx) UnpackExp(dst []uint64, packed []uint64) {
	per := ctx.fieldsPerWord()
	mask := uint64(1)<<ctx.Bits - 1
	for v := 0; v < ctx.Nvars; v++ {
		w := v / per
		sh := 64 - ctx.Bits*uint(v%per+1)
		dst[v] = (packed[w] >> sh) & mask
	}
}

// CmpExp compares two packed monomials in the lex order of the context.
func CmpExp(a, b []uint64) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// AddExp sets dst to the field-wise sum a + b. Valid as a plain word sum
// because fields never cross word boundaries; callers keep enough headroom.
func AddExp(dst, a, b []uint64) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

// SubExp sets dst to a - b field by field, reporting whether every field of
// b is dominated by the corresponding field of a.
func (ctx *Ctx) SubExp(dst, a, b []uint64) bool {
	per := ctx.fieldsPerWord()
	mask := uint64(1)<<ctx.Bits - 1
	for i := range dst {
		dst[i] = 0
	}
	for v := 0; v < ctx.Nvars; v++ {
		w := v / per
		sh := 64 - ctx.Bits*uint(v%per+1)
		av := (a[w] >> sh) & mask
		bv := (b[w] >> sh) & mask
		if av < bv {
			return false
		}
		dst[w] |= (av - bv) << sh
	}
	return true
}

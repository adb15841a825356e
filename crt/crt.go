// Package crt compiles a set of pairwise-coprime moduli into a balanced
// straight-line program of combine instructions and evaluates it on residue
// vectors. A program is compiled once and may be run concurrently from many
// goroutines, each with its own scratch vector.
package crt

import (
	"errors"
	"math/big"
	"sort"
)

// ErrNotCoprime is returned by Precompute when some pair of moduli shares a
// factor (or a modulus is zero).
var ErrNotCoprime = errors.New("crt: moduli not pairwise coprime")

// ref addresses either a scratch slot (>= 0) or input i encoded as -1-i.
type ref int

func inputRef(i int) ref    { return ref(-1 - i) }
func (r ref) isInput() bool { return r < 0 }
func (r ref) inputIdx() int { return int(-1 - r) }
func (r ref) slotIdx() int  { return int(r) }

// instr performs slot[a] = B + idem*(C - B) mod modulus, where B and C are
// resolved through their refs.
type instr struct {
	a       int
	b, c    ref
	idem    *big.Int
	modulus *big.Int
}

// Prog is a compiled combine tree over L moduli: L-1 instructions (a single
// degenerate one when L = 1) whose last one writes slot 0.
type Prog struct {
	prog      []instr
	localsize int
	temp1     int
	temp2     int
	good      bool
}

// Len returns the instruction count (0 after a failed Precompute).
func (p *Prog) Len() int { return len(p.prog) }

// LocalSize is the scratch length Run requires.
func (p *Prog) LocalSize() int { return p.localsize }

// NewScratch allocates a scratch vector of the required size.
func (p *Prog) NewScratch() []*big.Int {
	out := make([]*big.Int, p.localsize)
	for i := range out {
		out[i] = new(big.Int)
	}
	return out
}

type indexBits struct {
	idx  int
	bits int
}

// Precompute builds the program for the given moduli. Moduli are grouped by
// bit length into a near-balanced binary tree so that the combine products
// stay as small as possible.
func Precompute(moduli []*big.Int) (*Prog, error) {
	if len(moduli) == 0 {
		return nil, errors.New("crt: no moduli")
	}
	perm := make([]indexBits, len(moduli))
	for i, m := range moduli {
		perm[i] = indexBits{idx: i, bits: m.BitLen()}
	}
	sort.Slice(perm, func(i, j int) bool { return perm[i].bits < perm[j].bits })

	p := &Prog{localsize: 1, good: true}
	if len(moduli) == 1 {
		p.prog = append(p.prog, instr{
			a:       0,
			b:       inputRef(0),
			c:       inputRef(0),
			idem:    new(big.Int),
			modulus: new(big.Int).Set(moduli[0]),
		})
		p.good = moduli[0].Sign() != 0
	} else {
		p.push(moduli, perm, 0, 0, len(moduli))
	}

	if !p.good {
		p.prog = p.prog[:0]
		return p, ErrNotCoprime
	}
	p.temp1 = p.localsize
	p.temp2 = p.localsize + 1
	p.localsize += 2
	return p, nil
}

// push compiles the moduli in perm[start:stop) and returns the index of the
// instruction holding the subtree result.
func (p *Prog) push(moduli []*big.Int, perm []indexBits, retIdx, start, stop int) int {
	mid := start + (stop-start)/2
	lefttot, righttot := 0, 0
	for i := start; i < mid; i++ {
		lefttot += perm[i].bits
	}
	for i := mid; i < stop; i++ {
		righttot += perm[i].bits
	}
	// shift the split point while it evens out the bit totals
	for lefttot < righttot && mid+1 < stop && perm[mid].bits < righttot-lefttot {
		lefttot += perm[mid].bits
		righttot -= perm[mid].bits
		mid++
	}

	if p.localsize < 1+retIdx {
		p.localsize = 1 + retIdx
	}

	var b, c ref
	var leftmod, rightmod *big.Int
	if start+1 < mid {
		b = ref(retIdx + 1)
		leftret := p.push(moduli, perm, retIdx+1, start, mid)
		if !p.good {
			return -1
		}
		leftmod = p.prog[leftret].modulus
	} else {
		b = inputRef(perm[start].idx)
		leftmod = moduli[perm[start].idx]
	}
	if mid+1 < stop {
		c = ref(retIdx + 2)
		rightret := p.push(moduli, perm, retIdx+2, mid, stop)
		if !p.good {
			return -1
		}
		rightmod = p.prog[rightret].modulus
	} else {
		c = inputRef(perm[mid].idx)
		rightmod = moduli[perm[mid].idx]
	}

	if leftmod.Sign() == 0 || rightmod.Sign() == 0 {
		p.good = false
		return -1
	}

	in := instr{a: retIdx, b: b, c: c, idem: new(big.Int), modulus: new(big.Int)}
	inv := new(big.Int).ModInverse(leftmod, new(big.Int).Abs(rightmod))
	if inv == nil {
		p.good = false
		return -1
	}
	in.idem.Mul(leftmod, inv)
	in.modulus.Mul(leftmod, rightmod)
	p.prog = append(p.prog, in)
	return len(p.prog) - 1
}

// Run evaluates the program: scratch[0] receives the unique r with
// r = inputs[i] mod moduli[i] for all i and -M/2 < r <= M/2 where M is the
// product of the moduli. scratch must have at least LocalSize entries; it is
// owned by the caller, which makes concurrent runs of one program safe.
func (p *Prog) Run(scratch []*big.Int, inputs []*big.Int) {
	t1 := scratch[p.temp1]
	t2 := scratch[p.temp2]
	for i := range p.prog {
		in := &p.prog[i]
		var b, c *big.Int
		if in.b.isInput() {
			b = inputs[in.b.inputIdx()]
		} else {
			b = scratch[in.b.slotIdx()]
		}
		if in.c.isInput() {
			c = inputs[in.c.inputIdx()]
		} else {
			c = scratch[in.c.slotIdx()]
		}
		// A = B + idem*(C - B) mod M, symmetric residue
		a := scratch[in.a]
		t1.Sub(b, c)
		t2.Mul(in.idem, t1)
		t1.Sub(b, t2)
		a.Set(Mods(t1, in.modulus))
	}
}

// Mods reduces z in place to the least absolute residue modulo m > 0, with
// the positive representative kept on ties: the result lies in (-m/2, m/2].
func Mods(z, m *big.Int) *big.Int {
	z.Mod(z, m) // in [0, m)
	t := new(big.Int).Lsh(z, 1)
	if t.Cmp(m) > 0 {
		z.Sub(z, m)
	}
	return z
}

package modpoly

// Dense hypercube representation used inside the modular GCD. Variable 0 is
// the distinguished variable X (fastest-varying, stride 1); higher
// dimensions follow the coefficient context's variable order. The Brown
// recursion evaluates the highest dimension until only X remains.

type cube struct {
	dims []int
	c    []uint64
}

func cubeSize(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

func newCube(dims []int) *cube {
	d := append([]int(nil), dims...)
	return &cube{dims: d, c: make([]uint64, cubeSize(d))}
}

func (a *cube) nvars() int { return len(a.dims) }

func (a *cube) isZero() bool {
	for _, v := range a.c {
		if v != 0 {
			return false
		}
	}
	return true
}

// isScalar reports that only the constant slot may be nonzero.
func (a *cube) isScalar() bool {
	for i := 1; i < len(a.c); i++ {
		if a.c[i] != 0 {
			return false
		}
	}
	return true
}

func (a *cube) pos(idx []int) int {
	p := 0
	for j := len(idx) - 1; j >= 0; j-- {
		p = p*a.dims[j] + idx[j]
	}
	return p
}

func (a *cube) decompose(p int, idx []int) {
	for j := 0; j < len(a.dims); j++ {
		idx[j] = p % a.dims[j]
		p /= a.dims[j]
	}
}

// cmpIdx orders multi-indices lexicographically with dimension 0 (X) most
// significant, matching the packed monomial order on the sparse side.
func cmpIdx(a, b []int) int {
	for j := 0; j < len(a); j++ {
		if a[j] != b[j] {
			if a[j] > b[j] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// leadIdx returns the lex-greatest multi-index with a nonzero entry, or nil
// for the zero cube.
func (a *cube) leadIdx() []int {
	best := -1
	bi := make([]int, len(a.dims))
	ci := make([]int, len(a.dims))
	for p, v := range a.c {
		if v == 0 {
			continue
		}
		a.decompose(p, ci)
		if best < 0 || cmpIdx(ci, bi) > 0 {
			best = p
			copy(bi, ci)
		}
	}
	if best < 0 {
		return nil
	}
	return bi
}

// embed copies a into a cube with the (componentwise not smaller) dims.
func (a *cube) embed(dims []int) *cube {
	same := len(dims) == len(a.dims)
	if same {
		for j := range dims {
			if dims[j] != a.dims[j] {
				same = false
				break
			}
		}
	}
	if same {
		return a
	}
	b := newCube(dims)
	idx := make([]int, len(a.dims))
	for p, v := range a.c {
		if v == 0 {
			continue
		}
		a.decompose(p, idx)
		b.c[b.pos(idx)] = v
	}
	return b
}

func maxDims(a, b []int) []int {
	out := make([]int, len(a))
	for j := range a {
		out[j] = a[j]
		if b[j] > out[j] {
			out[j] = b[j]
		}
	}
	return out
}

func (a *cube) scale(m *Mod, c uint64) {
	for i, v := range a.c {
		if v != 0 {
			a.c[i] = m.Mul(v, c)
		}
	}
}

func cubeSub(m *Mod, a, b *cube) *cube {
	dims := maxDims(a.dims, b.dims)
	ae := a.embed(dims)
	be := b.embed(dims)
	out := newCube(dims)
	for i := range out.c {
		out.c[i] = m.Sub(ae.c[i], be.c[i])
	}
	return out
}

// lastStride is the number of fibers along the highest dimension.
func (a *cube) lastStride() int {
	return cubeSize(a.dims[:len(a.dims)-1])
}

func (a *cube) fiber(f int, dst []uint64) []uint64 {
	s := a.lastStride()
	dst = dst[:0]
	for j := 0; j < a.dims[len(a.dims)-1]; j++ {
		dst = append(dst, a.c[f+j*s])
	}
	return uTrim(dst)
}

// evalLast contracts the highest dimension at point alpha.
func (a *cube) evalLast(m *Mod, alpha uint64) *cube {
	k := len(a.dims)
	out := newCube(a.dims[:k-1])
	s := a.lastStride()
	last := a.dims[k-1]
	for f := 0; f < s; f++ {
		acc := uint64(0)
		for j := last - 1; j >= 0; j-- {
			acc = m.Add(m.Mul(acc, alpha), a.c[f+j*s])
		}
		out.c[f] = acc
	}
	return out
}

// promoteLast lifts a (k-1)-dim cube to k dims with a singleton last axis.
func (a *cube) promoteLast() *cube {
	dims := append(append([]int(nil), a.dims...), 1)
	out := newCube(dims)
	copy(out.c, a.c)
	return out
}

// contentLast returns the gcd of all fibers along the highest dimension.
func (a *cube) contentLast(m *Mod) []uint64 {
	var g []uint64
	buf := make([]uint64, 0, a.dims[len(a.dims)-1])
	for f := 0; f < a.lastStride(); f++ {
		fib := a.fiber(f, buf)
		if len(fib) == 0 {
			continue
		}
		g = uGCD(m, g, fib)
		if uDeg(g) == 0 {
			break
		}
	}
	return g
}

// divExactLast divides every fiber by the univariate u, reporting failure
// if any division is inexact.
func (a *cube) divExactLast(m *Mod, u []uint64) (*cube, bool) {
	k := len(a.dims)
	du := uDeg(u)
	newLast := a.dims[k-1] - du
	if newLast < 1 {
		newLast = 1
	}
	dims := append([]int(nil), a.dims...)
	dims[k-1] = newLast
	out := newCube(dims)
	s := a.lastStride()
	buf := make([]uint64, 0, a.dims[k-1])
	for f := 0; f < s; f++ {
		fib := a.fiber(f, buf)
		if len(fib) == 0 {
			continue
		}
		q, ok := uDivExact(m, fib, u)
		if !ok {
			return nil, false
		}
		for j, v := range q {
			out.c[f+j*s] = v
		}
	}
	return out, true
}

// mulLast multiplies every fiber by the univariate u.
func (a *cube) mulLast(m *Mod, u []uint64) *cube {
	k := len(a.dims)
	du := uDeg(u)
	dims := append([]int(nil), a.dims...)
	dims[k-1] += du
	out := newCube(dims)
	sIn := a.lastStride()
	sOut := out.lastStride()
	buf := make([]uint64, 0, a.dims[k-1])
	for f := 0; f < sIn; f++ {
		fib := a.fiber(f, buf)
		if len(fib) == 0 {
			continue
		}
		prod := uMul(m, fib, u)
		for j, v := range prod {
			out.c[f+j*sOut] = v
		}
	}
	return out
}

func (a *cube) lastDeg() int {
	k := len(a.dims)
	s := a.lastStride()
	for j := a.dims[k-1] - 1; j >= 0; j-- {
		for f := 0; f < s; f++ {
			if a.c[f+j*s] != 0 {
				return j
			}
		}
	}
	return -1
}

// divExact performs multivariate exact division a/g under the lex order,
// returning ok=false as soon as a leading term fails to divide.
func (a *cube) divExact(m *Mod, g *cube) (*cube, bool) {
	glt := g.leadIdx()
	if glt == nil {
		return nil, false
	}
	gcInv := m.Inv(g.c[g.pos(glt)])
	qdims := make([]int, len(a.dims))
	for j := range qdims {
		qdims[j] = a.dims[j] - g.dims[j] + 1
		if qdims[j] < 1 {
			qdims[j] = 1
		}
	}
	q := newCube(qdims)
	r := newCube(a.dims)
	copy(r.c, a.c)
	ridx := make([]int, len(a.dims))
	qidx := make([]int, len(a.dims))
	gidx := make([]int, len(a.dims))
	tidx := make([]int, len(a.dims))
	for {
		rlt := r.leadIdx()
		if rlt == nil {
			return q, true
		}
		copy(ridx, rlt)
		for j := range qidx {
			qidx[j] = ridx[j] - glt[j]
			if qidx[j] < 0 || qidx[j] >= qdims[j] {
				return nil, false
			}
		}
		qc := m.Mul(r.c[r.pos(ridx)], gcInv)
		q.c[q.pos(qidx)] = qc
		for p, v := range g.c {
			if v == 0 {
				continue
			}
			g.decompose(p, gidx)
			for j := range tidx {
				tidx[j] = gidx[j] + qidx[j]
			}
			rp := r.pos(tidx)
			r.c[rp] = m.Sub(r.c[rp], m.Mul(qc, v))
		}
	}
}

// univariate helpers on coefficient slices indexed by degree

func uTrim(a []uint64) []uint64 {
	n := len(a)
	for n > 0 && a[n-1] == 0 {
		n--
	}
	return a[:n]
}

func uDeg(a []uint64) int { return len(uTrim(a)) - 1 }

func uEval(m *Mod, a []uint64, x uint64) uint64 {
	acc := uint64(0)
	for j := len(a) - 1; j >= 0; j-- {
		acc = m.Add(m.Mul(acc, x), a[j])
	}
	return acc
}

func uMonic(m *Mod, a []uint64) []uint64 {
	a = uTrim(a)
	if len(a) == 0 {
		return a
	}
	inv := m.Inv(a[len(a)-1])
	out := make([]uint64, len(a))
	for i, v := range a {
		out[i] = m.Mul(v, inv)
	}
	return out
}

func uRem(m *Mod, a, b []uint64) []uint64 {
	a = append([]uint64(nil), uTrim(a)...)
	b = uTrim(b)
	db := len(b) - 1
	inv := m.Inv(b[db])
	for len(a)-1 >= db {
		da := len(a) - 1
		c := m.Mul(a[da], inv)
		for i := 0; i <= db; i++ {
			a[da-db+i] = m.Sub(a[da-db+i], m.Mul(c, b[i]))
		}
		a = uTrim(a)
	}
	return a
}

// uGCD returns the monic gcd; either argument may be empty (zero).
func uGCD(m *Mod, a, b []uint64) []uint64 {
	a = uTrim(a)
	b = uTrim(b)
	for len(b) > 0 {
		a, b = b, uRem(m, a, b)
	}
	return uMonic(m, a)
}

func uMul(m *Mod, a, b []uint64) []uint64 {
	a = uTrim(a)
	b = uTrim(b)
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]uint64, len(a)+len(b)-1)
	for i, av := range a {
		if av == 0 {
			continue
		}
		for j, bv := range b {
			out[i+j] = m.Add(out[i+j], m.Mul(av, bv))
		}
	}
	return out
}

func uDivExact(m *Mod, a, b []uint64) ([]uint64, bool) {
	a = append([]uint64(nil), uTrim(a)...)
	b = uTrim(b)
	if len(b) == 0 {
		return nil, false
	}
	if len(a) == 0 {
		return nil, true
	}
	if len(a) < len(b) {
		return nil, false
	}
	inv := m.Inv(b[len(b)-1])
	q := make([]uint64, len(a)-len(b)+1)
	for len(a) >= len(b) {
		da, db := len(a)-1, len(b)-1
		c := m.Mul(a[da], inv)
		q[da-db] = c
		for i := 0; i <= db; i++ {
			a[da-db+i] = m.Sub(a[da-db+i], m.Mul(c, b[i]))
		}
		a = uTrim(a)
		if len(a) == 0 {
			return q, true
		}
	}
	return nil, false
}

// uMulLinear multiplies a by (x - alpha).
func uMulLinear(m *Mod, a []uint64, alpha uint64) []uint64 {
	a = uTrim(a)
	out := make([]uint64, len(a)+1)
	na := m.Neg(alpha)
	for i, v := range a {
		out[i] = m.Add(out[i], m.Mul(v, na))
		out[i+1] = m.Add(out[i+1], v)
	}
	return out
}

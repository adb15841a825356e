// Package brown implements the parallel modular GCD engine: masters
// collect prime images under a shared prime counter, images are lifted by a
// compiled CRT program with the work spread over exponent slots, and a
// height heuristic decides when enough primes have been used.
package brown

import (
	"math/big"
)

// fareyNeighbors returns the Stern-Brocot parents of the reduced fraction
// v = a/b with b >= 2: left < v < right, den(left) + den(right) = b and
// num(left) + num(right) = a, so replacing v by the pair preserves the
// numerator and denominator sums.
func fareyNeighbors(v *big.Rat) (left, right *big.Rat) {
	a := v.Num()
	b := v.Denom()
	// right = c/d with c*b - d*a = 1, 0 < d < b
	inv := new(big.Int).ModInverse(a, b)
	d := new(big.Int).Sub(b, inv)
	c := new(big.Int).Mul(d, a)
	c.Add(c, big.NewInt(1))
	c.Quo(c, b)
	right = new(big.Rat).SetFrac(c, d)
	left = new(big.Rat).SetFrac(new(big.Int).Sub(a, c), new(big.Int).Sub(b, d))
	return left, right
}

// divideMasters picks 1 <= l <= min(n, m) master fractions a_i/b_i with
// sum(a_i) = n and sum(b_i) = m: master i computes a_i images using b_i
// threads. Starting from gcd(n, m) copies of n/m, fractions are split into
// their Farey neighbors while the larger half stays within 10% of n/m, so
// no master is left with a markedly above-average load.
func divideMasters(n, m int) []*big.Rat {
	g := gcdInt(n, m)
	v := make([]*big.Rat, 0, m)
	for i := 0; i < g; i++ {
		v = append(v, big.NewRat(int64(n), int64(m)))
	}
	threshold := big.NewRat(int64(11*n), int64(10*m))

	i := 0
	for i < len(v) {
		if v[i].Denom().Cmp(big.NewInt(2)) >= 0 && v[i].Num().Cmp(big.NewInt(1)) > 0 {
			left, right := fareyNeighbors(v[i])
			if right.Cmp(threshold) <= 0 {
				v[i] = right
				v = append(v, left)
				continue
			}
		}
		i++
	}
	return v
}

func gcdInt(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

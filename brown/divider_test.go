package brown

import (
	"math/big"
	"testing"
)

func TestDivideMastersInvariants(t *testing.T) {
	for n := 1; n <= 14; n++ {
		for m := 1; m <= 14; m++ {
			v := divideMasters(n, m)
			if len(v) < 1 || len(v) > n || len(v) > m {
				t.Fatalf("n=%d m=%d: %d masters outside [1, min(n,m)]", n, m, len(v))
			}
			sumNum := new(big.Int)
			sumDen := new(big.Int)
			limit := 1.1*float64(n)/float64(m) + 1e-9
			for _, f := range v {
				sumNum.Add(sumNum, f.Num())
				sumDen.Add(sumDen, f.Denom())
				if r, _ := f.Float64(); r > limit {
					t.Fatalf("n=%d m=%d: fraction %v above 1.1*n/m", n, m, f)
				}
			}
			if sumNum.Cmp(big.NewInt(int64(n))) != 0 {
				t.Fatalf("n=%d m=%d: numerators sum to %v", n, m, sumNum)
			}
			if sumDen.Cmp(big.NewInt(int64(m))) != 0 {
				t.Fatalf("n=%d m=%d: denominators sum to %v", n, m, sumDen)
			}
		}
	}
}

func TestDivideMastersExample(t *testing.T) {
	// the worked n=10, m=16 case: six masters, largest load 2/3
	v := divideMasters(10, 16)
	if len(v) != 6 {
		t.Fatalf("expected 6 masters, got %d: %v", len(v), v)
	}
	twoThirds := big.NewRat(2, 3)
	for _, f := range v {
		if f.Cmp(twoThirds) > 0 {
			t.Fatalf("fraction %v exceeds 2/3", f)
		}
	}
}

func TestFareyNeighborsMediant(t *testing.T) {
	cases := [][2]int64{{5, 8}, {3, 5}, {2, 3}, {1, 2}, {3, 2}, {7, 12}}
	for _, c := range cases {
		v := big.NewRat(c[0], c[1])
		left, right := fareyNeighbors(v)
		if left.Cmp(v) >= 0 || right.Cmp(v) <= 0 {
			t.Fatalf("%v: neighbors %v, %v do not bracket", v, left, right)
		}
		num := new(big.Int).Add(left.Num(), right.Num())
		den := new(big.Int).Add(left.Denom(), right.Denom())
		if num.Cmp(v.Num()) != 0 || den.Cmp(v.Denom()) != 0 {
			t.Fatalf("%v: mediant of %v and %v is %v/%v", v, left, right, num, den)
		}
	}
}

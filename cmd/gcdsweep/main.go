package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/tuneinsight/lattigo/v4/utils"

	"mpoly-gcd/brown"
	"mpoly-gcd/mpoly"
	"mpoly-gcd/prof"
)

// gcdsweep times the parallel GCD engine over a grid of input sizes and
// thread counts and writes one JSON report per run to stdout (or -o). The
// inputs are G*Abar and G*Bbar built from keyed-PRNG polynomials, so every
// row has a known nontrivial gcd and reruns are reproducible.

type sweepReport struct {
	Seed      string           `json:"Seed"`
	Nvars     int              `json:"Nvars"`
	Terms     int              `json:"Terms"`
	MaxExp    uint64           `json:"MaxExp"`
	CoeffBits uint             `json:"CoeffBits"`
	Threads   int              `json:"Threads"`
	GcdTerms  int              `json:"GcdTerms"`
	WallUS    int64            `json:"WallUS"`
	TimingsUS map[string]int64 `json:"TimingsUS"`
	OK        bool             `json:"OK"`
}

func usage() {
	fmt.Println(`usage: gcdsweep [options]

Times gcd(G*Abar, G*Bbar) for random G, Abar, Bbar across thread counts.

Flags:
  -seed    <string>  PRNG label, hashed into the keyed generator (default "gcdsweep")
  -nvars   <int>     number of variables (default 3)
  -terms   <int>     terms per random factor (default 8)
  -maxexp  <int>     exponent bound per variable (default 5)
  -bits    <int>     coefficient bits per random factor (default 64)
  -threads <list>    comma-free repeatable flag; pass -threads multiple times
                     (default sweep 1,2,4)
  -reps    <int>     repetitions per configuration (default 3)
  -o       <path>    output file (default stdout)
  -v                 verbose progress on stderr`)
	os.Exit(1)
}

type intList []int

func (l *intList) String() string { return fmt.Sprint([]int(*l)) }
func (l *intList) Set(s string) error {
	var v int
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return err
	}
	*l = append(*l, v)
	return nil
}

func keyedPRNG(label string) utils.PRNG {
	seed := sha3.Sum256([]byte(label))
	prng, err := utils.NewKeyedPRNG(seed[:])
	if err != nil {
		log.Fatalf("keyed prng: %v", err)
	}
	return prng
}

func main() {
	seed := flag.String("seed", "gcdsweep", "")
	nvars := flag.Int("nvars", 3, "")
	terms := flag.Int("terms", 8, "")
	maxexp := flag.Int("maxexp", 5, "")
	bits := flag.Int("bits", 64, "")
	reps := flag.Int("reps", 3, "")
	outPath := flag.String("o", "", "")
	verbose := flag.Bool("v", false, "")
	var threads intList
	flag.Var(&threads, "threads", "")
	flag.Usage = usage
	flag.Parse()

	if len(threads) == 0 {
		threads = intList{1, 2, 4}
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("create %s: %v", *outPath, err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)

	ctx, err := mpoly.NewCtx(*nvars, 16)
	if err != nil {
		log.Fatalf("context: %v", err)
	}

	for rep := 0; rep < *reps; rep++ {
		label := fmt.Sprintf("%s/%d", *seed, rep)
		prng := keyedPRNG(label)
		G := mpoly.RandPoly(prng, ctx, *terms, uint64(*maxexp), uint(*bits))
		Abar := mpoly.RandPoly(prng, ctx, *terms, uint64(*maxexp), uint(*bits))
		Bbar := mpoly.RandPoly(prng, ctx, *terms, uint64(*maxexp), uint(*bits))
		if G.IsZero() || Abar.IsZero() || Bbar.IsZero() {
			continue
		}
		A := mpoly.Mul(G, Abar)
		B := mpoly.Mul(G, Bbar)

		for _, th := range threads {
			prof.SnapshotAndReset()
			start := time.Now()
			got, gerr := brown.Gcd(A, B, th)
			wall := time.Since(start)
			prof.Track(start, "gcd_total")

			rpt := sweepReport{
				Seed:      label,
				Nvars:     *nvars,
				Terms:     *terms,
				MaxExp:    uint64(*maxexp),
				CoeffBits: uint(*bits),
				Threads:   th,
				WallUS:    wall.Microseconds(),
				TimingsUS: prof.Aggregate(prof.SnapshotAndReset()),
				OK:        gerr == nil,
			}
			if gerr == nil {
				rpt.GcdTerms = got.Len()
			}
			if err := enc.Encode(&rpt); err != nil {
				log.Fatalf("encode: %v", err)
			}
			if *verbose {
				fmt.Fprintf(os.Stderr, "[sweep] %s threads=%d wall=%s ok=%v\n", label, th, wall, gerr == nil)
			}
		}
	}
}

package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Renders the JSON-lines output of cmd/gcdsweep into an HTML page with one
// line chart of wall time vs. threads per configuration and one chart of
// the speedup relative to a single thread.

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

func readReports(path string) ([]sweepReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var rows []sweepReport
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1<<20), 1<<20)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var r sweepReport
		if err := json.Unmarshal(line, &r); err != nil {
			fmt.Fprintf(os.Stderr, "skipping row: %v\n", err)
			continue
		}
		if r.OK {
			rows = append(rows, r)
		}
	}
	return rows, sc.Err()
}

func main() {
	in := flag.String("in", "gcdsweep.jsonl", "sweep report path")
	out := flag.String("out", "gcd_sweep.html", "output HTML path")
	flag.Parse()

	rows, err := readReports(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", *in, err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "no usable sweep rows")
		os.Exit(1)
	}

	bydSeed := make(map[string][]sweepReport)
	threadSet := make(map[int]bool)
	for _, r := range rows {
		bydSeed[r.Seed] = append(bydSeed[r.Seed], r)
		threadSet[r.Threads] = true
	}
	var threadAxis []int
	for t := range threadSet {
		threadAxis = append(threadAxis, t)
	}
	sort.Ints(threadAxis)
	axisLabels := make([]string, len(threadAxis))
	for i, t := range threadAxis {
		axisLabels[i] = fmt.Sprint(t)
	}

	page := components.NewPage().SetPageTitle("GCD engine thread sweep")

	wall := charts.NewLine()
	wall.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Wall time vs. threads"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "threads"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ms"}),
	)
	wall.SetXAxis(axisLabels)

	speedup := charts.NewLine()
	speedup.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Speedup vs. single thread"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "threads"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "x"}),
	)
	speedup.SetXAxis(axisLabels)

	var seeds []string
	for s := range bydSeed {
		seeds = append(seeds, s)
	}
	sort.Strings(seeds)

	for _, s := range seeds {
		group := bydSeed[s]
		wallByThreads := make(map[int]float64)
		for _, r := range group {
			wallByThreads[r.Threads] = float64(r.WallUS) / 1000.0
		}
		var wallData []opts.LineData
		var speedData []opts.LineData
		base := wallByThreads[threadAxis[0]]
		for _, t := range threadAxis {
			w, ok := wallByThreads[t]
			if !ok {
				wallData = append(wallData, opts.LineData{Value: nil})
				speedData = append(speedData, opts.LineData{Value: nil})
				continue
			}
			wallData = append(wallData, opts.LineData{Value: w})
			if base > 0 {
				speedData = append(speedData, opts.LineData{Value: base / w})
			} else {
				speedData = append(speedData, opts.LineData{Value: nil})
			}
		}
		wall.AddSeries(s, wallData)
		speedup.AddSeries(s, speedData)
	}

	page.AddCharts(wall, speedup)
	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create %s: %v\n", *out, err)
		os.Exit(1)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d rows, %d configurations)\n", *out, len(rows), len(seeds))
}

package main

import (
	"flag"

	"github.com/liserjrqlxue/goUtil/simpleUtil"

	stressDiff "StressDiff/pkg/stressDiff"
)

// flag
var (
	pantherDir = flag.String(
		"p",
		"PANTHER_results",
		"directory holding the four <condition>_analysis.txt exports",
	)
	outDir = flag.String(
		"o",
		".",
		"output directory, tables go to top_GO_terms/ below it",
	)
	alpha = flag.Float64(
		"alpha",
		0.05,
		"FDR cutoff",
	)
	topN = flag.Int(
		"top",
		15,
		"terms kept per condition in the top-N exports",
	)
)

func main() {
	flag.Parse()

	var th = stressDiff.DefaultThresholds()
	th.Alpha = *alpha
	th.TopN = *topN

	var batch = &stressDiff.Batch{
		PantherDir: *pantherDir,
		OutDir:     *outDir,
		Th:         th,
	}
	simpleUtil.CheckErr(batch.Panther())
}

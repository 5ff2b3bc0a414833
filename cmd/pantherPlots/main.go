package main

import (
	"flag"

	"github.com/liserjrqlxue/goUtil/simpleUtil"

	stressDiff "StressDiff/pkg/stressDiff"
)

// flag
var (
	outDir = flag.String(
		"o",
		".",
		"run directory holding top_GO_terms/, plots go to GO_plots/ below it",
	)
	topN = flag.Int(
		"top",
		15,
		"terms shown per condition in the bar charts",
	)
)

func main() {
	flag.Parse()

	var th = stressDiff.DefaultThresholds()
	th.TopN = *topN

	var batch = &stressDiff.Batch{
		OutDir: *outDir,
		Th:     th,
	}
	simpleUtil.CheckErr(batch.LoadGOExports())
	simpleUtil.CheckErr(batch.GOPlots())
}

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
		"run directory holding top_GO_terms/",
	)
)

func main() {
	flag.Parse()

	var batch = &stressDiff.Batch{
		OutDir: *outDir,
		Th:     stressDiff.DefaultThresholds(),
	}
	simpleUtil.CheckErr(batch.LoadGOExports())
	simpleUtil.CheckErr(batch.OverlapSummary())
}

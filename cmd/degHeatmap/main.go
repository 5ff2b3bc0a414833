package main

import (
	"flag"

	"github.com/liserjrqlxue/goUtil/simpleUtil"

	stressDiff "StressDiff/pkg/stressDiff"
)

// flag
var (
	dataDir = flag.String(
		"d",
		"DESeq2_datasets",
		"directory scanned for heat/salt exports when -heat/-salt are omitted",
	)
	heat = flag.String(
		"heat",
		"",
		"heat DESeq2 tabular export",
	)
	salt = flag.String(
		"salt",
		"",
		"salt DESeq2 tabular export",
	)
	outDir = flag.String(
		"o",
		".",
		"output directory, the heatmap goes to plots/ below it",
	)
	padjMax = flag.Float64(
		"padj",
		0.05,
		"max adjusted p-value",
	)
	lfcMin = flag.Float64(
		"lfc",
		2.0,
		"min |log2FoldChange|",
	)
	topN = flag.Int(
		"top",
		500,
		"number of strongest genes kept",
	)
)

func main() {
	flag.Parse()

	var th = stressDiff.HeatmapThresholds()
	th.PadjMax = *padjMax
	th.LFCMin = *lfcMin
	th.TopN = *topN

	var batch = &stressDiff.Batch{
		DataDir:  *dataDir,
		HeatPath: *heat,
		SaltPath: *salt,
		OutDir:   *outDir,
		DEGTh:    th,
	}
	simpleUtil.CheckErr(batch.DetectInputs())
	simpleUtil.CheckErr(batch.DEGHeatmap())
}

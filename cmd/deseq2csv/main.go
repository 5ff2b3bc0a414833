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
		"output directory, significant CSVs go to CSV_datasets/ below it",
	)
	padjMax = flag.Float64(
		"padj",
		0.05,
		"max adjusted p-value",
	)
	lfcMin = flag.Float64(
		"lfc",
		1.0,
		"min |log2FoldChange|",
	)
)

func main() {
	flag.Parse()

	var th = stressDiff.DefaultThresholds()
	th.PadjMax = *padjMax
	th.LFCMin = *lfcMin

	var batch = &stressDiff.Batch{
		DataDir:  *dataDir,
		HeatPath: *heat,
		SaltPath: *salt,
		OutDir:   *outDir,
		Th:       th,
	}
	simpleUtil.CheckErr(batch.DetectInputs())
	simpleUtil.CheckErr(batch.Genes())
}

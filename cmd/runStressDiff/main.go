package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/liserjrqlxue/goUtil/simpleUtil"

	"StressDiff/pkg/notify"
	stressDiff "StressDiff/pkg/stressDiff"
)

// flag
var (
	dataDir = flag.String(
		"d",
		"DESeq2_datasets",
		"directory scanned for heat/salt DESeq2 exports",
	)
	pantherDir = flag.String(
		"p",
		"",
		"directory with the four PANTHER <condition>_analysis.txt exports, GO stages skipped when empty",
	)
	heat = flag.String(
		"heat",
		"",
		"heat DESeq2 tabular export, overrides auto-detection",
	)
	salt = flag.String(
		"salt",
		"",
		"salt DESeq2 tabular export, overrides auto-detection",
	)
	outDir = flag.String(
		"o",
		".",
		"output directory",
	)
	padjMax = flag.Float64(
		"padj",
		0.05,
		"max adjusted p-value for significant genes",
	)
	lfcMin = flag.Float64(
		"lfc",
		1.0,
		"min |log2FoldChange| for significant genes",
	)
	alpha = flag.Float64(
		"alpha",
		0.05,
		"FDR cutoff for GO terms",
	)
	topN = flag.Int(
		"top",
		15,
		"GO terms kept per condition",
	)
	heatmapLFC = flag.Float64(
		"heatmapLFC",
		2.0,
		"min |log2FoldChange| for the DEG heatmap",
	)
	heatmapTop = flag.Int(
		"heatmapTop",
		500,
		"strongest genes kept in the DEG heatmap",
	)
	webhook = flag.String(
		"webhook",
		"",
		"WeChat Work webhook key for the completion notice, empty disables it",
	)
)

func main() {
	flag.Parse()

	var th = stressDiff.DefaultThresholds()
	th.PadjMax = *padjMax
	th.LFCMin = *lfcMin
	th.Alpha = *alpha
	th.TopN = *topN

	var degTh = stressDiff.HeatmapThresholds()
	degTh.PadjMax = *padjMax
	degTh.LFCMin = *heatmapLFC
	degTh.TopN = *heatmapTop

	var batch = &stressDiff.Batch{
		DataDir:    *dataDir,
		PantherDir: *pantherDir,
		OutDir:     *outDir,
		HeatPath:   *heat,
		SaltPath:   *salt,
		Th:         th,
		DEGTh:      degTh,
	}
	var sender = notify.NewSender(*webhook)
	if err := batch.Run(); err != nil {
		_ = sender.SendText(fmt.Sprintf("stress-diff run failed: %v", err), nil, nil)
		simpleUtil.CheckErr(err)
	}
	if err := sender.SendMarkdown(fmt.Sprintf("**stress-diff run finished**\n>output: %s", *outDir)); err != nil {
		log.Printf("notification failed: %v", err)
	}
}

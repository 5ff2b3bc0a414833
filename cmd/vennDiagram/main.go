package main

import (
	"flag"
	"path/filepath"

	"github.com/liserjrqlxue/goUtil/simpleUtil"

	stressDiff "StressDiff/pkg/stressDiff"
)

// flag
var (
	saltCSV = flag.String(
		"salt",
		filepath.Join("CSV_datasets", "salt_significant_genes.csv"),
		"salt significant-gene CSV",
	)
	heatCSV = flag.String(
		"heat",
		filepath.Join("CSV_datasets", "heat_significant_genes.csv"),
		"heat significant-gene CSV",
	)
	output = flag.String(
		"o",
		filepath.Join("plots", "venn_salt_heat.png"),
		"output PNG (a PDF sibling is written too)",
	)
)

func main() {
	flag.Parse()

	var salt = simpleUtil.HandleError(stressDiff.LoadSignificantCSV(*saltCSV))
	var heat = simpleUtil.HandleError(stressDiff.LoadSignificantCSV(*heatCSV))

	var s = stressDiff.Overlap(salt.GeneSet(), heat.GeneSet())
	simpleUtil.CheckErr(stressDiff.PlotVenn(
		"Salt Stress", "Heat Stress",
		s.NA-s.NIntersection, s.NB-s.NIntersection, s.NIntersection,
		"Overlap of Significant Genes in Salt and Heat Stress",
		*output,
	))
}

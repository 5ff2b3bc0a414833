package main

import (
	"flag"
	"log"
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
	outDir = flag.String(
		"o",
		"sorted_gene_subsets",
		"output directory",
	)
)

func main() {
	flag.Parse()

	var salt = simpleUtil.HandleError(stressDiff.LoadSignificantCSV(*saltCSV))
	var heat = simpleUtil.HandleError(stressDiff.LoadSignificantCSV(*heatCSV))

	var merged = stressDiff.Merge(salt, heat)
	var both, onlySalt, onlyHeat = stressDiff.Partition(merged)
	log.Printf("common genes: %d, salt-only: %d, heat-only: %d", len(both), len(onlySalt), len(onlyHeat))

	simpleUtil.CheckErr(stressDiff.WriteMergedCSV(filepath.Join(*outDir, "both_stress_genes.csv"), both, "salt", "heat"))
	simpleUtil.CheckErr(stressDiff.WriteMergedCSV(filepath.Join(*outDir, "only_salt_genes.csv"), onlySalt, "salt", "heat"))
	simpleUtil.CheckErr(stressDiff.WriteMergedCSV(filepath.Join(*outDir, "only_heat_genes.csv"), onlyHeat, "salt", "heat"))
}

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
	output = flag.String(
		"o",
		filepath.Join("merged_dataset", "merged_salt_heat_genes.csv"),
		"merged output CSV",
	)
)

func main() {
	flag.Parse()

	var salt = simpleUtil.HandleError(stressDiff.LoadSignificantCSV(*saltCSV))
	var heat = simpleUtil.HandleError(stressDiff.LoadSignificantCSV(*heatCSV))

	var merged = stressDiff.Merge(salt, heat)
	simpleUtil.CheckErr(stressDiff.WriteMergedCSV(*output, merged, "salt", "heat"))
	log.Printf("merged dataset saved: %s (n=%d)", *output, len(merged))
}

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
	subsetDir = flag.String(
		"i",
		"sorted_gene_subsets",
		"directory holding the partition CSVs",
	)
	outDir = flag.String(
		"o",
		"significant_gene_ids",
		"output directory for the ID lists",
	)
)

// Partition CSV per output prefix.
var subsets = map[string]string{
	"salt": "only_salt_genes.csv",
	"heat": "only_heat_genes.csv",
	"both": "both_stress_genes.csv",
}

func main() {
	flag.Parse()

	for prefix, name := range subsets {
		var table = simpleUtil.HandleError(
			stressDiff.LoadSignificantCSV(filepath.Join(*subsetDir, name)),
		)

		var up = filepath.Join(*outDir, prefix+"_up.txt")
		var down = filepath.Join(*outDir, prefix+"_down.txt")
		simpleUtil.CheckErr(stressDiff.WriteIDList(up, table.Subset("up")))
		simpleUtil.CheckErr(stressDiff.WriteIDList(down, table.Subset("down")))
		log.Printf("saved: %s, %s", up, down)
	}
}

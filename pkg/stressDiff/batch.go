package stressDiff

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cloudflare/ahocorasick"
	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

// Input file extensions accepted by the heat/salt auto-detection.
var tabularExts = map[string]bool{
	".tabular": true,
	".tsv":     true,
	".txt":     true,
}

// Batch drives the whole pipeline: load, filter, partition, export, plot.
type Batch struct {
	DataDir    string // DESeq2 exports
	PantherDir string // PANTHER exports, stage skipped when empty
	OutDir     string

	// Explicit input mapping; auto-detection fills empty paths.
	HeatPath string
	SaltPath string

	Th    Thresholds // gene/GO significance run
	DEGTh Thresholds // stricter heatmap run

	heatSig *GeneTable
	saltSig *GeneTable
	merged  []MergedRow
	both    []MergedRow
	onlyA   []MergedRow
	onlyB   []MergedRow

	sigGO map[string]*GOTable
	topGO []*GOTable
}

// DetectInputs resolves the heat and salt input files. Explicit paths win;
// otherwise the data directory is scanned and filenames are matched on
// condition keywords, which is logged rather than silent.
func (batch *Batch) DetectInputs() error {
	if batch.HeatPath != "" && batch.SaltPath != "" {
		return nil
	}
	entries, err := os.ReadDir(batch.DataDir)
	if err != nil {
		return &NotFoundError{Path: batch.DataDir, Msg: "input directory missing"}
	}

	var (
		matcher    = ahocorasick.NewStringMatcher([]string{"heat", "salt"})
		candidates = map[int][]string{}
	)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		var name = entry.Name()
		var ext = filepath.Ext(gz.ReplaceAllString(name, ""))
		if !tabularExts[ext] {
			continue
		}
		for _, hit := range matcher.Match([]byte(strings.ToLower(name))) {
			candidates[hit] = append(candidates[hit], name)
		}
	}

	var pick = func(names []string) string {
		if len(names) == 0 {
			return ""
		}
		sort.SliceStable(names, func(i, j int) bool {
			var a, b = strings.ToLower(names[i]), strings.ToLower(names[j])
			if x, y := strings.Contains(a, "deseq"), strings.Contains(b, "deseq"); x != y {
				return x
			}
			if x, y := strings.Contains(a, "result"), strings.Contains(b, "result"); x != y {
				return x
			}
			return len(a) < len(b)
		})
		return filepath.Join(batch.DataDir, names[0])
	}

	if batch.HeatPath == "" {
		batch.HeatPath = pick(candidates[0])
		slog.Info("auto-detected input", "condition", "heat", "file", batch.HeatPath)
	}
	if batch.SaltPath == "" {
		batch.SaltPath = pick(candidates[1])
		slog.Info("auto-detected input", "condition", "salt", "file", batch.SaltPath)
	}
	if batch.HeatPath == "" || batch.SaltPath == "" {
		return &NotFoundError{
			Path: batch.DataDir,
			Msg:  `no heat/salt files detected; filenames must contain "heat" and "salt"`,
		}
	}
	return nil
}

// Genes loads both DESeq2 exports, applies the significance filter and
// writes the labeled significant-gene CSVs.
func (batch *Batch) Genes() error {
	heat, err := LoadDESeq2(batch.HeatPath)
	if err != nil {
		return err
	}
	salt, err := LoadDESeq2(batch.SaltPath)
	if err != nil {
		return err
	}
	batch.heatSig = heat.Significant(batch.Th)
	batch.heatSig.Label = "heat"
	batch.saltSig = salt.Significant(batch.Th)
	batch.saltSig.Label = "salt"
	if len(batch.heatSig.Records) == 0 && len(batch.saltSig.Records) == 0 {
		return &EmptyResultError{Msg: "no significant genes in either condition"}
	}

	slog.Info("significant genes", "heat", len(batch.heatSig.Records), "salt", len(batch.saltSig.Records))
	if err := WriteGeneCSV(filepath.Join(batch.OutDir, "CSV_datasets", "heat_significant_genes.csv"), batch.heatSig); err != nil {
		return err
	}
	return WriteGeneCSV(filepath.Join(batch.OutDir, "CSV_datasets", "salt_significant_genes.csv"), batch.saltSig)
}

// Subsets outer-joins the two significant sets and writes the merged
// table and the both/only_salt/only_heat partition.
func (batch *Batch) Subsets() error {
	batch.merged = Merge(batch.saltSig, batch.heatSig)
	batch.both, batch.onlyA, batch.onlyB = Partition(batch.merged)
	slog.Info("gene partition",
		"both", len(batch.both),
		"only_salt", len(batch.onlyA),
		"only_heat", len(batch.onlyB),
	)

	var subsetDir = filepath.Join(batch.OutDir, "sorted_gene_subsets")
	if err := WriteMergedCSV(filepath.Join(subsetDir, "both_stress_genes.csv"), batch.both, "salt", "heat"); err != nil {
		return err
	}
	if err := WriteMergedCSV(filepath.Join(subsetDir, "only_salt_genes.csv"), batch.onlyA, "salt", "heat"); err != nil {
		return err
	}
	if err := WriteMergedCSV(filepath.Join(subsetDir, "only_heat_genes.csv"), batch.onlyB, "salt", "heat"); err != nil {
		return err
	}
	return WriteMergedCSV(filepath.Join(batch.OutDir, "merged_dataset", "merged_salt_heat_genes.csv"), batch.merged, "salt", "heat")
}

// mergedTable flattens join rows back to a gene table, preferring the A
// side of each row for the non-key fields.
func mergedTable(rows []MergedRow) *GeneTable {
	var t = new(GeneTable)
	for _, row := range rows {
		var r = row.A
		if r == nil {
			r = row.B
		}
		t.Records = append(t.Records, *r)
	}
	return t
}

// GeneIDs writes one-identifier-per-line up/down lists for each partition.
func (batch *Batch) GeneIDs() error {
	var idDir = filepath.Join(batch.OutDir, "significant_gene_ids")
	for prefix, rows := range map[string][]MergedRow{
		"salt": batch.onlyA,
		"heat": batch.onlyB,
		"both": batch.both,
	} {
		var t = mergedTable(rows)
		if err := WriteIDList(filepath.Join(idDir, prefix+"_up.txt"), t.Subset("up")); err != nil {
			return err
		}
		if err := WriteIDList(filepath.Join(idDir, prefix+"_down.txt"), t.Subset("down")); err != nil {
			return err
		}
	}
	return nil
}

// Venn draws the two-set membership diagram of significant gene IDs.
func (batch *Batch) Venn() error {
	return PlotVenn(
		"Salt Stress", "Heat Stress",
		len(batch.onlyA), len(batch.onlyB), len(batch.both),
		"Overlap of Significant Genes in Salt and Heat Stress",
		filepath.Join(batch.OutDir, "plots", "venn_salt_heat.png"),
	)
}

// DEGHeatmap re-filters with the stricter heatmap thresholds, pivots the
// four condition/direction columns and renders the top-N heatmap.
func (batch *Batch) DEGHeatmap() error {
	heat, err := LoadDESeq2(batch.HeatPath)
	if err != nil {
		return err
	}
	salt, err := LoadDESeq2(batch.SaltPath)
	if err != nil {
		return err
	}
	var pivot = NewDEGPivot(heat.Significant(batch.DEGTh), salt.Significant(batch.DEGTh))
	if len(pivot.Rows) == 0 {
		return &EmptyResultError{Msg: "no significant DEGs at the heatmap thresholds"}
	}
	pivot.TopNByAbs(batch.DEGTh.TopN)
	pivot.SortByMaxAsc()
	return PlotDEGHeatmap(
		pivot,
		"Significant DEGs Across Heat/Salt and Up/Down-Regulated Sets",
		filepath.Join(batch.OutDir, "plots", "DEG_heatmap_top500.png"),
	)
}

// Panther loads the four PANTHER exports, filters by FDR and writes the
// significant TSVs, top-N CSVs and the combined cross-condition CSV.
func (batch *Batch) Panther() error {
	batch.sigGO = make(map[string]*GOTable)
	var exportDir = filepath.Join(batch.OutDir, "top_GO_terms")
	for _, cond := range Conditions {
		table, err := LoadPanther(filepath.Join(batch.PantherDir, cond+"_analysis.txt"))
		if err != nil {
			return err
		}
		table.Condition = cond

		var sig = table.Significant(batch.Th.Alpha)
		batch.sigGO[cond] = sig
		var top = sig.TopN(batch.Th.TopN)
		top.Condition = cond
		batch.topGO = append(batch.topGO, top)

		if err := WriteGOTable(filepath.Join(exportDir, cond+"_GO_significant.tsv"), sig, '\t'); err != nil {
			return err
		}
		if err := WriteGOTable(filepath.Join(exportDir, cond+"_GO_top15.csv"), top, ','); err != nil {
			return err
		}
	}
	return WriteCombinedGO(filepath.Join(exportDir, "all_conditions_GO_top15.csv"), batch.topGO)
}

// LoadGOExports populates the GO tables from a previous Panther stage by
// reading the exported files back, so the plotting stages can run as a
// separate process. A missing combined CSV falls back to re-ranking the
// significant tables.
func (batch *Batch) LoadGOExports() error {
	var exportDir = filepath.Join(batch.OutDir, "top_GO_terms")
	batch.sigGO = make(map[string]*GOTable)
	batch.topGO = nil
	for _, cond := range Conditions {
		sig, err := LoadGOExport(filepath.Join(exportDir, cond+"_GO_significant.tsv"), '\t')
		if err != nil {
			return err
		}
		sig.Condition = cond
		batch.sigGO[cond] = sig
	}

	combined, err := LoadGOExport(filepath.Join(exportDir, "all_conditions_GO_top15.csv"), ',')
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		slog.Info("no combined export, re-ranking significant tables")
		for _, cond := range Conditions {
			var top = batch.sigGO[cond].TopN(batch.Th.TopN)
			top.Condition = cond
			batch.topGO = append(batch.topGO, top)
		}
		return nil
	}
	tables, err := SplitByCondition(combined)
	if err != nil {
		return err
	}
	batch.topGO = tables
	return nil
}

// GOPlots renders the per-condition bar charts, the count and shared-count
// charts, the pivoted GO-term heatmap and the overlap summaries.
func (batch *Batch) GOPlots() error {
	var plotsDir = filepath.Join(batch.OutDir, "GO_plots")

	for _, cond := range Conditions {
		var sig = batch.sigGO[cond]
		if err := PlotTopTermsBar(
			sig, batch.Th.TopN,
			cond+": Top enriched GO terms (by FDR)",
			filepath.Join(plotsDir, cond+"_top15_bar.png"),
		); err != nil {
			return err
		}
		if err := HTMLTopTermsBar(
			sig, batch.Th.TopN,
			cond+": Top enriched GO terms (by FDR)",
			filepath.Join(plotsDir, cond+"_top15_bar.html"),
		); err != nil {
			return err
		}
	}

	var (
		counts    = make(map[string]int)
		countList []int
	)
	for _, cond := range Conditions {
		counts[cond] = len(batch.sigGO[cond].Records)
		countList = append(countList, counts[cond])
	}
	if err := PlotCountBar(
		Conditions, countList,
		"# significant GO terms (FDR <= 0.05)",
		"Number of Enriched GO Terms Per Condition",
		filepath.Join(plotsDir, "sig_term_counts.png"),
	); err != nil {
		return err
	}
	if err := HTMLCountBar(
		Conditions, countList,
		"Number of Enriched GO Terms Per Condition",
		filepath.Join(plotsDir, "sig_term_counts.html"),
	); err != nil {
		return err
	}

	var (
		sharedUp   = SharedKeys(batch.sigGO["heat_up"].TermSet(), batch.sigGO["salt_up"].TermSet())
		sharedDown = SharedKeys(batch.sigGO["heat_down"].TermSet(), batch.sigGO["salt_down"].TermSet())
	)
	if err := WriteSharedTerms(filepath.Join(plotsDir, "overlapping_genes.txt"), sharedUp, sharedDown); err != nil {
		return err
	}
	if err := PlotCountBar(
		[]string{"heat_up & salt_up", "heat_down & salt_down"},
		[]int{len(sharedUp), len(sharedDown)},
		"# shared significant GO terms",
		"Overlap of Enriched Processes (heat vs salt)",
		filepath.Join(plotsDir, "shared_counts.png"),
	); err != nil {
		return err
	}

	var pivot = NewGOPivot(batch.topGO)
	pivot.SortByMaxAsc()
	if err := PlotGOHeatmap(
		pivot,
		"Top GO terms across conditions (missing=0)",
		filepath.Join(plotsDir, "top_terms_heatmap.png"),
	); err != nil {
		return err
	}

	return WriteSummaryCounts(
		filepath.Join(plotsDir, "plot_summary_numbers.csv"),
		counts, len(sharedUp), len(sharedDown),
	)
}

// OverlapSummary computes the normalized overlap statistics for the two
// direction-matched comparisons and writes the CSV and xlsx summaries.
func (batch *Batch) OverlapSummary() error {
	var up = Overlap(batch.sigGO["heat_up"].TermSet(), batch.sigGO["salt_up"].TermSet())
	up.Comparison = "heat_up vs salt_up"
	var down = Overlap(batch.sigGO["heat_down"].TermSet(), batch.sigGO["salt_down"].TermSet())
	down.Comparison = "heat_down vs salt_down"
	var stats = []OverlapStats{up, down}

	if err := WriteOverlapCSV(filepath.Join(batch.OutDir, "GO_plots", "overlap_normalization_summary.csv"), stats); err != nil {
		return err
	}

	var counts = make(map[string]int)
	for _, cond := range Conditions {
		counts[cond] = len(batch.sigGO[cond].Records)
	}
	return WriteSummaryXlsx(filepath.Join(batch.OutDir, "summary.xlsx"), counts, stats)
}

// WriteManifest records the resolved inputs and thresholds of the run.
func (batch *Batch) WriteManifest(path string) {
	var file = osUtil.Create(path)
	defer simpleUtil.DeferClose(file)

	fmtUtil.FprintStringArray(file, []string{"key", "value"}, "\t")
	fmtUtil.Fprintf(file, "heat\t%s\n", batch.HeatPath)
	fmtUtil.Fprintf(file, "salt\t%s\n", batch.SaltPath)
	fmtUtil.Fprintf(file, "panther\t%s\n", batch.PantherDir)
	fmtUtil.Fprintf(file, "padj_max\t%g\n", batch.Th.PadjMax)
	fmtUtil.Fprintf(file, "lfc_min\t%g\n", batch.Th.LFCMin)
	fmtUtil.Fprintf(file, "alpha\t%g\n", batch.Th.Alpha)
	fmtUtil.Fprintf(file, "top_n\t%d\n", batch.Th.TopN)
	fmtUtil.Fprintf(file, "heatmap_lfc_min\t%g\n", batch.DEGTh.LFCMin)
	fmtUtil.Fprintf(file, "heatmap_top_n\t%d\n", batch.DEGTh.TopN)
}

// Run executes every stage in dependency order.
func (batch *Batch) Run() error {
	var now = time.Now()

	if err := os.MkdirAll(batch.OutDir, 0755); err != nil {
		return err
	}
	if err := batch.DetectInputs(); err != nil {
		return err
	}
	batch.WriteManifest(filepath.Join(batch.OutDir, "info.txt"))

	if err := batch.Genes(); err != nil {
		return err
	}
	if err := batch.Subsets(); err != nil {
		return err
	}
	if err := batch.GeneIDs(); err != nil {
		return err
	}
	if err := batch.Venn(); err != nil {
		return err
	}
	if err := batch.DEGHeatmap(); err != nil {
		return err
	}

	if batch.PantherDir == "" {
		slog.Info("no PANTHER directory, skipping GO stages")
		slog.Info("Done", "time", time.Since(now))
		return nil
	}
	if err := batch.Panther(); err != nil {
		return err
	}
	if err := batch.GOPlots(); err != nil {
		return err
	}
	if err := batch.OverlapSummary(); err != nil {
		return err
	}

	slog.Info("Done", "time", time.Since(now))
	return nil
}

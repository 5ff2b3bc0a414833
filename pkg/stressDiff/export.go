package stressDiff

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

func mkdirFor(path string) error {
	var dir = filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeDelimited(path string, comma rune, rows [][]string) error {
	if err := mkdirFor(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var w = csv.NewWriter(file)
	w.Comma = comma
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// WriteGeneCSV writes a canonical gene table as CSV with the regulation
// column appended. No index column is written.
func WriteGeneCSV(path string, t *GeneTable) error {
	var rows = [][]string{{"gene_id", "log2FoldChange", "padj", "regulation"}}
	for _, r := range t.Records {
		rows = append(rows, []string{r.Gene, formatFloat(r.Log2FC), formatFloat(r.Padj), r.Regulation})
	}
	return writeDelimited(path, ',', rows)
}

func sideCells(r *GeneRecord) []string {
	if r == nil {
		return []string{"", "", ""}
	}
	return []string{formatFloat(r.Log2FC), formatFloat(r.Padj), r.Regulation}
}

// WriteMergedCSV writes outer-join rows with the non-key columns of each
// side suffixed by its label. Cells of an absent side stay empty.
func WriteMergedCSV(path string, merged []MergedRow, labelA, labelB string) error {
	var rows = [][]string{{
		"gene_id",
		"log2FoldChange_" + labelA, "padj_" + labelA, "regulation_" + labelA,
		"log2FoldChange_" + labelB, "padj_" + labelB, "regulation_" + labelB,
	}}
	for _, row := range merged {
		var cells = []string{row.Gene}
		cells = append(cells, sideCells(row.A)...)
		cells = append(cells, sideCells(row.B)...)
		rows = append(rows, cells)
	}
	return writeDelimited(path, ',', rows)
}

// WriteIDList writes one gene identifier per line, no header.
func WriteIDList(path string, t *GeneTable) error {
	if err := mkdirFor(path); err != nil {
		return err
	}
	var out = osUtil.Create(path)
	defer simpleUtil.DeferClose(out)
	for _, r := range t.Records {
		fmtUtil.Fprintln(out, r.Gene)
	}
	return nil
}

// WriteGOTable writes a GO-term table full width, preserving the input
// columns with the FDR column already renamed.
func WriteGOTable(path string, g *GOTable, comma rune) error {
	var rows = [][]string{g.Header}
	for _, r := range g.Records {
		var cells = r.Fields
		if len(cells) < len(g.Header) {
			cells = append(append([]string{}, cells...), make([]string, len(g.Header)-len(cells))...)
		}
		rows = append(rows, cells)
	}
	return writeDelimited(path, comma, rows)
}

// WriteCombinedGO concatenates tables into one cross-condition CSV with a
// condition column, the shape the pivoted heatmap consumes.
func WriteCombinedGO(path string, tables []*GOTable) error {
	var rows = [][]string{{"condition", "GO_term", "FDR"}}
	for _, g := range tables {
		for _, r := range g.Records {
			rows = append(rows, []string{g.Condition, r.Term, formatFloat(r.FDR)})
		}
	}
	return writeDelimited(path, ',', rows)
}

// WriteOverlapCSV writes overlap summaries, one comparison per row.
func WriteOverlapCSV(path string, stats []OverlapStats) error {
	var rows = [][]string{{
		"comparison",
		"n_A", "n_B",
		"n_intersection", "n_union",
		"jaccard", "overlap_coefficient",
		"pct_of_A_shared", "pct_of_B_shared",
	}}
	for _, s := range stats {
		rows = append(rows, []string{
			s.Comparison,
			strconv.Itoa(s.NA), strconv.Itoa(s.NB),
			strconv.Itoa(s.NIntersection), strconv.Itoa(s.NUnion),
			formatFloat(s.Jaccard), formatFloat(s.OverlapCoefficient),
			formatFloat(s.PctOfAShared), formatFloat(s.PctOfBShared),
		})
	}
	return writeDelimited(path, ',', rows)
}

// WriteSharedTerms writes the shared up- and down-regulated term listings.
func WriteSharedTerms(path string, up, down []string) error {
	if err := mkdirFor(path); err != nil {
		return err
	}
	var out = osUtil.Create(path)
	defer simpleUtil.DeferClose(out)

	fmtUtil.Fprintf(out, "Overlapping UP GO terms: %d\n", len(up))
	for _, term := range up {
		fmtUtil.Fprintln(out, term)
	}
	fmtUtil.Fprintf(out, "\nOverlapping DOWN GO terms: %d\n", len(down))
	for _, term := range down {
		fmtUtil.Fprintln(out, term)
	}
	return nil
}

// WriteSummaryCounts writes the small per-condition summary table.
func WriteSummaryCounts(path string, counts map[string]int, sharedUp, sharedDown int) error {
	var rows = [][]string{{"condition", "n_sig_terms", "shared_up_terms", "shared_down_terms"}}
	for _, cond := range Conditions {
		rows = append(rows, []string{
			cond,
			strconv.Itoa(counts[cond]),
			strconv.Itoa(sharedUp),
			strconv.Itoa(sharedDown),
		})
	}
	return writeDelimited(path, ',', rows)
}

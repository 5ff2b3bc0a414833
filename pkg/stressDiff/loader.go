package stressDiff

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// Column aliases accepted by the normalizer, in resolution order.
var (
	geneAliases = []string{"gene", "id", "Gene", "gene_id", "Name", "name"}
	lfcAliases  = []string{"log2FoldChange", "logFC"}
	padjAliases = []string{"padj", "FDR", "qvalue"}
	termAliases = []string{"GO_term", "GO biological process complete"}
)

// Positional layouts assumed for headerless DESeq2 exports.
var (
	deseq2Cols7 = []string{"gene", "baseMean", "log2FoldChange", "lfcSE", "stat", "pvalue", "padj"}
	deseq2Cols6 = []string{"gene", "baseMean", "log2FoldChange", "lfcSE", "pvalue", "padj"}
)

// headerTokens mark a first data line as a header row.
var headerTokens = map[string]bool{
	"log2FoldChange": true,
	"padj":           true,
	"pvalue":         true,
	"baseMean":       true,
}

func indexOf(header []string, aliases []string) int {
	for _, a := range aliases {
		for i, h := range header {
			if h == a {
				return i
			}
		}
	}
	return -1
}

// LoadDESeq2 reads a DESeq2-style tab-delimited export, headered or
// headerless, and normalizes it to the canonical (gene, log2FC, padj)
// table. Blank lines and #-comments are skipped; rows with non-numeric
// fold change or padj are dropped as missing data.
func LoadDESeq2(path string) (*GeneTable, error) {
	scanner, closeFn, err := openScanner(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	var lines []string
	for scanner.Scan() {
		var s = strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(s) == "" || strings.HasPrefix(s, "#") {
			continue
		}
		lines = append(lines, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, &FormatError{Path: path, Msg: "empty or comment-only file"}
	}

	var (
		header []string
		data   = lines
		tokens = strings.Split(lines[0], "\t")
	)
	var headerLike bool
	for _, tok := range tokens {
		if headerTokens[tok] {
			headerLike = true
			break
		}
	}
	if headerLike {
		header = tokens
		data = lines[1:]
	} else {
		switch {
		case len(tokens) >= 7:
			header = deseq2Cols7
		case len(tokens) == 6:
			header = deseq2Cols6
		default:
			return nil, &FormatError{
				Path: path,
				Msg:  fmt.Sprintf("%d columns without header; expected 6 or 7", len(tokens)),
			}
		}
	}

	var geneIdx = indexOf(header, geneAliases)
	if geneIdx < 0 {
		geneIdx = 0
	}
	var lfcIdx = indexOf(header, lfcAliases)
	if lfcIdx < 0 {
		return nil, &FormatError{Path: path, Msg: "no fold-change column (tried " + strings.Join(lfcAliases, ", ") + ")"}
	}
	var padjIdx = indexOf(header, padjAliases)
	if padjIdx < 0 {
		return nil, &FormatError{Path: path, Msg: "no significance column (tried " + strings.Join(padjAliases, ", ") + ")"}
	}

	var table = new(GeneTable)
	for _, line := range data {
		var cells = strings.Split(line, "\t")
		if geneIdx >= len(cells) || lfcIdx >= len(cells) || padjIdx >= len(cells) {
			continue
		}
		lfc, err := strconv.ParseFloat(cells[lfcIdx], 64)
		if err != nil {
			continue
		}
		padj, err := strconv.ParseFloat(cells[padjIdx], 64)
		if err != nil {
			continue
		}
		table.Records = append(table.Records, GeneRecord{
			Gene:   cells[geneIdx],
			Log2FC: lfc,
			Padj:   padj,
		})
	}
	return table, nil
}

// pantherPreamble is the fixed number of report lines PANTHER writes
// before the column header.
const pantherPreamble = 11

// LoadPanther reads a PANTHER overrepresentation export: 11 preamble
// lines, then a header whose FDR column carries a tool-specific prefix
// ending in "(FDR)". The column is renamed to the canonical FDR name.
func LoadPanther(path string) (*GOTable, error) {
	scanner, closeFn, err := openScanner(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	for i := 0; i < pantherPreamble; i++ {
		if !scanner.Scan() {
			return nil, &FormatError{Path: path, Msg: "file shorter than the PANTHER preamble"}
		}
	}
	if !scanner.Scan() {
		return nil, &FormatError{Path: path, Msg: "no header after the PANTHER preamble"}
	}

	var (
		header = strings.Split(strings.TrimRight(scanner.Text(), "\r"), "\t")
		fdrIdx = -1
	)
	for i, h := range header {
		if strings.HasSuffix(h, "(FDR)") {
			fdrIdx = i
			break
		}
	}
	if fdrIdx < 0 {
		return nil, &FormatError{Path: path, Msg: `no column ending in "(FDR)"`}
	}
	header[fdrIdx] = "FDR"

	var termIdx = indexOf(header, termAliases)
	if termIdx < 0 {
		termIdx = 0
	}
	var (
		refIdx    = -1
		queryIdx  = -1
		expIdx    = -1
		foldIdx   = -1
		pvalueIdx = -1
	)
	for i, h := range header {
		switch {
		case strings.Contains(h, "REFLIST"):
			refIdx = i
		case strings.HasSuffix(h, "(expected)"):
			expIdx = i
		case strings.HasSuffix(h, "(fold Enrichment)"):
			foldIdx = i
		case strings.HasSuffix(h, "(raw P-value)"):
			pvalueIdx = i
		case i != termIdx && i != fdrIdx && countSuffix.MatchString(h):
			queryIdx = i
		}
	}

	var table = &GOTable{Header: header}
	for scanner.Scan() {
		var line = strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		var cells = strings.Split(line, "\t")
		if termIdx >= len(cells) || fdrIdx >= len(cells) {
			continue
		}
		fdr, err := strconv.ParseFloat(cells[fdrIdx], 64)
		if err != nil {
			continue
		}
		var r = GOTermRecord{
			Term:   strings.TrimSpace(cells[termIdx]),
			FDR:    fdr,
			Fields: cells,
		}
		if refIdx >= 0 && refIdx < len(cells) {
			r.RefCount, _ = strconv.Atoi(cells[refIdx])
		}
		if queryIdx >= 0 && queryIdx < len(cells) {
			r.QueryCount, _ = strconv.Atoi(cells[queryIdx])
		}
		if expIdx >= 0 && expIdx < len(cells) {
			r.Expected, _ = strconv.ParseFloat(cells[expIdx], 64)
		}
		if foldIdx >= 0 && foldIdx < len(cells) {
			r.FoldEnrichment, _ = strconv.ParseFloat(cells[foldIdx], 64)
		}
		if pvalueIdx >= 0 && pvalueIdx < len(cells) {
			r.PValue, _ = strconv.ParseFloat(cells[pvalueIdx], 64)
		}
		table.Records = append(table.Records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

// suffixedColumns returns every column whose name equals an alias or
// carries it as a label-suffixed form (alias_<label>), in column order.
func suffixedColumns(header []string, aliases []string) []int {
	var cols []int
	for i, h := range header {
		for _, a := range aliases {
			if h == a || strings.HasPrefix(h, a+"_") {
				cols = append(cols, i)
				break
			}
		}
	}
	return cols
}

func firstFloat(cells []string, cols []int) (float64, bool) {
	for _, i := range cols {
		if i >= len(cells) {
			continue
		}
		if v, err := strconv.ParseFloat(cells[i], 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

func firstNonEmpty(cells []string, cols []int) string {
	for _, i := range cols {
		if i < len(cells) && cells[i] != "" {
			return cells[i]
		}
	}
	return ""
}

// LoadSignificantCSV reads a significant-gene CSV written by WriteGeneCSV
// or a partition export written by WriteMergedCSV. Columns are matched by
// alias or by label-suffixed form; per row the first side carrying data
// wins, so one-sided partition rows load from whichever side is present.
func LoadSignificantCSV(path string) (*GeneTable, error) {
	reader, closeFn, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	var cr = csv.NewReader(reader)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &FormatError{Path: path, Msg: "empty file"}
	}

	var (
		header   = rows[0]
		geneIdx  = indexOf(header, []string{"gene_id", "gene"})
		lfcCols  = suffixedColumns(header, lfcAliases)
		padjCols = suffixedColumns(header, padjAliases)
		regCols  = suffixedColumns(header, []string{"regulation"})
	)
	if geneIdx < 0 || len(lfcCols) == 0 || len(padjCols) == 0 || len(regCols) == 0 {
		return nil, &FormatError{
			Path: path,
			Msg:  "missing required columns among gene_id, log2FoldChange, padj, regulation",
		}
	}

	var table = new(GeneTable)
	for _, cells := range rows[1:] {
		if geneIdx >= len(cells) {
			continue
		}
		lfc, ok := firstFloat(cells, lfcCols)
		if !ok {
			continue
		}
		padj, ok := firstFloat(cells, padjCols)
		if !ok {
			continue
		}
		table.Records = append(table.Records, GeneRecord{
			Gene:       cells[geneIdx],
			Log2FC:     lfc,
			Padj:       padj,
			Regulation: firstNonEmpty(cells, regCols),
		})
	}
	return table, nil
}

// LoadGOExport reads back a GO-term export written by WriteGOTable. The
// header is already canonical, so only the FDR column is required.
func LoadGOExport(path string, comma rune) (*GOTable, error) {
	reader, closeFn, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	var cr = csv.NewReader(reader)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &FormatError{Path: path, Msg: "empty file"}
	}

	var (
		header  = rows[0]
		fdrIdx  = indexOf(header, []string{"FDR"})
		termIdx = indexOf(header, termAliases)
	)
	if fdrIdx < 0 {
		return nil, &FormatError{Path: path, Msg: "no FDR column"}
	}
	if termIdx < 0 {
		termIdx = 0
	}

	var table = &GOTable{Header: header}
	for _, cells := range rows[1:] {
		if termIdx >= len(cells) || fdrIdx >= len(cells) {
			continue
		}
		fdr, err := strconv.ParseFloat(cells[fdrIdx], 64)
		if err != nil {
			continue
		}
		table.Records = append(table.Records, GOTermRecord{
			Term:   strings.TrimSpace(cells[termIdx]),
			FDR:    fdr,
			Fields: cells,
		})
	}
	return table, nil
}

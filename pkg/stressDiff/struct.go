package stressDiff

import (
	"fmt"
	"math"
	"sort"
)

// Condition labels, fixed order for plots and summaries.
var Conditions = []string{"heat_up", "heat_down", "salt_up", "salt_down"}

// Thresholds collects the cutoffs applied by the significance filters.
// Padj and FDR comparisons are inclusive (<=), matching the GO-term filter.
type Thresholds struct {
	PadjMax float64 // genes: padj <= PadjMax
	LFCMin  float64 // genes: |log2FC| >= LFCMin
	Alpha   float64 // GO terms: FDR <= Alpha
	TopN    int     // top-N selection by ascending FDR/padj
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		PadjMax: 0.05,
		LFCMin:  1.0,
		Alpha:   0.05,
		TopN:    15,
	}
}

// HeatmapThresholds are the stricter cutoffs used for the DEG heatmap.
func HeatmapThresholds() Thresholds {
	return Thresholds{
		PadjMax: 0.05,
		LFCMin:  2.0,
		Alpha:   0.05,
		TopN:    500,
	}
}

type GeneRecord struct {
	Gene       string
	Log2FC     float64
	Padj       float64
	Regulation string // "up" or "down", set by Significant
}

// GeneTable is an ordered canonical table of gene records.
// Gene is unique within one table.
type GeneTable struct {
	Label   string
	Records []GeneRecord
}

// Regulation labels a fold change that already passed the |log2FC| filter:
// up iff log2FC >= lfcMin, down otherwise.
func Regulation(log2FC, lfcMin float64) string {
	if log2FC >= lfcMin {
		return "up"
	}
	return "down"
}

// Significant returns the rows with padj <= PadjMax and |log2FC| >= LFCMin,
// with Regulation assigned. Input order is preserved.
func (t *GeneTable) Significant(th Thresholds) *GeneTable {
	var sig = &GeneTable{Label: t.Label}
	for _, r := range t.Records {
		if r.Padj <= th.PadjMax && math.Abs(r.Log2FC) >= th.LFCMin {
			r.Regulation = Regulation(r.Log2FC, th.LFCMin)
			sig.Records = append(sig.Records, r)
		}
	}
	return sig
}

// GeneSet returns the set of gene identifiers in the table.
func (t *GeneTable) GeneSet() map[string]bool {
	var set = make(map[string]bool, len(t.Records))
	for _, r := range t.Records {
		set[r.Gene] = true
	}
	return set
}

// Subset returns the records whose Regulation equals reg, in input order.
func (t *GeneTable) Subset(reg string) *GeneTable {
	var sub = &GeneTable{Label: t.Label}
	for _, r := range t.Records {
		if r.Regulation == reg {
			sub.Records = append(sub.Records, r)
		}
	}
	return sub
}

type GOTermRecord struct {
	Term           string
	RefCount       int
	QueryCount     int
	Expected       float64
	FoldEnrichment float64
	PValue         float64
	FDR            float64

	// Fields holds the raw cells aligned to the table header,
	// preserved for full-width exports.
	Fields []string
}

// GOTable is an ordered table of GO-term enrichment records.
// Term is unique within one table and serves as the join key.
type GOTable struct {
	Condition string
	Header    []string
	Records   []GOTermRecord
}

// Significant returns the terms with FDR <= alpha, in input order.
func (g *GOTable) Significant(alpha float64) *GOTable {
	var sig = &GOTable{Condition: g.Condition, Header: g.Header}
	for _, r := range g.Records {
		if r.FDR <= alpha {
			sig.Records = append(sig.Records, r)
		}
	}
	return sig
}

// TopN returns the first n terms by ascending FDR. The sort is stable so
// ties keep input order; n larger than the table returns everything.
func (g *GOTable) TopN(n int) *GOTable {
	var top = &GOTable{Condition: g.Condition, Header: g.Header}
	top.Records = append(top.Records, g.Records...)
	sort.SliceStable(top.Records, func(i, j int) bool {
		return top.Records[i].FDR < top.Records[j].FDR
	})
	if n >= 0 && n < len(top.Records) {
		top.Records = top.Records[:n]
	}
	return top
}

// SplitByCondition regroups a combined cross-condition table into one
// table per condition, ordered by the fixed condition list first and any
// extra conditions in first-seen order.
func SplitByCondition(combined *GOTable) ([]*GOTable, error) {
	var condIdx = -1
	for i, h := range combined.Header {
		if h == "condition" {
			condIdx = i
			break
		}
	}
	if condIdx < 0 {
		return nil, &FormatError{Msg: "combined table has no condition column"}
	}

	var byCond = make(map[string]*GOTable)
	var order []string
	for _, r := range combined.Records {
		if condIdx >= len(r.Fields) {
			continue
		}
		var cond = r.Fields[condIdx]
		g, ok := byCond[cond]
		if !ok {
			g = &GOTable{Condition: cond, Header: combined.Header}
			byCond[cond] = g
			order = append(order, cond)
		}
		g.Records = append(g.Records, r)
	}

	var tables []*GOTable
	var seen = make(map[string]bool)
	for _, cond := range Conditions {
		if g, ok := byCond[cond]; ok {
			tables = append(tables, g)
			seen[cond] = true
		}
	}
	for _, cond := range order {
		if !seen[cond] {
			tables = append(tables, byCond[cond])
		}
	}
	return tables, nil
}

// TermSet returns the set of term names in the table.
func (g *GOTable) TermSet() map[string]bool {
	var set = make(map[string]bool, len(g.Records))
	for _, r := range g.Records {
		set[r.Term] = true
	}
	return set
}

// MergedRow is one row of an outer join of two gene tables.
// A side that did not contain the gene is nil.
type MergedRow struct {
	Gene string
	A    *GeneRecord
	B    *GeneRecord
}

// Merge outer-joins two gene tables on the gene identifier. Rows keep the
// order of table a, followed by b-only genes in the order of table b.
func Merge(a, b *GeneTable) []MergedRow {
	var (
		merged []MergedRow
		bIdx   = make(map[string]int, len(b.Records))
	)
	for i, r := range b.Records {
		bIdx[r.Gene] = i
	}
	for i := range a.Records {
		var row = MergedRow{Gene: a.Records[i].Gene, A: &a.Records[i]}
		if j, ok := bIdx[row.Gene]; ok {
			row.B = &b.Records[j]
		}
		merged = append(merged, row)
	}
	var aSet = a.GeneSet()
	for i := range b.Records {
		if !aSet[b.Records[i].Gene] {
			merged = append(merged, MergedRow{Gene: b.Records[i].Gene, B: &b.Records[i]})
		}
	}
	return merged
}

// Partition splits an outer join into the genes present in both tables and
// the genes unique to either side. The three parts cover the join exactly.
func Partition(merged []MergedRow) (both, onlyA, onlyB []MergedRow) {
	for _, row := range merged {
		switch {
		case row.A != nil && row.B != nil:
			both = append(both, row)
		case row.A != nil:
			onlyA = append(onlyA, row)
		default:
			onlyB = append(onlyB, row)
		}
	}
	return
}

// OverlapStats summarizes the overlap of two key sets.
type OverlapStats struct {
	Comparison         string
	NA                 int
	NB                 int
	NIntersection      int
	NUnion             int
	Jaccard            float64
	OverlapCoefficient float64
	PctOfAShared       float64
	PctOfBShared       float64
}

// Overlap computes intersection/union sizes, the Jaccard index, the overlap
// coefficient and the shared percentages of two key sets. Ratios over an
// empty denominator are 0.
func Overlap(a, b map[string]bool) OverlapStats {
	var s = OverlapStats{NA: len(a), NB: len(b)}
	for k := range a {
		if b[k] {
			s.NIntersection++
		}
	}
	s.NUnion = s.NA + s.NB - s.NIntersection
	if s.NUnion > 0 {
		s.Jaccard = float64(s.NIntersection) / float64(s.NUnion)
	}
	if s.NA > 0 && s.NB > 0 {
		s.OverlapCoefficient = float64(s.NIntersection) / float64(min(s.NA, s.NB))
	}
	if s.NA > 0 {
		s.PctOfAShared = float64(s.NIntersection) / float64(s.NA) * 100
	}
	if s.NB > 0 {
		s.PctOfBShared = float64(s.NIntersection) / float64(s.NB) * 100
	}
	return s
}

// SharedKeys returns the sorted intersection of two key sets.
func SharedKeys(a, b map[string]bool) []string {
	var shared []string
	for k := range a {
		if b[k] {
			shared = append(shared, k)
		}
	}
	sort.Strings(shared)
	return shared
}

// FormatError reports a malformed input table: a missing required column,
// an unexpected column count, or an empty/comment-only file.
type FormatError struct {
	Path string
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error: %s: %s", e.Path, e.Msg)
}

// NotFoundError reports a missing input file or directory, including a
// failed heat/salt filename auto-detection.
type NotFoundError struct {
	Path string
	Msg  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s: %s", e.Path, e.Msg)
}

// EmptyResultError reports that no rows survived significance filtering.
type EmptyResultError struct {
	Msg string
}

func (e *EmptyResultError) Error() string {
	return "empty result: " + e.Msg
}

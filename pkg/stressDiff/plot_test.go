package stressDiff

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewDEGPivot(t *testing.T) {
	var heat = &GeneTable{Records: []GeneRecord{
		{Gene: "g1", Log2FC: 3.0},
		{Gene: "g2", Log2FC: -2.5},
	}}
	var salt = &GeneTable{Records: []GeneRecord{
		{Gene: "g1", Log2FC: 2.0},
		{Gene: "g3", Log2FC: -4.0},
	}}
	var p = NewDEGPivot(heat, salt)

	// Test case 1: rows sorted by gene name, fixed columns
	if !reflect.DeepEqual(p.Rows, []string{"g1", "g2", "g3"}) {
		t.Fatalf("Rows = %v; want [g1 g2 g3]", p.Rows)
	}
	if !reflect.DeepEqual(p.Cols, []string{"Heat up", "Heat down", "Salt up", "Salt down"}) {
		t.Fatalf("Cols = %v", p.Cols)
	}

	// Test case 2: the sign picks the column, absent cells stay zero
	if !reflect.DeepEqual(p.Values[0], []float64{3.0, 0, 2.0, 0}) {
		t.Errorf("g1 = %v; want [3 0 2 0]", p.Values[0])
	}
	if !reflect.DeepEqual(p.Values[1], []float64{0, -2.5, 0, 0}) {
		t.Errorf("g2 = %v; want [0 -2.5 0 0]", p.Values[1])
	}
	if !reflect.DeepEqual(p.Values[2], []float64{0, 0, 0, -4.0}) {
		t.Errorf("g3 = %v; want [0 0 0 -4]", p.Values[2])
	}
}

func TestNewGOPivot(t *testing.T) {
	var tables = []*GOTable{
		{Condition: "heat_up", Records: []GOTermRecord{
			{Term: "t1", FDR: 0.01},
			// A repeated term keeps its least significant value.
			{Term: "t1", FDR: 0.001},
		}},
		{Condition: "salt_up", Records: []GOTermRecord{
			{Term: "t2", FDR: 0.02},
		}},
	}
	var p = NewGOPivot(tables)

	if !reflect.DeepEqual(p.Cols, []string{"heat_up", "salt_up"}) {
		t.Fatalf("Cols = %v", p.Cols)
	}
	if p.Values[0][0] != NegLog10(0.01) {
		t.Errorf("t1 heat_up = %g; want %g", p.Values[0][0], NegLog10(0.01))
	}
	if p.Values[1][0] != 0 {
		t.Errorf("t2 heat_up = %g; want 0", p.Values[1][0])
	}
}

func TestPivot_TopNByAbs(t *testing.T) {
	var p = &Pivot{
		Rows: []string{"a", "b", "c"},
		Cols: []string{"x"},
		Values: [][]float64{
			{1.0},
			{-5.0},
			{3.0},
		},
	}

	// Test case 1: keeps the strongest rows
	p.TopNByAbs(2)
	if !reflect.DeepEqual(p.Rows, []string{"b", "c"}) {
		t.Errorf("Rows = %v; want [b c]", p.Rows)
	}

	// Test case 2: weakest to strongest after the ascending sort
	p.SortByMaxAsc()
	if !reflect.DeepEqual(p.Rows, []string{"c", "b"}) {
		t.Errorf("Rows = %v; want [c b]", p.Rows)
	}

	// Test case 3: n beyond the row count is a no-op
	p.TopNByAbs(100)
	if len(p.Rows) != 2 {
		t.Errorf("got %d rows; want 2", len(p.Rows))
	}
}

func TestPivot_MaxAbs(t *testing.T) {
	// Test case 1: largest absolute cell wins
	var p = &Pivot{Values: [][]float64{{-3.0, 1.0}, {2.0, 0}}}
	if got := p.MaxAbs(); got != 3.0 {
		t.Errorf("MaxAbs() = %g; want 3", got)
	}

	// Test case 2: an all-zero matrix falls back to 1
	var zero = &Pivot{Values: [][]float64{{0, 0}}}
	if got := zero.MaxAbs(); got != 1.0 {
		t.Errorf("MaxAbs() = %g; want 1", got)
	}
}

func mustExist(t *testing.T, paths ...string) {
	t.Helper()
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing output %s: %v", path, err)
		}
	}
}

func TestPlotCountBar(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "plots", "sig_term_counts.png")
	if err := PlotCountBar(
		Conditions, []int{5, 3, 4, 2},
		"# significant GO terms",
		"Number of Enriched GO Terms Per Condition",
		path,
	); err != nil {
		t.Fatal(err)
	}
	mustExist(t, path, pdfSibling(path))
}

func TestPlotTopTermsBar(t *testing.T) {
	var g = &GOTable{
		Condition: "heat_up",
		Records: []GOTermRecord{
			{Term: "response to heat", FDR: 0.001},
			{Term: "response to stress", FDR: 0.01},
		},
	}
	var path = filepath.Join(t.TempDir(), "heat_up_top15_bar.png")
	if err := PlotTopTermsBar(g, 15, "heat_up: Top enriched GO terms (by FDR)", path); err != nil {
		t.Fatal(err)
	}
	mustExist(t, path, pdfSibling(path))

	// An empty table is an error, not an empty chart.
	var err = PlotTopTermsBar(&GOTable{Condition: "salt_up"}, 15, "t", path)
	if err == nil {
		t.Error("expected an error, but got nil")
	}
}

func TestPlotDEGHeatmap(t *testing.T) {
	var p = NewDEGPivot(
		&GeneTable{Records: []GeneRecord{{Gene: "g1", Log2FC: 3.0}, {Gene: "g2", Log2FC: -2.0}}},
		&GeneTable{Records: []GeneRecord{{Gene: "g1", Log2FC: 2.0}}},
	)
	var path = filepath.Join(t.TempDir(), "DEG_heatmap_top500.png")
	if err := PlotDEGHeatmap(p, "Significant DEGs", path); err != nil {
		t.Fatal(err)
	}
	mustExist(t, path, pdfSibling(path))
}

func TestPlotVenn(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "venn_salt_heat.png")
	if err := PlotVenn("Salt Stress", "Heat Stress", 10, 7, 5, "Overlap of Significant Genes", path); err != nil {
		t.Fatal(err)
	}
	mustExist(t, path, pdfSibling(path))
}

package stressDiff

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteSummaryXlsx(t *testing.T) {
	var counts = map[string]int{"heat_up": 5, "heat_down": 3, "salt_up": 4, "salt_down": 2}
	var stats = []OverlapStats{{
		Comparison:    "heat_up vs salt_up",
		NA:            5,
		NB:            4,
		NIntersection: 2,
		NUnion:        7,
	}}
	var path = filepath.Join(t.TempDir(), "summary.xlsx")
	if err := WriteSummaryXlsx(path, counts, stats); err != nil {
		t.Fatal(err)
	}

	xlsx, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer xlsx.Close()

	// Test case 1: both sheets exist
	if idx, _ := xlsx.GetSheetIndex("Counts"); idx < 0 {
		t.Error("missing Counts sheet")
	}
	if idx, _ := xlsx.GetSheetIndex("Overlap"); idx < 0 {
		t.Error("missing Overlap sheet")
	}

	// Test case 2: the counts land in the fixed condition order
	cell, err := xlsx.GetCellValue("Counts", "A2")
	if err != nil {
		t.Fatal(err)
	}
	if cell != "heat_up" {
		t.Errorf("Counts!A2 = %q; want heat_up", cell)
	}

	// Test case 3: merged title row, then header, then the comparison row
	cell, err = xlsx.GetCellValue("Overlap", "A1")
	if err != nil {
		t.Fatal(err)
	}
	if cell != "GO-term overlap, heat vs salt" {
		t.Errorf("Overlap!A1 = %q", cell)
	}
	merged, err := xlsx.GetMergeCells("Overlap")
	if err != nil {
		t.Fatal(err)
	}
	if len(merged) != 1 {
		t.Errorf("got %d merged ranges; want 1", len(merged))
	}
	cell, err = xlsx.GetCellValue("Overlap", "A2")
	if err != nil {
		t.Fatal(err)
	}
	if cell != "comparison" {
		t.Errorf("Overlap!A2 = %q", cell)
	}
	cell, err = xlsx.GetCellValue("Overlap", "A3")
	if err != nil {
		t.Fatal(err)
	}
	if cell != "heat_up vs salt_up" {
		t.Errorf("Overlap!A3 = %q", cell)
	}
}

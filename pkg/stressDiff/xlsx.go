package stressDiff

import (
	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/xuri/excelize/v2"
)

func SetRow(xlsx *excelize.File, sheet string, col, row int, value []interface{}) {
	simpleUtil.CheckErr(
		xlsx.SetSheetRow(
			sheet,
			simpleUtil.HandleError(
				excelize.CoordinatesToCellName(col, row),
			),
			&value,
		),
	)
}

func MergeCells(xlsx *excelize.File, sheet string, col1, row1, col2, row2 int) {
	var (
		hCel = simpleUtil.HandleError(excelize.CoordinatesToCellName(col1, row1))
		vCel = simpleUtil.HandleError(excelize.CoordinatesToCellName(col2, row2))
	)
	simpleUtil.CheckErr(xlsx.MergeCell(sheet, hCel, vCel))
}

// WriteSummaryXlsx collects per-condition significant counts and the
// overlap statistics into one workbook.
func WriteSummaryXlsx(path string, counts map[string]int, stats []OverlapStats) error {
	var xlsx = excelize.NewFile()
	simpleUtil.CheckErr(xlsx.SetSheetName("Sheet1", "Counts"))
	simpleUtil.HandleError(xlsx.NewSheet("Overlap"))

	SetRow(xlsx, "Counts", 1, 1, []interface{}{"condition", "n_sig_terms"})
	for i, cond := range Conditions {
		SetRow(xlsx, "Counts", 1, i+2, []interface{}{cond, counts[cond]})
	}

	MergeCells(xlsx, "Overlap", 1, 1, 9, 1)
	SetRow(xlsx, "Overlap", 1, 1, []interface{}{"GO-term overlap, heat vs salt"})
	SetRow(xlsx, "Overlap", 1, 2, []interface{}{
		"comparison",
		"n_A", "n_B",
		"n_intersection", "n_union",
		"jaccard", "overlap_coefficient",
		"pct_of_A_shared", "pct_of_B_shared",
	})
	for i, s := range stats {
		SetRow(xlsx, "Overlap", 1, i+3, []interface{}{
			s.Comparison,
			s.NA, s.NB,
			s.NIntersection, s.NUnion,
			s.Jaccard, s.OverlapCoefficient,
			s.PctOfAShared, s.PctOfBShared,
		})
	}
	simpleUtil.CheckErr(xlsx.SetColWidth("Overlap", "A", "A", 25))

	if err := mkdirFor(path); err != nil {
		return err
	}
	return xlsx.SaveAs(path)
}

package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/examtrack/backend/internal/grading"
)

const sheetName = "Consolidated"

var headers = []any{
	"Subject", "Correct", "Incorrect", "Blank", "Annulled",
	"Questions", "Net score", "Gross %", "Net %",
}

// WriteConsolidatedXLSX renders the report as a single-sheet workbook: one row
// per subject followed by the Total row.
func WriteConsolidatedXLSX(w io.Writer, r grading.ConsolidatedReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	percent, err := f.NewStyle(&excelize.Style{NumFmt: 10}) // 0.00%
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	boldPercent, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 10})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", bold); err != nil {
		return err
	}

	row := 2
	for _, s := range r.Subjects {
		if err := writeRow(f, row, s); err != nil {
			return err
		}
		row++
	}
	if err := writeRow(f, row, r.Total); err != nil {
		return err
	}

	if len(r.Subjects) > 0 {
		if err := f.SetCellStyle(sheetName, "H2", fmt.Sprintf("I%d", row-1), percent); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("H%d", row), fmt.Sprintf("I%d", row), boldPercent); err != nil {
		return err
	}

	if err := f.SetColWidth(sheetName, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "B", lastCol, 12); err != nil {
		return err
	}

	return f.Write(w)
}

func writeRow(f *excelize.File, row int, s grading.SubjectTotals) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := []any{
		s.Name, s.Correct, s.Incorrect, s.Blank, s.Annulled,
		s.Capacity, s.NetScore, s.GrossPercentage, s.NetPercentage,
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

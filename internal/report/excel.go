package report

import (
	"fmt"

	"xlkeyword/internal/model"
	"xlkeyword/internal/sheet"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	detailSheet  = "Detail"
)

// ExcelReporter writes a run summary workbook
type ExcelReporter struct {
	// Stateless
}

// NewExcelReporter creates a new ExcelReporter
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

// Report generates the Excel summary
func (e *ExcelReporter) Report(run *model.Run, basePath string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	styler, err := sheet.NewStyler(f)
	if err != nil {
		return "", err
	}

	if err := e.writeSummary(f, styler, run); err != nil {
		return "", err
	}
	if err := e.writeDetail(f, styler, run); err != nil {
		return "", err
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		f.DeleteSheet("Sheet1")
	}
	if idx, err := f.GetSheetIndex(summarySheet); err == nil && idx != -1 {
		f.SetActiveSheet(idx)
	}

	outFile := basePath + ".xlsx"
	if err := f.SaveAs(outFile); err != nil {
		return "", fmt.Errorf("failed to write Excel report: %w", err)
	}
	return outFile, nil
}

func (e *ExcelReporter) writeSummary(f *excelize.File, s *sheet.Styler, run *model.Run) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	if err := e.writeRow(f, summarySheet, 1, []any{"Field", "Value"}); err != nil {
		return err
	}
	if err := s.ApplyHeader(summarySheet, 1, 2); err != nil {
		return err
	}

	fields := []struct {
		Key string
		Val any
	}{
		{"Run ID", run.ID},
		{"Operation", run.Operation},
		{"Keyword", run.Keyword},
		{"Status", run.Status()},
		{"Count", run.Count},
		{"Started", run.StartedAt.Format("2006-01-02 15:04:05")},
		{"Duration", run.Duration().String()},
		{"Error", run.Err},
	}

	for i, field := range fields {
		row := i + 2
		if err := e.writeRow(f, summarySheet, row, []any{field.Key, field.Val}); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), s.DefaultStyle); err != nil {
			return err
		}
	}

	statusStyle := s.SuccessStyle
	if !run.Succeeded() {
		statusStyle = s.FailureStyle
	}
	return f.SetCellStyle(summarySheet, "B5", "B5", statusStyle)
}

func (e *ExcelReporter) writeDetail(f *excelize.File, s *sheet.Styler, run *model.Run) error {
	if _, err := f.NewSheet(detailSheet); err != nil {
		return err
	}

	var headers []any
	var rows [][]any
	switch {
	case len(run.Records) > 0:
		headers = []any{"matched value", "source file"}
		for _, rec := range run.Records {
			rows = append(rows, []any{rec.Value, rec.SourceFile})
		}
	case len(run.Matches) > 0:
		headers = []any{"coordinate", "value"}
		for _, m := range run.Matches {
			rows = append(rows, []any{m.Coordinate, m.Value})
		}
	default:
		headers = []any{"output"}
		for _, out := range run.Outputs {
			rows = append(rows, []any{out})
		}
	}

	if err := e.writeRow(f, detailSheet, 1, headers); err != nil {
		return err
	}
	if err := s.ApplyHeader(detailSheet, 1, len(headers)); err != nil {
		return err
	}
	for i, row := range rows {
		if err := e.writeRow(f, detailSheet, i+2, row); err != nil {
			return err
		}
	}

	return f.SetPanes(detailSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (e *ExcelReporter) writeRow(f *excelize.File, sheetName string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		switch x := v.(type) {
		case string:
			err = f.SetCellStr(sheetName, cell, x)
		default:
			err = f.SetCellValue(sheetName, cell, x)
		}
		if err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheetName, cell, err)
		}
	}
	return nil
}

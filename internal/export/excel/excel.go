// Package excel renders the biweekly Overtime Summary workbook: a styled
// sheet with two stacked week rows per employee, an Employee Total row
// after each pair and a GRAND TOTAL row at the bottom.
package excel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"otslip/internal/core"
	"otslip/internal/summary"
)

const sheetName = "Overtime Summary"

// Name is the download name for the workbook.
func Name(end core.Date) string {
	return "Overtime_Summary_" + end.Slip() + ".xlsx"
}

// Workbook renders the report. Rows are printed case-insensitively by
// (last, first) regardless of the order they arrive in.
func Workbook(report summary.Report, end core.Date, dept string) ([]byte, error) {
	rows := make([]summary.Row, len(report.Rows))
	copy(rows, report.Rows)
	sort.SliceStable(rows, func(a, b int) bool {
		la, lb := strings.ToLower(rows[a].Last), strings.ToLower(rows[b].Last)
		if la != lb {
			return la < lb
		}
		return strings.ToLower(rows[a].First) < strings.ToLower(rows[b].First)
	})

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("building styles: %w", err)
	}

	weeks := core.Weeks(end)

	_ = f.MergeCell(sheetName, "A1", "G1")
	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("City of Montebello — Transit Dept. %s — Overtime Summary", dept))
	_ = f.SetCellStyle(sheetName, "A1", "A1", st.title)

	_ = f.SetCellValue(sheetName, "A2", "Pay Period Ending: "+end.Format("01/02/2006"))
	_ = f.SetCellStyle(sheetName, "A2", "A2", st.bold)
	_ = f.SetCellValue(sheetName, "A3", fmt.Sprintf("Week 1: %s – %s",
		weeks.Week1Start.Format("01/02"), weeks.Week1End.Format("01/02/2006")))
	_ = f.SetCellValue(sheetName, "A4", fmt.Sprintf("Week 2: %s – %s",
		weeks.Week2Start.Format("01/02"), weeks.Week2End.Format("01/02/2006")))

	headers := []string{"Employee", "Week", "OT 1.0", "OT 1.5", "CTE 1.0", "CTE 1.5", "Total"}
	const headerRow = 6
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(sheetName, cell, h)
	}
	_ = f.SetCellStyle(sheetName, "A6", "G6", st.header)

	rowNum := headerRow + 1
	var grand core.Hours
	for _, row := range rows {
		grand = grand.Add(row.Total)
		name := fmt.Sprintf("%s, %s (#%s)", row.Last, row.First, row.EmpNo)

		// Merged name cell spanning both week rows.
		_ = f.MergeCell(sheetName, cellAt(1, rowNum), cellAt(1, rowNum+1))
		_ = f.SetCellValue(sheetName, cellAt(1, rowNum), name)
		_ = f.SetCellStyle(sheetName, cellAt(1, rowNum), cellAt(1, rowNum+1), st.name)

		writeWeekRow(f, st, rowNum, 1, row.Week1)
		writeWeekRow(f, st, rowNum+1, 2, row.Week2)
		rowNum += 2

		// Employee Total row.
		_ = f.MergeCell(sheetName, cellAt(1, rowNum), cellAt(6, rowNum))
		_ = f.SetCellValue(sheetName, cellAt(1, rowNum), "Employee Total")
		_ = f.SetCellStyle(sheetName, cellAt(1, rowNum), cellAt(6, rowNum), st.totalLabel)
		_ = f.SetCellValue(sheetName, cellAt(7, rowNum), row.Total.Float())
		_ = f.SetCellStyle(sheetName, cellAt(7, rowNum), cellAt(7, rowNum), st.totalValue)
		rowNum++
	}

	// Grand total row.
	_ = f.MergeCell(sheetName, cellAt(1, rowNum), cellAt(6, rowNum))
	_ = f.SetCellValue(sheetName, cellAt(1, rowNum), "GRAND TOTAL")
	_ = f.SetCellStyle(sheetName, cellAt(1, rowNum), cellAt(6, rowNum), st.grandLabel)
	_ = f.SetCellValue(sheetName, cellAt(7, rowNum), grand.Float())
	_ = f.SetCellStyle(sheetName, cellAt(7, rowNum), cellAt(7, rowNum), st.grandValue)

	widths := []float64{30, 22, 10, 10, 10, 10, 10}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, col, col, w)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeWeekRow(f *excelize.File, st styles, rowNum, weekNo int, cells summary.WeekCells) {
	label := fmt.Sprintf("Wk %d", weekNo)
	if dates := dateList(cells.Dates); dates != "" {
		label += ": " + dates
	}
	_ = f.SetCellValue(sheetName, cellAt(2, rowNum), label)
	_ = f.SetCellStyle(sheetName, cellAt(2, rowNum), cellAt(2, rowNum), st.weekLabel)

	for i, h := range cells.ByCategory {
		cell := cellAt(3+i, rowNum)
		if !h.IsZero() {
			_ = f.SetCellValue(sheetName, cell, h.Float())
		}
		_ = f.SetCellStyle(sheetName, cell, cell, st.cell)
	}
	total := cellAt(7, rowNum)
	if !cells.Total.IsZero() {
		_ = f.SetCellValue(sheetName, total, cells.Total.Float())
	}
	_ = f.SetCellStyle(sheetName, total, total, st.cell)
}

func dateList(dates []core.Date) string {
	parts := make([]string, len(dates))
	for i, d := range dates {
		parts[i] = d.Short()
	}
	return strings.Join(parts, ", ")
}

func cellAt(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}

type styles struct {
	title      int
	bold       int
	header     int
	name       int
	weekLabel  int
	cell       int
	totalLabel int
	totalValue int
	grandLabel int
	grandValue int
}

func newStyles(f *excelize.File) (styles, error) {
	thin := []excelize.Border{
		{Type: "left", Style: 1}, {Type: "right", Style: 1},
		{Type: "top", Style: 1}, {Type: "bottom", Style: 1},
	}
	var st styles
	var err error

	if st.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return st, err
	}
	if st.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}}); err != nil {
		return st, err
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border:    thin,
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true},
	}); err != nil {
		return st, err
	}
	if st.name, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"F2F7FC"}, Pattern: 1},
		Border:    thin,
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
	}); err != nil {
		return st, err
	}
	if st.weekLabel, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Border:    thin,
		Alignment: &excelize.Alignment{Horizontal: "left", WrapText: true},
	}); err != nil {
		return st, err
	}
	if st.cell, err = f.NewStyle(&excelize.Style{
		Border:    thin,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return st, err
	}
	if st.totalLabel, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Border:    thin,
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return st, err
	}
	if st.totalValue, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Border:    thin,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return st, err
	}
	if st.grandLabel, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"E8F5E9"}, Pattern: 1},
		Border:    thin,
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return st, err
	}
	if st.grandValue, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"E8F5E9"}, Pattern: 1},
		Border:    thin,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return st, err
	}
	return st, nil
}

// Package slips renders the Time Exception Slip binder. One Letter page
// is drawn per employee: the department header block, then the five-row
// overtime table with week 1 on row 1, week 2 on row 2 and the remaining
// rows left blank for hand corrections.
package slips

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"otslip/internal/core"
	"otslip/internal/summary"
)

// Options carries the fixed header values for every page.
type Options struct {
	DeptCode     string
	PayPeriodEnd core.Date
}

// BlankName and FilledName are the download names for the two binders.
func BlankName(end core.Date) string {
	return "Time_Exception_Slips_" + end.Slip() + ".pdf"
}

func FilledName(end core.Date) string {
	return "Overtime_Slips_" + end.Slip() + ".pdf"
}

// Blank renders header-only slips for every employee, one page each, in
// the order given.
func Blank(employees []core.Employee, opts Options) ([]byte, error) {
	pdf := newDoc()
	for _, e := range employees {
		pdf.AddPage()
		drawSlip(pdf, e, summary.Row{}, opts)
	}
	return output(pdf)
}

// Filled renders one slip per report row with the week lines and totals
// populated. Rows are printed in the order given.
func Filled(rows []summary.Row, opts Options) ([]byte, error) {
	pdf := newDoc()
	for _, row := range rows {
		emp := core.Employee{EmpNo: row.EmpNo, Last: row.Last, First: row.First}
		pdf.AddPage()
		drawSlip(pdf, emp, row, opts)
	}
	return output(pdf)
}

func newDoc() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(false, 18)
	return pdf
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering slip binder: %w", err)
	}
	return buf.Bytes(), nil
}

func drawSlip(pdf *fpdf.Fpdf, e core.Employee, row summary.Row, opts Options) {
	pageW, _ := pdf.GetPageSize()
	marginL, marginT, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// Title bar
	pdf.SetFillColor(30, 30, 30)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginL, marginT)
	pdf.CellFormat(contentW, 9, "TIME EXCEPTION SLIP", "", 0, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginL, marginT)
	pdf.CellFormat(contentW-2, 9, "City of Montebello Transit", "", 1, "R", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y := marginT + 14

	// Header fields: name, department, period ending, employee number
	name := strings.Trim(strings.TrimSpace(e.Last+", "+e.First), ",")
	name = strings.TrimSpace(name)

	labelW := contentW * 0.18
	valueW := contentW * 0.32
	pdf.SetXY(marginL, y)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(labelW, 7, "Employee Name", "1", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(valueW, 7, name, "1", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(labelW, 7, "Dept", "1", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW-labelW*3-valueW, 7, opts.DeptCode, "1", 1, "C", false, 0, "")
	y += 7

	pdf.SetXY(marginL, y)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(labelW, 7, "Pay Period Ending", "1", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	ending := ""
	if !opts.PayPeriodEnd.IsZero() {
		ending = opts.PayPeriodEnd.Slip()
	}
	pdf.CellFormat(valueW, 7, ending, "1", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(labelW, 7, "Employee #", "1", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW-labelW*3-valueW, 7, e.EmpNo, "1", 1, "C", false, 0, "")
	y += 12

	// Overtime table
	dateW := contentW * 0.32
	catW := (contentW - dateW) / 5
	rowH := 8.0

	pdf.SetFillColor(220, 220, 220)
	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(dateW, rowH, "Dates", "1", 0, "C", true, 0, "")
	for _, cat := range core.Categories() {
		pdf.CellFormat(catW, rowH, cat.Label(), "1", 0, "C", true, 0, "")
	}
	pdf.CellFormat(catW, rowH, "Hours", "1", 1, "C", true, 0, "")
	y += rowH

	weeks := [2]summary.WeekCells{row.Week1, row.Week2}
	pdf.SetFont("Helvetica", "", 8.5)
	for i := 0; i < 5; i++ {
		pdf.SetXY(marginL, y)
		dates := ""
		var cells summary.WeekCells
		if i < len(weeks) {
			cells = weeks[i]
			dates = dateList(cells.Dates)
		}
		pdf.CellFormat(dateW, rowH, dates, "1", 0, "L", false, 0, "")
		for c := range core.Categories() {
			pdf.CellFormat(catW, rowH, hoursCell(cells.ByCategory[c]), "1", 0, "C", false, 0, "")
		}
		pdf.CellFormat(catW, rowH, hoursCell(cells.Total), "1", 1, "C", false, 0, "")
		y += rowH
	}

	// Totals row
	pdf.SetXY(marginL, y)
	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.CellFormat(dateW, rowH, "Totals", "1", 0, "R", false, 0, "")
	var grand core.Hours
	for c := range core.Categories() {
		total := row.Week1.ByCategory[c].Add(row.Week2.ByCategory[c])
		grand = grand.Add(total)
		pdf.CellFormat(catW, rowH, hoursCell(total), "1", 0, "C", false, 0, "")
	}
	pdf.CellFormat(catW, rowH, hoursCell(grand), "1", 1, "C", false, 0, "")
	y += rowH + 10

	// Signature lines
	pdf.SetFont("Helvetica", "", 9)
	half := contentW / 2
	pdf.SetXY(marginL, y)
	pdf.CellFormat(half-10, 7, "Employee Signature:  ______________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(half-10, 7, "Supervisor Signature:  ______________________", "", 1, "L", false, 0, "")
}

// dateList renders "3/4, 3/6" for the distinct dates in a week row.
func dateList(dates []core.Date) string {
	parts := make([]string, len(dates))
	for i, d := range dates {
		parts[i] = d.Short()
	}
	return strings.Join(parts, ", ")
}

// hoursCell leaves zero cells blank, matching the paper form convention.
func hoursCell(h core.Hours) string {
	if h.IsZero() {
		return ""
	}
	return h.String()
}

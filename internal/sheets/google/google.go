// Package google mirrors the overtime summary into a Google Sheets
// spreadsheet using service-account credentials. The mirror is one-way:
// the sheet is cleared and rewritten on every push, never read back.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"otslip/internal/core"
	ports "otslip/internal/sheets"
	"otslip/internal/summary"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	summarySheet  string
	deptCode      string
}

// Ensure interface conformance
var _ ports.SummaryWriter = (*Client)(nil)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service-account credentials.
// Optional: GOOGLE_SUMMARY_SHEET_NAME (default "Overtime Summary"),
// OTSLIP_DEPT_CODE (default "910").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SUMMARY_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Overtime Summary"
	}
	deptCode := strings.TrimSpace(os.Getenv("OTSLIP_DEPT_CODE"))
	if deptCode == "" {
		deptCode = "910"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		summarySheet:  sheetName,
		deptCode:      deptCode,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
// Uses GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))

	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

// WriteSummary implements ports.SummaryWriter: clear the sheet, then write
// the whole table in one update.
func (c *Client) WriteSummary(ctx context.Context, report summary.Report, end core.Date) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A:G", c.summarySheet)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", clearRange, err)
	}

	values := summaryRows(report, end, c.deptCode)
	writeRange := fmt.Sprintf("%s!A1", c.summarySheet)
	vr := &gsheet.ValueRange{Values: values}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write summary to %s: %w", c.summarySheet, err)
	}

	slog.InfoContext(ctx, "Summary mirrored to Google Sheets",
		"spreadsheet_id", c.spreadsheetID,
		"sheet", c.summarySheet,
		"rows", len(values),
		"employees", report.UniqueEmployees)

	return nil
}

// summaryRows lays the report out the way the workbook export does: header
// lines, the column header, two stacked week rows plus a total per
// employee, and a grand total line.
func summaryRows(report summary.Report, end core.Date, deptCode string) [][]any {
	values := [][]any{
		{fmt.Sprintf("City of Montebello — Transit Dept. %s — Overtime Summary", deptCode)},
	}
	if !end.IsZero() {
		weeks := core.Weeks(end)
		values = append(values,
			[]any{"Pay Period Ending: " + end.Format("01/02/2006")},
			[]any{fmt.Sprintf("Week 1: %s – %s", weeks.Week1Start.Format("01/02"), weeks.Week1End.Format("01/02/2006"))},
			[]any{fmt.Sprintf("Week 2: %s – %s", weeks.Week2Start.Format("01/02"), weeks.Week2End.Format("01/02/2006"))},
		)
	} else {
		values = append(values, []any{"Pay Period Ending: (not set)"})
	}
	values = append(values,
		[]any{},
		[]any{"Employee", "Week", "OT 1.0", "OT 1.5", "CTE 1.0", "CTE 1.5", "Total"},
	)

	for _, row := range report.Rows {
		name := fmt.Sprintf("%s, %s (#%s)", row.Last, row.First, row.EmpNo)
		values = append(values,
			weekValues(name, 1, row.Week1),
			weekValues("", 2, row.Week2),
			[]any{"", "", "", "", "", "Employee Total", row.Total.Float()},
		)
	}
	values = append(values, []any{"", "", "", "", "", "GRAND TOTAL", report.GrandTotal.Float()})
	return values
}

func weekValues(name string, weekNo int, cells summary.WeekCells) []any {
	label := fmt.Sprintf("Wk %d", weekNo)
	if dates := dateList(cells.Dates); dates != "" {
		label += ": " + dates
	}
	out := []any{name, label}
	for _, h := range cells.ByCategory {
		out = append(out, hoursValue(h))
	}
	return append(out, hoursValue(cells.Total))
}

func dateList(dates []core.Date) string {
	parts := make([]string, len(dates))
	for i, d := range dates {
		parts[i] = d.Short()
	}
	return strings.Join(parts, ", ")
}

// hoursValue keeps zero cells blank, matching the workbook.
func hoursValue(h core.Hours) any {
	if h.IsZero() {
		return ""
	}
	return h.Float()
}

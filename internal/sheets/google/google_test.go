package google

import (
	"fmt"
	"testing"

	"otslip/internal/core"
	"otslip/internal/summary"
)

func hours(s string) core.Hours {
	h, err := core.ParseHours(s)
	if err != nil {
		panic(err)
	}
	return h
}

func TestSummaryRowsLayout(t *testing.T) {
	end := core.NewDate(2024, 3, 16)
	report := summary.Report{
		Rows: []summary.Row{
			{
				EmpNo: "E001",
				Last:  "Alvarez",
				First: "Maria",
				Week1: summary.WeekCells{
					Dates:      []core.Date{core.NewDate(2024, 3, 4), core.NewDate(2024, 3, 6)},
					ByCategory: [4]core.Hours{hours("2.5"), {}, {}, {}},
					Total:      hours("2.5"),
				},
				Week2: summary.WeekCells{
					Dates:      []core.Date{core.NewDate(2024, 3, 12)},
					ByCategory: [4]core.Hours{{}, hours("1.0"), {}, {}},
					Total:      hours("1.0"),
				},
				Total: hours("3.5"),
			},
		},
		GrandTotal:      hours("3.5"),
		UniqueEmployees: 1,
	}

	values := summaryRows(report, end, "910")

	want := [][]any{
		{"City of Montebello — Transit Dept. 910 — Overtime Summary"},
		{"Pay Period Ending: 03/16/2024"},
		{"Week 1: 03/03 – 03/09/2024"},
		{"Week 2: 03/10 – 03/16/2024"},
		{},
		{"Employee", "Week", "OT 1.0", "OT 1.5", "CTE 1.0", "CTE 1.5", "Total"},
		{"Alvarez, Maria (#E001)", "Wk 1: 3/4, 3/6", 2.5, "", "", "", 2.5},
		{"", "Wk 2: 3/12", "", 1.0, "", "", 1.0},
		{"", "", "", "", "", "Employee Total", 3.5},
		{"", "", "", "", "", "GRAND TOTAL", 3.5},
	}

	if len(values) != len(want) {
		t.Fatalf("rows = %d, want %d", len(values), len(want))
	}
	for i := range want {
		if fmt.Sprint(values[i]) != fmt.Sprint(want[i]) {
			t.Errorf("row %d = %v, want %v", i, values[i], want[i])
		}
	}
}

func TestSummaryRowsNoPayPeriod(t *testing.T) {
	values := summaryRows(summary.Report{Rows: []summary.Row{}}, core.Date{}, "910")

	if got := fmt.Sprint(values[1]); got != "[Pay Period Ending: (not set)]" {
		t.Errorf("header line = %s", got)
	}
	// title, not-set line, spacer, column header, grand total
	if len(values) != 5 {
		t.Fatalf("rows = %d, want 5", len(values))
	}
	if got := fmt.Sprint(values[len(values)-1]); got != "[     GRAND TOTAL 0]" {
		t.Errorf("grand total line = %s", got)
	}
}

func TestWeekValuesBlankZeros(t *testing.T) {
	cells := summary.WeekCells{}
	got := weekValues("Smith, Jan (#E002)", 1, cells)
	want := []any{"Smith, Jan (#E002)", "Wk 1", "", "", "", "", ""}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("weekValues = %v, want %v", got, want)
	}
}

func TestHoursValue(t *testing.T) {
	if got := hoursValue(core.Hours{}); got != "" {
		t.Errorf("zero hours = %v, want blank", got)
	}
	if got := hoursValue(hours("4.5")); got != 4.5 {
		t.Errorf("hours = %v, want 4.5", got)
	}
}

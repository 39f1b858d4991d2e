package summary

import (
	"testing"

	"otslip/internal/core"
)

func entry(empNo, last, first string, d core.Date, cat core.Category, tenths int64) core.Entry {
	return core.Entry{
		EmpNo: empNo, Last: last, First: first,
		Date: d, Category: cat, Hours: core.Hours{Tenths: tenths},
	}
}

func TestGroupByEmployeeOrdering(t *testing.T) {
	entries := []core.Entry{
		entry("E002", "Ng", "Dana", core.NewDate(2024, 3, 10), core.OT10, 10),
		entry("E001", "Alvarez", "Maria", core.NewDate(2024, 3, 11), core.OT10, 10),
		entry("E003", "Ng", "Alex", core.NewDate(2024, 3, 12), core.OT10, 10),
		entry("E002", "Ng", "Dana", core.NewDate(2024, 3, 13), core.OT15, 20),
	}
	groups := GroupByEmployee(entries)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	// Byte order on (last, first): Alvarez, then Ng/Alex, then Ng/Dana.
	wantOrder := []string{"E001", "E003", "E002"}
	for i, empNo := range wantOrder {
		if groups[i].EmpNo != empNo {
			t.Fatalf("groups[%d] = %s, want %s", i, groups[i].EmpNo, empNo)
		}
	}
	if groups[2].Total.Tenths != 30 {
		t.Fatalf("Ng, Dana total = %s, want 3.0", groups[2].Total)
	}
	if len(groups[2].Entries) != 2 {
		t.Fatalf("Ng, Dana has %d entries, want 2", len(groups[2].Entries))
	}
}

func TestGroupByEmployeeCaseSensitiveOrder(t *testing.T) {
	entries := []core.Entry{
		entry("E001", "alvarez", "Maria", core.NewDate(2024, 3, 10), core.OT10, 10),
		entry("E002", "Zimmer", "Paul", core.NewDate(2024, 3, 10), core.OT10, 10),
	}
	groups := GroupByEmployee(entries)
	// Uppercase sorts before lowercase in byte order.
	if groups[0].EmpNo != "E002" {
		t.Fatalf("expected Zimmer before alvarez, got %s first", groups[0].EmpNo)
	}
}

func TestTableTotals(t *testing.T) {
	end := core.NewDate(2024, 3, 16)
	state := core.LedgerState{
		PayPeriodEnd: end,
		Entries: []core.Entry{
			entry("E001", "Alvarez", "Maria", core.NewDate(2024, 3, 5), core.OT10, 25),  // week 1
			entry("E001", "Alvarez", "Maria", core.NewDate(2024, 3, 12), core.OT15, 10), // week 2
		},
	}
	report := Table(state)
	if len(report.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(report.Rows))
	}
	row := report.Rows[0]
	if got := row.Week1.ByCategory[core.OT10.Index()]; got.Tenths != 25 {
		t.Fatalf("week1 OT 1.0 = %s, want 2.5", got)
	}
	if got := row.Week2.ByCategory[core.OT15.Index()]; got.Tenths != 10 {
		t.Fatalf("week2 OT 1.5 = %s, want 1.0", got)
	}
	if row.Week1.Total.Tenths != 25 || row.Week2.Total.Tenths != 10 {
		t.Fatalf("week totals = %s / %s, want 2.5 / 1.0", row.Week1.Total, row.Week2.Total)
	}
	if row.Total.Tenths != 35 {
		t.Fatalf("employee total = %s, want 3.5", row.Total)
	}
	if report.GrandTotal.Tenths != 35 {
		t.Fatalf("grand total = %s, want 3.5", report.GrandTotal)
	}
	if report.UniqueEmployees != 1 {
		t.Fatalf("unique employees = %d, want 1", report.UniqueEmployees)
	}
}

func TestTableExcludesOutOfRange(t *testing.T) {
	end := core.NewDate(2024, 3, 16)
	state := core.LedgerState{
		PayPeriodEnd: end,
		Entries: []core.Entry{
			entry("E001", "Alvarez", "Maria", core.NewDate(2024, 3, 10), core.OT10, 20),
			entry("E001", "Alvarez", "Maria", core.NewDate(2024, 2, 1), core.OT10, 80), // stale
			entry("E002", "Ng", "Dana", core.NewDate(2024, 1, 5), core.CTE15, 40),      // all stale
		},
	}
	report := Table(state)
	if report.GrandTotal.Tenths != 20 {
		t.Fatalf("grand total = %s, want 2.0", report.GrandTotal)
	}
	// Both employees keep a row; the stale-only one just has empty cells.
	if len(report.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(report.Rows))
	}
	ng := report.Rows[1]
	if ng.EmpNo != "E002" || !ng.Total.IsZero() || len(ng.Week1.Dates) != 0 || len(ng.Week2.Dates) != 0 {
		t.Fatalf("stale-only row not empty: %+v", ng)
	}
	// Unique count still sees every employee with entries.
	if report.UniqueEmployees != 2 {
		t.Fatalf("unique employees = %d, want 2", report.UniqueEmployees)
	}
}

func TestTableWeekDatesDistinctSorted(t *testing.T) {
	end := core.NewDate(2024, 3, 16)
	state := core.LedgerState{
		PayPeriodEnd: end,
		Entries: []core.Entry{
			entry("E001", "Alvarez", "Maria", core.NewDate(2024, 3, 12), core.OT10, 10),
			entry("E001", "Alvarez", "Maria", core.NewDate(2024, 3, 10), core.OT15, 10),
			entry("E001", "Alvarez", "Maria", core.NewDate(2024, 3, 12), core.CTE10, 10),
		},
	}
	dates := Table(state).Rows[0].Week2.Dates
	if len(dates) != 2 {
		t.Fatalf("got %d dates, want 2 distinct", len(dates))
	}
	if !dates[0].Equal(core.NewDate(2024, 3, 10).Time) || !dates[1].Equal(core.NewDate(2024, 3, 12).Time) {
		t.Fatalf("dates not ascending: %v", dates)
	}
}

func TestExportGroupsCaseInsensitiveOrder(t *testing.T) {
	entries := []core.Entry{
		entry("E002", "Zimmer", "Paul", core.NewDate(2024, 3, 10), core.OT10, 10),
		entry("E001", "alvarez", "Maria", core.NewDate(2024, 3, 10), core.OT10, 10),
	}
	groups := ExportGroups(entries)
	if groups[0].EmpNo != "E001" {
		t.Fatalf("export order should fold case: got %s first", groups[0].EmpNo)
	}
}

func TestTableEmptyState(t *testing.T) {
	report := Table(core.EmptyState())
	if len(report.Rows) != 0 || !report.GrandTotal.IsZero() || report.UniqueEmployees != 0 {
		t.Fatalf("empty state should yield empty report: %+v", report)
	}
}

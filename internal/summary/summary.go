// Package summary derives the biweekly report from a ledger snapshot.
// Nothing is cached; every call recomputes from the entries it is given,
// so a report can never go stale against the ledger.
package summary

import (
	"sort"
	"strings"

	"otslip/internal/core"
)

type (
	// Group is every entry recorded for one employee, in insertion order,
	// regardless of whether the dates fall inside the current period.
	Group struct {
		EmpNo   string
		Last    string
		First   string
		Entries []core.Entry
		Total   core.Hours
	}

	// WeekCells is one week's slice of a report row: the distinct dates
	// worked and the hours per category in the fixed display order.
	WeekCells struct {
		Dates      []core.Date
		ByCategory [4]core.Hours
		Total      core.Hours
	}

	Row struct {
		EmpNo string
		Last  string
		First string
		Week1 WeekCells
		Week2 WeekCells
		Total core.Hours
	}

	Report struct {
		Rows            []Row
		GrandTotal      core.Hours
		UniqueEmployees int
	}
)

// GroupByEmployee buckets entries per employee. Groups are ordered by
// (last, first) in byte order; employees that compare equal keep the order
// in which they first appear in the entry list. Names come from the entry
// snapshots, not the roster.
func GroupByEmployee(entries []core.Entry) []Group {
	index := map[string]int{}
	groups := []Group{}
	for _, en := range entries {
		i, ok := index[en.EmpNo]
		if !ok {
			i = len(groups)
			index[en.EmpNo] = i
			groups = append(groups, Group{EmpNo: en.EmpNo, Last: en.Last, First: en.First})
		}
		groups[i].Entries = append(groups[i].Entries, en)
		groups[i].Total = groups[i].Total.Add(en.Hours)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		if groups[a].Last != groups[b].Last {
			return groups[a].Last < groups[b].Last
		}
		return groups[a].First < groups[b].First
	})
	return groups
}

// UniqueEmployeeCount counts distinct employees across all entries.
func UniqueEmployeeCount(entries []core.Entry) int {
	seen := map[string]struct{}{}
	for _, en := range entries {
		seen[en.EmpNo] = struct{}{}
	}
	return len(seen)
}

// Table builds the full biweekly report. Entries outside the current
// period contribute to neither cells nor totals, but their employees still
// get a row so nothing silently disappears from the report.
func Table(state core.LedgerState) Report {
	report := Report{
		Rows:            []Row{},
		UniqueEmployees: UniqueEmployeeCount(state.Entries),
	}
	for _, g := range GroupByEmployee(state.Entries) {
		row := Row{EmpNo: g.EmpNo, Last: g.Last, First: g.First}
		for _, en := range g.Entries {
			switch core.Classify(en.Date, state.PayPeriodEnd) {
			case core.Week1:
				addToWeek(&row.Week1, en)
			case core.Week2:
				addToWeek(&row.Week2, en)
			default:
				continue
			}
			row.Total = row.Total.Add(en.Hours)
		}
		sortDates(row.Week1.Dates)
		sortDates(row.Week2.Dates)
		report.GrandTotal = report.GrandTotal.Add(row.Total)
		report.Rows = append(report.Rows, row)
	}
	return report
}

func addToWeek(w *WeekCells, en core.Entry) {
	if i := en.Category.Index(); i >= 0 {
		w.ByCategory[i] = w.ByCategory[i].Add(en.Hours)
	}
	w.Total = w.Total.Add(en.Hours)
	for _, d := range w.Dates {
		if d.Equal(en.Date.Time) {
			return
		}
	}
	w.Dates = append(w.Dates, en.Date)
}

func sortDates(dates []core.Date) {
	sort.Slice(dates, func(a, b int) bool { return dates[a].Before(dates[b].Time) })
}

// ExportGroups orders groups for document export the way the slips and the
// workbook print them: case-insensitively by last then first name.
func ExportGroups(entries []core.Entry) []Group {
	groups := GroupByEmployee(entries)
	sort.SliceStable(groups, func(a, b int) bool {
		la, lb := strings.ToLower(groups[a].Last), strings.ToLower(groups[b].Last)
		if la != lb {
			return la < lb
		}
		return strings.ToLower(groups[a].First) < strings.ToLower(groups[b].First)
	})
	return groups
}

// SortEmployeesForExport orders roster records for the blank slip binder.
func SortEmployeesForExport(employees []core.Employee) []core.Employee {
	out := make([]core.Employee, len(employees))
	copy(out, employees)
	sort.SliceStable(out, func(a, b int) bool {
		la, lb := strings.ToLower(out[a].Last), strings.ToLower(out[b].Last)
		if la != lb {
			return la < lb
		}
		return strings.ToLower(out[a].First) < strings.ToLower(out[b].First)
	})
	return out
}

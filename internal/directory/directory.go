// Package directory provides roster lookups for the employee picker.
// Everything here is stateless and operates on a ledger snapshot.
package directory

import (
	"strings"

	"otslip/internal/core"
)

// MaxResults caps a search so huge rosters never flood the picker.
const MaxResults = 50

// Result is one search hit. HasEntries marks employees that already have
// overtime lines recorded, so the picker can badge them.
type Result struct {
	Employee   core.Employee
	HasEntries bool
}

// Search filters the roster by a case-insensitive substring match against
// the composite "Last, First EmpNo" display key. The empty query matches
// everyone. Roster order is preserved; at most MaxResults are returned.
func Search(employees []core.Employee, query string) []core.Employee {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]core.Employee, 0, MaxResults)
	for _, e := range employees {
		if len(out) == MaxResults {
			break
		}
		key := strings.ToLower(e.DisplayName() + " " + e.EmpNo)
		if q == "" || strings.Contains(key, q) {
			out = append(out, e)
		}
	}
	return out
}

// HasEntries reports whether any entry belongs to the employee.
func HasEntries(entries []core.Entry, empNo string) bool {
	for _, en := range entries {
		if en.EmpNo == empNo {
			return true
		}
	}
	return false
}

// SearchResults runs Search and tags each hit with its entry marker.
func SearchResults(state core.LedgerState, query string) []Result {
	hits := Search(state.Employees, query)
	out := make([]Result, len(hits))
	for i, e := range hits {
		out[i] = Result{Employee: e, HasEntries: HasEntries(state.Entries, e.EmpNo)}
	}
	return out
}

// Package session tracks which employee the operator is currently keying
// entries for. The selection is ephemeral; it is never persisted with the
// ledger and does not survive a restart.
package session

import (
	"sort"
	"sync"

	"otslip/internal/core"
)

// TaggedEntry pairs an entry with its positional index in the ledger, so
// a delete issued from a per-employee view removes exactly that line.
type TaggedEntry struct {
	Index int        `json:"index"`
	Entry core.Entry `json:"entry"`
}

// Controller holds at most one active employee.
type Controller struct {
	mu       sync.Mutex
	active   core.Employee
	selected bool
}

func NewController() *Controller {
	return &Controller{}
}

// Select makes the employee the active selection, replacing any previous
// one.
func (c *Controller) Select(e core.Employee) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = e
	c.selected = true
}

// Clear drops the active selection.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = core.Employee{}
	c.selected = false
}

// Active returns the current selection, if any.
func (c *Controller) Active() (core.Employee, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active, c.selected
}

// EntriesFor lists one employee's entries in date order, each tagged with
// its ledger index. Ties on the same date keep insertion order.
func EntriesFor(state core.LedgerState, empNo string) []TaggedEntry {
	out := []TaggedEntry{}
	for i, en := range state.Entries {
		if en.EmpNo == empNo {
			out = append(out, TaggedEntry{Index: i, Entry: en})
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Entry.Date.Before(out[b].Entry.Date.Time)
	})
	return out
}

// EntriesForActive is EntriesFor over the current selection; it returns
// nothing when no employee is selected.
func (c *Controller) EntriesForActive(state core.LedgerState) []TaggedEntry {
	emp, ok := c.Active()
	if !ok {
		return []TaggedEntry{}
	}
	return EntriesFor(state, emp.EmpNo)
}

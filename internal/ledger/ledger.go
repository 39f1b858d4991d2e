// Package ledger owns the working copy of the overtime state and is the
// only writer of it. Every mutation is validated, applied to a copy and
// persisted before the in-memory state is swapped, so a failed save never
// leaves the ledger half-mutated.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"otslip/internal/core"
)

// Store is the persistence port. Load reports ok=false when no usable
// state exists yet; that is not an error.
type Store interface {
	Load(ctx context.Context) (core.LedgerState, bool, error)
	Save(ctx context.Context, state core.LedgerState) error
}

// Ledger serializes all access to the state behind its methods.
type Ledger struct {
	store Store

	mu       sync.Mutex
	state    core.LedgerState
	revision int64
}

func New(store Store) *Ledger {
	return &Ledger{
		store: store,
		state: core.EmptyState(),
	}
}

// Load pulls the persisted state into memory. A missing or unreadable
// payload loads as the empty default; only a failing store is an error.
func (l *Ledger) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok, err := l.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading ledger state: %w", err)
	}
	if !ok {
		state = core.EmptyState()
	}
	l.state = state
	return nil
}

// Snapshot returns a deep copy of the current state for read-only use.
func (l *Ledger) Snapshot() core.LedgerState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Clone()
}

// Revision counts persisted mutations since this process loaded the state.
func (l *Ledger) Revision() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.revision
}

// mutate applies fn to a copy of the state, persists the copy, then swaps
// it in. Validation failures from fn abort before anything is written.
func (l *Ledger) mutate(ctx context.Context, fn func(*core.LedgerState) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.state.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := l.store.Save(ctx, next); err != nil {
		return fmt.Errorf("saving ledger state: %w", err)
	}
	l.state = next
	l.revision++
	return nil
}

// SetRoster replaces the employee roster. Existing entries keep their name
// snapshots even when the new roster disagrees.
func (l *Ledger) SetRoster(ctx context.Context, employees []core.Employee) error {
	return l.mutate(ctx, func(s *core.LedgerState) error {
		s.Employees = make([]core.Employee, len(employees))
		copy(s.Employees, employees)
		return nil
	})
}

// ClearRoster removes every roster record. Entries are untouched.
func (l *Ledger) ClearRoster(ctx context.Context) error {
	return l.mutate(ctx, func(s *core.LedgerState) error {
		s.Employees = []core.Employee{}
		return nil
	})
}

// SetPayPeriodEnd moves the pay period anchor. Entries that fall outside
// the new period stay stored; they just stop contributing to summaries.
func (l *Ledger) SetPayPeriodEnd(ctx context.Context, end core.Date) error {
	return l.mutate(ctx, func(s *core.LedgerState) error {
		s.PayPeriodEnd = end
		return nil
	})
}

// AddEntry validates and appends one overtime line. Checks run in a fixed
// order so the first failure is the one reported: employee, date, hours,
// category, then classification against the current period. The employee
// name is denormalized from the roster at this point.
func (l *Ledger) AddEntry(ctx context.Context, empNo string, date core.Date, category core.Category, hours core.Hours) (core.Entry, error) {
	var added core.Entry
	err := l.mutate(ctx, func(s *core.LedgerState) error {
		emp, ok := s.FindEmployee(empNo)
		if empNo == "" || !ok {
			return core.ErrNoEmployeeSelected
		}
		if date.IsZero() {
			return core.ErrNoDateSelected
		}
		if hours.Tenths <= 0 {
			return core.ErrInvalidHours
		}
		if err := category.Validate(); err != nil {
			return err
		}
		if core.Classify(date, s.PayPeriodEnd) == core.OutOfRange {
			return core.ErrDateOutOfRange
		}
		added = core.Entry{
			EmpNo:    emp.EmpNo,
			Last:     emp.Last,
			First:    emp.First,
			Date:     date,
			Category: category,
			Hours:    hours,
		}
		s.Entries = append(s.Entries, added)
		return nil
	})
	if err != nil {
		return core.Entry{}, err
	}
	return added, nil
}

// RemoveEntry deletes the entry at the given positional index.
func (l *Ledger) RemoveEntry(ctx context.Context, index int) (core.Entry, error) {
	var removed core.Entry
	err := l.mutate(ctx, func(s *core.LedgerState) error {
		if index < 0 || index >= len(s.Entries) {
			return core.ErrEntryIndex
		}
		removed = s.Entries[index]
		s.Entries = append(s.Entries[:index], s.Entries[index+1:]...)
		return nil
	})
	if err != nil {
		return core.Entry{}, err
	}
	return removed, nil
}

// ClearSession drops all entries and the pay period anchor. The roster
// survives a session clear.
func (l *Ledger) ClearSession(ctx context.Context) error {
	return l.mutate(ctx, func(s *core.LedgerState) error {
		s.Entries = []core.Entry{}
		s.PayPeriodEnd = core.Date{}
		return nil
	})
}

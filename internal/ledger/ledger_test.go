package ledger

import (
	"context"
	"errors"
	"testing"

	"otslip/internal/core"
)

type memStore struct {
	state   core.LedgerState
	ok      bool
	loadErr error
	saveErr error
	saves   int
}

func (m *memStore) Load(ctx context.Context) (core.LedgerState, bool, error) {
	return m.state, m.ok, m.loadErr
}

func (m *memStore) Save(ctx context.Context, state core.LedgerState) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.state = state
	m.ok = true
	m.saves++
	return nil
}

func seeded(t *testing.T) (*Ledger, *memStore) {
	t.Helper()
	store := &memStore{}
	l := New(store)
	ctx := context.Background()
	roster := []core.Employee{
		{EmpNo: "E001", Last: "Alvarez", First: "Maria"},
		{EmpNo: "E002", Last: "Ng", First: "Dana"},
	}
	if err := l.SetRoster(ctx, roster); err != nil {
		t.Fatalf("SetRoster: %v", err)
	}
	if err := l.SetPayPeriodEnd(ctx, core.NewDate(2024, 3, 16)); err != nil {
		t.Fatalf("SetPayPeriodEnd: %v", err)
	}
	return l, store
}

func TestLoadMissingStateDefaultsEmpty(t *testing.T) {
	l := New(&memStore{ok: false})
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := l.Snapshot()
	if len(s.Employees) != 0 || len(s.Entries) != 0 || !s.PayPeriodEnd.IsZero() {
		t.Fatalf("expected empty default, got %+v", s)
	}
}

func TestAddEntryDenormalizesName(t *testing.T) {
	l, store := seeded(t)
	entry, err := l.AddEntry(context.Background(), "E001", core.NewDate(2024, 3, 10), core.OT15, core.Hours{Tenths: 25})
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if entry.Last != "Alvarez" || entry.First != "Maria" {
		t.Fatalf("name not denormalized: %+v", entry)
	}
	if got := len(store.state.Entries); got != 1 {
		t.Fatalf("persisted %d entries, want 1", got)
	}
}

func TestAddEntryValidationOrder(t *testing.T) {
	l, _ := seeded(t)
	ctx := context.Background()
	inRange := core.NewDate(2024, 3, 10)
	outOfRange := core.NewDate(2024, 3, 17)

	cases := []struct {
		name     string
		empNo    string
		date     core.Date
		category core.Category
		hours    core.Hours
		want     error
	}{
		// Unknown employee wins even when everything else is wrong too.
		{"unknown employee first", "E999", core.Date{}, "bogus", core.Hours{}, core.ErrNoEmployeeSelected},
		{"empty employee", "", inRange, core.OT10, core.Hours{Tenths: 10}, core.ErrNoEmployeeSelected},
		{"missing date before hours", "E001", core.Date{}, core.OT10, core.Hours{}, core.ErrNoDateSelected},
		{"zero hours before category", "E001", inRange, "bogus", core.Hours{}, core.ErrInvalidHours},
		{"unknown category", "E001", inRange, "bogus", core.Hours{Tenths: 10}, core.ErrUnknownCategory},
		{"date outside period last", "E001", outOfRange, core.OT10, core.Hours{Tenths: 10}, core.ErrDateOutOfRange},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := l.AddEntry(ctx, c.empNo, c.date, c.category, c.hours); !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
	if got := len(l.Snapshot().Entries); got != 0 {
		t.Fatalf("rejected entries were stored: %d", got)
	}
}

func TestAddEntryWithoutPayPeriod(t *testing.T) {
	store := &memStore{}
	l := New(store)
	ctx := context.Background()
	if err := l.SetRoster(ctx, []core.Employee{{EmpNo: "E001", Last: "Alvarez", First: "Maria"}}); err != nil {
		t.Fatalf("SetRoster: %v", err)
	}
	_, err := l.AddEntry(ctx, "E001", core.NewDate(2024, 3, 10), core.OT10, core.Hours{Tenths: 10})
	if !errors.Is(err, core.ErrDateOutOfRange) {
		t.Fatalf("expected ErrDateOutOfRange with no anchor, got %v", err)
	}
}

func TestRemoveEntryRoundTrip(t *testing.T) {
	l, _ := seeded(t)
	ctx := context.Background()
	if _, err := l.AddEntry(ctx, "E001", core.NewDate(2024, 3, 10), core.OT10, core.Hours{Tenths: 25}); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if _, err := l.AddEntry(ctx, "E002", core.NewDate(2024, 3, 11), core.OT15, core.Hours{Tenths: 10}); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	removed, err := l.RemoveEntry(ctx, 0)
	if err != nil {
		t.Fatalf("RemoveEntry: %v", err)
	}
	if removed.EmpNo != "E001" {
		t.Fatalf("removed wrong entry: %+v", removed)
	}
	s := l.Snapshot()
	if len(s.Entries) != 1 || s.Entries[0].EmpNo != "E002" {
		t.Fatalf("unexpected remaining entries: %+v", s.Entries)
	}

	if _, err := l.RemoveEntry(ctx, 5); !errors.Is(err, core.ErrEntryIndex) {
		t.Fatalf("expected ErrEntryIndex, got %v", err)
	}
	if _, err := l.RemoveEntry(ctx, -1); !errors.Is(err, core.ErrEntryIndex) {
		t.Fatalf("expected ErrEntryIndex for negative, got %v", err)
	}
}

func TestClearSessionKeepsRoster(t *testing.T) {
	l, _ := seeded(t)
	ctx := context.Background()
	if _, err := l.AddEntry(ctx, "E001", core.NewDate(2024, 3, 10), core.OT10, core.Hours{Tenths: 25}); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if err := l.ClearSession(ctx); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	s := l.Snapshot()
	if len(s.Entries) != 0 {
		t.Fatalf("entries survived clear: %+v", s.Entries)
	}
	if !s.PayPeriodEnd.IsZero() {
		t.Fatalf("pay period end survived clear: %v", s.PayPeriodEnd)
	}
	if len(s.Employees) != 2 {
		t.Fatalf("roster did not survive clear: %+v", s.Employees)
	}
}

func TestSetPayPeriodEndKeepsOutOfRangeEntries(t *testing.T) {
	l, _ := seeded(t)
	ctx := context.Background()
	if _, err := l.AddEntry(ctx, "E001", core.NewDate(2024, 3, 10), core.OT10, core.Hours{Tenths: 25}); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	// A month later the old entry is off-period but must stay stored.
	if err := l.SetPayPeriodEnd(ctx, core.NewDate(2024, 4, 13)); err != nil {
		t.Fatalf("SetPayPeriodEnd: %v", err)
	}
	s := l.Snapshot()
	if len(s.Entries) != 1 {
		t.Fatalf("out-of-range entry was dropped")
	}
	if got := core.Classify(s.Entries[0].Date, s.PayPeriodEnd); got != core.OutOfRange {
		t.Fatalf("entry should classify out of range, got %v", got)
	}
}

func TestFailedSaveLeavesStateUntouched(t *testing.T) {
	l, store := seeded(t)
	ctx := context.Background()
	store.saveErr = errors.New("disk full")

	_, err := l.AddEntry(ctx, "E001", core.NewDate(2024, 3, 10), core.OT10, core.Hours{Tenths: 25})
	if err == nil {
		t.Fatalf("expected save failure to surface")
	}
	if got := len(l.Snapshot().Entries); got != 0 {
		t.Fatalf("in-memory state mutated despite failed save: %d entries", got)
	}
}

func TestRevisionCountsMutations(t *testing.T) {
	l, _ := seeded(t)
	if got := l.Revision(); got != 2 {
		t.Fatalf("Revision after seed = %d, want 2", got)
	}
	if _, err := l.AddEntry(context.Background(), "E001", core.NewDate(2024, 3, 10), core.OT10, core.Hours{Tenths: 10}); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if got := l.Revision(); got != 3 {
		t.Fatalf("Revision = %d, want 3", got)
	}
}

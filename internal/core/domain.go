package core

import (
	"errors"
	"strings"
)

const (
	OT10  Category = "ot10"
	OT15  Category = "ot15"
	CTE10 Category = "cte10"
	CTE15 Category = "cte15"
)

type (
	// Category identifies one of the four overtime buckets. The set is
	// closed; anything outside it is rejected at the boundary.
	Category string

	Employee struct {
		EmpNo string `json:"emp_no"`
		Last  string `json:"last"`
		First string `json:"first"`
	}

	// Entry is one overtime line as it is persisted. Last and First are a
	// snapshot of the roster record at insertion time and do not change if
	// the roster is re-imported later.
	Entry struct {
		EmpNo    string   `json:"empNo"`
		Last     string   `json:"last"`
		First    string   `json:"first"`
		Date     Date     `json:"date"`
		Category Category `json:"category"`
		Hours    Hours    `json:"hours"`
	}

	// LedgerState is the whole working copy: roster, pay period anchor and
	// entries. It is loaded and saved as one unit.
	LedgerState struct {
		Employees    []Employee `json:"employees"`
		PayPeriodEnd Date       `json:"payPeriodEnd"`
		Entries      []Entry    `json:"otEntries"`
	}
)

var (
	ErrNoEmployeeSelected = errors.New("no employee selected")
	ErrNoDateSelected     = errors.New("no date selected")
	ErrInvalidHours       = errors.New("invalid hours")
	ErrDateOutOfRange     = errors.New("date outside the current pay period")
	ErrEntryIndex         = errors.New("entry index out of range")
	ErrUnknownCategory    = errors.New("unknown overtime category")
)

// Categories returns the four buckets in their fixed display order.
func Categories() [4]Category {
	return [4]Category{OT10, OT15, CTE10, CTE15}
}

// ParseCategory maps a wire value onto the closed category set.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.TrimSpace(s)) {
	case OT10:
		return OT10, nil
	case OT15:
		return OT15, nil
	case CTE10:
		return CTE10, nil
	case CTE15:
		return CTE15, nil
	}
	return "", ErrUnknownCategory
}

// Label returns the human display label, e.g. "OT 1.5".
func (c Category) Label() string {
	switch c {
	case OT10:
		return "OT 1.0"
	case OT15:
		return "OT 1.5"
	case CTE10:
		return "CTE 1.0"
	case CTE15:
		return "CTE 1.5"
	}
	return string(c)
}

// Index returns the position in the fixed display order, or -1.
func (c Category) Index() int {
	for i, k := range Categories() {
		if c == k {
			return i
		}
	}
	return -1
}

func (c Category) Validate() error {
	if c.Index() < 0 {
		return ErrUnknownCategory
	}
	return nil
}

// DisplayName renders the roster display form "Last, First".
func (e Employee) DisplayName() string {
	return e.Last + ", " + e.First
}

func (e Employee) Validate() error {
	if strings.TrimSpace(e.EmpNo) == "" {
		return ErrNoEmployeeSelected
	}
	return nil
}

func (en Entry) Validate() error {
	if err := (Employee{EmpNo: en.EmpNo}).Validate(); err != nil {
		return err
	}
	if en.Date.IsZero() {
		return ErrNoDateSelected
	}
	if err := en.Category.Validate(); err != nil {
		return err
	}
	if en.Hours.Tenths <= 0 {
		return ErrInvalidHours
	}
	return nil
}

// EmptyState returns the default working copy: no roster, no anchor, no
// entries. Slices are non-nil so the JSON form round-trips as [] not null.
func EmptyState() LedgerState {
	return LedgerState{Employees: []Employee{}, Entries: []Entry{}}
}

// Clone returns a deep copy safe to hand outside the owning goroutine.
func (s LedgerState) Clone() LedgerState {
	out := LedgerState{
		Employees:    make([]Employee, len(s.Employees)),
		PayPeriodEnd: s.PayPeriodEnd,
		Entries:      make([]Entry, len(s.Entries)),
	}
	copy(out.Employees, s.Employees)
	copy(out.Entries, s.Entries)
	return out
}

// FindEmployee looks an employee up by number in roster order.
func (s LedgerState) FindEmployee(empNo string) (Employee, bool) {
	for _, e := range s.Employees {
		if e.EmpNo == empNo {
			return e, true
		}
	}
	return Employee{}, false
}

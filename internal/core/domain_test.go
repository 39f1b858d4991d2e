package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		if err != nil {
			t.Fatalf("ParseCategory(%q): %v", c, err)
		}
		if got != c {
			t.Fatalf("ParseCategory(%q) = %q", c, got)
		}
	}
	if _, err := ParseCategory("ot20"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if _, err := ParseCategory(""); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory for empty, got %v", err)
	}
}

func TestCategoryOrderAndLabels(t *testing.T) {
	want := []struct {
		cat   Category
		label string
	}{
		{OT10, "OT 1.0"},
		{OT15, "OT 1.5"},
		{CTE10, "CTE 1.0"},
		{CTE15, "CTE 1.5"},
	}
	cats := Categories()
	for i, w := range want {
		if cats[i] != w.cat {
			t.Fatalf("Categories()[%d] = %q, want %q", i, cats[i], w.cat)
		}
		if got := cats[i].Label(); got != w.label {
			t.Fatalf("%q.Label() = %q, want %q", cats[i], got, w.label)
		}
		if got := cats[i].Index(); got != i {
			t.Fatalf("%q.Index() = %d, want %d", cats[i], got, i)
		}
	}
}

func TestEntryValidate(t *testing.T) {
	valid := Entry{
		EmpNo:    "E001",
		Date:     NewDate(2024, 3, 10),
		Category: OT10,
		Hours:    Hours{Tenths: 25},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid entry: %v", err)
	}

	cases := []struct {
		name string
		mod  func(Entry) Entry
		want error
	}{
		{"missing employee", func(e Entry) Entry { e.EmpNo = " "; return e }, ErrNoEmployeeSelected},
		{"missing date", func(e Entry) Entry { e.Date = Date{}; return e }, ErrNoDateSelected},
		{"unknown category", func(e Entry) Entry { e.Category = "ot20"; return e }, ErrUnknownCategory},
		{"zero hours", func(e Entry) Entry { e.Hours = Hours{}; return e }, ErrInvalidHours},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := c.mod(valid).Validate(); !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestLedgerStateJSONShape(t *testing.T) {
	s := EmptyState()
	s.Employees = []Employee{{EmpNo: "E001", Last: "Alvarez", First: "Maria"}}
	s.PayPeriodEnd = NewDate(2024, 3, 16)
	s.Entries = []Entry{{
		EmpNo: "E001", Last: "Alvarez", First: "Maria",
		Date: NewDate(2024, 3, 10), Category: OT15, Hours: Hours{Tenths: 10},
	}}

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	for _, key := range []string{"employees", "payPeriodEnd", "otEntries"} {
		if _, ok := m[key]; !ok {
			t.Fatalf("state JSON missing key %q: %s", key, b)
		}
	}

	var back LedgerState
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if len(back.Entries) != 1 || back.Entries[0].Hours.Tenths != 10 {
		t.Fatalf("round trip lost entries: %+v", back)
	}
	if !back.PayPeriodEnd.Equal(s.PayPeriodEnd.Time) {
		t.Fatalf("round trip lost pay period end")
	}
}

func TestEmptyStateMarshalsEmptyArrays(t *testing.T) {
	b, err := json.Marshal(EmptyState())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"employees":[],"payPeriodEnd":"","otEntries":[]}`
	if string(b) != want {
		t.Fatalf("EmptyState JSON = %s, want %s", b, want)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := EmptyState()
	s.Employees = append(s.Employees, Employee{EmpNo: "E001", Last: "Ng", First: "Dana"})
	c := s.Clone()
	c.Employees[0].Last = "changed"
	if s.Employees[0].Last != "Ng" {
		t.Fatalf("Clone shares employee backing array")
	}
}

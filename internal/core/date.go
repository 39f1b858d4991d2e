package core

import (
	"fmt"
	"strings"
	"time"
)

// Input layouts accepted for dates, tried in order. The first is the wire
// form; the rest cover what people actually type.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"01-02-2006",
	"01/02/06",
	"01-02-06",
}

// Date is a calendar date pinned to midnight UTC.
type Date struct {
	time.Time
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date in any of the accepted layouts. An empty string
// is reported as ErrNoDateSelected so callers can surface the right
// validation message without inspecting the input themselves.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrNoDateSelected
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), int(t.Month()), t.Day()), nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q: %w", s, ErrNoDateSelected)
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// ISO returns the wire form "2006-01-02".
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// Slip returns the slip header form "MM-DD-YY".
func (d Date) Slip() string {
	return d.Format("01-02-06")
}

// Short returns the compact list form "M/D".
func (d Date) Short() string {
	return fmt.Sprintf("%d/%d", int(d.Time.Month()), d.Time.Day())
}

// Full returns the long display form "M/D/YYYY".
func (d Date) Full() string {
	return fmt.Sprintf("%d/%d/%d", int(d.Time.Month()), d.Time.Day(), d.Time.Year())
}

// MarshalJSON encodes the date as an ISO string, or "" for the zero date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.ISO() + `"`), nil
}

// UnmarshalJSON accepts any of the input layouts; "" and null load as the
// zero date.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

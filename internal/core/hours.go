// Package core provides the overtime ledger's domain types and pure logic.
//
// This file contains hour parsing and formatting. Hours are carried as
// whole tenths of an hour so sums never accumulate floating-point drift.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// Hours is a duration in tenths of an hour.
type Hours struct {
	Tenths int64
}

// ParseHours converts a decimal string to tenths with proper rounding.
//
// It accepts both dot (2.5) and comma (2,5) decimal separators and performs
// half-up rounding on the second decimal place. Zero and negative values
// are rejected; overtime lines always carry positive hours.
//
// Examples:
//
//	ParseHours("2.5")  -> 25 tenths, nil
//	ParseHours("2,5")  -> 25 tenths, nil
//	ParseHours("2.54") -> 25 tenths, nil (rounds down)
//	ParseHours("2.55") -> 26 tenths, nil (rounds up)
func ParseHours(s string) (Hours, error) {
	tenths, err := parseDecimalToTenths(s)
	if err != nil {
		return Hours{}, err
	}
	if tenths <= 0 {
		return Hours{}, ErrInvalidHours
	}
	return Hours{Tenths: tenths}, nil
}

func parseDecimalToTenths(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidHours
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidHours
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidHours
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidHours
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidHours
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidHours
	}
	// Prevent overflow when multiplying by 10
	const maxSafeInt64 = (1<<63 - 1) / 10
	if iv > maxSafeInt64 {
		return 0, ErrInvalidHours
	}
	// Take the first fractional digit; half-up rounding on the second
	var fracTenths int64
	if len(fracPart) > 0 {
		fracTenths = int64(fracPart[0] - '0')
		if len(fracPart) > 1 && fracPart[1] >= '5' {
			fracTenths++
		}
	}
	return iv*10 + fracTenths, nil
}

// Add returns the sum of two hour values.
func (h Hours) Add(o Hours) Hours {
	return Hours{Tenths: h.Tenths + o.Tenths}
}

// IsZero reports whether no time is recorded.
func (h Hours) IsZero() bool {
	return h.Tenths == 0
}

// Float returns the hour value as a float64 for spreadsheet cells.
// Use tenths for calculations to avoid floating-point precision issues.
func (h Hours) Float() float64 {
	return float64(h.Tenths) / 10.0
}

// String always renders one decimal place: "2.0", "2.5".
func (h Hours) String() string {
	sign := ""
	t := h.Tenths
	if t < 0 {
		sign = "-"
		t = -t
	}
	return sign + strconv.FormatInt(t/10, 10) + "." + strconv.FormatInt(t%10, 10)
}

// MarshalJSON encodes hours as a plain decimal number.
func (h Hours) MarshalJSON() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalJSON accepts any non-negative JSON number, including bare
// integers from older stored states.
func (h *Hours) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*h = Hours{}
		return nil
	}
	tenths, err := parseDecimalToTenths(s)
	if err != nil {
		return err
	}
	*h = Hours{Tenths: tenths}
	return nil
}

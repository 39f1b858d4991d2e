// Package roster parses employee roster CSV uploads. Files come from HR
// exports of varying vintage, so both the character encoding and the
// column headers are negotiable.
package roster

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"otslip/internal/core"
)

// Column header aliases, tried in order per row.
var (
	lastKeys  = []string{"LastName", "Last", "Last_Name", "Surname"}
	firstKeys = []string{"FirstName", "First", "First_Name", "GivenName"}
	empNoKeys = []string{"EmployeeNumber", "Employee #", "EmpNo", "EmployeeID", "Employee_Id"}
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse decodes a roster CSV into employees sorted case-insensitively by
// (last, first). Rows with neither a last nor a first name are skipped;
// a missing employee number is kept as empty rather than rejected.
func Parse(fileBytes []byte) ([]core.Employee, error) {
	records, err := readRecords(fileBytes)
	if err != nil {
		return nil, fmt.Errorf("reading roster CSV: %w", err)
	}
	if len(records) == 0 {
		return []core.Employee{}, nil
	}

	header := records[0]
	if !hasNameColumn(header) {
		return nil, fmt.Errorf("no name columns found in header %v", header)
	}
	employees := []core.Employee{}
	for _, row := range records[1:] {
		last := field(header, row, lastKeys)
		first := field(header, row, firstKeys)
		if last == "" && first == "" {
			continue
		}
		employees = append(employees, core.Employee{
			EmpNo: field(header, row, empNoKeys),
			Last:  last,
			First: first,
		})
	}
	sort.SliceStable(employees, func(a, b int) bool {
		la, lb := strings.ToLower(employees[a].Last), strings.ToLower(employees[b].Last)
		if la != lb {
			return la < lb
		}
		return strings.ToLower(employees[a].First) < strings.ToLower(employees[b].First)
	})
	return employees, nil
}

// readRecords tries UTF-8 (with BOM strip), then Windows-1252, then
// Latin-1, then a last permissive UTF-8 pass with invalid bytes replaced.
func readRecords(fileBytes []byte) ([][]string, error) {
	text := bytes.TrimPrefix(fileBytes, utf8BOM)
	if !utf8.Valid(text) {
		var decoded []byte
		var err error
		for _, cm := range []*charmap.Charmap{charmap.Windows1252, charmap.ISO8859_1} {
			decoded, err = cm.NewDecoder().Bytes(text)
			if err == nil {
				break
			}
		}
		if err == nil {
			text = decoded
		} else {
			text = bytes.ToValidUTF8(text, []byte("�"))
		}
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

// hasNameColumn reports whether the header carries at least one of the
// last or first name aliases. Without one the file cannot be a roster.
func hasNameColumn(header []string) bool {
	for _, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))
		for _, key := range append(append([]string{}, lastKeys...), firstKeys...) {
			if name == key {
				return true
			}
		}
	}
	return false
}

// field returns the first non-blank cell among the aliased columns.
func field(header, row []string, keys []string) string {
	for _, key := range keys {
		for i, name := range header {
			if strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")) != key {
				continue
			}
			if i < len(row) {
				if v := strings.TrimSpace(row[i]); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

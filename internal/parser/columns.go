package parser

import (
	"fmt"
	"strings"

	"github.com/adasafety/catops/internal/config"
)

// headerScanLimit bounds how many leading rows are searched for the
// header when the sheet carries preamble rows above it.
const headerScanLimit = 10

// Sheet is a Table bound to a vendor profile's header mapping.
type Sheet struct {
	table     *Table
	headerRow int
	columns   map[string]int
	nameCols  []int // set when the profile composes the name from several columns
}

// MapHeader locates the header row and resolves the profile's field
// aliases to column indices. It fails when no identifier column is found.
func MapHeader(t *Table, profile *config.VendorProfile) (*Sheet, error) {
	headerRow := locateHeader(t, profile.HeaderAnchors)
	if headerRow < 0 {
		return nil, fmt.Errorf("sheet has no rows")
	}

	headers := make([]string, len(t.Rows[headerRow]))
	for i, h := range t.Rows[headerRow] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	s := &Sheet{
		table:     t,
		headerRow: headerRow,
		columns:   make(map[string]int),
	}

	for field, aliases := range profile.FieldAliases {
		if idx := findColumn(headers, aliases); idx >= 0 {
			s.columns[field] = idx
		}
	}

	if profile.ComposeName {
		for _, alias := range profile.FieldAliases[config.FieldName] {
			if idx := exactColumn(headers, alias); idx >= 0 {
				s.nameCols = append(s.nameCols, idx)
			}
		}
	}

	if _, ok := s.columns[config.FieldSKU]; !ok {
		return nil, fmt.Errorf("no identifier column found (tried: %s)",
			strings.Join(profile.FieldAliases[config.FieldSKU], ", "))
	}

	return s, nil
}

// locateHeader returns the index of the first leading row containing any
// anchor header. When no anchors are configured, or none of them appear,
// the first row is treated as the header and alias matching decides.
func locateHeader(t *Table, anchors []string) int {
	if len(t.Rows) == 0 {
		return -1
	}
	if len(anchors) == 0 {
		return 0
	}

	limit := headerScanLimit
	if len(t.Rows) < limit {
		limit = len(t.Rows)
	}
	for i := 0; i < limit; i++ {
		for _, cell := range t.Rows[i] {
			cell = strings.ToLower(strings.TrimSpace(cell))
			for _, anchor := range anchors {
				if cell == strings.ToLower(anchor) {
					return i
				}
			}
		}
	}
	return 0
}

// findColumn matches aliases against headers, exact first so that a loose
// alias like "price" cannot shadow an exact "cost price" match.
func findColumn(headers []string, aliases []string) int {
	for _, alias := range aliases {
		if idx := exactColumn(headers, alias); idx >= 0 {
			return idx
		}
	}
	for _, alias := range aliases {
		a := strings.ToLower(alias)
		for i, h := range headers {
			if h != "" && strings.Contains(h, a) {
				return i
			}
		}
	}
	return -1
}

func exactColumn(headers []string, alias string) int {
	a := strings.ToLower(alias)
	for i, h := range headers {
		if h == a {
			return i
		}
	}
	return -1
}

// RawRow is one data row with cells keyed by logical field name. Number is
// the 1-based spreadsheet row number for error reporting.
type RawRow struct {
	Number int
	values map[string]string
}

// Get returns the trimmed cell value for a logical field, empty when the
// column is unmapped or the cell is blank.
func (r RawRow) Get(field string) string {
	return r.values[field]
}

// IsBlank reports whether every mapped cell in the row is empty.
func (r RawRow) IsBlank() bool {
	for _, v := range r.values {
		if v != "" {
			return false
		}
	}
	return true
}

// DataRows returns every row below the header, mapped through the resolved
// columns. Blank trailing cells excelize omits are treated as empty.
func (s *Sheet) DataRows() []RawRow {
	var rows []RawRow
	for i := s.headerRow + 1; i < len(s.table.Rows); i++ {
		raw := s.table.Rows[i]
		row := RawRow{
			Number: i + 1,
			values: make(map[string]string, len(s.columns)),
		}
		for field, idx := range s.columns {
			if idx < len(raw) {
				row.values[field] = strings.TrimSpace(raw[idx])
			}
		}
		if len(s.nameCols) > 0 {
			var parts []string
			for _, idx := range s.nameCols {
				if idx < len(raw) {
					if v := strings.TrimSpace(raw[idx]); v != "" {
						parts = append(parts, v)
					}
				}
			}
			row.values[config.FieldName] = strings.Join(parts, " ")
		}
		rows = append(rows, row)
	}
	return rows
}

// Package tabular converts between the hierarchy store and the two tabular
// shapes found in user workbooks: the flat relational layout with explicit id
// and parent-reference columns, and the column-indented outline layout. Both
// parsers and the exporter are pure functions over Table values; file handling
// lives in infrastructure/spreadsheet.
package tabular

import "strings"

// Column headers of the relational layout. The workbooks this tool exchanges
// data with are the legacy Arabic ones, so the headers are matched verbatim.
const (
	ColumnID         = "الرقم التعريفي"
	ColumnName       = "المدخل"
	ColumnDefinition = "الشرح"
	ColumnKind       = "النوع"

	// ParentColumnPrefix marks the columns that each hold one parent
	// reference, e.g. "علاقة جزء من كل 1". Matching is by prefix so the
	// numbering scheme of older exports is irrelevant.
	ParentColumnPrefix = "علاقة جزء من كل"
)

// Table is a rectangular block of spreadsheet cells. Header is nil for
// headerless outline tables. Rows may be ragged; cell access through Cell pads
// short rows with empty strings.
type Table struct {
	Header []string
	Rows   [][]string
}

// WithHeader interprets raw sheet rows as a relational table: first row is
// the header, the rest are data.
func WithHeader(rows [][]string) Table {
	if len(rows) == 0 {
		return Table{}
	}
	return Table{Header: rows[0], Rows: rows[1:]}
}

// Headerless interprets raw sheet rows as an outline table: every row is
// data.
func Headerless(rows [][]string) Table {
	return Table{Rows: rows}
}

// Column returns the index of the named header column, or -1.
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed cell at the given index of a row, or "" when the
// row is too short.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

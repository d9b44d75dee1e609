package ports

import (
	"io"

	"github.com/walidMaaninou/lexi-build/application/tabular"
)

// SpreadsheetCodec defines the interface for reading and writing the workbook
// files exchanged with users. This is a port in hexagonal architecture - the
// application doesn't know about the implementation (excelize sits behind it
// in infrastructure/spreadsheet).
type SpreadsheetCodec interface {
	// Read returns every cell of the workbook's first sheet as strings. The
	// import layer decides afterwards whether the first row is a header,
	// since the same sheet may have to be re-parsed as a headerless outline.
	Read(r io.Reader) ([][]string, error)

	// Write serializes a table as a single-sheet workbook.
	Write(w io.Writer, t tabular.Table) error
}

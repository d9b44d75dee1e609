// Package spreadsheet adapts xlsx workbooks to the tabular values the
// application layer works with. It is the only place that knows about
// excelize.
package spreadsheet

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/walidMaaninou/lexi-build/application/tabular"
	apperrors "github.com/walidMaaninou/lexi-build/pkg/errors"
)

// Codec reads and writes single-sheet xlsx workbooks. It implements
// ports.SpreadsheetCodec.
type Codec struct{}

// NewCodec creates a new xlsx codec
func NewCodec() *Codec {
	return &Codec{}
}

// Read returns every cell of the first sheet as strings. Trailing empty cells
// and rows may be absent; consumers index rows through tabular.Cell, which
// pads them. An unreadable workbook is a validation error surfaced to the
// caller, not swallowed.
func (c *Codec) Read(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewValidationError("file is not a readable xlsx workbook").WithCause(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewValidationError("workbook contains no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read sheet")
	}
	return rows, nil
}

// Write serializes a table as a single-sheet workbook, header row first.
func (c *Codec) Write(w io.Writer, t tabular.Table) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	rowIdx := 1
	if len(t.Header) > 0 {
		if err := c.writeRow(f, sheet, rowIdx, t.Header); err != nil {
			return err
		}
		rowIdx++
	}
	for _, row := range t.Rows {
		if err := c.writeRow(f, sheet, rowIdx, row); err != nil {
			return err
		}
		rowIdx++
	}

	if err := f.Write(w); err != nil {
		return apperrors.Wrap(err, "failed to write workbook")
	}
	return nil
}

func (c *Codec) writeRow(f *excelize.File, sheet string, rowIdx int, cells []string) error {
	axis, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return apperrors.Wrap(err, "invalid cell coordinates")
	}
	values := make([]interface{}, len(cells))
	for i, v := range cells {
		values[i] = v
	}
	if err := f.SetSheetRow(sheet, axis, &values); err != nil {
		return apperrors.Wrap(err, "failed to set sheet row")
	}
	return nil
}

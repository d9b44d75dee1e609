package tabular

import (
	"strings"

	"github.com/walidMaaninou/lexi-build/domain/hierarchy"
	apperrors "github.com/walidMaaninou/lexi-build/pkg/errors"
)

// BuildFromRelational converts a flat relational table into a hierarchy
// store. Each row carries its own id; every column whose header starts with
// ParentColumnPrefix contributes one parent reference per non-empty cell, in
// column order, so multi-parent nodes are first class here.
//
// A table missing the id, name or kind column is reported as a malformed
// import; the import layer reacts by retrying the same sheet with the outline
// parser. Parent references that never resolve are left dangling, since
// imported data may contain typos; the linking pass skips them.
func BuildFromRelational(t Table) (*hierarchy.Store, error) {
	idCol := t.Column(ColumnID)
	nameCol := t.Column(ColumnName)
	kindCol := t.Column(ColumnKind)

	var missing []string
	if idCol < 0 {
		missing = append(missing, ColumnID)
	}
	if nameCol < 0 {
		missing = append(missing, ColumnName)
	}
	if kindCol < 0 {
		missing = append(missing, ColumnKind)
	}
	if len(missing) > 0 {
		return nil, apperrors.NewMalformedImportError(missing)
	}

	defCol := t.Column(ColumnDefinition) // optional

	var parentCols []int
	for i, h := range t.Header {
		if strings.HasPrefix(strings.TrimSpace(h), ParentColumnPrefix) {
			parentCols = append(parentCols, i)
		}
	}

	store := hierarchy.NewStore()
	for _, row := range t.Rows {
		id := Cell(row, idCol)
		if id == "" {
			continue // blank padding rows at the end of a sheet
		}

		var parents []string
		for _, pc := range parentCols {
			if pid := Cell(row, pc); pid != "" {
				parents = append(parents, pid)
			}
		}

		store.Put(&hierarchy.Node{
			ID:         id,
			Name:       Cell(row, nameCol),
			Kind:       hierarchy.ParseKind(Cell(row, kindCol)),
			Definition: Cell(row, defCol),
			Parents:    parents,
		})
	}

	store.RelinkChildren()
	return store, nil
}

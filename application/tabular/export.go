package tabular

import (
	"fmt"

	"github.com/walidMaaninou/lexi-build/domain/hierarchy"
)

// Export flattens a store back into the relational layout: one row per node
// in insertion order, the four base columns, then one parent-reference column
// per slot up to the widest Parents list in the store. A node fills only as
// many parent cells as it has parents; the rest stay empty. The column set
// depends on the store's current shape and is recomputed on every call.
func Export(s *hierarchy.Store) Table {
	maxParents := 0
	for _, id := range s.IDs() {
		n, _ := s.Get(id)
		if len(n.Parents) > maxParents {
			maxParents = len(n.Parents)
		}
	}

	header := []string{ColumnID, ColumnName, ColumnDefinition, ColumnKind}
	for i := 0; i < maxParents; i++ {
		header = append(header, fmt.Sprintf("%s %d", ParentColumnPrefix, i+1))
	}

	rows := make([][]string, 0, s.Len())
	for _, id := range s.IDs() {
		n, _ := s.Get(id)
		row := []string{n.ID, n.Name, n.Definition, string(n.Kind)}
		for i := 0; i < maxParents; i++ {
			if i < len(n.Parents) {
				row = append(row, n.Parents[i])
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}

	return Table{Header: header, Rows: rows}
}

package tabular

import (
	"fmt"

	"github.com/walidMaaninou/lexi-build/domain/hierarchy"
)

// kindAtDepth is the fixed column→kind lookup of the outline layout. Columns
// beyond the table get the unknown label.
var kindAtDepth = map[int]hierarchy.Kind{
	0: hierarchy.KindCategory,
	1: hierarchy.KindSection,
	2: hierarchy.KindTopic,
	3: hierarchy.KindEntry,
}

// BuildFromOutline converts a headerless, column-indented outline table into
// a hierarchy store. Nesting depth is the column index; every non-empty cell
// becomes a node with a fresh sequential id ("N1", "N2", …, never reused), and
// its parent is the most recently emitted node at the nearest column to its
// left.
//
// Two quirks of the legacy workbook layout are kept on purpose rather than
// corrected:
//
//   - A cell's definition is taken from its immediate right-hand neighbor.
//     That neighbor, if non-empty, is also parsed as a node of its own, so a
//     child label doubles as its parent's definition.
//   - The per-column "last seen" table is only ever overwritten, never
//     cleared, so a row that skips columns can attach to an ancestor left over
//     from an earlier row.
func BuildFromOutline(t Table) *hierarchy.Store {
	store := hierarchy.NewStore()
	counter := 1
	lastAtColumn := make(map[int]string)

	for _, row := range t.Rows {
		for col := range row {
			name := Cell(row, col)
			if name == "" {
				continue
			}

			definition := Cell(row, col+1)

			id := fmt.Sprintf("N%d", counter)
			counter++

			var parents []string
			for i := col - 1; i >= 0; i-- {
				if pid, ok := lastAtColumn[i]; ok {
					parents = []string{pid}
					break
				}
			}

			kind, ok := kindAtDepth[col]
			if !ok {
				kind = hierarchy.KindUnknown
			}

			store.Put(&hierarchy.Node{
				ID:         id,
				Name:       name,
				Kind:       kind,
				Definition: definition,
				Parents:    parents,
			})
			lastAtColumn[col] = id
		}
	}

	store.RelinkChildren()
	return store
}

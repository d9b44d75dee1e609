package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walidMaaninou/lexi-build/domain/hierarchy"
)

func TestBuildFromOutline(t *testing.T) {
	t.Run("carries last seen ancestor across rows", func(t *testing.T) {
		store := BuildFromOutline(Headerless([][]string{
			{"A", "B", "C"},
			{"", "B2", "C2"},
		}))

		// Row one: A=N1, B=N2, C=N3. Row two: B2=N4, C2=N5.
		require.Equal(t, 5, store.Len())

		b2, ok := store.Get("N4")
		require.True(t, ok)
		assert.Equal(t, "B2", b2.Name)
		// Column 0 of row two is empty, so B2 attaches to the column-0
		// node remembered from row one.
		assert.Equal(t, []string{"N1"}, b2.Parents)

		c2, _ := store.Get("N5")
		assert.Equal(t, []string{"N4"}, c2.Parents)
	})

	t.Run("right-hand neighbor doubles as definition and node", func(t *testing.T) {
		store := BuildFromOutline(Headerless([][]string{
			{"A", "B"},
		}))

		a, _ := store.Get("N1")
		assert.Equal(t, "B", a.Definition)

		b, ok := store.Get("N2")
		require.True(t, ok, "the neighbor is still parsed as its own node")
		assert.Equal(t, "B", b.Name)
		assert.Equal(t, []string{"N1"}, b.Parents)
	})

	t.Run("kind follows column depth with unknown fallback", func(t *testing.T) {
		store := BuildFromOutline(Headerless([][]string{
			{"a", "b", "c", "d", "e"},
		}))

		wantKinds := []hierarchy.Kind{
			hierarchy.KindCategory,
			hierarchy.KindSection,
			hierarchy.KindTopic,
			hierarchy.KindEntry,
			hierarchy.KindUnknown,
		}
		for i, want := range wantKinds {
			n, _ := store.Get(ids(store)[i])
			assert.Equal(t, want, n.Kind, "column %d", i)
		}
	})

	t.Run("counter never resets across rows", func(t *testing.T) {
		store := BuildFromOutline(Headerless([][]string{
			{"a"},
			{"b"},
			{"", "c"},
		}))
		assert.Equal(t, []string{"N1", "N2", "N3"}, ids(store))
	})

	t.Run("stale deeper columns can capture rows that skip levels", func(t *testing.T) {
		store := BuildFromOutline(Headerless([][]string{
			{"A", "B", "C"},
			{"A2"},
			{"", "", "C2"},
		}))

		// The column-1 slot still remembers B from row one, so C2 hangs off
		// B even though A2 started a fresh subtree. Legacy behavior, kept.
		c2, _ := store.Get("N5")
		assert.Equal(t, "C2", c2.Name)
		assert.Equal(t, []string{"N2"}, c2.Parents)
	})

	t.Run("whitespace-only cells are skipped", func(t *testing.T) {
		store := BuildFromOutline(Headerless([][]string{
			{"  ", "B"},
		}))
		require.Equal(t, 1, store.Len())
		b, _ := store.Get("N1")
		assert.Equal(t, "B", b.Name)
		assert.True(t, b.IsRoot())
	})

	t.Run("empty table", func(t *testing.T) {
		store := BuildFromOutline(Headerless(nil))
		assert.Equal(t, 0, store.Len())
	})
}

func ids(s *hierarchy.Store) []string {
	return s.IDs()
}

func TestOutlineInverseLinks(t *testing.T) {
	store := BuildFromOutline(Headerless([][]string{
		{"A", "B", "C", "D"},
		{"", "B2"},
		{"", "", "C3"},
	}))

	for _, id := range store.IDs() {
		n, _ := store.Get(id)
		for _, pid := range n.Parents {
			p, ok := store.Get(pid)
			require.True(t, ok)
			assert.Contains(t, p.Children, id)
		}
	}
}

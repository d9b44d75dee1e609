package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/walidMaaninou/lexi-build/pkg/errors"
)

func TestSiblings(t *testing.T) {
	t.Run("union across two parents, self excluded", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Add("p-1", "p1", KindTopic, "", ""))
		require.NoError(t, s.Add("p-2", "p2", KindTopic, "", ""))
		require.NoError(t, s.Add("c-3", "a", KindEntry, "", "p-1"))
		require.NoError(t, s.Add("c-4", "b", KindEntry, "", "p-2"))
		s.Put(&Node{ID: "c-5", Name: "shared", Kind: KindEntry, Parents: []string{"p-1", "p-2"}})
		s.RelinkChildren()

		sibs, err := s.Siblings("c-5")
		require.NoError(t, err)
		assert.Equal(t, []string{"c-3", "c-4"}, sibs)
	})

	t.Run("shared siblings are not duplicated", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Add("p-1", "p1", KindTopic, "", ""))
		require.NoError(t, s.Add("p-2", "p2", KindTopic, "", ""))
		s.Put(&Node{ID: "c-3", Name: "x", Kind: KindEntry, Parents: []string{"p-1", "p-2"}})
		s.Put(&Node{ID: "c-4", Name: "y", Kind: KindEntry, Parents: []string{"p-1", "p-2"}})
		s.RelinkChildren()

		sibs, err := s.Siblings("c-3")
		require.NoError(t, err)
		assert.Equal(t, []string{"c-4"}, sibs)
	})

	t.Run("dangling parent contributes nothing", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Add("c-1", "x", KindEntry, "", "gone-9"))
		sibs, err := s.Siblings("c-1")
		require.NoError(t, err)
		assert.Empty(t, sibs)
	})

	t.Run("root has no siblings", func(t *testing.T) {
		s := newTestStore(t)
		sibs, err := s.Siblings("br-1")
		require.NoError(t, err)
		assert.Empty(t, sibs)
	})

	t.Run("absent id", func(t *testing.T) {
		s := NewStore()
		_, err := s.Siblings("nope")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestAncestorsAndDescendants(t *testing.T) {
	s := newTestStore(t)

	anc, err := s.Ancestors("br-4")
	require.NoError(t, err)
	assert.Equal(t, []string{"br-3", "br-2", "br-1"}, anc, "nearest ancestor first")

	desc, err := s.Descendants("br-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"br-2", "br-3", "br-4"}, desc)

	entries, err := s.DescendantsOfKind("br-1", KindEntry)
	require.NoError(t, err)
	assert.Equal(t, []string{"br-4"}, entries)
}

func TestTraversalTerminatesOnCycle(t *testing.T) {
	// The import path never rejects cycles, so traversals must not loop.
	s := NewStore()
	s.Put(&Node{ID: "a-1", Name: "a", Kind: KindTopic, Parents: []string{"a-2"}})
	s.Put(&Node{ID: "a-2", Name: "b", Kind: KindTopic, Parents: []string{"a-1"}})
	s.RelinkChildren()

	anc, err := s.Ancestors("a-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a-2"}, anc)

	desc, err := s.Descendants("a-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a-2"}, desc)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		raw  string
		want Kind
	}{
		{"entry", KindEntry},
		{" section ", KindSection},
		{"مدخل", KindEntry},
		{"باب رئيسي", KindCategory},
		{"باب رئيس", KindCategory},
		{"غير معروف", KindUnknown},
		{"weird-imported-label", Kind("weird-imported-label")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseKind(tt.raw), "raw %q", tt.raw)
	}
}

func TestKindLadder(t *testing.T) {
	assert.Equal(t, KindSection, KindCategory.ChildKind())
	assert.Equal(t, KindTopic, KindSection.ChildKind())
	assert.Equal(t, KindEntry, KindTopic.ChildKind())
	assert.Equal(t, KindEntry, KindEntry.ChildKind(), "off-ladder defaults to entry")

	assert.Equal(t, KindTopic, KindEntry.ParentKind())
	assert.Equal(t, KindSection, KindTopic.ParentKind())
	assert.Equal(t, KindCategory, KindSection.ParentKind())
	assert.Equal(t, KindCategory, Kind("imported").ParentKind())

	assert.True(t, KindEntry.Known())
	assert.False(t, Kind("imported").Known())
}

package services

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/walidMaaninou/lexi-build/application/tabular"
	"github.com/walidMaaninou/lexi-build/domain/hierarchy"
	apperrors "github.com/walidMaaninou/lexi-build/pkg/errors"
)

// fakeCodec serves canned sheet rows and records written tables.
type fakeCodec struct {
	rows    [][]string
	written *tabular.Table
}

func (c *fakeCodec) Read(r io.Reader) ([][]string, error) {
	return c.rows, nil
}

func (c *fakeCodec) Write(w io.Writer, t tabular.Table) error {
	c.written = &t
	return nil
}

func newTestService(rows [][]string) (*WorkspaceService, *fakeCodec) {
	codec := &fakeCodec{rows: rows}
	return NewWorkspaceService(codec, zap.NewNop()), codec
}

func TestCreateWorkspace(t *testing.T) {
	svc, _ := newTestService(nil)

	info, err := svc.Create("الباب الأول")
	require.NoError(t, err)
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, RootID, info.Focus)
	assert.Equal(t, 1, info.NodeCount)

	detail, err := svc.Detail(info.ID, RootID, false)
	require.NoError(t, err)
	assert.Equal(t, hierarchy.KindCategory, detail.Node.Kind)
	assert.Equal(t, "الباب الأول", detail.Node.Name)

	_, err = svc.Create("   ")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestImportRelational(t *testing.T) {
	svc, _ := newTestService([][]string{
		{tabular.ColumnID, tabular.ColumnName, tabular.ColumnKind, tabular.ParentColumnPrefix + " 1"},
		{"br-1", "باب", "باب رئيسي", ""},
		{"br-2", "فصل", "فصل", "br-1"},
	})

	info, err := svc.Import(context.Background(), "lexicon.xlsx", bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, 2, info.NodeCount)
	assert.Equal(t, "br-1", info.Focus, "focus lands on the first root")
}

func TestImportFallsBackToOutline(t *testing.T) {
	// No recognizable header: the first row is just outline content and must
	// be parsed as such, not lost as a failed header.
	svc, _ := newTestService([][]string{
		{"A", "B"},
		{"", "B2"},
	})

	info, err := svc.Import(context.Background(), "outline.xlsx", bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, 3, info.NodeCount)
	assert.Equal(t, "N1", info.Focus)

	detail, err := svc.Detail(info.ID, "N3", false)
	require.NoError(t, err)
	assert.Equal(t, "B2", detail.Node.Name)
	require.Len(t, detail.Parents, 1)
	assert.Equal(t, "N1", detail.Parents[0].ID)
}

func TestExportWorkspace(t *testing.T) {
	svc, codec := newTestService(nil)
	info, err := svc.Create("باب")
	require.NoError(t, err)

	require.NoError(t, svc.Export(context.Background(), info.ID, &bytes.Buffer{}))
	require.NotNil(t, codec.written)
	require.Len(t, codec.written.Rows, 1)
	assert.Equal(t, RootID, codec.written.Rows[0][0])
}

func TestAddNodeContextual(t *testing.T) {
	svc, _ := newTestService(nil)
	info, err := svc.Create("باب")
	require.NoError(t, err)

	t.Run("child kind is one level down", func(t *testing.T) {
		sum, err := svc.AddNode(info.ID, AddNodeInput{Name: "فصل أول"})
		require.NoError(t, err)
		assert.Equal(t, hierarchy.KindSection, sum.Kind)
		assert.Equal(t, "br-2", sum.ID, "id comes from the generator")

		detail, err := svc.Detail(info.ID, sum.ID, false)
		require.NoError(t, err)
		require.Len(t, detail.Parents, 1)
		assert.Equal(t, RootID, detail.Parents[0].ID)
	})

	t.Run("sibling keeps kind and parent", func(t *testing.T) {
		sum, err := svc.AddNode(info.ID, AddNodeInput{Name: "فصل ثان", Relation: "sibling", AnchorID: "br-2"})
		require.NoError(t, err)
		assert.Equal(t, hierarchy.KindSection, sum.Kind)

		sibs, err := svc.Siblings(info.ID, sum.ID)
		require.NoError(t, err)
		require.Len(t, sibs, 1)
		assert.Equal(t, "br-2", sibs[0].ID)
	})

	t.Run("explicit kind wins over inference", func(t *testing.T) {
		sum, err := svc.AddNode(info.ID, AddNodeInput{Name: "مدخل", Kind: "entry", AnchorID: "br-2"})
		require.NoError(t, err)
		assert.Equal(t, hierarchy.KindEntry, sum.Kind)
	})

	t.Run("parent kind is one level up and links the anchor under it", func(t *testing.T) {
		sum, err := svc.AddNode(info.ID, AddNodeInput{Name: "باب جديد", Relation: "parent", AnchorID: "br-2"})
		require.NoError(t, err)
		assert.Equal(t, hierarchy.KindCategory, sum.Kind)

		detail, err := svc.Detail(info.ID, "br-2", false)
		require.NoError(t, err)
		parentIDs := make([]string, 0, len(detail.Parents))
		for _, p := range detail.Parents {
			parentIDs = append(parentIDs, p.ID)
		}
		assert.Contains(t, parentIDs, sum.ID)
		assert.Contains(t, parentIDs, RootID, "the existing parent link stays")
	})

	t.Run("unknown relation is rejected", func(t *testing.T) {
		_, err := svc.AddNode(info.ID, AddNodeInput{Name: "x", Relation: "cousin"})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("anchor defaults to focus", func(t *testing.T) {
		// Focus is still the root; no anchor given.
		sum, err := svc.AddNode(info.ID, AddNodeInput{Name: "فصل ثالث"})
		require.NoError(t, err)
		assert.Equal(t, hierarchy.KindSection, sum.Kind)
	})
}

func TestAddEntriesBatch(t *testing.T) {
	svc, _ := newTestService(nil)
	info, err := svc.Create("باب")
	require.NoError(t, err)

	added, err := svc.AddEntries(info.ID, RootID, []string{
		"قلم: أداة كتابة",
		"   ",
		"كتاب",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	detail, err := svc.Detail(info.ID, "br-2", false)
	require.NoError(t, err)
	assert.Equal(t, "قلم", detail.Node.Name, "name stops at the first colon")
	assert.Equal(t, "قلم: أداة كتابة", detail.Node.Definition, "the whole line is the definition")
	assert.Equal(t, hierarchy.KindEntry, detail.Node.Kind)
}

func TestEditAndDeleteNode(t *testing.T) {
	svc, _ := newTestService(nil)
	info, err := svc.Create("باب")
	require.NoError(t, err)
	sum, err := svc.AddNode(info.ID, AddNodeInput{Name: "فصل"})
	require.NoError(t, err)

	require.NoError(t, svc.EditNode(info.ID, sum.ID, "فصل معدل", ""))
	detail, err := svc.Detail(info.ID, sum.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "فصل معدل", detail.Node.Name)

	// The node is focused now; deleting it moves the focus to its parent.
	focus, err := svc.DeleteNode(info.ID, sum.ID)
	require.NoError(t, err)
	assert.Equal(t, RootID, focus)

	ws, err := svc.Get(info.ID)
	require.NoError(t, err)
	assert.Equal(t, RootID, ws.Focus)

	_, err = svc.DeleteNode(info.ID, RootID)
	require.NoError(t, err)
}

func TestDeleteNodeWithChildren(t *testing.T) {
	svc, _ := newTestService(nil)
	info, err := svc.Create("باب")
	require.NoError(t, err)
	_, err = svc.AddNode(info.ID, AddNodeInput{Name: "فصل"})
	require.NoError(t, err)

	_, err = svc.DeleteNode(info.ID, RootID)
	require.Error(t, err)
	assert.True(t, apperrors.IsHasChildren(err))
}

func TestTree(t *testing.T) {
	svc, _ := newTestService(nil)
	info, err := svc.Create("باب")
	require.NoError(t, err)
	_, err = svc.AddNode(info.ID, AddNodeInput{Name: "فصل"})
	require.NoError(t, err)
	_, err = svc.AddNode(info.ID, AddNodeInput{Name: "موضوع", AnchorID: "br-2"})
	require.NoError(t, err)

	roots, err := svc.Tree(info.ID)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, RootID, roots[0].ID)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "br-2", roots[0].Children[0].ID)
	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, "br-3", roots[0].Children[0].Children[0].ID)
}

func TestWorkspaceNotFound(t *testing.T) {
	svc, _ := newTestService(nil)
	_, err := svc.Get("missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

// TestConcurrentMutationsKeepInverseLinks hammers one workspace from several
// goroutines. The store itself assumes exclusive access, so this only holds
// if every service method takes the workspace mutex; run with -race.
func TestConcurrentMutationsKeepInverseLinks(t *testing.T) {
	svc, _ := newTestService(nil)
	info, err := svc.Create("باب")
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				sum, err := svc.AddNode(info.ID, AddNodeInput{Name: "فصل", AnchorID: RootID})
				if !assert.NoError(t, err) {
					return
				}
				if i%3 == 0 {
					_, err := svc.DeleteNode(info.ID, sum.ID)
					assert.NoError(t, err)
				}
				_, err = svc.Detail(info.ID, RootID, false)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 25; i++ {
			_, err := svc.AddEntries(info.ID, RootID, []string{"قلم: أداة كتابة"})
			assert.NoError(t, err)
		}
	}()
	wg.Wait()

	ws, err := svc.resolve(info.ID)
	require.NoError(t, err)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	for _, id := range ws.store.IDs() {
		n, ok := ws.store.Get(id)
		require.True(t, ok)
		for _, pid := range n.Parents {
			p, ok := ws.store.Get(pid)
			require.True(t, ok, "parent %s of %s vanished", pid, id)
			assert.Contains(t, p.Children, id, "parent %s should list child %s", pid, id)
		}
		for _, cid := range n.Children {
			c, ok := ws.store.Get(cid)
			require.True(t, ok, "child %s of %s vanished", cid, id)
			assert.Contains(t, c.Parents, id, "child %s should list parent %s", cid, id)
		}
	}
}

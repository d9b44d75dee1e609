package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walidMaaninou/lexi-build/application/tabular"
	apperrors "github.com/walidMaaninou/lexi-build/pkg/errors"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec()

	src := tabular.Table{
		Header: []string{tabular.ColumnID, tabular.ColumnName, tabular.ColumnDefinition, tabular.ColumnKind, tabular.ParentColumnPrefix + " 1"},
		Rows: [][]string{
			{"br-1", "باب", "", "category", ""},
			{"br-2", "مدخل", "شرح", "entry", "br-1"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, codec.Write(&buf, src))

	rows, err := codec.Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	// Trailing empty cells may be dropped by the reader, so compare through
	// the parser rather than cell by cell.
	store, err := tabular.BuildFromRelational(tabular.WithHeader(rows))
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	n, ok := store.Get("br-2")
	require.True(t, ok)
	assert.Equal(t, "مدخل", n.Name)
	assert.Equal(t, "شرح", n.Definition)
	assert.Equal(t, []string{"br-1"}, n.Parents)
}

func TestCodecReadRejectsGarbage(t *testing.T) {
	codec := NewCodec()
	_, err := codec.Read(strings.NewReader("not a workbook"))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCodecWriteHeaderlessTable(t *testing.T) {
	codec := NewCodec()
	var buf bytes.Buffer
	require.NoError(t, codec.Write(&buf, tabular.Table{Rows: [][]string{{"A", "B"}}}))

	rows, err := codec.Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"A", "B"}, rows[0])
}

package keyword

import (
	"path/filepath"
	"testing"

	"xlkeyword/internal/model"
	"xlkeyword/internal/sheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_FileThenRowMajorOrder(t *testing.T) {
	store := memStore(map[string]*sheet.Grid{
		"in/F1.xlsx": sheet.GridOf("Sheet1", []any{"x"}, []any{"A"}),
		"in/F2.xlsx": sheet.GridOf("Sheet1", []any{"A"}),
	})

	result, err := New(store).Extract([]string{"in/F1.xlsx", "in/F2.xlsx"}, "out.xlsx", "A")
	require.NoError(t, err)

	assert.Equal(t, []model.ExtractionRecord{
		{Value: "A", SourceFile: "F1.xlsx"},
		{Value: "A", SourceFile: "F2.xlsx"},
	}, result.Records)

	out, ok := store.Get("out.xlsx")
	require.True(t, ok)
	rows := out.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, Header, texts(rows[0]))
	assert.Equal(t, []string{"A", "F1.xlsx"}, texts(rows[1]))
	assert.Equal(t, []string{"A", "F2.xlsx"}, texts(rows[2]))
}

func TestExtract_SourcesUntouched(t *testing.T) {
	src := sheet.GridOf("Sheet1", []any{"抹茶チョコ", "プリンチョコ"})
	store := memStore(map[string]*sheet.Grid{"ex1.xlsx": src})
	store.FailSave("ex1.xlsx", assert.AnError)

	result, err := New(store).Extract([]string{"ex1.xlsx"}, "exoutput.xlsx", "抹茶")
	require.NoError(t, err, "sources must never be saved")
	assert.Equal(t, 1, result.Count())
}

func TestExtract_NoMatchesWritesHeaderOnly(t *testing.T) {
	store := memStore(map[string]*sheet.Grid{"a.xlsx": sheet.GridOf("Sheet1", []any{"tea"})})

	result, err := New(store).Extract([]string{"a.xlsx"}, "out.xlsx", "matcha")
	require.NoError(t, err)
	assert.Zero(t, result.Count())

	out, ok := store.Get("out.xlsx")
	require.True(t, ok)
	assert.Len(t, out.Rows(), 1)
}

func TestExtract_MissingInputWritesNothing(t *testing.T) {
	store := memStore(map[string]*sheet.Grid{"a.xlsx": sheet.GridOf("Sheet1", []any{"matcha"})})

	_, err := New(store).Extract([]string{"a.xlsx", "missing.xlsx"}, "out.xlsx", "matcha")
	assert.ErrorIs(t, err, ErrIO)

	_, ok := store.Get("out.xlsx")
	assert.False(t, ok)
}

func TestExtract_Progress(t *testing.T) {
	store := memStore(map[string]*sheet.Grid{
		"a.xlsx": sheet.GridOf("Sheet1", []any{"matcha", "matcha"}),
		"b.xlsx": sheet.GridOf("Sheet1", []any{"matcha"}),
	})
	progress := &recordingProgress{}

	_, err := New(store, WithProgress(progress)).Extract([]string{"a.xlsx", "b.xlsx"}, "out.xlsx", "matcha")
	require.NoError(t, err)
	assert.Equal(t, []string{"Reading", "Writing"}, progress.phases)
	assert.Equal(t, []int{2, 3}, progress.totals)
	assert.Equal(t, 5, progress.ticks)
}

func TestExtract_XLSXOverwrites(t *testing.T) {
	dir := t.TempDir()
	ex1 := createXLSX(t, dir, "ex1.xlsx",
		[]any{"イチゴ大福"},
		[]any{"抹茶チョコ"},
		[]any{"プリンチョコ", 100},
	)
	ex2 := createXLSX(t, dir, "ex2.xlsx",
		[]any{"イチゴチョコ", "最中抹茶金時"},
		[]any{"抹茶あいす"},
	)
	output := createXLSX(t, dir, "exoutput.xlsx", []any{"stale"}, []any{"stale"}, []any{"stale"}, []any{"stale"})

	result, err := New(sheet.NewXLSXStore(), WithOutputTitle("抹茶商品リスト")).Extract([]string{ex1, ex2}, output, "抹茶")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count())

	assert.Equal(t, [][]string{
		{"matched value", "source file"},
		{"抹茶チョコ", "ex1.xlsx"},
		{"最中抹茶金時", "ex2.xlsx"},
		{"抹茶あいす", "ex2.xlsx"},
	}, readXLSX(t, output))

	s, err := sheet.NewXLSXStore().Open(filepath.Join(dir, "exoutput.xlsx"))
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, "抹茶商品リスト", s.Name())
}

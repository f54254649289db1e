package keyword

import (
	"testing"

	"xlkeyword/internal/model"
	"xlkeyword/internal/sheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotate_WritesNextCell(t *testing.T) {
	store := memStore(map[string]*sheet.Grid{
		"ex1.xlsx": sheet.GridOf("Sheet1",
			[]any{"name"},
			[]any{nil, "matcha"},
		),
	})

	result, err := New(store).Annotate("ex1.xlsx", "matcha", "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, []string{"C2"}, result.Targets)

	saved, _ := store.Get("ex1.xlsx")
	assert.Equal(t, model.StringValue(DefaultMessage), saved.Get(sheet.MustParseCoord("C2")))
}

func TestAnnotate_UsesSnapshot(t *testing.T) {
	// B1 is a match and also the target of A1's annotation
	store := memStore(map[string]*sheet.Grid{
		"a.xlsx": sheet.GridOf("Sheet1", []any{"matcha", "matcha latte"}),
	})

	result, err := New(store).Annotate("a.xlsx", "matcha", "SALE matcha")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Updated)

	search, err := New(memStore(map[string]*sheet.Grid{
		"a.xlsx": sheet.GridOf("Sheet1", []any{"matcha", "matcha latte"}),
	})).Search("a.xlsx", "matcha")
	require.NoError(t, err)
	assert.Equal(t, search.Count(), result.Updated, "annotation count equals match count on the same snapshot")

	saved, _ := store.Get("a.xlsx")
	assert.Equal(t, []string{"matcha", "SALE matcha", "SALE matcha"}, texts(saved.Rows()[0]))
}

func TestAnnotate_ExtendsSheet(t *testing.T) {
	store := memStore(map[string]*sheet.Grid{
		"a.xlsx": sheet.GridOf("Sheet1", []any{nil, nil, nil, "matcha"}),
	})

	_, err := New(store).Annotate("a.xlsx", "matcha", "on sale")
	require.NoError(t, err)

	saved, _ := store.Get("a.xlsx")
	assert.Len(t, saved.Rows()[0], 5)
}

func TestAnnotate_LastColumnFails(t *testing.T) {
	g := sheet.NewGrid("Sheet1")
	g.Set(sheet.At(1, 16384), "matcha")
	store := memStore(map[string]*sheet.Grid{"a.xlsx": g})

	_, err := New(store).Annotate("a.xlsx", "matcha", "")
	assert.ErrorIs(t, err, ErrIO)

	saved, _ := store.Get("a.xlsx")
	assert.Equal(t, g.Rows(), saved.Rows(), "nothing is saved when an annotation cannot be written")
}

func TestAnnotate_NoMatches(t *testing.T) {
	store := memStore(map[string]*sheet.Grid{"a.xlsx": sheet.GridOf("Sheet1", []any{"tea"})})

	result, err := New(store).Annotate("a.xlsx", "matcha", "")
	require.NoError(t, err)
	assert.Zero(t, result.Updated)
}

func TestAnnotate_SaveFailure(t *testing.T) {
	store := memStore(map[string]*sheet.Grid{"a.xlsx": sheet.GridOf("Sheet1", []any{"matcha"})})
	store.FailSave("a.xlsx", assert.AnError)

	_, err := New(store).Annotate("a.xlsx", "matcha", "")
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestAnnotate_XLSX(t *testing.T) {
	path := createXLSX(t, t.TempDir(), "ex1.xlsx",
		[]any{"イチゴ大福"},
		[]any{"抹茶大福"},
	)

	result, err := New(sheet.NewXLSXStore()).Annotate(path, "抹茶", "お買い得！")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	rows := readXLSX(t, path)
	assert.Equal(t, [][]string{{"イチゴ大福"}, {"抹茶大福", "お買い得！"}}, rows)
}

package keyword

import (
	"path/filepath"
	"testing"

	"xlkeyword/internal/model"
	"xlkeyword/internal/sheet"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// createXLSX writes rows to a new workbook and returns its path.
// nil entries leave the cell blank.
func createXLSX(t *testing.T, dir, name string, rows ...[]any) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

// readXLSX returns the raw rows of the active sheet
func readXLSX(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	require.NoError(t, err)
	return rows
}

// memStore returns a MemoryStore preloaded with one grid per path
func memStore(grids map[string]*sheet.Grid) *sheet.MemoryStore {
	store := sheet.NewMemoryStore()
	for path, g := range grids {
		store.Put(path, g)
	}
	return store
}

type recordingProgress struct {
	phases []string
	totals []int
	ticks  int
}

func (p *recordingProgress) Phase(name string, total int) Tracker {
	p.phases = append(p.phases, name)
	p.totals = append(p.totals, total)
	return p
}

func (p *recordingProgress) Increment() error { p.ticks++; return nil }
func (p *recordingProgress) Finish() error    { return nil }

func texts(values []model.Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.Text
	}
	return out
}

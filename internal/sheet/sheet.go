// Package sheet defines the spreadsheet capability the keyword operator works
// against and its backends.
package sheet

import (
	"errors"

	"xlkeyword/internal/model"
)

// ErrNoPath is returned by Save on a sheet that was created and never saved with SaveAs
var ErrNoPath = errors.New("sheet has no backing path")

// ErrValueTooLong is returned when a string exceeds the cell size limit of the format
var ErrValueTooLong = errors.New("value too long for a cell")

// ErrIllegalChar is returned when a string holds a character the format cannot store
var ErrIllegalChar = errors.New("value holds a character that cannot be stored")

// Sheet is the active sheet of an open workbook.
// Writes are visible to other openers only after Save or SaveAs.
type Sheet interface {
	// Name returns the sheet title
	Name() string

	// Cell reads a single cell
	Cell(c Coord) (model.Value, error)

	// SetCell writes a single cell, growing the sheet as needed
	SetCell(c Coord, v any) error

	// Rows returns a row-major snapshot of the used range.
	// Trailing empty cells of each row are omitted.
	Rows() ([][]model.Value, error)

	// Save persists the workbook to the location it was opened from
	Save() error

	// SaveAs persists the workbook to path, overwriting any existing file
	SaveAs(path string) error

	// Close releases resources held by the workbook
	Close() error
}

// Store opens existing workbooks and creates new ones
type Store interface {
	// Open loads the workbook at path and returns its active sheet
	Open(path string) (Sheet, error)

	// Create returns the single sheet of a new, unsaved workbook
	Create(title string) (Sheet, error)

	// Exists reports whether a workbook is stored at path
	Exists(path string) bool

	// EnsureDir makes dir ready to receive saved workbooks
	EnsureDir(dir string) error
}

// HeaderStyler is implemented by sheets able to format a header row
type HeaderStyler interface {
	StyleHeader(row, cols int) error
}

// Each calls fn for every cell of the snapshot in row-major order, skipping empties
func Each(rows [][]model.Value, fn func(c Coord, v model.Value) error) error {
	for r, row := range rows {
		for col, v := range row {
			if v.IsEmpty() {
				continue
			}
			if err := fn(At(r+1, col+1), v); err != nil {
				return err
			}
		}
	}
	return nil
}

package keyword

import (
	"errors"
	"fmt"

	"xlkeyword/internal/logger"
	"xlkeyword/internal/model"
	"xlkeyword/internal/sheet"
)

// Assignment is one value destined for one cell
type Assignment struct {
	Ref   string // Letter-number coordinate (e.g., "A1")
	Value any
}

// Batch groups the assignments for one workbook
type Batch struct {
	Path  string
	Cells []Assignment
}

// WriteResult describes a completed cell write
type WriteResult struct {
	Path    string
	Written int
}

// WriteCells writes every assignment into the active sheet of path, in order,
// then saves the workbook in place.
// On failure the file may or may not contain some of the values; re-verify.
func (o *Operator) WriteCells(path string, cells []Assignment) (*WriteResult, error) {
	coords := make([]sheet.Coord, len(cells))
	for i, a := range cells {
		c, err := sheet.ParseCoord(a.Ref)
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		coords[i] = c
	}

	s, err := o.store.Open(path)
	if err != nil {
		return nil, ioError("write", path, err)
	}
	defer s.Close()

	logger.Info("Writing %d cells to %s", len(cells), path)
	for i, a := range cells {
		if err := s.SetCell(coords[i], a.Value); err != nil {
			return nil, ioError("write", path, err)
		}
		logger.Debug("Wrote %q to %s", fmt.Sprint(a.Value), coords[i])
	}

	if err := s.Save(); err != nil {
		return nil, ioError("write", path, err)
	}
	logger.Info("Saved %s", path)

	return &WriteResult{Path: path, Written: len(cells)}, nil
}

// WriteBatches runs WriteCells for every batch in order. A failing batch does not
// stop the ones after it; all failures are joined into the returned error.
func (o *Operator) WriteBatches(batches []Batch) ([]*WriteResult, error) {
	var results []*WriteResult
	var errs []error
	for _, b := range batches {
		res, err := o.WriteCells(b.Path, b.Cells)
		if err != nil {
			logger.Error("%v", err)
			errs = append(errs, err)
			continue
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// ReadCell returns the value at a letter-number coordinate of the active sheet
func (o *Operator) ReadCell(path, ref string) (model.Value, error) {
	c, err := sheet.ParseCoord(ref)
	if err != nil {
		return model.Empty, fmt.Errorf("read %s: %w", path, err)
	}
	return o.ReadAt(path, c.Row, c.Col)
}

// ReadAt returns the value at (row, col) of the active sheet
func (o *Operator) ReadAt(path string, row, col int) (model.Value, error) {
	c := sheet.At(row, col)
	if err := c.Valid(); err != nil {
		return model.Empty, fmt.Errorf("read %s: %w", path, err)
	}

	s, err := o.store.Open(path)
	if err != nil {
		return model.Empty, ioError("read", path, err)
	}
	defer s.Close()

	v, err := s.Cell(c)
	if err != nil {
		return model.Empty, ioError("read", path, err)
	}
	return v, nil
}

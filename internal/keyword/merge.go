package keyword

import (
	"path/filepath"

	"xlkeyword/internal/logger"
	"xlkeyword/internal/sheet"
)

// MergeResult describes a completed template merge
type MergeResult struct {
	Output  string
	Written int // Data cells laid over the template
}

// Merge saves a copy of template at output with every non-empty cell of data
// written over it at the same row and column. Template cells that are blank in
// data keep their content, as does the template's formatting.
// Neither template nor data is saved, unless output is one of them.
func (o *Operator) Merge(template, data, output string) (*MergeResult, error) {
	rows, err := o.snapshot(data)
	if err != nil {
		return nil, ioError("merge", data, err)
	}

	out, err := o.store.Open(template)
	if err != nil {
		return nil, ioError("merge", template, err)
	}
	defer out.Close()

	bar := o.progress.Phase("Writing", len(rows))
	defer bar.Finish()

	written := 0
	for r, row := range rows {
		for c, v := range row {
			if v.IsEmpty() {
				continue
			}
			if err := out.SetCell(sheet.At(r+1, c+1), v); err != nil {
				return nil, ioError("merge", output, err)
			}
			written++
		}
		bar.Increment()
	}

	if err := o.store.EnsureDir(filepath.Dir(output)); err != nil {
		return nil, ioError("merge", output, err)
	}
	if err := out.SaveAs(output); err != nil {
		return nil, ioError("merge", output, err)
	}
	logger.Info("Merged %d cells of %s into a copy of %s at %s", written, data, template, output)

	return &MergeResult{Output: output, Written: written}, nil
}

package keyword

import (
	"path/filepath"

	"xlkeyword/internal/logger"
	"xlkeyword/internal/model"
	"xlkeyword/internal/sheet"
)

// ExtractResult describes a completed extraction
type ExtractResult struct {
	Output  string
	Records []model.ExtractionRecord
}

// Count returns the number of records written
func (r *ExtractResult) Count() int {
	return len(r.Records)
}

// Extract collects every string cell containing keyword from the inputs, in
// file order then row-major order, and writes them with their source file name
// to a new workbook at output, replacing any file already there.
// Inputs are never saved.
func (o *Operator) Extract(inputs []string, output, keyword string) (*ExtractResult, error) {
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}

	records, err := o.collectMatches(inputs, keyword)
	if err != nil {
		return nil, err
	}

	if err := o.writeRecords(output, records); err != nil {
		return nil, ioError("extract", output, err)
	}
	logger.Info("Extracted %d cells containing %q to %s", len(records), keyword, output)

	return &ExtractResult{Output: output, Records: records}, nil
}

func (o *Operator) collectMatches(inputs []string, keyword string) ([]model.ExtractionRecord, error) {
	bar := o.progress.Phase("Reading", len(inputs))
	defer bar.Finish()

	records := make([]model.ExtractionRecord, 0)
	for _, path := range inputs {
		rows, err := o.snapshot(path)
		if err != nil {
			return nil, ioError("extract", path, err)
		}

		source := filepath.Base(path)
		for _, m := range searchRows("", rows, keyword).Matches {
			logger.Debug("Extracted %q from %s", m.Value, source)
			records = append(records, model.ExtractionRecord{Value: m.Value, SourceFile: source})
		}
		bar.Increment()
	}
	return records, nil
}

func (o *Operator) writeRecords(output string, records []model.ExtractionRecord) error {
	out, err := o.store.Create(o.outputTitle)
	if err != nil {
		return err
	}
	defer out.Close()

	for col, title := range Header {
		if err := out.SetCell(sheet.At(1, col+1), title); err != nil {
			return err
		}
	}
	if styler, ok := out.(sheet.HeaderStyler); ok {
		if err := styler.StyleHeader(1, len(Header)); err != nil {
			return err
		}
	}

	bar := o.progress.Phase("Writing", len(records))
	defer bar.Finish()

	for i, rec := range records {
		row := i + 2
		if err := out.SetCell(sheet.At(row, 1), rec.Value); err != nil {
			return err
		}
		if err := out.SetCell(sheet.At(row, 2), rec.SourceFile); err != nil {
			return err
		}
		bar.Increment()
	}

	return out.SaveAs(output)
}

// snapshot opens path, reads its active sheet and closes it again
func (o *Operator) snapshot(path string) ([][]model.Value, error) {
	s, err := o.store.Open(path)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Rows()
}

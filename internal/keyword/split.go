package keyword

import (
	"fmt"
	"path/filepath"
	"strings"

	"xlkeyword/internal/logger"
	"xlkeyword/internal/model"
	"xlkeyword/internal/sheet"
)

// SplitOptions configures the row and text chunkers
type SplitOptions struct {
	OutputDir string // Created if missing
	Size      int    // Rows or characters per chunk, DefaultChunkSize when zero
	Prefix    string // Output file name prefix
}

// SplitResult describes a chunking run.
// On failure Outputs still lists the files written before the error.
type SplitResult struct {
	Items   int // Rows or strings read from the inputs
	Outputs []string
}

const timestampLayout = "20060102_150405.000000000"

// SplitRows gathers the non-empty rows of every input, in file then row order,
// and writes each group of opts.Size rows to <prefix>_<NNN>.xlsx.
func (o *Operator) SplitRows(inputs []string, opts SplitOptions) (*SplitResult, error) {
	opts = opts.withDefaults(DefaultRowPrefix)
	if opts.Size < 1 {
		return nil, ErrInvalidChunkSize
	}

	rows, err := o.collectRows(inputs)
	if err != nil {
		return nil, err
	}
	logger.Info("Collected %d rows from %d files", len(rows), len(inputs))

	chunks, err := Chunk(rows, opts.Size)
	if err != nil {
		return nil, err
	}

	result := &SplitResult{Items: len(rows), Outputs: make([]string, 0, len(chunks))}
	if err := o.store.EnsureDir(opts.OutputDir); err != nil {
		return result, ioError("split-rows", opts.OutputDir, err)
	}

	bar := o.progress.Phase("Splitting", len(chunks))
	defer bar.Finish()

	for i, chunk := range chunks {
		path := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_%03d.xlsx", opts.Prefix, i+1))
		if err := o.writeRowChunk(path, chunk); err != nil {
			return result, ioError("split-rows", path, err)
		}
		result.Outputs = append(result.Outputs, path)
		logger.Debug("Saved %s", path)
		bar.Increment()
	}

	logger.Info("Wrote %d files to %s", len(result.Outputs), opts.OutputDir)
	return result, nil
}

// collectRows returns every row with at least one non-empty cell
func (o *Operator) collectRows(inputs []string) ([][]model.Value, error) {
	bar := o.progress.Phase("Reading", len(inputs))
	defer bar.Finish()

	var all [][]model.Value
	for _, path := range inputs {
		rows, err := o.snapshot(path)
		if err != nil {
			return nil, ioError("split-rows", path, err)
		}
		for _, row := range rows {
			if !isBlank(row) {
				all = append(all, row)
			}
		}
		bar.Increment()
	}
	return all, nil
}

func (o *Operator) writeRowChunk(path string, rows [][]model.Value) error {
	out, err := o.store.Create("")
	if err != nil {
		return err
	}
	defer out.Close()

	for r, row := range rows {
		for c, v := range row {
			if v.IsEmpty() {
				continue
			}
			if err := out.SetCell(sheet.At(r+1, c+1), v); err != nil {
				return err
			}
		}
	}
	return out.SaveAs(path)
}

// SplitText splits every string cell of the inputs into substrings of
// opts.Size characters and writes each string's pieces, one per row, to its own
// workbook named <prefix>_<timestamp>_<seq>.xlsx.
func (o *Operator) SplitText(inputs []string, opts SplitOptions) (*SplitResult, error) {
	opts = opts.withDefaults(DefaultTextPrefix)
	if opts.Size < 1 {
		return nil, ErrInvalidChunkSize
	}

	texts, err := o.collectStrings(inputs)
	if err != nil {
		return nil, err
	}
	logger.Info("Collected %d strings from %d files", len(texts), len(inputs))

	result := &SplitResult{Items: len(texts), Outputs: make([]string, 0, len(texts))}
	if err := o.store.EnsureDir(opts.OutputDir); err != nil {
		return result, ioError("split-text", opts.OutputDir, err)
	}

	bar := o.progress.Phase("Splitting", len(texts))
	defer bar.Finish()

	seq := 0
	for _, text := range texts {
		parts, err := ChunkString(text, opts.Size)
		if err != nil {
			return result, err
		}

		var path string
		path, seq = o.nextTextPath(opts, seq)
		if err := o.writeTextChunk(path, parts); err != nil {
			return result, ioError("split-text", path, err)
		}
		result.Outputs = append(result.Outputs, path)
		logger.Debug("Saved %d chunks of %q to %s", len(parts), text, path)
		bar.Increment()
	}

	logger.Info("Wrote %d files to %s", len(result.Outputs), opts.OutputDir)
	return result, nil
}

func (o *Operator) collectStrings(inputs []string) ([]string, error) {
	bar := o.progress.Phase("Reading", len(inputs))
	defer bar.Finish()

	var texts []string
	for _, path := range inputs {
		rows, err := o.snapshot(path)
		if err != nil {
			return nil, ioError("split-text", path, err)
		}
		sheet.Each(rows, func(_ sheet.Coord, v model.Value) error {
			if v.IsString() {
				texts = append(texts, v.Text)
			}
			return nil
		})
		bar.Increment()
	}
	return texts, nil
}

func (o *Operator) writeTextChunk(path string, parts []string) error {
	out, err := o.store.Create("")
	if err != nil {
		return err
	}
	defer out.Close()

	for i, part := range parts {
		if err := out.SetCell(sheet.At(i+1, 1), part); err != nil {
			return err
		}
	}
	return out.SaveAs(path)
}

// nextTextPath returns a file name that does not exist yet and the sequence
// number to use for the next one
func (o *Operator) nextTextPath(opts SplitOptions, seq int) (string, int) {
	for {
		seq++
		stamp := strings.Replace(o.now().Format(timestampLayout), ".", "_", 1)
		path := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_%s_%03d.xlsx", opts.Prefix, stamp, seq))
		if !o.store.Exists(path) {
			return path, seq
		}
	}
}

func (opts SplitOptions) withDefaults(prefix string) SplitOptions {
	if opts.Size == 0 {
		opts.Size = DefaultChunkSize
	}
	if opts.Prefix == "" {
		opts.Prefix = prefix
	}
	return opts
}

func isBlank(row []model.Value) bool {
	for _, v := range row {
		if !v.IsEmpty() {
			return false
		}
	}
	return true
}

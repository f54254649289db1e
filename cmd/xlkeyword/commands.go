package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"xlkeyword/internal/config"
	"xlkeyword/internal/export"
	"xlkeyword/internal/keyword"
	"xlkeyword/internal/logger"
	"xlkeyword/internal/model"
	"xlkeyword/internal/sheet"
	"xlkeyword/internal/source"
	"xlkeyword/internal/ui"
)

// env carries what every command needs
type env struct {
	cfg      *config.Config
	progress *ui.Reporter
	args     []string
}

type command struct {
	args    string
	summary string
	run     func(e *env, run *model.Run) error
}

var commands = map[string]command{
	"write":      {"<workbook>... [CELL=value]...", "write literal values, saving in place", runWrite},
	"read":       {"<workbook> <CELL|row,col>...", "print cell values", runRead},
	"search":     {"[workbook]...", "list string cells containing the keyword", runSearch},
	"annotate":   {"[workbook]...", "write the message right of every match", runAnnotate},
	"extract":    {"[workbook]...", "collect matches into the output workbook", runExtract},
	"merge":      {"<template> <data>", "copy the template to output.merge_file with the data cells laid over it", runMerge},
	"split-rows": {"[workbook]...", "write non-empty rows in chunks", runSplitRows},
	"split-text": {"[workbook]...", "split every string into chunks, one file each", runSplitText},
	"export-pdf": {"[workbook]...", "render workbooks as PDF with the office application", runExportPDF},
}

var commandOrder = []string{"write", "read", "search", "annotate", "extract", "merge", "split-rows", "split-text", "export-pdf"}

var errNoInputs = errors.New("no input workbooks: pass them as arguments or set input.files")

func (e *env) operator() *keyword.Operator {
	return keyword.New(sheet.NewXLSXStore(),
		keyword.WithProgress(e.progress),
		keyword.WithOutputTitle(e.cfg.Output.SheetTitle),
	)
}

// inputs returns the workbooks named on the command line, or input.files
func (e *env) inputs(args []string) ([]string, error) {
	if len(args) > 0 {
		e.cfg.Input.Files = args
	}
	files, err := e.cfg.ResolveInputs()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errNoInputs
	}
	return files, nil
}

func runWrite(e *env, run *model.Run) error {
	var paths, inline []string
	for _, arg := range e.args {
		if isAssignment(arg) {
			inline = append(inline, arg)
		} else {
			paths = append(paths, arg)
		}
	}

	var cells []keyword.Assignment
	if cellsFile != "" {
		loaded, err := source.LoadAssignments(cellsFile, e.cfg.Input.Encoding)
		if err != nil {
			return err
		}
		logger.Info("Loaded %d assignments from %s", len(loaded), cellsFile)
		cells = append(cells, loaded...)
	}
	parsed, err := source.ParseAssignments(strings.Join(inline, "\n"))
	if err != nil {
		return fmt.Errorf("invalid assignment argument: %w", err)
	}
	cells = append(cells, parsed...)
	if len(cells) == 0 {
		return errors.New("no cell assignments: use -cells or CELL=value arguments")
	}

	files, err := e.inputs(paths)
	if err != nil {
		return err
	}
	run.Inputs = files

	batches := make([]keyword.Batch, len(files))
	for i, path := range files {
		batches[i] = keyword.Batch{Path: path, Cells: cells}
	}

	results, err := e.operator().WriteBatches(batches)
	for _, res := range results {
		run.Outputs = append(run.Outputs, res.Path)
		run.Count += res.Written
	}
	return err
}

func runRead(e *env, run *model.Run) error {
	if len(e.args) < 2 {
		return errors.New("usage: read <workbook> <CELL|row,col>...")
	}
	path, refs := e.args[0], e.args[1:]
	run.Inputs = []string{path}

	op := e.operator()
	for _, ref := range refs {
		c, v, err := readRef(op, path, ref)
		if err != nil {
			return err
		}
		logger.InfoClean("%s\t%s\t%s", c, v.Kind, v.Text)
		run.Matches = append(run.Matches, model.Match{Coordinate: c.String(), Row: c.Row, Col: c.Col, Value: v.Text})
	}
	run.Count = len(refs)
	return nil
}

// isAssignment reports whether arg is CELL=value with a valid cell coordinate
func isAssignment(arg string) bool {
	ref, _, ok := strings.Cut(arg, "=")
	if !ok {
		return false
	}
	_, err := sheet.ParseCoord(strings.TrimSpace(ref))
	return err == nil
}

// readRef reads "B2" style coordinates as well as "2,2" (row,col)
func readRef(op *keyword.Operator, path, ref string) (sheet.Coord, model.Value, error) {
	if r, c, ok := strings.Cut(ref, ","); ok {
		row, err1 := strconv.Atoi(strings.TrimSpace(r))
		col, err2 := strconv.Atoi(strings.TrimSpace(c))
		if err1 != nil || err2 != nil {
			return sheet.Coord{}, model.Empty, fmt.Errorf("invalid coordinate %q", ref)
		}
		v, err := op.ReadAt(path, row, col)
		return sheet.At(row, col), v, err
	}

	coord, err := sheet.ParseCoord(ref)
	if err != nil {
		return coord, model.Empty, err
	}
	v, err := op.ReadCell(path, ref)
	return coord, v, err
}

func runSearch(e *env, run *model.Run) error {
	files, err := e.inputs(e.args)
	if err != nil {
		return err
	}
	run.Inputs = files

	op := e.operator()
	for _, path := range files {
		result, err := op.Search(path, e.cfg.Keyword.Value)
		if err != nil {
			return err
		}
		logger.Info("%s [%s]: %d matches for %q", path, result.Sheet, result.Count(), result.Keyword)
		for _, m := range result.Matches {
			logger.InfoClean("  %s", m)
		}
		run.Matches = append(run.Matches, result.Matches...)
		run.Count += result.Count()
	}
	return nil
}

func runAnnotate(e *env, run *model.Run) error {
	files, err := e.inputs(e.args)
	if err != nil {
		return err
	}
	run.Inputs = files

	op := e.operator()
	for _, path := range files {
		result, err := op.Annotate(path, e.cfg.Keyword.Value, e.cfg.Keyword.Message)
		if err != nil {
			return err
		}
		if len(result.Targets) > 0 {
			logger.Info("  %s: %s", path, strings.Join(result.Targets, ", "))
		}
		run.Outputs = append(run.Outputs, path)
		run.Count += result.Updated
	}
	return nil
}

func runExtract(e *env, run *model.Run) error {
	files, err := e.inputs(e.args)
	if err != nil {
		return err
	}
	run.Inputs = files

	result, err := e.operator().Extract(files, e.cfg.GetOutputPath(), e.cfg.Keyword.Value)
	if err != nil {
		return err
	}
	run.Outputs = []string{result.Output}
	run.Records = result.Records
	run.Count = result.Count()
	e.progress.PrintSummary(fmt.Sprintf("%d records written to %s", result.Count(), result.Output))
	return nil
}

func runMerge(e *env, run *model.Run) error {
	if len(e.args) != 2 {
		return errors.New("usage: merge <template> <data>")
	}
	template, data := e.args[0], e.args[1]
	run.Inputs = []string{template, data}

	result, err := e.operator().Merge(template, data, e.cfg.GetMergePath())
	if err != nil {
		return err
	}
	run.Outputs = []string{result.Output}
	run.Count = result.Written
	e.progress.PrintSummary(fmt.Sprintf("%d cells merged into %s", result.Written, result.Output))
	return nil
}

func runSplitRows(e *env, run *model.Run) error {
	return runSplit(e, run, e.cfg.Chunk.RowPrefix, (*keyword.Operator).SplitRows)
}

func runSplitText(e *env, run *model.Run) error {
	return runSplit(e, run, e.cfg.Chunk.TextPrefix, (*keyword.Operator).SplitText)
}

type splitFunc func(o *keyword.Operator, inputs []string, opts keyword.SplitOptions) (*keyword.SplitResult, error)

func runSplit(e *env, run *model.Run, prefix string, split splitFunc) error {
	files, err := e.inputs(e.args)
	if err != nil {
		return err
	}
	run.Inputs = files

	result, err := split(e.operator(), files, keyword.SplitOptions{
		OutputDir: e.cfg.Output.Dir,
		Size:      e.cfg.Chunk.Size,
		Prefix:    prefix,
	})
	if result != nil {
		run.Outputs = result.Outputs
		run.Count = len(result.Outputs)
	}
	if err != nil {
		if result != nil && len(result.Outputs) > 0 {
			logger.Warn("%d files were written before the failure", len(result.Outputs))
		}
		return err
	}
	e.progress.PrintSummary(fmt.Sprintf("%d items written to %d files in %s", result.Items, len(result.Outputs), e.cfg.Output.Dir))
	return nil
}

func runExportPDF(e *env, run *model.Run) error {
	files, err := e.inputs(e.args)
	if err != nil {
		return err
	}
	run.Inputs = files

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return exportAll(ctx, export.NewOfficeConverter(e.cfg.Export.OfficeBinary, e.cfg.Export.Timeout), e.progress, files, run)
}

func exportAll(ctx context.Context, conv export.Converter, progress keyword.Progress, files []string, run *model.Run) error {
	bar := progress.Phase(string(ui.PhaseExporting), len(files))
	defer bar.Finish()

	for _, path := range files {
		pdf, err := conv.Convert(ctx, path)
		if err != nil {
			return err
		}
		logger.Info("Exported %s", pdf)
		run.Outputs = append(run.Outputs, pdf)
		run.Count++
		bar.Increment()
	}
	return nil
}

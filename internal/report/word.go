package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"xlkeyword/internal/model"

	"github.com/nguyenthenguyen/docx"
)

// lineBreak is turned into <w:br/> by the docx encoder
const lineBreak = "\r\n"

type WordReporter struct {
	templatePath string // Custom template, built-in one when empty
}

func NewWordReporter(templatePath string) *WordReporter {
	return &WordReporter{templatePath: templatePath}
}

func (e *WordReporter) Report(run *model.Run, basePath string) (string, error) {
	r, err := e.openTemplate()
	if err != nil {
		return "", err
	}
	defer r.Close()

	doc := r.Editable()

	replacements := []struct{ Placeholder, Value string }{
		{PlaceholderRunID, run.ID},
		{PlaceholderOperation, run.Operation},
		{PlaceholderDate, run.StartedAt.Format("2006-01-02 15:04:05")},
		{PlaceholderStatus, run.Status()},
		{PlaceholderCount, strconv.Itoa(run.Count)},
		{PlaceholderContent, buildContent(run)},
	}
	for _, rep := range replacements {
		if err := doc.Replace(rep.Placeholder, rep.Value, -1); err != nil {
			return "", fmt.Errorf("failed to replace %s: %w", rep.Placeholder, err)
		}
	}

	outFile := basePath + ".docx"
	if err := doc.WriteToFile(outFile); err != nil {
		return "", fmt.Errorf("failed to write Word document: %w", err)
	}
	return outFile, nil
}

func (e *WordReporter) openTemplate() (*docx.ReplaceDocx, error) {
	if e.templatePath != "" {
		r, err := docx.ReadDocxFile(e.templatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", e.templatePath, err)
		}
		return r, nil
	}

	tpl, err := DefaultTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to build template: %w", err)
	}
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(tpl), int64(len(tpl)))
	if err != nil {
		return nil, fmt.Errorf("failed to read built-in template: %w", err)
	}
	return r, nil
}

// buildContent renders the run details as plain text lines
func buildContent(run *model.Run) string {
	var lines []string

	if run.Keyword != "" {
		lines = append(lines, fmt.Sprintf("Keyword: %s", run.Keyword))
	}
	if run.Err != "" {
		lines = append(lines, fmt.Sprintf("Error: %s", run.Err))
	}
	lines = append(lines, fmt.Sprintf("Duration: %s", run.Duration()))

	if len(run.Inputs) > 0 {
		lines = append(lines, "", "Inputs:")
		for _, in := range run.Inputs {
			lines = append(lines, "  • "+in)
		}
	}

	if len(run.Matches) > 0 {
		lines = append(lines, "", "Matches:")
		for _, m := range run.Matches {
			lines = append(lines, fmt.Sprintf("  • %s  %s", m.Coordinate, m.Value))
		}
	}

	if len(run.Records) > 0 {
		lines = append(lines, "", "Records:")
		for _, rec := range run.Records {
			lines = append(lines, fmt.Sprintf("  • %s  (%s)", rec.Value, rec.SourceFile))
		}
	}

	if len(run.Outputs) > 0 {
		lines = append(lines, "", "Outputs:")
		for _, out := range run.Outputs {
			lines = append(lines, "  • "+out)
		}
	}

	return strings.Join(lines, lineBreak)
}

package report

import (
	"errors"
	"strings"

	"xlkeyword/internal/logger"
	"xlkeyword/internal/model"
)

// GetReporters returns the Reporters for the requested formats, skipping duplicates
func GetReporters(formats []string, templatePath string) []Reporter {
	reporters := []Reporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		fmtStr = strings.ToLower(strings.TrimSpace(fmtStr))
		switch fmtStr {
		case "xlsx":
			fmtStr = "excel"
		case "docx":
			fmtStr = "word"
		}
		if seen[fmtStr] {
			continue
		}
		seen[fmtStr] = true

		switch fmtStr {
		case "excel":
			reporters = append(reporters, NewExcelReporter())
		case "word":
			reporters = append(reporters, NewWordReporter(templatePath))
		}
	}

	return reporters
}

// WriteAll runs every reporter and returns the written paths.
// A failing reporter does not stop the others.
func WriteAll(reporters []Reporter, run *model.Run, basePath string) ([]string, error) {
	var paths []string
	var errs []error
	for _, r := range reporters {
		path, err := r.Report(run, basePath)
		if err != nil {
			logger.Error("Report failed: %v", err)
			errs = append(errs, err)
			continue
		}
		logger.Info("Report written: %s", path)
		paths = append(paths, path)
	}
	return paths, errors.Join(errs...)
}

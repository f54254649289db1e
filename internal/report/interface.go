// Package report writes a summary of one operation run in the formats
// requested by the configuration.
package report

import (
	"xlkeyword/internal/model"
)

// Reporter is the unified interface for all report formats
type Reporter interface {
	// Report writes run to basePath plus the format's extension and returns the written path
	Report(run *model.Run, basePath string) (string, error)
}

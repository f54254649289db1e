// Package export hands a workbook to an external office application that
// renders it as a paginated PDF document.
//
// Pagination is never done here: the application owns layout, this package owns
// the process lifetime.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"xlkeyword/internal/logger"
)

// ErrNoOutput indicates the application exited cleanly but produced no document
var ErrNoOutput = errors.New("office application produced no document")

// Converter renders a spreadsheet as a paginated document next to it
type Converter interface {
	Convert(ctx context.Context, path string) (string, error)
}

// PDFPath returns the sibling path of a spreadsheet with its extension changed to .pdf
func PDFPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".pdf"
}

// OfficeConverter drives a headless LibreOffice-compatible binary
type OfficeConverter struct {
	Binary  string        // Executable name or path (e.g., "soffice")
	Timeout time.Duration // Upper bound for one conversion, zero for none
}

// NewOfficeConverter creates a new OfficeConverter
func NewOfficeConverter(binary string, timeout time.Duration) *OfficeConverter {
	if binary == "" {
		binary = "soffice"
	}
	return &OfficeConverter{Binary: binary, Timeout: timeout}
}

// Convert exports path as a PDF at PDFPath(path).
// The application process is waited for on every path; on timeout or
// cancellation it is killed before Convert returns.
func (c *OfficeConverter) Convert(ctx context.Context, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("export %s: %w", path, err)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	outDir := filepath.Dir(abs)
	cmd := exec.CommandContext(ctx, c.Binary,
		"--headless",
		"--norestore",
		"--convert-to", "pdf",
		"--outdir", outDir,
		abs,
	)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	cmd.WaitDelay = 2 * time.Second // Children of the application may keep the pipes open

	logger.Info("Exporting %s to PDF...", path)
	logger.Debug("Running %s", strings.Join(cmd.Args, " "))

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("export %s: %w", path, ctxErr)
		}
		return "", fmt.Errorf("export %s: %w: %s", path, err, strings.TrimSpace(output.String()))
	}

	pdf := PDFPath(abs)
	if _, err := os.Stat(pdf); err != nil {
		return "", fmt.Errorf("export %s: %w", path, ErrNoOutput)
	}

	logger.Info("Created PDF: %s", pdf)
	return pdf, nil
}

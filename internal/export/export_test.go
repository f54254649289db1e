package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOffice writes a shell script standing in for soffice
func fakeOffice(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-soffice")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func workbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ex1.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("placeholder"), 0644))
	return path
}

func TestPDFPath(t *testing.T) {
	assert.Equal(t, filepath.Join("dir", "ex1.pdf"), PDFPath(filepath.Join("dir", "ex1.xlsx")))
	assert.Equal(t, "report.pdf", PDFPath("report"))
	assert.Equal(t, "a.b.pdf", PDFPath("a.b.xlsm"))
}

func TestConvert_Success(t *testing.T) {
	// $6 is --outdir's value, $7 the input file
	bin := fakeOffice(t, `base=$(basename "$7" .xlsx); echo pdf > "$6/$base.pdf"`)
	input := workbook(t)

	pdf, err := NewOfficeConverter(bin, 10*time.Second).Convert(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, PDFPath(input), pdf)
	assert.FileExists(t, pdf)
}

func TestConvert_NoOutput(t *testing.T) {
	bin := fakeOffice(t, "exit 0")

	_, err := NewOfficeConverter(bin, 10*time.Second).Convert(context.Background(), workbook(t))
	assert.True(t, errors.Is(err, ErrNoOutput))
}

func TestConvert_ApplicationFails(t *testing.T) {
	bin := fakeOffice(t, `echo "source file could not be loaded" >&2; exit 1`)

	_, err := NewOfficeConverter(bin, 10*time.Second).Convert(context.Background(), workbook(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not be loaded")
}

func TestConvert_Timeout(t *testing.T) {
	bin := fakeOffice(t, "exec sleep 5")

	start := time.Now()
	_, err := NewOfficeConverter(bin, 100*time.Millisecond).Convert(context.Background(), workbook(t))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestConvert_MissingInput(t *testing.T) {
	_, err := NewOfficeConverter("soffice", time.Second).Convert(context.Background(), filepath.Join(t.TempDir(), "none.xlsx"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestConvert_MissingBinary(t *testing.T) {
	_, err := NewOfficeConverter(filepath.Join(t.TempDir(), "no-such-office"), time.Second).Convert(context.Background(), workbook(t))
	assert.Error(t, err)
}

// Package source reads the text files that feed the cell writer.
package source

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"xlkeyword/internal/keyword"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadFile reads path and decodes it with the first encoding hint that fits.
// Valid UTF-8 (with or without BOM) always wins; otherwise each non-UTF-8 hint
// is tried in order and the first one decoding without replacement characters is used.
func ReadFile(path string, hints []string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return Decode(raw, hints)
}

// Decode converts raw bytes to a string using the encoding hints
func Decode(raw []byte, hints []string) (string, error) {
	if utf8.Valid(raw) {
		decoded, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), raw)
		if err != nil {
			return string(raw), nil
		}
		return string(decoded), nil
	}

	for _, name := range hints {
		enc, err := htmlindex.Get(name)
		if err != nil {
			return "", fmt.Errorf("unknown encoding %q: %w", name, err)
		}
		if enc == unicode.UTF8 {
			continue
		}
		decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
		if err != nil {
			continue
		}
		text := string(decoded)
		if !strings.ContainsRune(text, utf8.RuneError) {
			return text, nil
		}
	}
	return "", fmt.Errorf("content is not valid in any of the encodings %v", hints)
}

// ParseAssignments parses one assignment per line.
// A line is "A1=value" or "A1<TAB>value"; blank lines and lines starting with
// '#' are skipped. Later lines for the same cell win when written.
func ParseAssignments(text string) ([]keyword.Assignment, error) {
	var cells []keyword.Assignment

	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		ref, value, ok := strings.Cut(line, "\t")
		if !ok {
			ref, value, ok = strings.Cut(line, "=")
		}
		if !ok {
			return nil, fmt.Errorf("line %d: expected CELL=value or CELL<TAB>value", lineNo)
		}

		ref = strings.TrimSpace(ref)
		if ref == "" {
			return nil, fmt.Errorf("line %d: missing cell coordinate", lineNo)
		}
		cells = append(cells, keyword.Assignment{Ref: ref, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cells, nil
}

// LoadAssignments reads and parses an assignment file
func LoadAssignments(path string, hints []string) ([]keyword.Assignment, error) {
	text, err := ReadFile(path, hints)
	if err != nil {
		return nil, err
	}
	cells, err := ParseAssignments(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cells, nil
}

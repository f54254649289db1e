package sheet

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"xlkeyword/internal/model"

	"github.com/xuri/excelize/v2"
)

const defaultSheetName = "Sheet1"

// XLSXStore opens and creates .xlsx workbooks through excelize
type XLSXStore struct{}

// NewXLSXStore creates a new XLSXStore
func NewXLSXStore() *XLSXStore {
	return &XLSXStore{}
}

// Open loads the workbook at path and returns its active sheet
func (XLSXStore) Open(path string) (Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	name := f.GetSheetName(f.GetActiveSheetIndex())
	if name == "" {
		f.Close()
		return nil, fmt.Errorf("workbook %s has no active sheet", path)
	}
	return &xlsxSheet{file: f, name: name, path: path}, nil
}

// Create returns the single sheet of a new workbook titled title
func (XLSXStore) Create(title string) (Sheet, error) {
	f := excelize.NewFile()
	name := defaultSheetName
	if title != "" && title != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, title); err != nil {
			f.Close()
			return nil, fmt.Errorf("invalid sheet title %q: %w", title, err)
		}
		name = title
	}
	return &xlsxSheet{file: f, name: name}, nil
}

// Exists reports whether a file is present at path
func (XLSXStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dir and its parents if missing
func (XLSXStore) EnsureDir(dir string) error {
	if dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

type xlsxSheet struct {
	file *excelize.File
	name string
	path string
}

func (s *xlsxSheet) Name() string {
	return s.name
}

func (s *xlsxSheet) Cell(c Coord) (model.Value, error) {
	if err := c.Valid(); err != nil {
		return model.Empty, err
	}
	ref := c.String()
	text, err := s.file.GetCellValue(s.name, ref, excelize.Options{RawCellValue: true})
	if err != nil {
		return model.Empty, err
	}
	return s.classify(ref, text)
}

func (s *xlsxSheet) SetCell(c Coord, v any) error {
	if err := c.Valid(); err != nil {
		return err
	}
	ref := c.String()
	switch x := v.(type) {
	case string:
		return s.setString(ref, x)
	case model.Value:
		if x.Kind == model.KindString {
			return s.setString(ref, x.Text)
		}
		return s.file.SetCellValue(s.name, ref, x.Native())
	default:
		return s.file.SetCellValue(s.name, ref, v)
	}
}

// setString stores text so that reading the cell returns it unchanged.
// excelize truncates long values, drops XML-illegal characters and decodes
// _xHHHH_ escapes on read, so the first two are rejected and "_x" is escaped.
func (s *xlsxSheet) setString(ref, text string) error {
	if !utf8.ValidString(text) {
		return fmt.Errorf("%s: %w (invalid UTF-8)", ref, ErrIllegalChar)
	}
	for i, r := range text {
		if !isXMLChar(r) {
			return fmt.Errorf("%s: %w (%U at byte %d)", ref, ErrIllegalChar, r, i)
		}
	}

	stored := strings.ReplaceAll(text, "_x", "_x005F_x")
	if n := utf8.RuneCountInString(stored); n > excelize.TotalCellChars {
		return fmt.Errorf("%s: %w (%d characters stored, limit %d)", ref, ErrValueTooLong, n, excelize.TotalCellChars)
	}
	return s.file.SetCellStr(s.name, ref, stored)
}

// isXMLChar reports whether r may appear in XML 1.0 character data
func isXMLChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

func (s *xlsxSheet) Rows() ([][]model.Value, error) {
	raw, err := s.file.GetRows(s.name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	rows := make([][]model.Value, len(raw))
	for r, cols := range raw {
		row := make([]model.Value, len(cols))
		for c, text := range cols {
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if row[c], err = s.classify(ref, text); err != nil {
				return nil, err
			}
		}
		rows[r] = row
	}
	return rows, nil
}

// classify attaches a kind to the raw text of a cell
func (s *xlsxSheet) classify(ref, text string) (model.Value, error) {
	if text == "" {
		return model.Empty, nil
	}
	typ, err := s.file.GetCellType(s.name, ref)
	if err != nil {
		return model.Empty, err
	}
	return model.Value{Kind: kindOf(typ), Text: text}, nil
}

func kindOf(t excelize.CellType) model.Kind {
	switch t {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return model.KindString
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		// Cells without an explicit type are numeric in SpreadsheetML
		return model.KindNumber
	case excelize.CellTypeBool:
		return model.KindBool
	case excelize.CellTypeDate:
		return model.KindDate
	default:
		return model.KindOther
	}
}

func (s *xlsxSheet) Save() error {
	if s.path == "" {
		return ErrNoPath
	}
	return s.file.SaveAs(s.path)
}

func (s *xlsxSheet) SaveAs(path string) error {
	if err := s.file.SaveAs(path); err != nil {
		return err
	}
	s.path = path
	return nil
}

func (s *xlsxSheet) Close() error {
	return s.file.Close()
}

// StyleHeader formats the first cols cells of row as a header
func (s *xlsxSheet) StyleHeader(row, cols int) error {
	styler, err := NewStyler(s.file)
	if err != nil {
		return err
	}
	return styler.ApplyHeader(s.name, row, cols)
}

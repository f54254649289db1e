package sheet

import (
	"fmt"
	"io/fs"
	"sync"

	"xlkeyword/internal/model"
)

// Grid is an in-memory sheet body
type Grid struct {
	name  string
	cells map[Coord]model.Value
}

// NewGrid creates an empty grid titled name
func NewGrid(name string) *Grid {
	return &Grid{name: name, cells: make(map[Coord]model.Value)}
}

// GridOf builds a grid from row-major literals; nil and "" are blank cells
func GridOf(name string, rows ...[]any) *Grid {
	g := NewGrid(name)
	for r, row := range rows {
		for c, v := range row {
			g.Set(At(r+1, c+1), v)
		}
	}
	return g
}

// Set stores v at c
func (g *Grid) Set(c Coord, v any) {
	val := model.ValueOf(v)
	if val.IsEmpty() {
		delete(g.cells, c)
		return
	}
	g.cells[c] = val
}

// Get returns the value at c
func (g *Grid) Get(c Coord) model.Value {
	if v, ok := g.cells[c]; ok {
		return v
	}
	return model.Empty
}

// Rows returns a row-major snapshot of the used range
func (g *Grid) Rows() [][]model.Value {
	maxRow := 0
	widths := make(map[int]int)
	for c := range g.cells {
		if c.Row > maxRow {
			maxRow = c.Row
		}
		if c.Col > widths[c.Row] {
			widths[c.Row] = c.Col
		}
	}

	rows := make([][]model.Value, maxRow)
	for r := 1; r <= maxRow; r++ {
		row := make([]model.Value, widths[r])
		for c := range row {
			row[c] = g.Get(At(r, c+1))
		}
		rows[r-1] = row
	}
	return rows
}

// Clone returns a deep copy
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.name)
	for c, v := range g.cells {
		out.cells[c] = v
	}
	return out
}

// MemoryStore keeps workbooks in memory, keyed by path
type MemoryStore struct {
	mu         sync.Mutex
	files      map[string]*Grid
	saveErrors map[string]error
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		files:      make(map[string]*Grid),
		saveErrors: make(map[string]error),
	}
}

// Put registers g as the workbook stored at path
func (m *MemoryStore) Put(path string, g *Grid) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = g.Clone()
}

// Get returns a copy of the workbook saved at path
func (m *MemoryStore) Get(path string) (*Grid, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.files[path]
	if !ok {
		return nil, false
	}
	return g.Clone(), true
}

// Len returns the number of stored workbooks
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

// FailSave makes every later save to path return err
func (m *MemoryStore) FailSave(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErrors[path] = err
}

// Open returns a working copy of the workbook at path
func (m *MemoryStore) Open(path string) (Sheet, error) {
	g, ok := m.Get(path)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return &memSheet{store: m, grid: g, path: path}, nil
}

// Create returns a new unsaved sheet
func (m *MemoryStore) Create(title string) (Sheet, error) {
	if title == "" {
		title = defaultSheetName
	}
	return &memSheet{store: m, grid: NewGrid(title)}, nil
}

// Exists reports whether a workbook was saved at path
func (m *MemoryStore) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok
}

// EnsureDir is a no-op, paths need no parent directories in memory
func (m *MemoryStore) EnsureDir(string) error {
	return nil
}

func (m *MemoryStore) save(path string, g *Grid) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.saveErrors[path]; err != nil {
		return &fs.PathError{Op: "save", Path: path, Err: err}
	}
	m.files[path] = g.Clone()
	return nil
}

type memSheet struct {
	store *MemoryStore
	grid  *Grid
	path  string
}

func (s *memSheet) Name() string {
	return s.grid.name
}

func (s *memSheet) Cell(c Coord) (model.Value, error) {
	if err := c.Valid(); err != nil {
		return model.Empty, err
	}
	return s.grid.Get(c), nil
}

func (s *memSheet) SetCell(c Coord, v any) error {
	if err := c.Valid(); err != nil {
		return err
	}
	s.grid.Set(c, v)
	return nil
}

func (s *memSheet) Rows() ([][]model.Value, error) {
	return s.grid.Rows(), nil
}

func (s *memSheet) Save() error {
	if s.path == "" {
		return ErrNoPath
	}
	return s.store.save(s.path, s.grid)
}

func (s *memSheet) SaveAs(path string) error {
	if path == "" {
		return fmt.Errorf("save: %w", ErrNoPath)
	}
	if err := s.store.save(path, s.grid); err != nil {
		return err
	}
	s.path = path
	return nil
}

func (s *memSheet) Close() error {
	return nil
}

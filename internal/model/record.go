package model

import "fmt"

// Match is a cell whose string value contains the searched keyword
type Match struct {
	Coordinate string // Letter-number address (e.g., "B2")
	Row        int    // 1-indexed row
	Col        int    // 1-indexed column
	Value      string // Full string value of the cell
}

// String returns a human-readable representation of the match
func (m Match) String() string {
	return fmt.Sprintf("%s=%q", m.Coordinate, m.Value)
}

// SearchResult is the outcome of a keyword search over one sheet
type SearchResult struct {
	Keyword string
	Sheet   string
	Matches []Match
}

// Count returns the number of matching cells
func (r *SearchResult) Count() int {
	return len(r.Matches)
}

// ExtractionRecord is a matched value paired with the file it came from
type ExtractionRecord struct {
	Value      string // Matched cell value
	SourceFile string // Base name of the source workbook
}

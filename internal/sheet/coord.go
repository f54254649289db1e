package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Coord addresses one cell by 1-indexed row and column
type Coord struct {
	Row int
	Col int
}

// At returns the coordinate for (row, col)
func At(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// ParseCoord resolves a letter-number address such as "B2" or "$B$2"
func ParseCoord(ref string) (Coord, error) {
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return Coord{}, fmt.Errorf("invalid cell coordinate %q: %w", ref, err)
	}
	return Coord{Row: row, Col: col}, nil
}

// MustParseCoord is ParseCoord for literals known to be valid
func MustParseCoord(ref string) Coord {
	c, err := ParseCoord(ref)
	if err != nil {
		panic(err)
	}
	return c
}

// Valid checks that the coordinate lies inside the xlsx grid limits
func (c Coord) Valid() error {
	if c.Row < 1 || c.Row > excelize.TotalRows {
		return fmt.Errorf("row %d out of range 1..%d", c.Row, excelize.TotalRows)
	}
	if c.Col < 1 || c.Col > excelize.MaxColumns {
		return fmt.Errorf("column %d out of range 1..%d", c.Col, excelize.MaxColumns)
	}
	return nil
}

// Right returns the neighbouring cell on the same row
func (c Coord) Right() Coord {
	return Coord{Row: c.Row, Col: c.Col + 1}
}

// String returns the letter-number address, or "R{row}C{col}" when out of range
func (c Coord) String() string {
	name, err := excelize.CoordinatesToCellName(c.Col, c.Row)
	if err != nil {
		return fmt.Sprintf("R%dC%d", c.Row, c.Col)
	}
	return name
}

package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Checks an extraction workbook: header row first, then one record per row
// with a non-empty value containing the keyword and a source file name.
//
// go run scripts/verify_extract.go <workbook> <keyword>
func main() {
	filename := "output/exoutput.xlsx"
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}
	keyword := ""
	if len(os.Args) > 2 {
		keyword = os.Args[2]
	}

	f, err := excelize.OpenFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheetName)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== EXTRACTION CHECK: %s ===\n", filename)
	fmt.Printf("Checking sheet: %s\n", sheetName)
	fmt.Printf("Total rows: %d\n\n", len(rows))

	if len(rows) == 0 || len(rows[0]) < 2 || rows[0][0] != "matched value" || rows[0][1] != "source file" {
		fmt.Println("❌ Header row missing or malformed")
		os.Exit(1)
	}

	badCount := 0
	for i, row := range rows[1:] {
		rowNum := i + 2
		value, source := "", ""
		if len(row) > 0 {
			value = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			source = strings.TrimSpace(row[1])
		}

		switch {
		case value == "":
			fmt.Printf("❌ EMPTY VALUE at row %d\n", rowNum)
			badCount++
		case keyword != "" && !strings.Contains(value, keyword):
			fmt.Printf("❌ VALUE WITHOUT KEYWORD at row %d: %q\n", rowNum, value)
			badCount++
		case source == "":
			fmt.Printf("❌ EMPTY SOURCE at row %d: %q\n", rowNum, value)
			badCount++
		}
	}

	fmt.Println()
	if badCount > 0 {
		fmt.Printf("❌ Found %d invalid records\n", badCount)
		os.Exit(1)
	}
	fmt.Printf("✅ %d records verified\n", len(rows)-1)
}

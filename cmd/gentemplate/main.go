// Command gentemplate writes the built-in Word report template so it can be
// customised and passed back through report.template.
package main

import (
	"flag"
	"fmt"
	"os"

	"xlkeyword/internal/report"
)

func main() {
	out := flag.String("o", "template.docx", "Output path of the template")
	flag.Parse()

	data, err := report.DefaultTemplate()
	if err != nil {
		fmt.Printf("❌ Failed to build template: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, data, 0644); err != nil {
		fmt.Printf("❌ Failed to write template: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Template written to %s\n", *out)
	fmt.Printf("Placeholders: %s %s %s %s %s %s\n",
		report.PlaceholderRunID, report.PlaceholderOperation, report.PlaceholderDate,
		report.PlaceholderStatus, report.PlaceholderCount, report.PlaceholderContent)
}

package report

import (
	"archive/zip"
	"bytes"
)

// Placeholders replaced in the Word template
const (
	PlaceholderRunID     = "{{RunID}}"
	PlaceholderOperation = "{{Operation}}"
	PlaceholderDate      = "{{Date}}"
	PlaceholderStatus    = "{{Status}}"
	PlaceholderCount     = "{{Count}}"
	PlaceholderContent   = "{{Content}}"
)

var templateParts = []struct {
	Name string
	Body string
}{
	{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`},
	{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`},
	// Required by some parsers
	{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
</Relationships>`},
	{"word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>xlkeyword Run Report</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Run: {{RunID}}</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Operation: {{Operation}}</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Date: {{Date}}</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Status: {{Status}}</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Count: {{Count}}</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">{{Content}}</w:t></w:r></w:p>
</w:body>
</w:document>`},
}

// DefaultTemplate returns the built-in Word template as .docx bytes
func DefaultTemplate() ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, part := range templateParts {
		fw, err := w.Create(part.Name)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write([]byte(part.Body)); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

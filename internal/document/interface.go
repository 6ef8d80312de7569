// Package document writes briefs and reports as .docx files and reads
// paragraph text back out of .docx files.
package document

import "io"

// Style selects how the body is laid out.
type Style int

const (
	// StylePlain writes the body verbatim as a single paragraph.
	StylePlain Style = iota
	// StyleMarkdown renders headings, bullets and bold spans.
	StyleMarkdown
)

// Exporter turns a title and body into a .docx document.
type Exporter interface {
	Export(title, body string, w io.Writer) error
	ExportFile(title, body, path string) error
}

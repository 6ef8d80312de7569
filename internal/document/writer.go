package document

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
	textColor = "000000"
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)

	stripInline = strings.NewReplacer("**", "", "__", "", "`", "")
)

// headingSizes are the point sizes of #, ## and ### headings. Deeper
// headings use the body size.
var headingSizes = []uint64{16, 15, 14}

// ExportFile writes the document to path.
func (e *implExporter) ExportFile(title, body, path string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}

	writeSpans(doc.AddParagraph(""), titleSize, span{text: title, bold: true})

	if e.style == StyleMarkdown {
		writeMarkdown(doc, body)
	} else {
		doc.AddParagraph("").AddText(body).Font(fontName).Size(fontSize).Color(textColor)
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// Export writes the document to w through a temporary file.
func (e *implExporter) Export(title, body string, w io.Writer) error {
	f, err := os.CreateTemp(e.tempDir, "export-*.docx")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	if err := e.ExportFile(title, body, path); err != nil {
		return err
	}

	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open exported document: %w", err)
	}
	defer src.Close()

	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("copy exported document: %w", err)
	}
	return nil
}

// span is a run of text sharing one weight.
type span struct {
	text string
	bold bool
}

func writeMarkdown(doc *docx.RootDoc, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(line); m != nil {
			writeSpans(doc.AddParagraph(""), headingSize(len(m[1])), span{text: m[2], bold: true})
			continue
		}
		if m := reBullet.FindStringSubmatch(line); m != nil {
			line = "• " + m[1]
		}
		writeSpans(doc.AddParagraph(""), fontSize, splitBold(line)...)
	}
}

func headingSize(level int) uint64 {
	if level <= len(headingSizes) {
		return headingSizes[level-1]
	}
	return fontSize
}

// splitBold cuts line at **bold** markers.
func splitBold(line string) []span {
	var out []span
	last := 0
	for _, loc := range reBold.FindAllStringSubmatchIndex(line, -1) {
		if loc[0] > last {
			out = append(out, span{text: line[last:loc[0]]})
		}
		out = append(out, span{text: line[loc[2]:loc[3]], bold: true})
		last = loc[1]
	}
	if last < len(line) {
		out = append(out, span{text: line[last:]})
	}
	return out
}

func writeSpans(p *docx.Paragraph, size uint64, spans ...span) {
	for _, sp := range spans {
		text := stripInline.Replace(sp.text)
		if text == "" {
			continue
		}
		run := p.AddText(text).Font(fontName).Size(size).Color(textColor)
		if sp.bold {
			run.Bold(true)
		}
	}
}

package document

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// ErrNotDocx is returned when the archive has no word/document.xml part.
var ErrNotDocx = errors.New("not a docx document")

// ReadParagraphs returns the text of every paragraph in the main document
// part, in order. Tabs and line breaks inside a paragraph become \t and \n.
func ReadParagraphs(r io.ReaderAt, size int64) ([]string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open docx archive: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open document part: %w", err)
		}
		defer rc.Close()
		return parseParagraphs(rc)
	}

	return nil, ErrNotDocx
}

// ReadText joins paragraphs with newlines.
func ReadText(r io.ReaderAt, size int64) (string, error) {
	paras, err := ReadParagraphs(r, size)
	if err != nil {
		return "", err
	}
	return strings.Join(paras, "\n"), nil
}

func parseParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paras  []string
		buf    strings.Builder
		depth  int
		inText bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return paras, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse document part: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					buf.Reset()
				}
				depth++
			case "t":
				inText = depth > 0
			case "tab":
				if depth > 0 {
					buf.WriteByte('\t')
				}
			case "br", "cr":
				if depth > 0 {
					buf.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				depth--
				if depth == 0 {
					paras = append(paras, buf.String())
				}
			}
		case xml.CharData:
			if inText {
				buf.Write(t)
			}
		}
	}
}

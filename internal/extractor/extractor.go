package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/nguyentantai21042004/legal-os/internal/document"
	"github.com/nguyentantai21042004/legal-os/internal/domain"
)

var errInvalidUTF8 = errors.New("text file is not valid UTF-8")

// Extract dispatches on the file extension.
func (e *implExtractor) Extract(filename string, data []byte) (text string, err error) {
	// the pdf reader panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Filename: filename, Err: fmt.Errorf("%v", r)}
		}
	}()

	switch domain.KindOf(filename) {
	case domain.KindPDF:
		text, err = extractPDF(data)
	case domain.KindDOCX:
		text, err = document.ReadText(bytes.NewReader(data), int64(len(data)))
	case domain.KindText:
		text, err = extractPlain(data)
	default:
		return "", nil
	}

	if err != nil {
		return "", &ExtractionError{Filename: filename, Err: err}
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractPlain(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", errInvalidUTF8
	}
	return string(data), nil
}

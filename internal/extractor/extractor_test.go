package extractor

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nguyentantai21042004/legal-os/internal/document"
)

func TestExtractText(t *testing.T) {
	e := New()

	got, err := e.Extract("notes.txt", []byte("\xef\xbb\xbfДоговор займа"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "Договор займа" {
		t.Errorf("Extract() = %q", got)
	}
}

func TestExtractUnsupported(t *testing.T) {
	got, err := New().Extract("photo.jpg", []byte{0xff, 0xd8})
	if err != nil || got != "" {
		t.Errorf("Extract() = %q, %v; want empty, nil", got, err)
	}
}

func TestExtractFailures(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
	}{
		{"invalid utf8", "bad.txt", []byte{0xff, 0xfe, 0xfd}},
		{"docx that is not a zip", "claim.docx", []byte("not a zip")},
		{"pdf garbage", "scan.pdf", []byte("%PDF-garbage")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Extract(tt.filename, tt.data)

			var extErr *ExtractionError
			if !errors.As(err, &extErr) {
				t.Fatalf("error = %v, want *ExtractionError", err)
			}
			if extErr.Filename != tt.filename {
				t.Errorf("Filename = %q, want %q", extErr.Filename, tt.filename)
			}
		})
	}
}

func TestExtractDocx(t *testing.T) {
	var buf bytes.Buffer
	if err := document.New(document.StylePlain, t.TempDir()).Export("Title", "Сторона А обязуется", &buf); err != nil {
		t.Fatal(err)
	}

	got, err := New().Extract("contract.DOCX", buf.Bytes())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !bytes.Contains([]byte(got), []byte("Сторона А обязуется")) {
		t.Errorf("Extract() = %q", got)
	}
}

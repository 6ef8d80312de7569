// Package domain holds the case, evidence and simulation types shared by
// the services and the store.
package domain

import (
	"mime"
	"path/filepath"
	"strings"
	"time"
)

// Kind is the media kind of an evidence item.
type Kind string

const (
	KindAudio   Kind = "audio"
	KindPDF     Kind = "pdf"
	KindDOCX    Kind = "docx"
	KindText    Kind = "text"
	KindUnknown Kind = ""
)

var audioMIME = map[string]string{
	".mp3":  "audio/mp3",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".m4a":  "audio/mp4",
	".opus": "audio/ogg",
	".webm": "audio/webm",
}

var audioExt = map[string]string{
	"audio/webm":  ".webm",
	"audio/ogg":   ".ogg",
	"audio/opus":  ".opus",
	"audio/wav":   ".wav",
	"audio/wave":  ".wav",
	"audio/x-wav": ".wav",
	"audio/mpeg":  ".mp3",
	"audio/mp3":   ".mp3",
	"audio/mp4":   ".m4a",
	"audio/x-m4a": ".m4a",
}

// KindOf classifies a filename by extension.
func KindOf(filename string) Kind {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := audioMIME[ext]; ok {
		return KindAudio
	}
	switch ext {
	case ".pdf":
		return KindPDF
	case ".docx":
		return KindDOCX
	case ".txt":
		return KindText
	}
	return KindUnknown
}

// AudioMIME returns the MIME type for an audio filename, or "" when the
// extension is not a supported audio format.
func AudioMIME(filename string) string {
	return audioMIME[strings.ToLower(filepath.Ext(filename))]
}

// IsDocument reports whether the kind carries extractable text.
func (k Kind) IsDocument() bool {
	return k == KindPDF || k == KindDOCX || k == KindText
}

// EvidenceItem is one ingested source of a case. Documents carry Text,
// audio carries Path to the stored recording.
type EvidenceItem struct {
	ID        string    `json:"id"`
	CaseID    string    `json:"case_id"`
	Seq       int       `json:"seq"`
	Filename  string    `json:"filename"`
	Kind      Kind      `json:"kind"`
	MIMEType  string    `json:"mime_type,omitempty"`
	Text      string    `json:"text,omitempty"`
	Path      string    `json:"-"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Upload is a file received from a client before it becomes evidence.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Name returns the base filename used to classify the upload. An audio
// upload without a known extension, such as a browser microphone blob, is
// given one from its Content-Type, falling back to .wav.
func (u Upload) Name() string {
	name := filepath.Base(u.Filename)
	if name == "." || name == string(filepath.Separator) {
		name = ""
	}
	if KindOf(name) != KindUnknown {
		return name
	}

	mediaType, _, err := mime.ParseMediaType(u.ContentType)
	if err != nil || !strings.HasPrefix(mediaType, "audio/") {
		return name
	}
	ext, ok := audioExt[mediaType]
	if !ok {
		ext = ".wav"
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		base = "recording"
	}
	return base + ext
}

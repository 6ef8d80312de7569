package brief

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
)

const (
	directive   = "FILENAME:"
	docxExt     = ".docx"
	minNameLen  = 3
	fallbackFmt = "Case_%d"
)

// ErrEmptyResponse means the model answered without a brief body.
var ErrEmptyResponse = errors.New("model response has no brief body")

var reUnsafe = regexp.MustCompile(`[\\/*?:"<>|]`)

// ParseResponse splits a model response into the suggested filename and the
// brief body. The first non-blank line is a directive only if it starts with
// FILENAME:. Without a directive the default filename is used and the whole
// text is the body.
func ParseResponse(text string) (filename, body string, err error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	first := 0
	for first < len(lines) && strings.TrimSpace(lines[first]) == "" {
		first++
	}
	if first == len(lines) {
		return "", "", ErrEmptyResponse
	}

	filename = domain.DefaultBriefFilename
	rest := lines[first:]
	if name, ok := directiveValue(lines[first]); ok {
		filename = SanitizeFilename(name)
		rest = lines[first+1:]
	}

	body = strings.TrimSpace(strings.Join(rest, "\n"))
	if body == "" {
		return "", "", ErrEmptyResponse
	}
	return filename, body, nil
}

func directiveValue(line string) (string, bool) {
	line = strings.Trim(strings.TrimSpace(line), "*#` ")
	if len(line) < len(directive) || !strings.EqualFold(line[:len(directive)], directive) {
		return "", false
	}
	return strings.Trim(line[len(directive):], "*` "), true
}

// SanitizeFilename removes path-unsafe characters, replaces names shorter
// than three characters with a timestamped fallback and ensures a single
// .docx extension.
func SanitizeFilename(name string) string {
	return sanitizeFilename(name, time.Now())
}

func sanitizeFilename(name string, now time.Time) string {
	clean := reUnsafe.ReplaceAllString(name, "")
	clean = strings.TrimSpace(strings.Trim(strings.TrimSpace(clean), "[]"))

	if utf8.RuneCountInString(clean) < minNameLen {
		clean = fmt.Sprintf(fallbackFmt, now.Unix())
	}
	if !strings.HasSuffix(strings.ToLower(clean), docxExt) {
		clean += docxExt
	}
	return clean
}

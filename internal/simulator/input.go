package simulator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
	"github.com/nguyentantai21042004/legal-os/internal/gemini"
)

// readMaterials joins the text of every readable upload, capped at
// materialsChars runes. Unreadable files are logged and skipped.
func (s *implService) readMaterials(ctx context.Context, simID string, uploads []domain.Upload) string {
	var sb strings.Builder
	for _, up := range uploads {
		text, err := s.extractor.Extract(up.Filename, up.Data)
		if err != nil {
			s.logger.Warn(ctx, "[%s] Skipping material: %v", simID, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			s.logger.Warn(ctx, "[%s] Skipping material %s: no text", simID, up.Filename)
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return truncateRunes(strings.TrimSpace(sb.String()), s.materialsChars)
}

func (s *implService) answerText(ctx context.Context, simID string, input TurnInput) (string, error) {
	if input.Audio == nil {
		answer := strings.TrimSpace(input.Text)
		if answer == "" {
			return "", ErrEmptyAnswer
		}
		return answer, nil
	}

	up := input.Audio
	if len(up.Data) == 0 {
		return "", ErrEmptyAnswer
	}
	name := up.Name()
	if domain.KindOf(name) != domain.KindAudio {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, name)
	}

	if err := os.MkdirAll(s.tempDir, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	raw := filepath.Join(s.tempDir, "answer-"+simID+"-"+uuid.NewString()+strings.ToLower(filepath.Ext(name)))
	if err := os.WriteFile(raw, up.Data, 0600); err != nil {
		return "", fmt.Errorf("write answer recording: %w", err)
	}
	defer s.removeFile(ctx, raw)

	path, mime, err := s.normalizer.Normalize(ctx, raw)
	if err != nil {
		return "", err
	}
	if path != raw {
		defer s.removeFile(ctx, path)
	}

	text, err := s.client.Transcribe(ctx, gemini.Audio{Path: path, MIMEType: mime, DisplayName: name})
	if err != nil {
		return "", fmt.Errorf("transcribe answer: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyAnswer
	}
	return text, nil
}

func (s *implService) removeFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	}
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

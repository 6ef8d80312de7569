package casefile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
)

// ingest turns an upload into an evidence item: documents are reduced to
// text, recordings are written under the case directory.
func (s *implService) ingest(ctx context.Context, caseID string, upload domain.Upload) (*domain.EvidenceItem, error) {
	if len(upload.Data) == 0 {
		return nil, ErrEmptyUpload
	}

	filename := upload.Name()
	kind := domain.KindOf(filename)
	if kind == domain.KindUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}

	item := &domain.EvidenceItem{
		ID:        uuid.NewString(),
		CaseID:    caseID,
		Filename:  filename,
		Kind:      kind,
		Size:      int64(len(upload.Data)),
		CreatedAt: s.now(),
	}

	if kind.IsDocument() {
		text, err := s.extractor.Extract(filename, upload.Data)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, filename)
		}
		item.Text = text
		return item, nil
	}

	dir := s.caseDir(caseID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create case directory: %w", err)
	}

	raw := filepath.Join(dir, item.ID+strings.ToLower(filepath.Ext(filename)))
	if err := os.WriteFile(raw, upload.Data, 0600); err != nil {
		return nil, fmt.Errorf("write recording: %w", err)
	}

	path, mime, err := s.normalizer.Normalize(ctx, raw)
	if err != nil {
		s.removeFile(ctx, raw)
		return nil, err
	}
	item.Path = path
	item.MIMEType = mime

	return item, nil
}

func (s *implService) caseDir(caseID string) string {
	return filepath.Join(s.tempDir, caseID)
}

func (s *implService) removeFile(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	}
}

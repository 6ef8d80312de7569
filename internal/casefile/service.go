package casefile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/legal-os/internal/brief"
	"github.com/nguyentantai21042004/legal-os/internal/domain"
	"github.com/nguyentantai21042004/legal-os/internal/store"
)

func (s *implService) Create(ctx context.Context) (*domain.Case, error) {
	c := domain.NewCase(uuid.NewString(), s.now())
	if err := s.repo.CreateCase(ctx, c); err != nil {
		return nil, fmt.Errorf("create case: %w", err)
	}
	s.logger.Info(ctx, "Created case %s", c.ID)
	return c, nil
}

func (s *implService) Get(ctx context.Context, caseID string) (*domain.Case, error) {
	if err := validID(caseID); err != nil {
		return nil, err
	}
	return s.repo.GetCase(ctx, caseID)
}

func (s *implService) AddEvidence(ctx context.Context, caseID string, upload domain.Upload, note string) (*domain.Case, error) {
	release, err := s.begin(ctx, caseID)
	if err != nil {
		return nil, err
	}
	defer release()

	item, err := s.ingest(ctx, caseID, upload)
	if err != nil {
		return nil, err
	}

	c, err := s.loadOrCreate(ctx, caseID)
	if err != nil {
		s.removeFile(ctx, item.Path)
		return nil, err
	}

	if err := s.repo.AddEvidence(ctx, item); err != nil {
		s.removeFile(ctx, item.Path)
		return nil, fmt.Errorf("store evidence: %w", err)
	}
	c.Evidence = append(c.Evidence, *item)

	s.logger.Info(ctx, "[%s] Added evidence #%d %s (%s), %d items total", c.ID, item.Seq, item.Filename, item.Kind, len(c.Evidence))

	if note = strings.TrimSpace(note); note != "" && note != c.Context {
		c.Context = note
		c.UpdatedAt = s.now()
		if err := s.repo.SaveCase(ctx, c, nil); err != nil {
			return c, fmt.Errorf("save case context: %w", err)
		}
	}

	return s.synthesize(ctx, c)
}

func (s *implService) Resynthesize(ctx context.Context, caseID string) (*domain.Case, error) {
	release, err := s.begin(ctx, caseID)
	if err != nil {
		return nil, err
	}
	defer release()

	c, err := s.repo.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if len(c.Evidence) == 0 {
		return c, ErrNoEvidence
	}
	return s.synthesize(ctx, c)
}

// synthesize runs the synthesizer over all evidence of c. The brief is only
// replaced when synthesis succeeds.
func (s *implService) synthesize(ctx context.Context, c *domain.Case) (*domain.Case, error) {
	cached, err := s.repo.GetTranscripts(ctx, c.ID)
	if err != nil {
		return c, fmt.Errorf("load transcripts: %w", err)
	}

	res, err := s.synthesizer.Synthesize(ctx, brief.Input{
		Items:       c.Evidence,
		Transcripts: cached,
		Context:     c.Context,
	})
	if err != nil {
		s.logger.Error(ctx, "[%s] Brief synthesis failed, keeping previous brief: %v", c.ID, err)
		return c, err
	}

	updated := *c
	updated.Brief = res.Brief
	updated.Filename = res.Filename
	updated.BriefItems = len(c.Evidence)
	updated.TurnCount = c.TurnCount + 1
	updated.UpdatedAt = s.now()

	if err := s.repo.SaveCase(ctx, &updated, newTranscripts(cached, res.Transcripts)); err != nil {
		return c, fmt.Errorf("save brief: %w", err)
	}

	s.logger.Info(ctx, "[%s] Brief updated over %d items -> %s", c.ID, updated.BriefItems, updated.Filename)
	return &updated, nil
}

func (s *implService) UpdateBrief(ctx context.Context, caseID, text string) (*domain.Case, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyBrief
	}

	release, err := s.begin(ctx, caseID)
	if err != nil {
		return nil, err
	}
	defer release()

	c, err := s.repo.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.Brief == "" {
		return c, ErrNoBrief
	}

	c.Brief = text
	c.UpdatedAt = s.now()
	if err := s.repo.SaveCase(ctx, c, nil); err != nil {
		return nil, fmt.Errorf("save brief: %w", err)
	}
	return c, nil
}

func (s *implService) Reset(ctx context.Context, caseID string) (*domain.Case, error) {
	release, err := s.begin(ctx, caseID)
	if err != nil {
		return nil, err
	}
	defer release()

	c, err := s.repo.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if err := os.RemoveAll(s.caseDir(c.ID)); err != nil {
		return nil, fmt.Errorf("remove case recordings: %w", err)
	}

	c.Clear(s.now())
	if err := s.repo.ResetCase(ctx, c); err != nil {
		return nil, fmt.Errorf("reset case: %w", err)
	}

	s.logger.Info(ctx, "[%s] Case reset", c.ID)
	return c, nil
}

func (s *implService) Export(ctx context.Context, caseID string, w io.Writer) (string, error) {
	if err := validID(caseID); err != nil {
		return "", err
	}
	c, err := s.repo.GetCase(ctx, caseID)
	if err != nil {
		return "", err
	}
	if c.Brief == "" {
		return "", ErrNoBrief
	}

	if err := s.exporter.Export(ExportTitle, c.Brief, w); err != nil {
		return "", fmt.Errorf("export brief: %w", err)
	}
	return c.Filename, nil
}

func (s *implService) loadOrCreate(ctx context.Context, caseID string) (*domain.Case, error) {
	c, err := s.repo.GetCase(ctx, caseID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	c = domain.NewCase(caseID, s.now())
	if err := s.repo.CreateCase(ctx, c); err != nil {
		return nil, fmt.Errorf("create case: %w", err)
	}
	s.logger.Info(ctx, "Created case %s on first evidence", c.ID)
	return c, nil
}

// Case IDs name directories on disk, so only UUIDs are accepted.
func validID(caseID string) error {
	if _, err := uuid.Parse(caseID); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, caseID)
	}
	return nil
}

func newTranscripts(cached, all map[string]string) map[string]string {
	out := make(map[string]string)
	for id, text := range all {
		if _, ok := cached[id]; !ok {
			out[id] = text
		}
	}
	return out
}

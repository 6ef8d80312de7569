package brief

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
	"github.com/nguyentantai21042004/legal-os/internal/gemini"
)

// Synthesize transcribes audio items that have no cached transcript, builds
// one prompt over all items in order and parses the model's answer.
func (s *implSynthesizer) Synthesize(ctx context.Context, in Input) (*Result, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("synthesize: no evidence")
	}

	transcripts, err := s.transcribeMissing(ctx, in.Items, in.Transcripts)
	if err != nil {
		return nil, err
	}

	prompt := buildPrompt(in.Items, transcripts, in.Context)

	s.logger.Info(ctx, "Synthesizing brief over %d items (%d chars)", len(in.Items), len(prompt))

	text, err := s.client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate brief: %w", err)
	}

	filename, body, err := ParseResponse(text)
	if err != nil {
		return nil, err
	}

	return &Result{
		Brief:       body,
		Filename:    filename,
		Transcripts: transcripts,
	}, nil
}

func (s *implSynthesizer) transcribeMissing(ctx context.Context, items []domain.EvidenceItem, cached map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(cached))
	for id, text := range cached {
		out[id] = text
	}

	var pending []domain.EvidenceItem
	for _, item := range items {
		if item.Kind != domain.KindAudio {
			continue
		}
		if _, ok := out[item.ID]; !ok {
			pending = append(pending, item)
		}
	}
	if len(pending) == 0 {
		return out, nil
	}

	results := make([]string, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, item := range pending {
		g.Go(func() error {
			s.logger.Info(gctx, "Transcribing %s", item.Filename)
			text, err := s.client.Transcribe(gctx, gemini.Audio{
				Path:        item.Path,
				MIMEType:    item.MIMEType,
				DisplayName: item.Filename,
			})
			if err != nil {
				return fmt.Errorf("transcribe %s: %w", item.Filename, err)
			}
			results[i] = strings.TrimSpace(text)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, item := range pending {
		out[item.ID] = results[i]
	}
	return out, nil
}

func buildPrompt(items []domain.EvidenceItem, transcripts map[string]string, note string) string {
	var sb strings.Builder
	sb.WriteString(briefPrompt)
	sb.WriteString("\n\n")

	if note = strings.TrimSpace(note); note != "" {
		sb.WriteString("Дополнительный контекст: ")
		sb.WriteString(note)
		sb.WriteString("\n\n")
	}

	sb.WriteString("МАТЕРИАЛЫ ДЕЛА:\n")
	for i, item := range items {
		text := item.Text
		if item.Kind == domain.KindAudio {
			text = transcripts[item.ID]
		}
		fmt.Fprintf(&sb, "--- %d. %s (%s) ---\n%s\n", i+1, item.Filename, item.Kind, strings.TrimSpace(text))
	}
	return sb.String()
}

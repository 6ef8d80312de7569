package review

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
	"github.com/nguyentantai21042004/legal-os/internal/gemini"
)

// DefaultInstruction is used when no voice context is given.
const DefaultInstruction = "Общий анализ рисков."

const reviewPrompt = `Инструкция: %s
Документы:
%s

Сделай анализ (Сильные стороны / Риски / Вывод) по законам РК.`

var (
	ErrNoDocuments = errors.New("no documents to review")
	ErrUnsupported = errors.New("voice context must be an audio file")
)

func (r *implReviewer) Analyze(ctx context.Context, files []domain.Upload, voiceContext *domain.Upload) (string, error) {
	if len(files) == 0 {
		return "", ErrNoDocuments
	}

	instruction := DefaultInstruction
	if voiceContext != nil && len(voiceContext.Data) > 0 {
		text, err := r.transcribe(ctx, *voiceContext)
		if err != nil {
			return "", err
		}
		if text != "" {
			instruction = text
		}
	}

	var sb strings.Builder
	readCount := 0
	for i, f := range files {
		name := filepath.Base(f.Filename)
		r.logger.Info(ctx, "[%d/%d] Reading: %s", i+1, len(files), name)

		text, err := r.extractor.Extract(name, f.Data)
		if err != nil {
			r.logger.Error(ctx, "Failed to read %s: %v", name, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			r.logger.Warn(ctx, "No text in %s", name)
		} else {
			readCount++
		}
		fmt.Fprintf(&sb, "\n--- %s ---\n%s\n", name, text)
	}

	if readCount == 0 {
		return "", ErrNoDocuments
	}

	r.logger.Info(ctx, "Reviewing %d of %d documents", readCount, len(files))

	text, err := r.client.Generate(ctx, fmt.Sprintf(reviewPrompt, instruction, sb.String()))
	if err != nil {
		return "", fmt.Errorf("generate review: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", gemini.ErrEmptyResponse
	}
	return text, nil
}

func (r *implReviewer) transcribe(ctx context.Context, up domain.Upload) (string, error) {
	name := up.Name()
	if domain.KindOf(name) != domain.KindAudio {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, name)
	}

	if err := os.MkdirAll(r.tempDir, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	raw := filepath.Join(r.tempDir, "review-"+uuid.NewString()+strings.ToLower(filepath.Ext(name)))
	if err := os.WriteFile(raw, up.Data, 0600); err != nil {
		return "", fmt.Errorf("write voice context: %w", err)
	}
	defer r.removeFile(ctx, raw)

	path, mime, err := r.normalizer.Normalize(ctx, raw)
	if err != nil {
		return "", err
	}
	if path != raw {
		defer r.removeFile(ctx, path)
	}

	text, err := r.client.Transcribe(ctx, gemini.Audio{Path: path, MIMEType: mime, DisplayName: name})
	if err != nil {
		return "", fmt.Errorf("transcribe voice context: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (r *implReviewer) removeFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		r.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	}
}

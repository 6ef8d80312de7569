package review

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
	"github.com/nguyentantai21042004/legal-os/internal/extractor"
	"github.com/nguyentantai21042004/legal-os/internal/gemini"
	"github.com/nguyentantai21042004/legal-os/internal/gemini/geminitest"
	"github.com/nguyentantai21042004/legal-os/internal/logger"
	"github.com/nguyentantai21042004/legal-os/internal/media"
	"github.com/nguyentantai21042004/legal-os/pkg/executor"
)

func newReviewer(t *testing.T, fake *geminitest.Fake) (Reviewer, string) {
	t.Helper()
	dir := t.TempDir()
	log := logger.Nop()
	return New(extractor.New(), fake, media.New(executor.New(), "", 0, log), log, dir), dir
}

func TestAnalyze(t *testing.T) {
	fake := &geminitest.Fake{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
		return "  Сильные стороны: ...\nРиски: ...\nВывод: ...  ", nil
	}}
	r, _ := newReviewer(t, fake)

	files := []domain.Upload{
		{Filename: "contract.txt", Data: []byte("Договор займа")},
		{Filename: "broken.pdf", Data: []byte("not a pdf")},
		{Filename: "claim.txt", Data: []byte("Исковое заявление")},
	}

	got, err := r.Analyze(context.Background(), files, nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !strings.HasPrefix(got, "Сильные стороны") || strings.HasSuffix(got, " ") {
		t.Errorf("Analyze() = %q", got)
	}

	prompt := fake.LastPrompt()
	for _, want := range []string{
		"Инструкция: " + DefaultInstruction,
		"\n--- contract.txt ---\nДоговор займа\n",
		"\n--- claim.txt ---\nИсковое заявление\n",
		"по законам РК",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt misses %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "broken.pdf") {
		t.Error("unreadable file should be skipped")
	}
	if strings.Index(prompt, "contract.txt") > strings.Index(prompt, "claim.txt") {
		t.Error("documents out of upload order")
	}
}

func TestAnalyzeVoiceContext(t *testing.T) {
	fake := &geminitest.Fake{TranscribeFunc: func(ctx context.Context, a gemini.Audio) (string, error) {
		if a.MIMEType != "audio/ogg" {
			t.Errorf("MIME = %q", a.MIMEType)
		}
		return "Защищаем интересы заемщика", nil
	}}
	r, dir := newReviewer(t, fake)

	files := []domain.Upload{{Filename: "contract.txt", Data: []byte("Договор")}}
	voice := &domain.Upload{Filename: "note.ogg", Data: []byte("OggS")}

	if _, err := r.Analyze(context.Background(), files, voice); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !strings.HasPrefix(fake.LastPrompt(), "Инструкция: Защищаем интересы заемщика\n") {
		t.Errorf("prompt = %q", fake.LastPrompt())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("voice context left %d temp files", len(entries))
	}
}

func TestAnalyzeErrors(t *testing.T) {
	ctx := context.Background()
	fake := &geminitest.Fake{}
	r, _ := newReviewer(t, fake)
	doc := []domain.Upload{{Filename: "a.txt", Data: []byte("A")}}

	if _, err := r.Analyze(ctx, nil, nil); !errors.Is(err, ErrNoDocuments) {
		t.Errorf("no files error = %v", err)
	}
	if _, err := r.Analyze(ctx, []domain.Upload{{Filename: "x.pdf", Data: []byte("bad")}}, nil); !errors.Is(err, ErrNoDocuments) {
		t.Errorf("unreadable files error = %v", err)
	}
	if _, err := r.Analyze(ctx, doc, &domain.Upload{Filename: "v.txt", Data: []byte("x")}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("non-audio context error = %v", err)
	}

	fake.TranscribeFunc = func(ctx context.Context, a gemini.Audio) (string, error) {
		return "", &gemini.ServiceError{Op: "transcribe", Err: errors.New("503")}
	}
	if _, err := r.Analyze(ctx, doc, &domain.Upload{Filename: "v.mp3", Data: []byte("x")}); !gemini.IsRetryable(err) {
		t.Errorf("transcription error = %v, want retryable", err)
	}

	fake.GenerateFunc = func(ctx context.Context, prompt string) (string, error) { return " ", nil }
	if _, err := r.Analyze(ctx, doc, nil); !errors.Is(err, gemini.ErrEmptyResponse) {
		t.Errorf("empty response error = %v", err)
	}
	if n := len(fake.Prompts()); n != 1 {
		t.Errorf("Generate called %d times, want 1", n)
	}
}

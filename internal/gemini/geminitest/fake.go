// Package geminitest provides an in-memory gemini.Client for tests.
package geminitest

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/legal-os/internal/gemini"
)

// Fake records every call and answers through the configured funcs.
// Nil funcs return "transcript of <display name>" and "ok".
type Fake struct {
	TranscribeFunc func(ctx context.Context, audio gemini.Audio) (string, error)
	GenerateFunc   func(ctx context.Context, prompt string) (string, error)

	mu          sync.Mutex
	prompts     []string
	transcribed []string
}

var _ gemini.Client = (*Fake)(nil)

func (f *Fake) Transcribe(ctx context.Context, audio gemini.Audio) (string, error) {
	f.mu.Lock()
	f.transcribed = append(f.transcribed, audio.DisplayName)
	fn := f.TranscribeFunc
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, audio)
	}
	return "transcript of " + audio.DisplayName, nil
}

func (f *Fake) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	fn := f.GenerateFunc
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}
	return "ok", nil
}

// Prompts returns every prompt passed to Generate.
func (f *Fake) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// LastPrompt returns the most recent Generate prompt.
func (f *Fake) LastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

// Transcribed returns the display names of every transcribed recording.
func (f *Fake) Transcribed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.transcribed...)
}

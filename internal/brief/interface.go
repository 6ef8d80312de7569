// Package brief synthesizes a legal brief over every evidence item of a case.
package brief

import (
	"context"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
)

// Synthesizer produces a brief and a suggested export filename.
type Synthesizer interface {
	Synthesize(ctx context.Context, in Input) (*Result, error)
}

// Input is the full evidence set of a case.
type Input struct {
	Items []domain.EvidenceItem
	// Transcripts caches audio transcripts by evidence ID.
	Transcripts map[string]string
	// Context is an optional free-text note from the lawyer.
	Context string
}

// Result is a successful synthesis.
type Result struct {
	Brief    string
	Filename string
	// Transcripts holds a transcript for every audio item of the input.
	Transcripts map[string]string
}

// Package casefile manages the running case: evidence intake, brief
// synthesis, edits, reset and export.
package casefile

import (
	"context"
	"io"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
)

// Service serializes mutations per case. A second mutation of the same case
// while one is running fails with ErrBusy.
type Service interface {
	Create(ctx context.Context) (*domain.Case, error)
	Get(ctx context.Context, caseID string) (*domain.Case, error)

	// AddEvidence stores the upload, creating the case if needed, and
	// re-synthesizes the brief over all evidence. When synthesis fails the
	// returned case still holds the new item and the previous brief,
	// alongside the error.
	AddEvidence(ctx context.Context, caseID string, upload domain.Upload, note string) (*domain.Case, error)

	// Resynthesize retries synthesis over the current evidence.
	Resynthesize(ctx context.Context, caseID string) (*domain.Case, error)

	// UpdateBrief replaces the brief with a user-edited version.
	UpdateBrief(ctx context.Context, caseID, text string) (*domain.Case, error)

	// Reset clears evidence, transcripts, brief and stored recordings.
	Reset(ctx context.Context, caseID string) (*domain.Case, error)

	// Export writes the brief as .docx and returns the download name.
	Export(ctx context.Context, caseID string, w io.Writer) (string, error)
}

// Package simulator runs simulated court hearings: the user argues one side
// against a model playing the judge and opposing counsel.
package simulator

import (
	"context"
	"io"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
)

// TurnInput is the user's answer, either a recording or typed text.
type TurnInput struct {
	Audio *domain.Upload
	Text  string
}

// Service drives a simulation through configuring, active and debriefed.
// Actions not allowed in the current state fail with *TransitionError.
type Service interface {
	Create(ctx context.Context) (*domain.Simulation, error)
	Get(ctx context.Context, simID string) (*domain.Simulation, error)

	// Start opens the hearing. The model speaks first.
	Start(ctx context.Context, simID string, role domain.Party, materials []domain.Upload) (*domain.Simulation, error)

	// Turn records the user's answer and the model's reply. Nothing is
	// appended when the reply fails.
	Turn(ctx context.Context, simID string, input TurnInput) (*domain.Simulation, error)

	// End closes the hearing and writes the debrief.
	End(ctx context.Context, simID string) (*domain.Simulation, error)

	// Restart drops the transcript and debrief and returns to configuring.
	Restart(ctx context.Context, simID string) (*domain.Simulation, error)

	// Export writes the debrief as .docx and returns the download name.
	Export(ctx context.Context, simID string, w io.Writer) (string, error)
}

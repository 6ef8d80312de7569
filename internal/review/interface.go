package review

import (
	"context"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
)

// Reviewer checks contracts and claims for risks under the law of Kazakhstan.
type Reviewer interface {
	// Analyze reviews files against an instruction. The instruction is the
	// transcript of voiceContext when given, a general risk review otherwise.
	Analyze(ctx context.Context, files []domain.Upload, voiceContext *domain.Upload) (string, error)
}

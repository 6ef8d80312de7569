package brief

import (
	"github.com/nguyentantai21042004/legal-os/internal/gemini"
	"github.com/nguyentantai21042004/legal-os/internal/logger"
)

type implSynthesizer struct {
	client        gemini.Client
	logger        logger.Logger
	maxConcurrent int
}

// New creates a Synthesizer. maxConcurrent bounds parallel transcriptions.
func New(client gemini.Client, log logger.Logger, maxConcurrent int) Synthesizer {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &implSynthesizer{
		client:        client,
		logger:        log,
		maxConcurrent: maxConcurrent,
	}
}

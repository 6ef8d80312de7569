package media

import (
	"github.com/nguyentantai21042004/legal-os/internal/logger"
	"github.com/nguyentantai21042004/legal-os/pkg/executor"
)

type implNormalizer struct {
	executor   executor.Executor
	binary     string
	sampleRate int
	logger     logger.Logger
}

// New creates a Normalizer. An empty binary disables transcoding and
// recordings are uploaded as received.
func New(exec executor.Executor, binary string, sampleRate int, log logger.Logger) Normalizer {
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	return &implNormalizer{
		executor:   exec,
		binary:     binary,
		sampleRate: sampleRate,
		logger:     log,
	}
}

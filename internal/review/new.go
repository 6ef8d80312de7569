package review

import (
	"github.com/nguyentantai21042004/legal-os/internal/extractor"
	"github.com/nguyentantai21042004/legal-os/internal/gemini"
	"github.com/nguyentantai21042004/legal-os/internal/logger"
	"github.com/nguyentantai21042004/legal-os/internal/media"
)

const (
	// ExportTitle heads an exported review.
	ExportTitle = "Анализ"
	// ExportFilename is the default download name of a review.
	ExportFilename = "Doc_Analysis.docx"
)

type implReviewer struct {
	extractor  extractor.Extractor
	client     gemini.Client
	normalizer media.Normalizer
	logger     logger.Logger
	tempDir    string
}

// New creates a Reviewer. Voice instructions are staged under tempDir.
func New(ext extractor.Extractor, client gemini.Client, norm media.Normalizer, log logger.Logger, tempDir string) Reviewer {
	return &implReviewer{
		extractor:  ext,
		client:     client,
		normalizer: norm,
		logger:     log,
		tempDir:    tempDir,
	}
}

package extractor

type implExtractor struct{}

// New creates an Extractor for pdf, docx and txt files.
func New() Extractor {
	return &implExtractor{}
}

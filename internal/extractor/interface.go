// Package extractor turns uploaded documents into plain text.
package extractor

// Extractor reads the text out of a document upload.
type Extractor interface {
	// Extract returns the UTF-8 text of the file. Unsupported extensions
	// yield "" and a nil error; callers must check for emptiness.
	Extract(filename string, data []byte) (string, error)
}

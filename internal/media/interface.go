// Package media prepares stored recordings for upload.
package media

import "context"

// Normalizer converts recordings the model cannot read directly.
type Normalizer interface {
	// Normalize returns the path and MIME type to upload. The source file
	// is replaced when it had to be converted.
	Normalize(ctx context.Context, path string) (string, string, error)
}

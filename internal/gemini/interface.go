// Package gemini is the boundary to the Gemini API: file upload with
// readiness polling, transcription and text generation.
package gemini

import "context"

// Client is the external generative-language service.
type Client interface {
	// Transcribe uploads the recording, waits until the service has
	// processed it and returns its transcript.
	Transcribe(ctx context.Context, audio Audio) (string, error)
	// Generate returns the model's text for prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Audio is a recording stored on local disk.
type Audio struct {
	Path        string
	MIMEType    string
	DisplayName string
}

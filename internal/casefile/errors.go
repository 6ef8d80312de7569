package casefile

import "errors"

var (
	ErrInvalidID     = errors.New("invalid case id")
	ErrBusy          = errors.New("case is busy with another action")
	ErrUnsupported   = errors.New("unsupported file type")
	ErrEmptyDocument = errors.New("document contains no text")
	ErrEmptyUpload   = errors.New("upload is empty")
	ErrNoEvidence    = errors.New("case has no evidence")
	ErrNoBrief       = errors.New("case has no brief yet")
	ErrEmptyBrief    = errors.New("brief text is empty")
)

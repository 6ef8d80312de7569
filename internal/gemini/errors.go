package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/legal-os/pkg/poll"
)

var (
	// ErrNoAPIKey means no credential was configured.
	ErrNoAPIKey = errors.New("gemini api key is not configured")
	// ErrEmptyResponse means the model returned no text.
	ErrEmptyResponse = errors.New("empty response from Gemini")
)

// ServiceError wraps a failed call to the external service.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("gemini %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether repeating the same action may succeed.
func IsRetryable(err error) bool {
	var svc *ServiceError
	var timeout *poll.TimeoutError
	return errors.As(err, &svc) ||
		errors.As(err, &timeout) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, ErrEmptyResponse)
}

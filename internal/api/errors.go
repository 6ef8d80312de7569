package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/nguyentantai21042004/legal-os/internal/brief"
	"github.com/nguyentantai21042004/legal-os/internal/casefile"
	"github.com/nguyentantai21042004/legal-os/internal/extractor"
	"github.com/nguyentantai21042004/legal-os/internal/gemini"
	"github.com/nguyentantai21042004/legal-os/internal/review"
	"github.com/nguyentantai21042004/legal-os/internal/simulator"
	"github.com/nguyentantai21042004/legal-os/internal/store"
	"github.com/nguyentantai21042004/legal-os/pkg/poll"
)

var errBadRequest = errors.New("bad request")

// statusFor maps a service error to an HTTP status and whether the client
// may retry the same action.
func statusFor(err error) (int, bool) {
	var transition *simulator.TransitionError
	var extraction *extractor.ExtractionError
	var timeout *poll.TimeoutError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.Is(err, casefile.ErrBusy), errors.Is(err, simulator.ErrBusy):
		return http.StatusConflict, true
	case errors.As(err, &transition),
		errors.Is(err, casefile.ErrNoBrief),
		errors.Is(err, casefile.ErrNoEvidence),
		errors.Is(err, store.ErrStale):
		return http.StatusConflict, false

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, false
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, false

	case errors.As(err, &extraction),
		errors.Is(err, casefile.ErrEmptyDocument),
		errors.Is(err, simulator.ErrNoMaterials),
		errors.Is(err, review.ErrNoDocuments):
		return http.StatusUnprocessableEntity, false
	case errors.Is(err, errBadRequest),
		errors.Is(err, casefile.ErrInvalidID),
		errors.Is(err, casefile.ErrUnsupported),
		errors.Is(err, casefile.ErrEmptyUpload),
		errors.Is(err, casefile.ErrEmptyBrief),
		errors.Is(err, simulator.ErrInvalidID),
		errors.Is(err, simulator.ErrInvalidRole),
		errors.Is(err, simulator.ErrEmptyAnswer),
		errors.Is(err, simulator.ErrUnsupported),
		errors.Is(err, review.ErrUnsupported):
		return http.StatusBadRequest, false

	case errors.Is(err, gemini.ErrNoAPIKey):
		return http.StatusServiceUnavailable, false
	case errors.As(err, &timeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, true
	case gemini.IsRetryable(err), errors.Is(err, brief.ErrEmptyResponse):
		return http.StatusBadGateway, true
	}
	return http.StatusInternalServerError, false
}

// fail logs err and writes it as an ErrorResponse. state, when non-nil, is
// the resource as it stands after the failed action.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, state interface{}) {
	status, retryable := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "%s %s failed: %v", r.Method, r.URL.Path, err)
	} else {
		h.logger.Warn(r.Context(), "%s %s rejected: %v", r.Method, r.URL.Path, err)
	}
	JSON(w, status, ErrorResponse{Error: err.Error(), Retryable: retryable, State: state})
}

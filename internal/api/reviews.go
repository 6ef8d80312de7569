package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nguyentantai21042004/legal-os/internal/brief"
	"github.com/nguyentantai21042004/legal-os/internal/review"
)

func (h *Handler) registerReviews(r chi.Router) {
	r.Post("/api/reviews", h.Review)
	r.Post("/api/export", h.Export)
}

type reviewResponse struct {
	Analysis string `json:"analysis"`
	Title    string `json:"title"`
	Filename string `json:"filename"`
}

// Review analyzes the documents under "files". An optional "context"
// recording replaces the default instruction.
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	if err := h.parseMultipart(w, r); err != nil {
		h.fail(w, r, err, nil)
		return
	}

	files, err := formFiles(r, "files")
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	voice, err := formFile(r, "context")
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}

	analysis, err := h.reviewer.Analyze(r.Context(), files, voice)
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}

	JSON(w, http.StatusOK, reviewResponse{
		Analysis: analysis,
		Title:    review.ExportTitle,
		Filename: review.ExportFilename,
	})
}

type exportRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Filename string `json:"filename"`
}

// Export renders arbitrary text, such as a review, as .docx.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, h.maxUpload)).Decode(&req); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %w", errBadRequest, err), nil)
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		h.fail(w, r, fmt.Errorf("%w: body is empty", errBadRequest), nil)
		return
	}

	title := req.Title
	if strings.TrimSpace(title) == "" {
		title = review.ExportTitle
	}
	filename := review.ExportFilename
	if strings.TrimSpace(req.Filename) != "" {
		filename = brief.SanitizeFilename(req.Filename)
	}

	h.sendDocx(w, r, func(out io.Writer) (string, error) {
		if err := h.exporter.Export(title, req.Body, out); err != nil {
			return "", fmt.Errorf("export document: %w", err)
		}
		return filename, nil
	})
}

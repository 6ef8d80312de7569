package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
)

func (h *Handler) registerCases(r chi.Router) {
	r.Route("/api/cases", func(r chi.Router) {
		r.Post("/", h.CreateCase)
		r.Route("/{caseID}", func(r chi.Router) {
			r.Get("/", h.GetCase)
			r.Delete("/", h.ResetCase)
			r.Post("/evidence", h.AddEvidence)
			r.Post("/synthesize", h.Resynthesize)
			r.Put("/brief", h.UpdateBrief)
			r.Get("/export", h.ExportCase)
		})
	})
}

// CreateCase starts an empty case.
func (h *Handler) CreateCase(w http.ResponseWriter, r *http.Request) {
	c, err := h.cases.Create(r.Context())
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	JSON(w, http.StatusCreated, c)
}

// GetCase returns the case with its evidence and brief.
func (h *Handler) GetCase(w http.ResponseWriter, r *http.Request) {
	c, err := h.cases.Get(r.Context(), chi.URLParam(r, "caseID"))
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	JSON(w, http.StatusOK, c)
}

// AddEvidence accepts one file under "file" and an optional "context" note.
// When the item is stored but the brief could not be rebuilt, the error
// response carries the case as it now stands.
func (h *Handler) AddEvidence(w http.ResponseWriter, r *http.Request) {
	if err := h.parseMultipart(w, r); err != nil {
		h.fail(w, r, err, nil)
		return
	}

	upload, err := formFile(r, "file")
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	if upload == nil {
		h.fail(w, r, fmt.Errorf("%w: missing file", errBadRequest), nil)
		return
	}

	c, err := h.cases.AddEvidence(r.Context(), chi.URLParam(r, "caseID"), *upload, r.FormValue("context"))
	if err != nil {
		h.fail(w, r, err, caseState(c))
		return
	}
	JSON(w, http.StatusOK, c)
}

// Resynthesize retries brief synthesis over the current evidence.
func (h *Handler) Resynthesize(w http.ResponseWriter, r *http.Request) {
	c, err := h.cases.Resynthesize(r.Context(), chi.URLParam(r, "caseID"))
	if err != nil {
		h.fail(w, r, err, caseState(c))
		return
	}
	JSON(w, http.StatusOK, c)
}

// caseState keeps a nil case out of the error body.
func caseState(c *domain.Case) interface{} {
	if c == nil {
		return nil
	}
	return c
}

type briefRequest struct {
	Brief string `json:"brief"`
}

// UpdateBrief stores a user-edited brief.
func (h *Handler) UpdateBrief(w http.ResponseWriter, r *http.Request) {
	var req briefRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, h.maxUpload)).Decode(&req); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %w", errBadRequest, err), nil)
		return
	}

	c, err := h.cases.UpdateBrief(r.Context(), chi.URLParam(r, "caseID"), req.Brief)
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	JSON(w, http.StatusOK, c)
}

// ResetCase clears the case.
func (h *Handler) ResetCase(w http.ResponseWriter, r *http.Request) {
	c, err := h.cases.Reset(r.Context(), chi.URLParam(r, "caseID"))
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	JSON(w, http.StatusOK, c)
}

// ExportCase downloads the brief as .docx.
func (h *Handler) ExportCase(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "caseID")
	h.sendDocx(w, r, func(out io.Writer) (string, error) {
		return h.cases.Export(r.Context(), caseID, out)
	})
}


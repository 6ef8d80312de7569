package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
	"github.com/nguyentantai21042004/legal-os/internal/simulator"
)

func (h *Handler) registerSimulations(r chi.Router) {
	r.Route("/api/simulations", func(r chi.Router) {
		r.Post("/", h.CreateSimulation)
		r.Route("/{simID}", func(r chi.Router) {
			r.Get("/", h.GetSimulation)
			r.Post("/start", h.StartSimulation)
			r.Post("/turns", h.SimulationTurn)
			r.Post("/end", h.EndSimulation)
			r.Post("/restart", h.RestartSimulation)
			r.Get("/export", h.ExportDebrief)
		})
	})
}

// CreateSimulation opens a new hearing in the configuring state.
func (h *Handler) CreateSimulation(w http.ResponseWriter, r *http.Request) {
	sim, err := h.sims.Create(r.Context())
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	JSON(w, http.StatusCreated, sim)
}

// GetSimulation returns the hearing with its transcript.
func (h *Handler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	sim, err := h.sims.Get(r.Context(), chi.URLParam(r, "simID"))
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	JSON(w, http.StatusOK, sim)
}

// StartSimulation takes the user's "role" and case materials under "files".
func (h *Handler) StartSimulation(w http.ResponseWriter, r *http.Request) {
	if err := h.parseMultipart(w, r); err != nil {
		h.fail(w, r, err, nil)
		return
	}

	role, err := domain.ParseParty(r.FormValue("role"))
	if err != nil {
		h.fail(w, r, fmt.Errorf("%w: %w", simulator.ErrInvalidRole, err), nil)
		return
	}
	materials, err := formFiles(r, "files")
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}

	h.respondSim(w, r)(h.sims.Start(r.Context(), chi.URLParam(r, "simID"), role, materials))
}

// SimulationTurn takes the answer as an "audio" file or a "text" field.
func (h *Handler) SimulationTurn(w http.ResponseWriter, r *http.Request) {
	if err := h.parseMultipart(w, r); err != nil {
		h.fail(w, r, err, nil)
		return
	}

	audio, err := formFile(r, "audio")
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}

	input := simulator.TurnInput{Audio: audio, Text: r.FormValue("text")}
	h.respondSim(w, r)(h.sims.Turn(r.Context(), chi.URLParam(r, "simID"), input))
}

// EndSimulation closes the hearing and returns the debrief.
func (h *Handler) EndSimulation(w http.ResponseWriter, r *http.Request) {
	h.respondSim(w, r)(h.sims.End(r.Context(), chi.URLParam(r, "simID")))
}

// RestartSimulation returns a debriefed hearing to configuring.
func (h *Handler) RestartSimulation(w http.ResponseWriter, r *http.Request) {
	h.respondSim(w, r)(h.sims.Restart(r.Context(), chi.URLParam(r, "simID")))
}

// ExportDebrief downloads the debrief as .docx.
func (h *Handler) ExportDebrief(w http.ResponseWriter, r *http.Request) {
	simID := chi.URLParam(r, "simID")
	h.sendDocx(w, r, func(out io.Writer) (string, error) {
		return h.sims.Export(r.Context(), simID, out)
	})
}

func (h *Handler) respondSim(w http.ResponseWriter, r *http.Request) func(*domain.Simulation, error) {
	return func(sim *domain.Simulation, err error) {
		if err != nil {
			h.fail(w, r, err, nil)
			return
		}
		JSON(w, http.StatusOK, sim)
	}
}

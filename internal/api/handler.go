// Package api exposes the case desk over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/nguyentantai21042004/legal-os/internal/casefile"
	"github.com/nguyentantai21042004/legal-os/internal/document"
	"github.com/nguyentantai21042004/legal-os/internal/logger"
	"github.com/nguyentantai21042004/legal-os/internal/review"
	"github.com/nguyentantai21042004/legal-os/internal/simulator"
	"github.com/nguyentantai21042004/legal-os/internal/store"
)

const defaultMaxUpload = 50 << 20

// Deps are the services behind the HTTP API.
type Deps struct {
	Cases       casefile.Service
	Simulations simulator.Service
	Reviewer    review.Reviewer
	Exporter    document.Exporter
	Repo        store.Repository
	Logger      logger.Logger
	// MaxUpload caps a request body in bytes.
	MaxUpload    int64
	AllowOrigins []string
	// KeyConfigured is reported by the health check.
	KeyConfigured bool
}

// Handler serves every route of the API.
type Handler struct {
	cases         casefile.Service
	sims          simulator.Service
	reviewer      review.Reviewer
	exporter      document.Exporter
	repo          store.Repository
	logger        logger.Logger
	maxUpload     int64
	allowOrigins  []string
	keyConfigured bool
}

// NewHandler creates a Handler.
func NewHandler(deps Deps) *Handler {
	maxUpload := deps.MaxUpload
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	origins := deps.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Handler{
		cases:         deps.Cases,
		sims:          deps.Simulations,
		reviewer:      deps.Reviewer,
		exporter:      deps.Exporter,
		repo:          deps.Repo,
		logger:        deps.Logger,
		maxUpload:     maxUpload,
		allowOrigins:  origins,
		keyConfigured: deps.KeyConfigured,
	}
}

// Router builds the chi router with global middleware and all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(CORS(h.allowOrigins))

	r.Get("/health", h.Health)
	h.registerCases(r)
	h.registerSimulations(r)
	h.registerReviews(r)

	return r
}

// Health reports database reachability and whether a model key is set.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":   "ok",
		"gemini":   h.keyConfigured,
		"database": "ok",
	}
	code := http.StatusOK

	if err := h.repo.Ping(r.Context()); err != nil {
		h.logger.Error(r.Context(), "Health check failed: %v", err)
		status["status"] = "degraded"
		status["database"] = "unreachable"
		code = http.StatusServiceUnavailable
	}

	JSON(w, code, status)
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
	// State carries the case or simulation when the action partly succeeded.
	State interface{} `json:"state,omitempty"`
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string, retryable bool) {
	JSON(w, status, ErrorResponse{Error: message, Retryable: retryable})
}

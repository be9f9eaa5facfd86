// Package handlers provides HTTP request handlers for the medicine API endpoints.
// This file implements the HTTPHandler interface with dependency injection.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/giygas/medic-api/interfaces"
	"github.com/giygas/medic-api/logging"
	"github.com/giygas/medic-api/lookup"
)

var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

const (
	searchSource     = "FDA & RxNav"
	msgQueryRequired = "Bad Request: Query parameter 'q' is required"
	msgInternal      = "Internal Server Error"
)

// Services groups the domain services the handlers delegate to
type Services struct {
	Lookup    interfaces.MedicineLookup
	Searcher  interfaces.Searcher
	Assistant interfaces.Assistant
}

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	lookup        interfaces.MedicineLookup
	searcher      interfaces.Searcher
	assistant     interfaces.Assistant
	validator     interfaces.InputValidator
	healthChecker interfaces.HealthChecker
	maxLimit      int
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies.
// maxLimit caps the limit parameter of /list and /similar.
func NewHTTPHandler(services Services, validator interfaces.InputValidator, healthChecker interfaces.HealthChecker, maxLimit int) *HTTPHandlerImpl {
	return &HTTPHandlerImpl{
		lookup:        services.Lookup,
		searcher:      services.Searcher,
		assistant:     services.Assistant,
		validator:     validator,
		healthChecker: healthChecker,
		maxLimit:      maxLimit,
	}
}

// SearchResponse is the /list body
type SearchResponse struct {
	Source    string   `json:"source"`
	Medicines []string `json:"medicines"`
}

// SimilarResponse is the /similar body
type SimilarResponse struct {
	Source           string   `json:"source"`
	SimilarMedicines []string `json:"similar_medicines"`
}

// AIRequest is the /ai body
type AIRequest struct {
	Prompt string `json:"prompt"`
}

// queryParam returns the validated q parameter, or writes a 400 and reports false
func (h *HTTPHandlerImpl) queryParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		RespondWithError(w, http.StatusBadRequest, msgQueryRequired)
		return "", false
	}

	if err := h.validator.ValidateInput(q); err != nil {
		logging.Warn("Unusual user input", "q", q, "error", err)
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return "", false
	}

	return q, true
}

// FindMedicine serves GET /medic?q=
func (h *HTTPHandlerImpl) FindMedicine(w http.ResponseWriter, r *http.Request) {
	q, ok := h.queryParam(w, r)
	if !ok {
		return
	}

	record, err := h.lookup.Lookup(r.Context(), q)
	switch {
	case errors.Is(err, lookup.ErrNotFound):
		RespondWithError(w, http.StatusNotFound, "Medicine not found")
		return
	case err != nil:
		respondInternal(w, r, msgInternal, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, record)
}

// ListMedicines serves GET /list?q=&limit=
func (h *HTTPHandlerImpl) ListMedicines(w http.ResponseWriter, r *http.Request) {
	q, ok := h.queryParam(w, r)
	if !ok {
		return
	}
	limit := h.validator.ParseLimit(r.URL.Query().Get("limit"), h.maxLimit)

	names, err := h.searcher.List(r.Context(), q, limit)
	switch {
	case errors.Is(err, lookup.ErrNotFound):
		RespondWithError(w, http.StatusNotFound, "No relevant medicines found")
		return
	case err != nil:
		respondInternal(w, r, msgInternal, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, SearchResponse{Source: searchSource, Medicines: names})
}

// SimilarMedicines serves GET /similar?q=&limit=
func (h *HTTPHandlerImpl) SimilarMedicines(w http.ResponseWriter, r *http.Request) {
	q, ok := h.queryParam(w, r)
	if !ok {
		return
	}
	limit := h.validator.ParseLimit(r.URL.Query().Get("limit"), h.maxLimit)

	names, err := h.searcher.Similar(r.Context(), q, limit)
	switch {
	case errors.Is(err, lookup.ErrNotFound):
		RespondWithError(w, http.StatusNotFound, "No similar medicines found")
		return
	case err != nil:
		respondInternal(w, r, msgInternal, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, SimilarResponse{Source: searchSource, SimilarMedicines: names})
}

// AskAI serves POST /ai with a {"prompt"} body
func (h *HTTPHandlerImpl) AskAI(w http.ResponseWriter, r *http.Request) {
	var req AIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logging.Warn("Invalid AI request body", "error", err)
		RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		RespondWithError(w, http.StatusBadRequest, "Prompt is required!")
		return
	}
	if err := h.validator.ValidatePrompt(prompt); err != nil {
		logging.Warn("Unusual user input", "prompt", prompt, "error", err)
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	answer, err := h.assistant.Ask(r.Context(), prompt)
	switch {
	case errors.Is(err, lookup.ErrNotFound):
		RespondWithError(w, http.StatusNotFound, "Medicine not found")
		return
	case errors.Is(err, lookup.ErrMalformedModelResponse):
		respondInternal(w, r, "Invalid JSON format received", err)
		return
	case err != nil:
		respondInternal(w, r, "Something went wrong!", err)
		return
	}

	RespondWithJSON(w, http.StatusOK, answer)
}

// HealthCheck returns server health information
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, details, err := h.healthChecker.HealthCheck(ctx)
	if err != nil {
		logging.Warn("Health check failed", "error", err)
		status = "unhealthy"
		if details == nil {
			details = map[string]any{}
		}
		details["error"] = err.Error()
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(serverStartTime)
	response := HealthResponse{
		Status:        status,
		Uptime:        formatUptimeHuman(uptime),
		UptimeSeconds: uptime.Seconds(),
		Data:          details,
		System: map[string]any{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       int(m.Alloc / 1024 / 1024),
				"total_alloc_mb": int(m.TotalAlloc / 1024 / 1024),
				"sys_mb":         int(m.Sys / 1024 / 1024),
				"num_gc":         m.NumGC,
			},
		},
	}

	code := http.StatusOK
	if status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	RespondWithJSON(w, code, response)
}

func respondInternal(w http.ResponseWriter, r *http.Request, message string, err error) {
	logging.Error("Request failed", "path", r.URL.Path, "error", err)
	RespondWithErrorDetails(w, http.StatusInternalServerError, message, err.Error())
}

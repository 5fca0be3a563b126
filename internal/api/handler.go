package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"investment-company/agents"
	"investment-company/config"
	"investment-company/repository"
	"investment-company/services"
)

// MeetingRunner runs the scoring pipeline over a symbol batch
type MeetingRunner interface {
	Run(ctx context.Context, symbols []string, start, end time.Time) *agents.MeetingResult
}

// DecisionReader reads persisted decisions
type DecisionReader interface {
	GetDecisions(ctx context.Context, symbol string, limit int) ([]repository.DecisionRecord, error)
	Health(ctx context.Context) error
}

// Handler handles HTTP API requests
type Handler struct {
	meeting MeetingRunner
	repo    DecisionReader
	cfg     *config.Config
}

// NewHandler creates a new Handler. The repository may be nil when no
// database is configured; decision endpoints then report the store as
// unavailable.
func NewHandler(meeting MeetingRunner, repo DecisionReader, cfg *config.Config) *Handler {
	return &Handler{meeting: meeting, repo: repo, cfg: cfg}
}

// MeetingRequest represents a request to run an investment meeting
type MeetingRequest struct {
	Symbols  []string `json:"symbols"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Interval string   `json:"interval,omitempty"`
}

// HandleRunMeeting runs the full pipeline for the requested symbols
func (h *Handler) HandleRunMeeting(w http.ResponseWriter, r *http.Request) {
	var req MeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Symbols) == 0 {
		h.jsonError(w, "symbols is required", http.StatusBadRequest)
		return
	}

	start, err := time.Parse("2006-01-02", req.Start)
	if err != nil {
		h.jsonError(w, "start must be an ISO date (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	end, err := time.Parse("2006-01-02", req.End)
	if err != nil {
		h.jsonError(w, "end must be an ISO date (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	if end.Before(start) {
		h.jsonError(w, "end must not precede start", http.StatusBadRequest)
		return
	}

	result := h.meeting.Run(r.Context(), req.Symbols, start, end)
	h.jsonResponse(w, result)
}

// HandleGetDecisions returns persisted decisions, optionally filtered by
// the symbol query parameter.
func (h *Handler) HandleGetDecisions(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		h.jsonError(w, "decision store not configured", http.StatusServiceUnavailable)
		return
	}

	symbol := r.URL.Query().Get("symbol")
	limit := h.ParseLimitParam(r, 50)

	records, err := h.repo.GetDecisions(r.Context(), symbol, limit)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []repository.DecisionRecord{}
	}

	h.jsonResponse(w, records)
}

// HandleHealth returns the health status of the application
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"services": map[string]string{
			"database": "unknown",
		},
	}

	if h.repo != nil {
		if err := h.repo.Health(r.Context()); err == nil {
			status["services"].(map[string]string)["database"] = "connected"
		} else {
			status["services"].(map[string]string)["database"] = "disconnected"
			status["status"] = "degraded"
		}
	} else {
		status["services"].(map[string]string)["database"] = "not_configured"
	}

	cbStatus := services.GetGlobalRegistry().Status()
	status["circuit_breakers"] = cbStatus

	for _, cb := range cbStatus {
		if cb.State == "open" {
			status["status"] = "degraded"
			break
		}
	}

	h.jsonResponse(w, status)
}

func (h *Handler) ParseLimitParam(r *http.Request, defaultLimit int) int {
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			return l
		}
	}
	return defaultLimit
}

func (h *Handler) jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rehearseiq/feedback-engine/internal/config"
	"github.com/rehearseiq/feedback-engine/internal/observability"
	"github.com/rehearseiq/feedback-engine/internal/scoring"
	"github.com/rehearseiq/feedback-engine/internal/stt"
)

const defaultHistoryLimit = 10

// Handler exposes the JSON endpoints
type Handler struct {
	cfg         *config.Config
	service     *Service
	transcriber stt.Transcriber
}

// NewHandler creates the HTTP handler. transcriber may be nil when no
// speech-to-text credentials are configured.
func NewHandler(cfg *config.Config, service *Service, transcriber stt.Transcriber) *Handler {
	return &Handler{cfg: cfg, service: service, transcriber: transcriber}
}

// Register wires the endpoints onto the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/score", h.HandleScore)
	mux.HandleFunc("/v1/history", h.HandleHistory)
	mux.HandleFunc("/v1/transcribe", h.HandleTranscribe)
}

// HandleScore scores one finished recording
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.ScoreSession(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleHistory returns recent sessions, newest first, optionally filtered by
// scenario via ?scenario= and capped via ?limit=
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	scenario := scoring.Scenario(r.URL.Query().Get("scenario"))
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	sessions, err := h.service.History(scenario, limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

// HandleTranscribe forwards raw audio from the request body to the
// speech-to-text provider and returns the transcript with segment confidences
func (h *Handler) HandleTranscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.transcriber == nil {
		writeError(w, http.StatusServiceUnavailable, "transcription is not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	result, err := h.transcriber.Transcribe(ctx, r.Body)
	if err != nil {
		logger := observability.GetLogger()
		logger.Error().Err(err).Msg("Transcription request failed")
		writeError(w, http.StatusBadGateway, "transcription failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger := observability.GetLogger()
		logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

package handler

import (
	"net/http"

	natsclient "github.com/rvrjc/campusbot/internal/nats"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	natsClient *natsclient.Client
	intents    int
}

// NewHealthHandler creates a health handler. natsClient is nil when event
// publishing is disabled.
func NewHealthHandler(natsClient *natsclient.Client, intents int) *HealthHandler {
	return &HealthHandler{
		natsClient: natsClient,
		intents:    intents,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.intents == 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "no intents loaded",
		})
		return
	}

	if h.natsClient != nil && !h.natsClient.IsConnected() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "NATS not connected",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ready",
		"intents": h.intents,
	})
}

package gateway

import (
	"net/http"

	"github.com/mcdev12/overworld/go/internal/web"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles WebSocket upgrade requests for the world feed
type WebSocketHandler struct {
	connectionManager *ConnectionManager
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(cm *ConnectionManager) *WebSocketHandler {
	return &WebSocketHandler{
		connectionManager: cm,
	}
}

// HandleWorldConnection upgrades to the world feed. The feed carries public
// events only, so viewers are not authenticated.
func (h *WebSocketHandler) HandleWorldConnection(w http.ResponseWriter, r *http.Request) {
	enc, err := ParseEncoding(r.URL.Query().Get("encoding"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	viewer := r.URL.Query().Get("viewer")
	if viewer == "" {
		viewer = "anonymous"
	}

	// Upgrade writes its own error response on failure
	if err := h.connectionManager.UpgradeConnection(w, r, viewer, enc); err != nil {
		log.Error().
			Err(err).
			Str("viewer", viewer).
			Msg("failed to upgrade WebSocket connection")
	}
}

// HandleConnectionStats returns statistics about active connections
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	web.WriteJSON(w, http.StatusOK, h.connectionManager.Stats())
}

// RegisterRoutes registers WebSocket routes with an HTTP mux
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/world", h.HandleWorldConnection)
	mux.HandleFunc("GET /ws/stats", h.HandleConnectionStats)
}

package spotify

import (
	"encoding/json"
	"net/http"

	"github.com/mager/thalamus/session"
	"go.uber.org/zap"
)

// SessionHandler lets the frontend check whether its session is still valid
// and whether an embedding has been composed yet.
type SessionHandler struct {
	log      *zap.SugaredLogger
	sessions *session.Store
}

func (*SessionHandler) Pattern() string {
	return "/session"
}

// NewSessionHandler builds a new SessionHandler.
func NewSessionHandler(log *zap.SugaredLogger, sessions *session.Store) *SessionHandler {
	return &SessionHandler{log: log, sessions: sessions}
}

type GetSessionResponse struct {
	Active       bool `json:"active"`
	HasEmbedding bool `json:"has_embedding"`
}

// Get session status
// @Summary Get session status
// @Description Check whether the session is valid and has an embedding
// @Accept json
// @Produce json
// @Success 200 {object} GetSessionResponse
// @Router /session [get]
// @Param session query string true "Session ID"
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var resp GetSessionResponse
	_, sess, err := h.sessions.Get(r.Context(), r.URL.Query().Get("session"))
	if err == nil {
		resp.Active = true
		resp.HasEmbedding = len(sess.Embedding) > 0
	}

	json.NewEncoder(w).Encode(resp)
}

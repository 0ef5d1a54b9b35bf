package spotify

import (
	"encoding/json"
	"net/http"

	spot "github.com/zmb3/spotify/v2"

	"github.com/mager/thalamus/session"
	"github.com/mager/thalamus/spotify"
	"go.uber.org/zap"
)

// QueueHandler adds accepted recommendations to the user's Spotify queue.
type QueueHandler struct {
	log           *zap.SugaredLogger
	spotifyClient *spotify.SpotifyClient
	sessions      *session.Store
}

func (*QueueHandler) Pattern() string {
	return "/spotify/queue"
}

// NewQueueHandler builds a new QueueHandler.
func NewQueueHandler(
	log *zap.SugaredLogger,
	spotifyClient *spotify.SpotifyClient,
	sessions *session.Store,
) *QueueHandler {
	return &QueueHandler{log: log, spotifyClient: spotifyClient, sessions: sessions}
}

type QueueRequest struct {
	Session  string   `json:"session"`
	TrackIDs []string `json:"track_ids"`
}

type QueueResponse struct {
	Queued []string `json:"queued"`
	Count  int      `json:"count"`
}

// Queue tracks
// @Summary Queue tracks
// @Description Add tracks to the user's Spotify playback queue
// @Tags Spotify
// @Accept json
// @Produce json
// @Success 200 {object} QueueResponse
// @Router /spotify/queue [post]
func (h *QueueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req QueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, sess, err := h.sessions.Get(ctx, req.Session)
	if err != nil {
		http.Error(w, `{"error":"invalid session"}`, http.StatusUnauthorized)
		return
	}
	client := h.spotifyClient.UserClient(ctx, sess.OAuthToken())

	queued := make([]string, 0, len(req.TrackIDs))
	for _, id := range req.TrackIDs {
		if err := client.QueueSong(ctx, spot.ID(id)); err != nil {
			h.log.Errorw("Failed to queue track", "track_id", id, "error", err)
			continue
		}
		queued = append(queued, id)
	}

	json.NewEncoder(w).Encode(QueueResponse{Queued: queued, Count: len(queued)})
}

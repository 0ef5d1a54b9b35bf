package spotify

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mager/thalamus/session"
	"github.com/mager/thalamus/spotify"
	"go.uber.org/zap"
)

type PlayerStateUpdate struct {
	TrackName  string `json:"track_name"`
	ArtistName string `json:"artist_name"`
	IsPlaying  bool   `json:"is_playing"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, you should validate the origin of the request
		return true
	},
}

// PlayerHandler pushes the user's now-playing state over a WebSocket.
type PlayerHandler struct {
	log           *zap.SugaredLogger
	spotifyClient *spotify.SpotifyClient
	sessions      *session.Store
}

func (*PlayerHandler) Pattern() string {
	return "/spotify/player"
}

// NewPlayerHandler builds a new PlayerHandler.
func NewPlayerHandler(
	log *zap.SugaredLogger,
	spotifyClient *spotify.SpotifyClient,
	sessions *session.Store,
) *PlayerHandler {
	return &PlayerHandler{log: log, spotifyClient: spotifyClient, sessions: sessions}
}

func (h *PlayerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, sess, err := h.sessions.Get(ctx, r.URL.Query().Get("session"))
	if err != nil {
		http.Error(w, `{"error":"invalid session"}`, http.StatusUnauthorized)
		return
	}
	client := h.spotifyClient.UserClient(ctx, sess.OAuthToken())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorw("Error upgrading connection to WebSocket", "error", err)
		return
	}
	defer conn.Close()

	h.log.Info("WebSocket client connected")

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		playerState, err := client.PlayerState(ctx)
		if err != nil {
			h.log.Errorw("Error fetching Spotify player state", "error", err)
			return
		}

		if playerState.CurrentlyPlaying.Item == nil {
			// No track playing
			if err := conn.WriteJSON(PlayerStateUpdate{}); err != nil {
				h.log.Errorw("Error sending WebSocket message", "error", err)
				return
			}
			continue
		}

		update := PlayerStateUpdate{
			TrackName:  playerState.CurrentlyPlaying.Item.Name,
			ArtistName: playerState.CurrentlyPlaying.Item.Artists[0].Name,
			IsPlaying:  playerState.CurrentlyPlaying.Playing,
		}
		if err := conn.WriteJSON(update); err != nil {
			h.log.Errorw("Error sending WebSocket message", "error", err)
			return
		}
	}
}

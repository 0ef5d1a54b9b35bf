package spotify

import (
	"encoding/json"
	"net/http"

	spot "github.com/zmb3/spotify/v2"

	"github.com/mager/thalamus/session"
	"github.com/mager/thalamus/spotify"
	"github.com/mager/thalamus/thalamus"
	"github.com/mager/thalamus/util"
	"go.uber.org/zap"
)

// CurrentSongHandler is an http.Handler
type CurrentSongHandler struct {
	log           *zap.SugaredLogger
	spotifyClient *spotify.SpotifyClient
	sessions      *session.Store
}

func (*CurrentSongHandler) Pattern() string {
	return "/spotify/current-song"
}

// NewCurrentSongHandler builds a new CurrentSongHandler.
func NewCurrentSongHandler(
	log *zap.SugaredLogger,
	spotifyClient *spotify.SpotifyClient,
	sessions *session.Store,
) *CurrentSongHandler {
	return &CurrentSongHandler{log: log, spotifyClient: spotifyClient, sessions: sessions}
}

type CurrentSongResponse struct {
	Track     thalamus.Track `json:"track"`
	IsPlaying bool           `json:"is_playing"`
}

// Get the current song
// @Summary Get the current song
// @Description Get the currently playing track, falling back to the most recently played
// @Tags Spotify
// @Accept json
// @Produce json
// @Success 200 {object} CurrentSongResponse
// @Router /spotify/current-song [get]
// @Param session query string true "Session ID"
func (h *CurrentSongHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	_, sess, err := h.sessions.Get(ctx, r.URL.Query().Get("session"))
	if err != nil {
		http.Error(w, `{"error":"invalid session"}`, http.StatusUnauthorized)
		return
	}
	client := h.spotifyClient.UserClient(ctx, sess.OAuthToken())

	// Try the currently playing track first
	current, err := client.PlayerCurrentlyPlaying(ctx)
	if err == nil && current != nil && current.Item != nil {
		json.NewEncoder(w).Encode(CurrentSongResponse{
			Track:     mapFullTrack(current.Item),
			IsPlaying: current.Playing,
		})
		return
	}

	// Fall back to the most recently played track
	recent, err := client.PlayerRecentlyPlayedOpt(ctx, &spot.RecentlyPlayedOptions{Limit: 1})
	if err != nil || len(recent) == 0 {
		http.Error(w, `{"error":"no recent tracks found"}`, http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(CurrentSongResponse{
		Track:     mapSimpleTrack(recent[0].Track),
		IsPlaying: false,
	})
}

func mapFullTrack(ft *spot.FullTrack) thalamus.Track {
	t := thalamus.Track{
		ID:      string(ft.ID),
		Name:    ft.Name,
		Artists: util.ArtistNames(ft.Artists),
	}
	if thumb := util.GetThumb(ft.Album); thumb != nil {
		t.AlbumArt = *thumb
	}
	return t
}

func mapSimpleTrack(st spot.SimpleTrack) thalamus.Track {
	t := thalamus.Track{
		ID:      string(st.ID),
		Name:    st.Name,
		Artists: util.ArtistNames(st.Artists),
	}
	if thumb := util.GetThumb(st.Album); thumb != nil {
		t.AlbumArt = *thumb
	}
	return t
}

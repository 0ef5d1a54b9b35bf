package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	spot "github.com/zmb3/spotify/v2"

	"github.com/mager/thalamus/recommender"
	"github.com/mager/thalamus/session"
	"github.com/mager/thalamus/spotify"
	"github.com/mager/thalamus/thalamus"
	"github.com/mager/thalamus/util"
	"go.uber.org/zap"
)

// historyLimit caps how many recent tracks feed the long-term taste
// embedding. The engine imposes no cap of its own; truncation is this
// caller's contract.
const historyLimit = 30

// RecommendHandler is an http.Handler
type RecommendHandler struct {
	log           *zap.SugaredLogger
	spotifyClient *spotify.SpotifyClient
	sessions      *session.Store
	rec           *recommender.Recommender
}

func (*RecommendHandler) Pattern() string {
	return "/recommend"
}

// NewRecommendHandler builds a new RecommendHandler.
func NewRecommendHandler(
	log *zap.SugaredLogger,
	spotifyClient *spotify.SpotifyClient,
	sessions *session.Store,
	rec *recommender.Recommender,
) *RecommendHandler {
	return &RecommendHandler{log: log, spotifyClient: spotifyClient, sessions: sessions, rec: rec}
}

type RecommendRequest struct {
	Session        string   `json:"session"`
	CurrentTrackID string   `json:"current_track_id"`
	Moods          []string `json:"moods"`
	N              int      `json:"n"`
}

type RecommendResponse struct {
	Recommendations []thalamus.Track `json:"recommendations"`
}

// Get recommendations
// @Summary Get recommendations
// @Description Recommend the next tracks for the user's current listening context
// @Tags Recommend
// @Accept json
// @Produce json
// @Success 200 {object} RecommendResponse
// @Router /recommend [post]
func (h *RecommendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	if !h.rec.Ready() {
		http.Error(w, `{"error":"model not loaded, run training first"}`, http.StatusServiceUnavailable)
		return
	}

	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.N <= 0 {
		req.N = 5
	}

	docID, sess, err := h.sessions.Get(ctx, req.Session)
	if err != nil {
		http.Error(w, `{"error":"invalid session"}`, http.StatusUnauthorized)
		return
	}
	client := h.spotifyClient.UserClient(ctx, sess.OAuthToken())

	// Listening history, most recent first
	recent, err := client.PlayerRecentlyPlayedOpt(ctx, &spot.RecentlyPlayedOptions{Limit: 50})
	if err != nil {
		h.log.Errorw("Failed to fetch recently played", "error", err)
		http.Error(w, `{"error":"failed to fetch listening history"}`, http.StatusBadGateway)
		return
	}
	historyIDs := make([]spot.ID, 0, len(recent))
	for _, item := range recent {
		historyIDs = append(historyIDs, item.Track.ID)
	}

	historyFeatureIDs := historyIDs
	if len(historyFeatureIDs) > historyLimit {
		historyFeatureIDs = historyFeatureIDs[:historyLimit]
	}
	historyFeatures, err := spotify.AudioFeatureMaps(ctx, client, historyFeatureIDs)
	if err != nil {
		h.log.Errorw("Failed to fetch history audio features", "error", err)
		http.Error(w, `{"error":"failed to fetch audio features"}`, http.StatusBadGateway)
		return
	}

	currentFeatures, err := spotify.AudioFeatureMaps(ctx, client, []spot.ID{spot.ID(req.CurrentTrackID)})
	if err != nil || len(currentFeatures) == 0 {
		http.Error(w, `{"error":"could not fetch audio features for current track"}`, http.StatusBadRequest)
		return
	}

	// Never recommend anything the user just heard
	exclude := make(map[string]bool, len(historyIDs))
	for _, id := range historyIDs {
		exclude[string(id)] = true
	}

	recIDs, embedding, err := h.rec.Recommend(
		historyFeatures, currentFeatures[0], req.Moods, req.N, exclude, nil)
	if err != nil {
		if errors.Is(err, recommender.ErrArtifactMissing) {
			http.Error(w, `{"error":"model not loaded, run training first"}`, http.StatusServiceUnavailable)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	recentStrings := make([]string, len(historyIDs))
	for i, id := range historyIDs {
		recentStrings[i] = string(id)
	}
	if err := h.sessions.SaveEmbedding(ctx, docID, embedding, recentStrings); err != nil {
		h.log.Errorw("Failed to persist session embedding", "error", err)
	}

	tracks, err := enrichTracks(ctx, client, recIDs)
	if err != nil {
		h.log.Errorw("Failed to enrich recommendations", "error", err)
		http.Error(w, `{"error":"failed to fetch track metadata"}`, http.StatusBadGateway)
		return
	}

	json.NewEncoder(w).Encode(RecommendResponse{Recommendations: tracks})
}

// enrichTracks resolves track IDs to display metadata, preserving order.
func enrichTracks(ctx context.Context, client *spot.Client, ids []string) ([]thalamus.Track, error) {
	if len(ids) == 0 {
		return []thalamus.Track{}, nil
	}
	spotIDs := make([]spot.ID, len(ids))
	for i, id := range ids {
		spotIDs[i] = spot.ID(id)
	}
	full, err := client.GetTracks(ctx, spotIDs)
	if err != nil {
		return nil, err
	}

	tracks := make([]thalamus.Track, 0, len(full))
	for _, ft := range full {
		if ft == nil {
			continue
		}
		t := thalamus.Track{
			ID:      string(ft.ID),
			Name:    ft.Name,
			Artists: util.ArtistNames(ft.Artists),
		}
		if thumb := util.GetThumb(ft.Album); thumb != nil {
			t.AlbumArt = *thumb
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

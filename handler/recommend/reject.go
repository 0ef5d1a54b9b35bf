package recommend

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	spot "github.com/zmb3/spotify/v2"

	"github.com/mager/thalamus/database"
	"github.com/mager/thalamus/recommender"
	"github.com/mager/thalamus/session"
	"github.com/mager/thalamus/spotify"
	"github.com/mager/thalamus/thalamus"
	"go.uber.org/zap"
)

// RejectHandler is an http.Handler
type RejectHandler struct {
	log           *zap.SugaredLogger
	spotifyClient *spotify.SpotifyClient
	sessions      *session.Store
	rec           *recommender.Recommender
	db            *sql.DB
}

func (*RejectHandler) Pattern() string {
	return "/reject"
}

// NewRejectHandler builds a new RejectHandler.
func NewRejectHandler(
	log *zap.SugaredLogger,
	spotifyClient *spotify.SpotifyClient,
	sessions *session.Store,
	rec *recommender.Recommender,
	db *sql.DB,
) *RejectHandler {
	return &RejectHandler{log: log, spotifyClient: spotifyClient, sessions: sessions, rec: rec, db: db}
}

type RejectRequest struct {
	Session                string   `json:"session"`
	RejectedTrackID        string   `json:"rejected_track_id"`
	CurrentRecommendations []string `json:"current_recommendations"`
}

type RejectResponse struct {
	Replacement thalamus.Track `json:"replacement"`
}

// Reject a recommendation
// @Summary Reject a recommendation
// @Description Nudge the session away from a rejected track and return a replacement
// @Tags Recommend
// @Accept json
// @Produce json
// @Success 200 {object} RejectResponse
// @Router /reject [post]
func (h *RejectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	if !h.rec.Ready() {
		http.Error(w, `{"error":"model not loaded, run training first"}`, http.StatusServiceUnavailable)
		return
	}

	var req RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	docID, sess, err := h.sessions.Get(ctx, req.Session)
	if err != nil {
		http.Error(w, `{"error":"invalid session"}`, http.StatusUnauthorized)
		return
	}
	if len(sess.Embedding) == 0 {
		http.Error(w, `{"error":"no active session embedding, call /recommend first"}`, http.StatusBadRequest)
		return
	}
	client := h.spotifyClient.UserClient(ctx, sess.OAuthToken())

	rejectedFeatures, err := spotify.AudioFeatureMaps(ctx, client, []spot.ID{spot.ID(req.RejectedTrackID)})
	if err != nil || len(rejectedFeatures) == 0 {
		http.Error(w, `{"error":"could not fetch audio features for rejected track"}`, http.StatusBadRequest)
		return
	}

	// The rejected track, everything currently on screen and everything
	// recently played are all barred from the replacement.
	exclude := map[string]bool{req.RejectedTrackID: true}
	for _, id := range req.CurrentRecommendations {
		exclude[id] = true
	}
	for _, id := range sess.RecentlyPlayed {
		exclude[id] = true
	}

	replacementID, embedding, err := h.rec.Reject(sess.Embedding, rejectedFeatures[0], exclude)
	if err != nil {
		switch {
		case errors.Is(err, recommender.ErrNoReplacement):
			// The stored embedding stays untouched on failure
			http.Error(w, `{"error":"no replacement track available"}`, http.StatusNotFound)
		case errors.Is(err, recommender.ErrArtifactMissing):
			http.Error(w, `{"error":"model not loaded, run training first"}`, http.StatusServiceUnavailable)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := h.sessions.UpdateEmbedding(ctx, docID, embedding); err != nil {
		h.log.Errorw("Failed to persist adjusted embedding", "error", err)
	}
	if err := database.RecordRejection(ctx, h.db, docID, req.RejectedTrackID, replacementID); err != nil {
		h.log.Errorw("Failed to record rejection feedback", "error", err)
	}

	tracks, err := enrichTracks(ctx, client, []string{replacementID})
	if err != nil || len(tracks) == 0 {
		h.log.Errorw("Failed to enrich replacement", "error", err)
		http.Error(w, `{"error":"failed to fetch track metadata"}`, http.StatusBadGateway)
		return
	}

	json.NewEncoder(w).Encode(RejectResponse{Replacement: tracks[0]})
}

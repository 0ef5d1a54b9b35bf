package health

import (
	"encoding/json"
	"net/http"

	"github.com/mager/thalamus/recommender"
	"github.com/mager/thalamus/spotify"
	"go.uber.org/zap"
)

// HealthHandler reports whether the service and its collaborators are
// in a usable state.
type HealthHandler struct {
	log           *zap.SugaredLogger
	spotifyClient *spotify.SpotifyClient
	rec           *recommender.Recommender
}

func (*HealthHandler) Pattern() string {
	return "/health"
}

// NewHealthHandler builds a new HealthHandler.
func NewHealthHandler(
	log *zap.SugaredLogger,
	spotifyClient *spotify.SpotifyClient,
	rec *recommender.Recommender,
) *HealthHandler {
	return &HealthHandler{
		log:           log,
		spotifyClient: spotifyClient,
		rec:           rec,
	}
}

type Response struct {
	Server    bool `json:"server"`
	Spotify   bool `json:"spotify"`
	Artifacts bool `json:"artifacts"`
	// CatalogSize is 0 until artifacts are loaded.
	CatalogSize int `json:"catalog_size"`
}

// ServeHTTP handles an HTTP request to the /health endpoint.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var resp Response

	h.log.Info("health check")

	resp.Server = true

	// Make sure Spotify client is set up properly
	if h.spotifyClient.ID != "" && h.spotifyClient.Secret != "" {
		resp.Spotify = true
	}

	resp.Artifacts = h.rec.Ready()
	resp.CatalogSize = h.rec.CatalogSize()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mager/thalamus/logger"
	"github.com/mager/thalamus/recommender"
	"github.com/mager/thalamus/spotify"
)

func TestHealthHandler(t *testing.T) {
	log, _ := logger.NewTestLogger()
	handler := NewHealthHandler(log, &spotify.SpotifyClient{ID: "id", Secret: "secret"}, &recommender.Recommender{})

	req, err := http.NewRequest(http.MethodGet, "/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusOK)
	}

	// Check the response body
	var resp Response
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Errorf("failed to unmarshal response: %v", err)
	}

	if !resp.Server {
		t.Error("handler reported server down")
	}
	if !resp.Spotify {
		t.Error("handler reported spotify unconfigured despite credentials")
	}
	if resp.Artifacts {
		t.Error("handler reported artifacts loaded for an empty engine")
	}
}

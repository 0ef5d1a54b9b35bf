package track

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	mb "github.com/mager/musicbrainz-go/musicbrainz"
	"github.com/mager/thalamus/musicbrainz"
	"github.com/mager/thalamus/thalamus"
	"go.uber.org/zap"
)

// GetTrackHandler is an http.Handler
type GetTrackHandler struct {
	log               *zap.SugaredLogger
	httpClient        *http.Client
	musicbrainzClient *musicbrainz.MusicbrainzClient
}

func (*GetTrackHandler) Pattern() string {
	return "/track"
}

// NewGetTrackHandler builds a new GetTrackHandler.
func NewGetTrackHandler(
	log *zap.SugaredLogger,
	musicbrainzClient *musicbrainz.MusicbrainzClient,
) *GetTrackHandler {
	return &GetTrackHandler{
		log:               log,
		httpClient:        &http.Client{},
		musicbrainzClient: musicbrainzClient,
	}
}

type GetTrackResponse struct {
	Track thalamus.Track `json:"track"`
}

// Get track
// @Summary Get track
// @Description Get track metadata from MusicBrainz
// @Accept json
// @Produce json
// @Success 200 {object} GetTrackResponse
// @Router /track [get]
// @Param mbid query string true "MusicBrainz recording ID"
func (h *GetTrackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	mbid := r.URL.Query().Get("mbid")
	if mbid == "" {
		http.Error(w, `{"error":"missing mbid"}`, http.StatusBadRequest)
		return
	}

	h.log.Infow("Fetching MusicBrainz recording", "mbid", mbid)
	recording, err := h.musicbrainzClient.Client.GetRecording(mb.GetRecordingRequest{
		ID: mbid,
		Includes: []mb.Include{
			"artist-credits",
			"genres",
			"releases",
		},
	})
	if err != nil {
		h.log.Errorf("error fetching recording: %v", err)
		http.Error(w, `{"error":"recording not found"}`, http.StatusNotFound)
		return
	}

	track := thalamus.Track{
		ID:          mbid,
		Name:        recording.Recording.Title,
		Artists:     artistCreditNames(recording.Recording),
		ReleaseDate: recording.Recording.FirstReleaseDate,
		Genres:      getGenresForRecording(recording.Recording),
		AlbumArt:    getReleaseImageURL(h.httpClient, recording.Recording),
	}

	json.NewEncoder(w).Encode(GetTrackResponse{Track: track})
}

func artistCreditNames(rec mb.Recording) []string {
	if rec.ArtistCredits == nil {
		return nil
	}
	names := make([]string, 0, len(*rec.ArtistCredits))
	for _, credit := range *rec.ArtistCredits {
		names = append(names, credit.Name)
	}
	return names
}

func getGenresForRecording(rec mb.Recording) []string {
	maxGenres := 10
	genres := make([]string, 0, maxGenres)

	if rec.Genres != nil && len(*rec.Genres) > 0 {
		genresSlice := *rec.Genres

		// Sort genres by Count in descending order
		sort.Slice(genresSlice, func(i, j int) bool {
			return genresSlice[i].Count > genresSlice[j].Count
		})

		for i := 0; i < maxGenres && i < len(genresSlice); i++ {
			genres = append(genres, genresSlice[i].Name)
		}
	}

	return genres
}

func getReleaseImageURL(client *http.Client, recording mb.Recording) string {
	if recording.Releases == nil || len(*recording.Releases) == 0 {
		return ""
	}
	firstRelease := (*recording.Releases)[0]
	if firstRelease.ID == "" {
		return ""
	}
	url := fmt.Sprintf("https://coverartarchive.org/release/%s", firstRelease.ID)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return ""
	}
	resp, err := client.Do(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		return ""
	}
	defer resp.Body.Close()
	var caaResp struct {
		Images []struct {
			Front      bool              `json:"front"`
			Thumbnails map[string]string `json:"thumbnails"`
		} `json:"images"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&caaResp); err != nil {
		return ""
	}
	for _, img := range caaResp.Images {
		if img.Front {
			if url500, ok := img.Thumbnails["500"]; ok {
				return url500
			}
		}
	}
	return ""
}

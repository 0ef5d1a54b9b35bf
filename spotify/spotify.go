package spotify

import (
	"context"

	"github.com/mager/thalamus/config"
	"github.com/mager/thalamus/recommender"
	spot "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

var userScopes = []string{
	spotifyauth.ScopeUserReadCurrentlyPlaying,
	spotifyauth.ScopeUserReadRecentlyPlayed,
	spotifyauth.ScopeUserReadPlaybackState,
	spotifyauth.ScopeUserModifyPlaybackState,
}

// SpotifyClient wraps the OAuth authenticator and builds per-user API
// clients from stored tokens.
type SpotifyClient struct {
	Auth   *spotifyauth.Authenticator
	ID     string
	Secret string
}

func ProvideSpotify(cfg config.Config, log *zap.SugaredLogger) *SpotifyClient {
	log.Info("setting up spotify client")

	return &SpotifyClient{
		Auth: spotifyauth.New(
			spotifyauth.WithClientID(cfg.SpotifyID),
			spotifyauth.WithClientSecret(cfg.SpotifySecret),
			spotifyauth.WithRedirectURL(cfg.SpotifyRedirectURL),
			spotifyauth.WithScopes(userScopes...),
		),
		ID:     cfg.SpotifyID,
		Secret: cfg.SpotifySecret,
	}
}

// UserClient builds a Spotify client for one user's token. The underlying
// oauth2 transport refreshes the token automatically.
func (c *SpotifyClient) UserClient(ctx context.Context, token *oauth2.Token) *spot.Client {
	return spot.New(c.Auth.Client(ctx, token))
}

// AudioFeatureMaps batch-fetches audio features and converts them to the
// engine's feature dictionaries, skipping tracks Spotify has no features
// for. Feature unavailability is a normal condition, not an error.
func AudioFeatureMaps(ctx context.Context, client *spot.Client, ids []spot.ID) ([]recommender.Features, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	features, err := client.GetAudioFeatures(ctx, ids...)
	if err != nil {
		return nil, err
	}
	maps := make([]recommender.Features, 0, len(features))
	for _, af := range features {
		if af == nil {
			continue
		}
		maps = append(maps, FeatureMap(af))
	}
	return maps, nil
}

// FeatureMap converts Spotify audio features to the engine's dictionary
// form, keyed by the trainer's feature column names.
func FeatureMap(af *spot.AudioFeatures) recommender.Features {
	return recommender.Features{
		"danceability":     float64(af.Danceability),
		"energy":           float64(af.Energy),
		"key":              float64(af.Key),
		"loudness":         float64(af.Loudness),
		"mode":             float64(af.Mode),
		"speechiness":      float64(af.Speechiness),
		"acousticness":     float64(af.Acousticness),
		"instrumentalness": float64(af.Instrumentalness),
		"liveness":         float64(af.Liveness),
		"valence":          float64(af.Valence),
		"tempo":            float64(af.Tempo),
	}
}

var Options = ProvideSpotify

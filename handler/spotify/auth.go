package spotify

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/mager/thalamus/config"
	"github.com/mager/thalamus/session"
	"github.com/mager/thalamus/spotify"
	"go.uber.org/zap"
)

const stateCookie = "spotify_auth_state"

// --- Auth Login Handler ---

// AuthLoginHandler redirects the user to Spotify's OAuth consent screen.
type AuthLoginHandler struct {
	log           *zap.SugaredLogger
	spotifyClient *spotify.SpotifyClient
}

func (*AuthLoginHandler) Pattern() string {
	return "/auth/spotify"
}

func NewAuthLoginHandler(log *zap.SugaredLogger, spotifyClient *spotify.SpotifyClient) *AuthLoginHandler {
	return &AuthLoginHandler{log: log, spotifyClient: spotifyClient}
}

func (h *AuthLoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.spotifyClient.Auth.AuthURL(state), http.StatusTemporaryRedirect)
}

// --- Auth Callback Handler ---

// AuthCallbackHandler exchanges the OAuth code for tokens, creates the
// session and sends the user back to the frontend with its session ID.
type AuthCallbackHandler struct {
	log           *zap.SugaredLogger
	cfg           config.Config
	spotifyClient *spotify.SpotifyClient
	sessions      *session.Store
}

func (*AuthCallbackHandler) Pattern() string {
	return "/auth/spotify/callback"
}

func NewAuthCallbackHandler(
	log *zap.SugaredLogger,
	cfg config.Config,
	spotifyClient *spotify.SpotifyClient,
	sessions *session.Store,
) *AuthCallbackHandler {
	return &AuthCallbackHandler{log: log, cfg: cfg, spotifyClient: spotifyClient, sessions: sessions}
}

func (h *AuthCallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" {
		http.Error(w, `{"error":"missing state"}`, http.StatusBadRequest)
		return
	}

	token, err := h.spotifyClient.Auth.Token(ctx, cookie.Value, r)
	if err != nil {
		h.log.Errorw("Failed to exchange Spotify token", "error", err)
		http.Error(w, `{"error":"token exchange failed"}`, http.StatusInternalServerError)
		return
	}

	sessionID, err := h.sessions.Create(ctx, token)
	if err != nil {
		h.log.Errorw("Failed to create session", "error", err)
		http.Error(w, `{"error":"failed to create session"}`, http.StatusInternalServerError)
		return
	}

	h.log.Info("Spotify account connected")

	http.SetCookie(w, &http.Cookie{Name: stateCookie, MaxAge: -1})
	http.Redirect(w, r, h.cfg.FrontendURL+"?session="+sessionID, http.StatusTemporaryRedirect)
}

package main

import (
	"context"
	"database/sql"
	"net"
	"net/http"

	"github.com/mager/thalamus/config"
	"github.com/mager/thalamus/database"
	"github.com/mager/thalamus/firestore"
	"github.com/mager/thalamus/handler/health"
	recHandler "github.com/mager/thalamus/handler/recommend"
	spotHandler "github.com/mager/thalamus/handler/spotify"
	trackHandler "github.com/mager/thalamus/handler/track"
	"github.com/mager/thalamus/logger"
	"github.com/mager/thalamus/musicbrainz"
	"github.com/mager/thalamus/recommender"
	"github.com/mager/thalamus/session"
	"github.com/mager/thalamus/spotify"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

//	@title			Thalamus
//	@version		1.0
//	@description	This is the API for thalamus, the next-song recommender

// @host		localhost:8080
// @BasePath	/
func main() {
	fx.New(
		fx.Provide(NewHTTPServer,
			config.Options,
			logger.Options,
			firestore.Options,
			database.Options,
			spotify.Options,
			musicbrainz.Options,
			session.Options,
			recommender.Options,
		),
		fx.Invoke(func(*http.Server) {}),
	).Run()
}

func NewHTTPServer(
	lc fx.Lifecycle,
	log *zap.SugaredLogger,
	cfg config.Config,
	db *sql.DB,
	spotifyClient *spotify.SpotifyClient,
	musicbrainzClient *musicbrainz.MusicbrainzClient,
	sessions *session.Store,
	rec *recommender.Recommender,
) *http.Server {
	mux := http.NewServeMux()

	jsonHandler := jsonMiddleware(mux)

	srv := &http.Server{Addr: ":8080", Handler: jsonHandler}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Infof("Starting HTTP server at %s", srv.Addr)
			go srv.Serve(ln)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	// Define handlers
	healthHandler := health.NewHealthHandler(log, spotifyClient, rec)
	mux.Handle(healthHandler.Pattern(), healthHandler)

	authLoginHandler := spotHandler.NewAuthLoginHandler(log, spotifyClient)
	mux.Handle(authLoginHandler.Pattern(), authLoginHandler)

	authCallbackHandler := spotHandler.NewAuthCallbackHandler(log, cfg, spotifyClient, sessions)
	mux.Handle(authCallbackHandler.Pattern(), authCallbackHandler)

	sessionHandler := spotHandler.NewSessionHandler(log, sessions)
	mux.Handle(sessionHandler.Pattern(), sessionHandler)

	currentSongHandler := spotHandler.NewCurrentSongHandler(log, spotifyClient, sessions)
	mux.Handle(currentSongHandler.Pattern(), currentSongHandler)

	queueHandler := spotHandler.NewQueueHandler(log, spotifyClient, sessions)
	mux.Handle(queueHandler.Pattern(), queueHandler)

	playerHandler := spotHandler.NewPlayerHandler(log, spotifyClient, sessions)
	mux.Handle(playerHandler.Pattern(), playerHandler)

	recommendHandler := recHandler.NewRecommendHandler(log, spotifyClient, sessions, rec)
	mux.Handle(recommendHandler.Pattern(), recommendHandler)

	rejectHandler := recHandler.NewRejectHandler(log, spotifyClient, sessions, rec, db)
	mux.Handle(rejectHandler.Pattern(), rejectHandler)

	moodsHandler := recHandler.NewMoodsHandler(log)
	mux.Handle(moodsHandler.Pattern(), moodsHandler)

	getTrackHandler := trackHandler.NewGetTrackHandler(log, musicbrainzClient)
	mux.Handle(getTrackHandler.Pattern(), getTrackHandler)

	return srv
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

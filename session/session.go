// Package session is the keyed store for per-user listening sessions: the
// Spotify token plus the single mutable session embedding slot the engine
// hands back on every call. Sessions live in Firestore and are addressed by
// a signed identifier the frontend carries around.
package session

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mager/thalamus/config"
	"golang.org/x/oauth2"
)

const collection = "sessions"

var ErrInvalidSession = errors.New("invalid session")

// SpotifyToken is the stored form of an oauth2 token.
type SpotifyToken struct {
	AccessToken  string `firestore:"access_token"`
	RefreshToken string `firestore:"refresh_token"`
	TokenType    string `firestore:"token_type"`
	Expiry       int64  `firestore:"expiry"`
}

// Session is one stored session document. Embedding is nil until the first
// recommendation call composes one.
type Session struct {
	Token          SpotifyToken `firestore:"token"`
	Embedding      []float64    `firestore:"embedding"`
	RecentlyPlayed []string     `firestore:"recently_played"`
	CreatedAt      time.Time    `firestore:"created_at"`
}

// OAuthToken converts the stored token back to its oauth2 form.
func (s *Session) OAuthToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  s.Token.AccessToken,
		RefreshToken: s.Token.RefreshToken,
		TokenType:    s.Token.TokenType,
		Expiry:       time.Unix(s.Token.Expiry, 0),
	}
}

// Store reads and writes session documents.
type Store struct {
	fs         *firestore.Client
	signingKey []byte
}

// NewStore builds a session store backed by Firestore.
func NewStore(fs *firestore.Client, cfg config.Config) *Store {
	return &Store{fs: fs, signingKey: []byte(cfg.SessionKey)}
}

// Create stores a fresh session for the given token and returns the signed
// session identifier handed to the frontend.
func (s *Store) Create(ctx context.Context, token *oauth2.Token) (string, error) {
	docID := uuid.NewString()
	doc := Session{
		Token: SpotifyToken{
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
			TokenType:    token.TokenType,
			Expiry:       token.Expiry.Unix(),
		},
		CreatedAt: time.Now(),
	}
	if _, err := s.fs.Collection(collection).Doc(docID).Set(ctx, doc); err != nil {
		return "", err
	}
	return s.sign(docID)
}

// Get resolves a signed session identifier to its document ID and contents.
func (s *Store) Get(ctx context.Context, signed string) (string, *Session, error) {
	docID, err := s.verify(signed)
	if err != nil {
		return "", nil, ErrInvalidSession
	}
	snap, err := s.fs.Collection(collection).Doc(docID).Get(ctx)
	if err != nil {
		return "", nil, ErrInvalidSession
	}
	var sess Session
	if err := snap.DataTo(&sess); err != nil {
		return "", nil, err
	}
	return docID, &sess, nil
}

// SaveEmbedding persists the session embedding and the recently played set
// after a recommendation call.
func (s *Store) SaveEmbedding(ctx context.Context, docID string, embedding []float64, recentlyPlayed []string) error {
	_, err := s.fs.Collection(collection).Doc(docID).Set(ctx, map[string]interface{}{
		"embedding":       embedding,
		"recently_played": recentlyPlayed,
	}, firestore.MergeAll)
	return err
}

// UpdateEmbedding persists just the adjusted embedding after a rejection.
func (s *Store) UpdateEmbedding(ctx context.Context, docID string, embedding []float64) error {
	_, err := s.fs.Collection(collection).Doc(docID).Set(ctx, map[string]interface{}{
		"embedding": embedding,
	}, firestore.MergeAll)
	return err
}

func (s *Store) sign(docID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  docID,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

func (s *Store) verify(signed string) (string, error) {
	token, err := jwt.ParseWithClaims(signed, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.signingKey, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidSession
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}

var Options = NewStore

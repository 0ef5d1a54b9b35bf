package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DatabaseURL     string
	GoogleProjectID string `default:"beatbrain-dev"`

	SpotifyID          string
	SpotifySecret      string
	SpotifyRedirectURL string `default:"http://127.0.0.1:8080/auth/spotify/callback"`

	FrontendURL  string `default:"http://localhost:5173"`
	ArtifactsDir string `default:"artifacts"`
	SessionKey   string
}

func ProvideConfig() Config {
	var cfg Config
	err := envconfig.Process("thalamus", &cfg)
	if err != nil {
		log.Fatal(err.Error())
	}
	return cfg
}

var Options = ProvideConfig

package recommender

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mager/thalamus/config"
	"go.uber.org/zap"
)

// Artifact file names, as written by the offline trainer.
const (
	scalerFile  = "scaler.json"
	modelFile   = "model.json"
	catalogFile = "catalog.json"
)

type scalerArtifact struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

type layerArtifact struct {
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
}

// modelArtifact carries both halves of the trained autoencoder. Only the
// encoder is evaluated at serving time; the decoder rides along so the
// artifact round-trips losslessly.
type modelArtifact struct {
	Encoder []layerArtifact `json:"encoder"`
	Decoder []layerArtifact `json:"decoder"`
}

type catalogArtifact struct {
	TrackIDs   []string    `json:"track_ids"`
	Embeddings [][]float64 `json:"embeddings"`
}

// Load reads the trained artifacts from dir and assembles an engine.
// Any missing file or dimensional mismatch yields ErrArtifactMissing;
// the engine never starts on partial data.
func Load(dir string) (*Recommender, error) {
	var scaler scalerArtifact
	if err := readArtifact(filepath.Join(dir, scalerFile), &scaler); err != nil {
		return nil, err
	}
	var model modelArtifact
	if err := readArtifact(filepath.Join(dir, modelFile), &model); err != nil {
		return nil, err
	}
	var catalog catalogArtifact
	if err := readArtifact(filepath.Join(dir, catalogFile), &catalog); err != nil {
		return nil, err
	}

	if len(model.Encoder) != 2 {
		return nil, fmt.Errorf("%w: encoder has %d layers, expected 2", ErrArtifactMissing, len(model.Encoder))
	}
	for i, layer := range model.Encoder {
		if len(layer.Weights) == 0 || len(layer.Weights) != len(layer.Bias) {
			return nil, fmt.Errorf("%w: encoder layer %d is malformed", ErrArtifactMissing, i)
		}
	}
	if len(model.Encoder[1].Weights[0]) != len(model.Encoder[0].Weights) {
		return nil, fmt.Errorf("%w: encoder layers disagree on the hidden dimension", ErrArtifactMissing)
	}

	proj := NewProjector(
		model.Encoder[0].Weights, model.Encoder[0].Bias,
		model.Encoder[1].Weights, model.Encoder[1].Bias,
	)

	cat, err := NewCatalog(catalog.TrackIDs, catalog.Embeddings)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactMissing, err)
	}

	rec, err := New(NewScaler(scaler.Mean, scaler.Scale), proj, cat)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func readArtifact(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrArtifactMissing, path)
	}
	if err != nil {
		return fmt.Errorf("read artifact %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse artifact %s: %w", path, err)
	}
	return nil
}

// ProvideRecommender loads the engine at startup. Missing artifacts leave
// the service running with recommendation routes answering 503, matching
// the pre-training deployment state.
func ProvideRecommender(logger *zap.SugaredLogger, cfg config.Config) *Recommender {
	rec, err := Load(cfg.ArtifactsDir)
	if err != nil {
		logger.Warnw("Artifacts not loaded; recommend and reject are unavailable",
			"dir", cfg.ArtifactsDir, "error", err)
		return &Recommender{}
	}
	logger.Infow("Recommendation artifacts loaded",
		"tracks", rec.CatalogSize(), "dim", rec.Dim())
	return rec
}

var Options = ProvideRecommender

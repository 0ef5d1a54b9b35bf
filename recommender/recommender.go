// Package recommender is the embedding-based recommendation engine.
// All of the math lives here; Spotify and HTTP concerns stay outside.
//
// The engine is stateless between calls: session state is passed in and
// handed back by value, so concurrent requests for different sessions need
// no coordination. The only shared state is the frozen model artifacts and
// the catalog matrix, both loaded once and never mutated.
package recommender

import (
	"errors"
	"fmt"
)

// ErrArtifactMissing means the trained artifacts (scaler, projector weights
// or catalog) were never loaded. The engine is unavailable as a whole in
// that state, not degraded.
var ErrArtifactMissing = errors.New("recommendation artifacts not loaded")

// ErrNoReplacement means ranking after exclusion produced no candidates,
// e.g. the entire catalog is excluded. Terminal for that request.
var ErrNoReplacement = errors.New("no replacement track available")

// Session vector composition weights. Raising currentWeight biases results
// toward the immediate listening context, historyWeight toward long-term
// taste, moodWeight toward the explicit request.
const (
	historyWeight = 0.5
	currentWeight = 0.3
	moodWeight    = 0.2
)

// rejectionStrength controls how hard a rejection pushes the session
// embedding away from the rejected track.
const rejectionStrength = 0.1

// Recommender holds the frozen artifacts and answers recommend/reject
// queries. The zero value is an unavailable engine whose every operation
// returns ErrArtifactMissing.
type Recommender struct {
	scaler    *Scaler
	projector *Projector
	catalog   *Catalog
}

// New assembles an engine from already-loaded artifacts, validating that
// their dimensions agree with each other and with FeatureColumns.
func New(scaler *Scaler, projector *Projector, catalog *Catalog) (*Recommender, error) {
	if len(scaler.mean) != len(FeatureColumns) || len(scaler.scale) != len(FeatureColumns) {
		return nil, fmt.Errorf("%w: scaler is %d-dimensional, expected %d",
			ErrArtifactMissing, len(scaler.mean), len(FeatureColumns))
	}
	if projector.InputDim() != len(FeatureColumns) {
		return nil, fmt.Errorf("%w: projector input is %d-dimensional, expected %d",
			ErrArtifactMissing, projector.InputDim(), len(FeatureColumns))
	}
	if catalog.Len() > 0 && catalog.Dim() != projector.OutputDim() {
		return nil, fmt.Errorf("%w: catalog embeddings are %d-dimensional, projector emits %d",
			ErrArtifactMissing, catalog.Dim(), projector.OutputDim())
	}
	return &Recommender{scaler: scaler, projector: projector, catalog: catalog}, nil
}

// Ready reports whether the artifacts were loaded.
func (r *Recommender) Ready() bool {
	return r != nil && r.scaler != nil && r.projector != nil && r.catalog != nil
}

// Dim reports the embedding dimension of the loaded projector.
func (r *Recommender) Dim() int {
	if !r.Ready() {
		return 0
	}
	return r.projector.OutputDim()
}

// CatalogSize reports how many tracks are recommendable.
func (r *Recommender) CatalogSize() int {
	if !r.Ready() {
		return 0
	}
	return r.catalog.Len()
}

// ProjectFeatures maps a raw audio feature dictionary to an embedding:
// assemble the fixed-order vector (missing fields read as 0), standardize
// with the fitted scaler, then run the frozen projection.
func (r *Recommender) ProjectFeatures(f Features) ([]float64, error) {
	if !r.Ready() {
		return nil, ErrArtifactMissing
	}
	return r.projector.Apply(r.scaler.Transform(f.vector())), nil
}

// SynthesizeMood sums the feature deltas for the given mood tags and runs
// the raw sum through the projection. The delta deliberately bypasses the
// scaler: the catalog embeddings were trained under the same asymmetry, so
// "fixing" it here would move mood queries into a different space than the
// catalog they are compared against.
func (r *Recommender) SynthesizeMood(moods []string) ([]float64, error) {
	if !r.Ready() {
		return nil, ErrArtifactMissing
	}
	return r.projector.Apply(moodDelta(moods)), nil
}

// Recommend composes a session embedding and returns up to n track IDs
// ordered by similarity, skipping excluded IDs, along with the session
// embedding for the caller to persist.
//
// When carried is non-nil the composition is bypassed entirely and carried
// is used as-is; this is how an adjusted embedding from a rejection keeps
// steering later calls. Otherwise the session vector is the weighted sum of
// the mean history embedding, the current track embedding and the mood
// embedding, with empty history and an empty mood set contributing zero
// vectors. History is truncated to the most recent items by the caller; no
// cap is enforced here.
func (r *Recommender) Recommend(
	history []Features,
	current Features,
	moods []string,
	n int,
	exclude map[string]bool,
	carried []float64,
) ([]string, []float64, error) {
	if !r.Ready() {
		return nil, nil, ErrArtifactMissing
	}

	session := carried
	if session == nil {
		longTerm := make([]float64, r.Dim())
		if len(history) > 0 {
			for _, f := range history {
				emb, _ := r.ProjectFeatures(f)
				for i := range longTerm {
					longTerm[i] += emb[i]
				}
			}
			for i := range longTerm {
				longTerm[i] /= float64(len(history))
			}
		}

		currentEmb, _ := r.ProjectFeatures(current)

		moodEmb := make([]float64, r.Dim())
		if len(moods) > 0 {
			moodEmb, _ = r.SynthesizeMood(moods)
		}

		session = make([]float64, r.Dim())
		for i := range session {
			session[i] = historyWeight*longTerm[i] + currentWeight*currentEmb[i] + moodWeight*moodEmb[i]
		}
	}

	return r.catalog.Rank(session, exclude, n), session, nil
}

// Reject nudges the session embedding away from a rejected track and
// re-ranks for a single replacement. The exclusion set must already contain
// the rejected track, the currently shown recommendations and the recently
// played IDs; no implicit exclusion happens here. On ErrNoReplacement the
// caller should keep its previous session embedding.
func (r *Recommender) Reject(
	session []float64,
	rejected Features,
	exclude map[string]bool,
) (string, []float64, error) {
	if !r.Ready() {
		return "", nil, ErrArtifactMissing
	}

	rejectedEmb, _ := r.ProjectFeatures(rejected)
	adjusted := make([]float64, len(session))
	for i := range session {
		adjusted[i] = session[i] - rejectionStrength*rejectedEmb[i]
	}

	top := r.catalog.Rank(adjusted, exclude, 1)
	if len(top) == 0 {
		return "", nil, ErrNoReplacement
	}
	return top[0], adjusted, nil
}
